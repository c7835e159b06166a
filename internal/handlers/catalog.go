package handlers

import (
	"net/http"

	"github.com/ukydev/motor-quotation/internal/models"
)

// CatalogHandler serves the static form data.
type CatalogHandler struct {
	catalog models.VehicleCatalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog models.VehicleCatalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Catalog handles GET /api/catalog. With ?make= only that make's models
// are returned.
func (h *CatalogHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	vehicleMake := r.URL.Query().Get("make")
	if vehicleMake == "" {
		writeJSON(w, http.StatusOK, h.catalog)
		return
	}

	modelList := h.catalog.ModelsFor(vehicleMake)
	if modelList == nil {
		writeError(w, http.StatusNotFound, "Unknown make")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"make":   vehicleMake,
		"models": modelList,
	})
}

// Coverages handles GET /api/coverages
func (h *CatalogHandler) Coverages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"coverages": models.Coverages,
		"addOns":    models.AddOnCatalog,
	})
}

package handlers

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/ukydev/motor-quotation/internal/models"
	"github.com/ukydev/motor-quotation/internal/wizard"
)

// QuotationHandler prices ad-hoc quotation inputs outside the wizard.
type QuotationHandler struct {
	pricer wizard.Pricer
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(pricer wizard.Pricer) *QuotationHandler {
	return &QuotationHandler{pricer: pricer}
}

// Calculate handles POST /api/quotations
func (h *QuotationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var in models.QuotationInput
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if in.CoverageType == "" {
		writeError(w, http.StatusBadRequest, "coverageType is required")
		return
	}

	writeJSON(w, http.StatusOK, h.pricer.Calculate(in))
}

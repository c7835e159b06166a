// Command simulator drives simulated customers through the quotation wizard
// API, one full submission per customer.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/motor-quotation/internal/handlers"
	"github.com/ukydev/motor-quotation/internal/middleware"
	"github.com/ukydev/motor-quotation/internal/models"
)

var firstNames = []string{"Ali", "Ayesha", "Bilal", "Fatima", "Hamza", "Sana", "Usman", "Zainab"}
var lastNames = []string{"Ahmed", "Khan", "Malik", "Qureshi", "Shah", "Siddiqui"}

var coverageTypes = []models.CoverageType{
	models.CoverageComprehensive,
	models.CoverageThirdPartyTheftTotalLoss,
	models.CoverageThirdPartyTheft,
}

var genders = []models.Gender{models.GenderMale, models.GenderFemale, models.GenderOther}

// randomForm builds a complete wizard form for one simulated customer.
func randomForm(rng *rand.Rand, now time.Time) map[string]interface{} {
	vehicleMake := models.Catalog.Makes[rng.Intn(len(models.Catalog.Makes))]
	modelList := models.Catalog.ModelsFor(vehicleMake)
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]

	form := map[string]interface{}{
		"vehicleType":  "Car",
		"make":         vehicleMake,
		"model":        modelList[rng.Intn(len(modelList))],
		"modelYear":    now.Year() - rng.Intn(15),
		"city":         models.Catalog.Cities[rng.Intn(len(models.Catalog.Cities))],
		"sumInsured":   int64(500_000 + rng.Intn(60)*100_000),
		"fullName":     first + " " + last,
		"mobile":       fmt.Sprintf("03%02d%07d", rng.Intn(50), rng.Intn(10_000_000)),
		"coverageType": coverageTypes[rng.Intn(len(coverageTypes))],
		"tracker":      map[string]bool{"selected": rng.Intn(2) == 0},
	}
	if rng.Intn(3) > 0 {
		form["email"] = fmt.Sprintf("%s.%s@example.com", first, last)
	}
	if rng.Intn(2) == 0 {
		slabs := models.Catalog.PersonalAccidentSlabs
		form["personalAccident"] = map[string]interface{}{
			"selected":   true,
			"sumInsured": slabs[rng.Intn(len(slabs))],
			"age":        18 + rng.Intn(55),
			"gender":     genders[rng.Intn(len(genders))],
		}
	}
	return form
}

// wizardClient walks one session through the wizard API.
type wizardClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func newWizardClient(baseURL string) *wizardClient {
	return &wizardClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *wizardClient) call(ctx context.Context, method, path string, body interface{}, want int) (*handlers.WizardResponse, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(middleware.SessionHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != want {
		return nil, fmt.Errorf("%s %s failed with status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(data))
	}

	var out handlers.WizardResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	c.token = out.Token
	return &out, nil
}

// submitQuotation runs a whole wizard session for form and returns the
// resulting submission.
func (c *wizardClient) submitQuotation(ctx context.Context, form map[string]interface{}) (*handlers.WizardResponse, error) {
	if _, err := c.call(ctx, http.MethodPost, "/wizard", nil, http.StatusCreated); err != nil {
		return nil, err
	}
	if _, err := c.call(ctx, http.MethodPatch, "/wizard/form", form, http.StatusOK); err != nil {
		return nil, err
	}
	for {
		state, err := c.call(ctx, http.MethodPost, "/wizard/next", nil, http.StatusOK)
		if err != nil {
			return nil, err
		}
		if state.State.CanSubmit {
			break
		}
	}
	return c.call(ctx, http.MethodPost, "/wizard/submit", nil, http.StatusOK)
}

func simulateCustomer(ctx context.Context, apiURL string, rng *rand.Rand) {
	form := randomForm(rng, time.Now())
	resp, err := newWizardClient(apiURL).submitQuotation(ctx, form)
	if err != nil {
		log.WithError(err).Error("Simulated submission failed")
		return
	}
	log.WithFields(log.Fields{
		"reference_number": resp.Lead.ReferenceNumber,
		"make":             resp.Lead.VehicleDetails.Make,
		"coverage_type":    resp.Lead.CoverageType,
		"total_premium":    resp.Lead.Quotation.TotalPremium,
		"team_notified":    resp.Notifications.Team,
	}).Info("Submitted quotation")
}

// run submits count quotations, one per interval, until done or ctx ends.
func run(ctx context.Context, apiURL string, count int, interval time.Duration, rng *rand.Rand) int {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	sent := 0
	for sent < count {
		simulateCustomer(ctx, apiURL, rng)
		sent++
		if sent == count {
			break
		}
		select {
		case <-ctx.Done():
			return sent
		case <-tick.C:
		}
	}
	return sent
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}
	count := envInt("LEAD_COUNT", 10)
	interval := 2 * time.Second
	if n := envInt("SIM_INTERVAL_SECONDS", 2); n >= 1 {
		interval = time.Duration(n) * time.Second
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"lead_count": count,
		"api_url":    apiURL,
		"interval":   interval,
	}).Info("Starting quotation simulation")

	sent := run(ctx, apiURL, count, interval, rand.New(rand.NewSource(time.Now().UnixNano())))

	log.WithField("submitted", sent).Info("Quotation simulation finished")
}

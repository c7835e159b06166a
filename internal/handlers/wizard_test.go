package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/motor-quotation/internal/lead"
	"github.com/ukydev/motor-quotation/internal/middleware"
	"github.com/ukydev/motor-quotation/internal/models"
	"github.com/ukydev/motor-quotation/internal/notify"
	"github.com/ukydev/motor-quotation/internal/quotation"
	"github.com/ukydev/motor-quotation/internal/session"
	"github.com/ukydev/motor-quotation/internal/wizard"
)

const testReference = "MOT-20260510-120000-ABCDE"

func fixedNow() time.Time {
	return time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
}

type fixedReference string

func (r fixedReference) Generate() string { return string(r) }

// MockNotifier is a mock implementation of wizard.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) DispatchAll(ctx context.Context, l models.LeadRecord) models.NotificationResults {
	args := m.Called(ctx, l)
	return args.Get(0).(models.NotificationResults)
}

type wizardFixture struct {
	handler  *WizardHandler
	sessions *session.Service
	notifier *MockNotifier
	router   http.Handler
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()
	logger, _ := test.NewNullLogger()
	entry := logger.WithField("component", "wizard")

	sessions, err := session.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	notifier := new(MockNotifier)
	deps := wizard.Deps{
		Pricer:     quotation.NewEngine(quotation.WithClock(fixedNow), quotation.WithLogger(entry)),
		References: fixedReference(testReference),
		Leads:      lead.NewBuilder(fixedNow, entry),
		Notifier:   notifier,
		Now:        fixedNow,
		Log:        entry,
	}
	h := NewWizardHandler(sessions, deps, entry)
	requireSession := middleware.NewSessionMiddleware(sessions).RequireSession

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/wizard", h.Start)
	mux.Handle("GET /api/wizard", requireSession(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/wizard/form", requireSession(http.HandlerFunc(h.UpdateForm)))
	mux.Handle("POST /api/wizard/next", requireSession(http.HandlerFunc(h.Next)))
	mux.Handle("POST /api/wizard/back", requireSession(http.HandlerFunc(h.Back)))
	mux.Handle("POST /api/wizard/submit", requireSession(http.HandlerFunc(h.Submit)))

	return &wizardFixture{handler: h, sessions: sessions, notifier: notifier, router: mux}
}

// toSummary walks a new session with a complete form to the quotation
// summary and returns its token.
func (f *wizardFixture) toSummary(t *testing.T) string {
	t.Helper()
	_, resp := f.do(t, http.MethodPost, "/api/wizard", "", nil)
	_, resp = f.do(t, http.MethodPatch, "/api/wizard/form", resp.Token, completeFormBody())
	for i := 0; i < 4; i++ {
		var w *httptest.ResponseRecorder
		w, resp = f.do(t, http.MethodPost, "/api/wizard/next", resp.Token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	require.Equal(t, wizard.StepQuotationSummary, resp.State.Step)
	return resp.Token
}

func (f *wizardFixture) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, WizardResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set(middleware.SessionHeader, token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp WizardResponse
	if w.Code < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func completeFormBody() map[string]interface{} {
	return map[string]interface{}{
		"make":         "Toyota",
		"model":        "Corolla",
		"modelYear":    2026,
		"city":         "Karachi",
		"sumInsured":   1000000,
		"fullName":     "Bilal Ahmed",
		"mobile":       "03211234567",
		"email":        "bilal@example.com",
		"coverageType": "Comprehensive",
	}
}

func TestWizardHandler_Start(t *testing.T) {
	f := newWizardFixture(t)

	w, resp := f.do(t, http.MethodPost, "/api/wizard", "", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, resp.Token, w.Header().Get(middleware.SessionHeader))
	assert.Equal(t, wizard.StepVehicleDetails, resp.State.Step)
	assert.Equal(t, "VehicleDetails", resp.State.StepName)
	assert.Equal(t, "Car", resp.State.Form.VehicleType)
	assert.Equal(t, 2026, resp.State.Form.ModelYear)
	assert.False(t, resp.State.CanAdvance)
	assert.Contains(t, resp.State.Missing, "make")
}

func TestWizardHandler_RequiresSession(t *testing.T) {
	f := newWizardFixture(t)

	w, _ := f.do(t, http.MethodGet, "/api/wizard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = f.do(t, http.MethodPost, "/api/wizard/next", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWizardHandler_InvalidSnapshot(t *testing.T) {
	f := newWizardFixture(t)
	token, err := f.sessions.Issue("", wizard.Snapshot{Step: 9})
	require.NoError(t, err)

	w, _ := f.do(t, http.MethodGet, "/api/wizard", token, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid session")
}

func TestWizardHandler_UpdateFormMerges(t *testing.T) {
	f := newWizardFixture(t)
	_, start := f.do(t, http.MethodPost, "/api/wizard", "", nil)

	w, resp := f.do(t, http.MethodPatch, "/api/wizard/form", start.Token, map[string]interface{}{
		"make": "Honda",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Honda", resp.State.Form.Make)

	w, resp = f.do(t, http.MethodPatch, "/api/wizard/form", resp.Token, map[string]interface{}{
		"model": "Civic",
		"city":  "Lahore",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Honda", resp.State.Form.Make)
	assert.Equal(t, "Civic", resp.State.Form.Model)
	assert.Equal(t, "Lahore", resp.State.Form.City)
	assert.Equal(t, 2026, resp.State.Form.ModelYear)
}

func TestWizardHandler_UpdateFormInvalidJSON(t *testing.T) {
	f := newWizardFixture(t)
	_, start := f.do(t, http.MethodPost, "/api/wizard", "", nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/wizard/form", bytes.NewBufferString("{bad json"))
	req.Header.Set(middleware.SessionHeader, start.Token)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWizardHandler_NextIncomplete(t *testing.T) {
	f := newWizardFixture(t)
	_, start := f.do(t, http.MethodPost, "/api/wizard", "", nil)

	w, _ := f.do(t, http.MethodPost, "/api/wizard/next", start.Token, nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Step)
	assert.Equal(t, []string{"make", "model", "city", "sumInsured"}, body.Missing)
}

func TestWizardHandler_FullFlow(t *testing.T) {
	f := newWizardFixture(t)
	f.notifier.On("DispatchAll", mock.Anything, mock.MatchedBy(func(l models.LeadRecord) bool {
		return l.ReferenceNumber == testReference
	})).Return(models.NotificationResults{Team: true, Customer: true, WhatsApp: false}).Once()

	_, resp := f.do(t, http.MethodPost, "/api/wizard", "", nil)
	_, resp = f.do(t, http.MethodPatch, "/api/wizard/form", resp.Token, completeFormBody())
	for i := 0; i < 4; i++ {
		var w *httptest.ResponseRecorder
		w, resp = f.do(t, http.MethodPost, "/api/wizard/next", resp.Token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	require.Equal(t, wizard.StepQuotationSummary, resp.State.Step)
	require.NotNil(t, resp.State.Quotation)
	assert.Equal(t, int64(25000), resp.State.Quotation.TotalPremium)
	assert.True(t, resp.State.CanSubmit)

	w, _ := f.do(t, http.MethodPost, "/api/wizard/next", resp.Token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, submitted := f.do(t, http.MethodPost, "/api/wizard/submit", resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, wizard.StepConfirmation, submitted.State.Step)
	require.NotNil(t, submitted.Lead)
	assert.Equal(t, testReference, submitted.Lead.ReferenceNumber)
	assert.Equal(t, models.LeadStatusNew, submitted.Lead.Status)
	require.NotNil(t, submitted.Notifications)
	assert.True(t, submitted.Notifications.Team)
	assert.False(t, submitted.Notifications.WhatsApp)

	w, _ = f.do(t, http.MethodPost, "/api/wizard/submit", submitted.Token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w, _ = f.do(t, http.MethodPost, "/api/wizard/back", submitted.Token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, got := f.do(t, http.MethodGet, "/api/wizard", submitted.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.State.Lead)
	assert.Equal(t, testReference, got.State.Lead.ReferenceNumber)

	f.notifier.AssertExpectations(t)
}

func TestWizardHandler_SessionIDPreserved(t *testing.T) {
	f := newWizardFixture(t)
	_, start := f.do(t, http.MethodPost, "/api/wizard", "", nil)
	_, next := f.do(t, http.MethodPost, "/api/wizard/back", start.Token, nil)

	first, err := f.sessions.Parse(start.Token)
	require.NoError(t, err)
	second, err := f.sessions.Parse(next.Token)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestWizardHandler_SubmitBeforeSummary(t *testing.T) {
	f := newWizardFixture(t)
	_, start := f.do(t, http.MethodPost, "/api/wizard", "", nil)

	w, _ := f.do(t, http.MethodPost, "/api/wizard/submit", start.Token, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	f.notifier.AssertNotCalled(t, "DispatchAll", mock.Anything, mock.Anything)
}

func TestWizardHandler_BackFromSummaryDropsQuotation(t *testing.T) {
	f := newWizardFixture(t)
	_, resp := f.do(t, http.MethodPost, "/api/wizard", "", nil)
	_, resp = f.do(t, http.MethodPatch, "/api/wizard/form", resp.Token, completeFormBody())
	for i := 0; i < 4; i++ {
		_, resp = f.do(t, http.MethodPost, "/api/wizard/next", resp.Token, nil)
	}
	require.NotNil(t, resp.State.Quotation)

	w, back := f.do(t, http.MethodPost, "/api/wizard/back", resp.Token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, wizard.StepAddOns, back.State.Step)
	assert.Nil(t, back.State.Quotation)
}

func TestWizardHandler_ReplayedSubmitIsRejected(t *testing.T) {
	f := newWizardFixture(t)
	f.notifier.On("DispatchAll", mock.Anything, mock.Anything).
		Return(models.NotificationResults{Team: true}).Once()
	summary := f.toSummary(t)

	w, first := f.do(t, http.MethodPost, "/api/wizard/submit", summary, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, first.Lead)

	for i := 0; i < 2; i++ {
		w, _ = f.do(t, http.MethodPost, "/api/wizard/submit", summary, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	}

	// The pre-submission token now resumes at the confirmation.
	w, got := f.do(t, http.MethodGet, "/api/wizard", summary, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, wizard.StepConfirmation, got.State.Step)
	require.NotNil(t, got.State.Lead)
	assert.Equal(t, first.Lead.ReferenceNumber, got.State.Lead.ReferenceNumber)

	w, _ = f.do(t, http.MethodPatch, "/api/wizard/form", summary, map[string]interface{}{"city": "Lahore"})
	assert.Equal(t, http.StatusConflict, w.Code)

	f.notifier.AssertNumberOfCalls(t, "DispatchAll", 1)
}

func TestWizardHandler_RejectedSubmitReleasesSession(t *testing.T) {
	f := newWizardFixture(t)
	f.notifier.On("DispatchAll", mock.Anything, mock.Anything).Return(models.NotificationResults{}).Once()
	summary := f.toSummary(t)

	_, start := f.do(t, http.MethodPost, "/api/wizard", "", nil)
	w, _ := f.do(t, http.MethodPost, "/api/wizard/submit", start.Token, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	w, _ = f.do(t, http.MethodPost, "/api/wizard/next", start.Token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = f.do(t, http.MethodPost, "/api/wizard/submit", summary, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWizardHandler_SubmitSurvivesCancelledRequest(t *testing.T) {
	logger, _ := test.NewNullLogger()
	entry := logger.WithField("component", "wizard")
	sessions, err := session.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	sender := notify.NewLogSender(entry)
	deps := wizard.Deps{
		Pricer:     quotation.NewEngine(quotation.WithClock(fixedNow), quotation.WithLogger(entry)),
		References: fixedReference(testReference),
		Leads:      lead.NewBuilder(fixedNow, entry),
		Notifier: notify.NewDispatcher(sender, sender,
			notify.Recipients{TeamEmail: "team@example.com", TeamWhatsApp: "+920000000000"},
			notify.WithLogger(entry)),
		Now: fixedNow,
		Log: entry,
	}
	h := NewWizardHandler(sessions, deps, entry)
	submit := middleware.NewSessionMiddleware(sessions).RequireSession(http.HandlerFunc(h.Submit))

	wiz := wizard.New(deps)
	form := wiz.Form()
	require.NoError(t, json.Unmarshal([]byte(`{"make":"Toyota","model":"Corolla","city":"Karachi","sumInsured":1000000,"fullName":"Bilal Ahmed","mobile":"03211234567","email":"bilal@example.com","coverageType":"Comprehensive"}`), &form))
	require.NoError(t, wiz.Update(form))
	for wiz.Step() < wizard.StepQuotationSummary {
		require.NoError(t, wiz.Next())
	}
	token, err := sessions.Issue("", wiz.Snapshot())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/wizard/submit", nil).WithContext(ctx)
	req.Header.Set(middleware.SessionHeader, token)
	w := httptest.NewRecorder()
	submit.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp WizardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Notifications)
	assert.Equal(t, models.NotificationResults{Team: true, Customer: true, WhatsApp: true}, *resp.Notifications)
}

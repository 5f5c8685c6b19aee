package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leadboard_backend/internal/leads/manual"
	"leadboard_backend/internal/leads/service"
	"leadboard_backend/internal/leads/transport"
	"leadboard_backend/internal/zoho"
	"leadboard_backend/platform/cache"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/events"
	"leadboard_backend/platform/logger"
	"leadboard_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type fakeCRM struct {
	leads    []zoho.RawLead
	fetchErr error
}

func (f *fakeCRM) ExchangeToken(_ context.Context) (string, error) { return "tok", nil }

func (f *fakeCRM) FetchAll(_ context.Context, _ zoho.TokenSource, _ zoho.ProgressFunc) ([]zoho.RawLead, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.leads, nil
}

func newTestRouter(t *testing.T, crm *fakeCRM) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("test")
	cfg := &config.Config{TokenCacheTTL: 30 * time.Minute, SnapshotCacheTTL: time.Hour}
	svc := service.New(
		crm,
		cache.NewSlot[string](),
		cache.NewSlot[[]zoho.RawLead](),
		manual.NewStore(),
		events.NewInMemoryBus(log),
		cfg,
		log,
	)
	h := New(svc, validator.New(), nil, nil)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return engine
}

func doRequest(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func sampleLeads() []zoho.RawLead {
	return []zoho.RawLead{
		{ID: "1", FirstName: "Asha", Owner: zoho.OwnerRef{Kind: zoho.OwnerPlain, Name: "Ravi Kumar"}, LeadStatus: "New", LeadSource: "Facebook", CreatedTime: "2024-03-01T09:00:00"},
		{ID: "2", FirstName: "Meera", Owner: zoho.OwnerRef{Kind: zoho.OwnerPlain, Name: "Priya"}, LeadStatus: "Contacted", LeadSource: "Google", CreatedTime: "2024-03-02T09:00:00"},
	}
}

func TestListLeadsWithSummary(t *testing.T) {
	engine := newTestRouter(t, &fakeCRM{leads: sampleLeads()})

	w := doRequest(engine, http.MethodGet, "/api/v1/leads?summary=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp transport.LeadsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Leads) != 2 {
		t.Errorf("leads = %d, want 2", len(resp.Leads))
	}
	if resp.Summary == nil || resp.Summary.Total != 2 || resp.Summary.Owners != 2 {
		t.Errorf("summary = %+v", resp.Summary)
	}
}

func TestListLeadsRejectsBadRange(t *testing.T) {
	engine := newTestRouter(t, &fakeCRM{leads: sampleLeads()})

	w := doRequest(engine, http.MethodGet, "/api/v1/leads?range=fortnight", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	w = doRequest(engine, http.MethodGet, "/api/v1/leads?start=2024-01-01", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("lonely start: status = %d, want 400", w.Code)
	}
}

func TestOwnerReport(t *testing.T) {
	engine := newTestRouter(t, &fakeCRM{leads: sampleLeads()})

	w := doRequest(engine, http.MethodGet, "/api/v1/reports/owners", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp transport.ReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Dimension != "owner" || len(resp.Groups) != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestRefreshUpstreamFailureAnswers502(t *testing.T) {
	crm := &fakeCRM{fetchErr: &zoho.FetchError{Page: 2, Status: 500, Partial: []zoho.RawLead{{ID: "1"}}}}
	engine := newTestRouter(t, crm)

	w := doRequest(engine, http.MethodPost, "/api/v1/refresh", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502; body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "partialCount") {
		t.Errorf("body should carry the partial count: %s", w.Body.String())
	}
}

func TestAddManualLead(t *testing.T) {
	engine := newTestRouter(t, &fakeCRM{leads: sampleLeads()})

	w := doRequest(engine, http.MethodPost, "/api/v1/owners/Ravi%20Kumar/leads", `{"firstName":"Walk-in","phone":"98765 43210"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"manual-1"`) {
		t.Errorf("body = %s", w.Body.String())
	}

	w = doRequest(engine, http.MethodPost, "/api/v1/owners/Ravi%20Kumar/leads", `{"lastName":"Nameless"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing firstName: status = %d, want 400", w.Code)
	}
}

func TestLeadMessageAttachment(t *testing.T) {
	engine := newTestRouter(t, &fakeCRM{leads: sampleLeads()})

	w := doRequest(engine, http.MethodGet, "/api/v1/leads/1/message", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "message_1.txt") {
		t.Errorf("Content-Disposition = %q", got)
	}
	if !strings.Contains(w.Body.String(), "Ravi Kumar") {
		t.Errorf("body = %s", w.Body.String())
	}

	w = doRequest(engine, http.MethodGet, "/api/v1/leads/ghost/message", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown lead: status = %d, want 404", w.Code)
	}
}

func TestComposeMessagesBulk(t *testing.T) {
	engine := newTestRouter(t, &fakeCRM{leads: sampleLeads()})

	w := doRequest(engine, http.MethodPost, "/api/v1/owners/Ravi%20Kumar/messages", `{"leadIds":["1"],"style":"detailed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp transport.MessagesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Filename != "messages_Ravi_Kumar.txt" {
		t.Errorf("filename = %q", resp.Filename)
	}
	if resp.Delivered {
		t.Error("no delivery requested")
	}

	w = doRequest(engine, http.MethodPost, "/api/v1/owners/Ravi%20Kumar/messages", `{"leadIds":["1"],"deliver":"email","to":"ops@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("email without mailer: status = %d, want 400", w.Code)
	}
}

func TestOwnerViewRejectsBadWindow(t *testing.T) {
	engine := newTestRouter(t, &fakeCRM{leads: sampleLeads()})

	w := doRequest(engine, http.MethodGet, "/api/v1/owners/Ravi%20Kumar?window=fortnight", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	w = doRequest(engine, http.MethodGet, "/api/v1/owners/Ravi%20Kumar?window=custom", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("custom without bounds: status = %d, want 400", w.Code)
	}
}

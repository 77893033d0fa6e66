package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blackrab369/Versaas-ai/internal/config"
	"github.com/blackrab369/Versaas-ai/internal/orchestrator"
	"github.com/blackrab369/Versaas-ai/internal/simulation"
	"github.com/blackrab369/Versaas-ai/internal/store"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	if err := config.InitVersaasDir(dir); err != nil {
		t.Fatalf("InitVersaasDir: %v", err)
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	cfg.Project.Simulation.TickInterval = config.Duration(10 * time.Millisecond)

	st := store.NewMemoryStore()
	manager := simulation.NewManager(cfg, st, nil, zap.NewNop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = manager.Shutdown(ctx)
	})

	srv := NewServer(manager, st, zap.NewNop())
	return srv, srv.Router()
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestStartAndStatus(t *testing.T) {
	_, router := newTestServer(t)

	resp := do(router, http.MethodPost, "/api/v1/projects/demo/start", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("start status = %d: %s", resp.Code, resp.Body)
	}

	resp = do(router, http.MethodGet, "/api/v1/projects/demo/status", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status code = %d", resp.Code)
	}
	var status orchestrator.Status
	if err := json.Unmarshal(resp.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Project != "demo" || !status.Running {
		t.Fatalf("status = %+v", status)
	}
	if len(status.Agents) != 24 {
		t.Fatalf("agents = %d", len(status.Agents))
	}
}

func TestStatusForUnknownProject(t *testing.T) {
	_, router := newTestServer(t)
	resp := do(router, http.MethodGet, "/api/v1/projects/ghost/status", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", resp.Code)
	}
}

func TestPostMessageAdvancesDay(t *testing.T) {
	_, router := newTestServer(t)

	resp := do(router, http.MethodPost, "/api/v1/projects/demo/message",
		`{"request":"I have a product idea: invoicing for freelancers"}`)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("code = %d: %s", resp.Code, resp.Body)
	}
	var status orchestrator.Status
	if err := json.Unmarshal(resp.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Company.DaysElapsed < 1 {
		t.Fatalf("days = %v, want at least 1", status.Company.DaysElapsed)
	}
}

func TestPostMessageValidation(t *testing.T) {
	_, router := newTestServer(t)

	if resp := do(router, http.MethodPost, "/api/v1/projects/demo/message", `{}`); resp.Code != http.StatusBadRequest {
		t.Fatalf("missing field code = %d", resp.Code)
	}
	if resp := do(router, http.MethodPost, "/api/v1/projects/demo/message", `{"request":"   "}`); resp.Code != http.StatusBadRequest {
		t.Fatalf("blank field code = %d", resp.Code)
	}
}

func TestSaveThenListAndMessages(t *testing.T) {
	_, router := newTestServer(t)

	do(router, http.MethodPost, "/api/v1/projects/demo/message",
		`{"request":"new idea: meal planner"}`)
	if resp := do(router, http.MethodPost, "/api/v1/projects/demo/save", ""); resp.Code != http.StatusOK {
		t.Fatalf("save code = %d", resp.Code)
	}

	resp := do(router, http.MethodGet, "/api/v1/projects", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list code = %d", resp.Code)
	}
	var listing struct {
		Live  []string `json:"live"`
		Saved []string `json:"saved"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listing.Live) != 1 || len(listing.Saved) != 1 {
		t.Fatalf("listing = %+v", listing)
	}

	resp = do(router, http.MethodGet, "/api/v1/projects/demo/messages?after=0&limit=10", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("messages code = %d", resp.Code)
	}
	var page struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.Count == 0 {
		t.Fatal("expected archived messages after save")
	}

	if resp := do(router, http.MethodGet, "/api/v1/projects/demo/messages?limit=zero", ""); resp.Code != http.StatusBadRequest {
		t.Fatalf("bad limit code = %d", resp.Code)
	}
}

func TestStopProject(t *testing.T) {
	_, router := newTestServer(t)

	do(router, http.MethodPost, "/api/v1/projects/demo/start", "")
	if resp := do(router, http.MethodPost, "/api/v1/projects/demo/stop", ""); resp.Code != http.StatusOK {
		t.Fatalf("stop code = %d", resp.Code)
	}
	if resp := do(router, http.MethodPost, "/api/v1/projects/demo/stop", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("second stop code = %d", resp.Code)
	}
}

func TestPlanRoute(t *testing.T) {
	_, router := newTestServer(t)

	resp := do(router, http.MethodPost, "/api/v1/projects/demo/plan", "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("plan status = %d, want 201: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Project string `json:"project"`
		Plan    string `json:"plan"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode plan response: %v", err)
	}
	if body.Project != "demo" || body.Plan == "" {
		t.Fatalf("plan response = %+v", body)
	}
	data, err := os.ReadFile(body.Plan)
	if err != nil {
		t.Fatalf("read plan file: %v", err)
	}
	if !strings.Contains(string(data), "# Business Plan: demo") {
		t.Fatalf("unexpected plan document:\n%s", data)
	}
}

package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	plotsvc "github.com/plotdesk/plotdesk-backend/internal/plots"
	"github.com/plotdesk/plotdesk-backend/pkg/db/models"
	"github.com/plotdesk/plotdesk-backend/pkg/enums"
	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
	"github.com/plotdesk/plotdesk-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type stubPlotService struct {
	listStatus string
	updated    *plotsvc.UpdatePlotInput
	bulkInput  *plotsvc.BulkUpdatePlotsInput
}

func (s *stubPlotService) List(ctx context.Context, statusFilter string) ([]models.Plot, error) {
	s.listStatus = statusFilter
	if statusFilter != "" && statusFilter != "available" && statusFilter != "sold" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	return []models.Plot{{ID: 1, Status: enums.PlotStatusAvailable, Price: decimal.RequireFromString("65800")}}, nil
}

func (s *stubPlotService) Get(ctx context.Context, id uint) (*models.Plot, error) {
	if id == 404 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "plot not found")
	}
	return &models.Plot{ID: id, Status: enums.PlotStatusAvailable}, nil
}

func (s *stubPlotService) Update(ctx context.Context, id uint, input plotsvc.UpdatePlotInput) (*models.Plot, error) {
	s.updated = &input
	return &models.Plot{ID: id, Status: enums.PlotStatus(input.Status)}, nil
}

func (s *stubPlotService) BulkUpdate(ctx context.Context, input plotsvc.BulkUpdatePlotsInput) (int64, error) {
	s.bulkInput = &input
	return int64(len(input.IDs)), nil
}

func (s *stubPlotService) Stats(ctx context.Context) (*plotsvc.Stats, error) {
	return &plotsvc.Stats{Total: 200, Available: 187, Sold: 13}, nil
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestListPlotsPassesStatusFilter(t *testing.T) {
	stub := &stubPlotService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/plots?status=sold", nil)
	rec := httptest.NewRecorder()

	ListPlots(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.listStatus != "sold" {
		t.Fatalf("expected status filter to reach service, got %q", stub.listStatus)
	}
}

func TestListPlotsInvalidFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/plots?status=bogus", nil)
	rec := httptest.NewRecorder()

	ListPlots(&stubPlotService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetPlotInvalidID(t *testing.T) {
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/plots/abc", nil), "plotId", "abc")
	rec := httptest.NewRecorder()

	GetPlot(&stubPlotService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestGetPlotNotFound(t *testing.T) {
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/plots/404", nil), "plotId", "404")
	rec := httptest.NewRecorder()

	GetPlot(&stubPlotService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdatePlotCarriesBuyer(t *testing.T) {
	stub := &stubPlotService{}
	body := `{"status":"sold","buyer_id":9}`
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/v1/plots/7", strings.NewReader(body)), "plotId", "7")
	rec := httptest.NewRecorder()

	UpdatePlot(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.updated == nil || stub.updated.BuyerID == nil || *stub.updated.BuyerID != 9 {
		t.Fatalf("expected buyer id 9 to reach service, got %+v", stub.updated)
	}
}

func TestBulkUpdatePlotsRequiresIDs(t *testing.T) {
	body := `{"plot_ids":[],"status":"sold"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/plots/bulk", strings.NewReader(body))
	rec := httptest.NewRecorder()

	BulkUpdatePlots(&stubPlotService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty ids, got %d", rec.Code)
	}
}

func TestBulkUpdatePlotsReportsCount(t *testing.T) {
	stub := &stubPlotService{}
	body := `{"plot_ids":[1,2,3],"status":"selected"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/plots/bulk", strings.NewReader(body))
	rec := httptest.NewRecorder()

	BulkUpdatePlots(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Data["updated"] != 3 {
		t.Fatalf("expected 3 updated, got %d", envelope.Data["updated"])
	}
}

func TestPlotStats(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/plots/stats", nil)
	rec := httptest.NewRecorder()

	PlotStats(&stubPlotService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data plotsvc.Stats `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Data.Total != 200 || envelope.Data.Sold != 13 {
		t.Fatalf("unexpected stats: %+v", envelope.Data)
	}
}

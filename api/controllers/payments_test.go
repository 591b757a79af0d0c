package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ujenzihq/ujenzipay-backend/internal/insights"
	"github.com/ujenzihq/ujenzipay-backend/internal/payments"
	"github.com/ujenzihq/ujenzipay-backend/pkg/db/models"
	"github.com/ujenzihq/ujenzipay-backend/pkg/enums"
	pkgerrors "github.com/ujenzihq/ujenzipay-backend/pkg/errors"
)

type stubPaymentService struct {
	listing  *payments.Listing
	record   *models.PaymentRecord
	insights []insights.Insight
	receipt  *payments.Receipt
	err      error

	gotQuery  payments.ListQuery
	gotID     uuid.UUID
	gotAction enums.PaymentAction
	gotInput  payments.ActionInput
}

func (s *stubPaymentService) List(_ context.Context, query payments.ListQuery) (*payments.Listing, error) {
	s.gotQuery = query
	return s.listing, s.err
}

func (s *stubPaymentService) Get(_ context.Context, id uuid.UUID) (*models.PaymentRecord, error) {
	s.gotID = id
	return s.record, s.err
}

func (s *stubPaymentService) Insights(_ context.Context) ([]insights.Insight, error) {
	return s.insights, s.err
}

func (s *stubPaymentService) Act(_ context.Context, id uuid.UUID, action enums.PaymentAction, input payments.ActionInput) (*payments.Receipt, error) {
	s.gotID = id
	s.gotAction = action
	s.gotInput = input
	return s.receipt, s.err
}

func sampleRecord() *models.PaymentRecord {
	return &models.PaymentRecord{
		ID:            uuid.New(),
		PaymentNumber: "PAY-2025-001",
		InvoiceNumber: "INV-4012",
		PayeeName:     "Mombasa Cement Ltd",
		PayeeKind:     enums.PayeeKindVendor,
		ProjectName:   "Riverside Towers",
		Amount:        decimal.RequireFromString("4200000.00"),
		DueDate:       time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Category:      "Materials",
		Status:        enums.PaymentStatusPending,
	}
}

func withRecordID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("recordID", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPaymentsListPassesQuery(t *testing.T) {
	svc := &stubPaymentService{listing: &payments.Listing{Total: 0, Groups: []payments.RecordGroup{}}}
	handler := PaymentsList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments?search=cement&tab=pending&group_by=project", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotQuery.Search != "cement" {
		t.Fatalf("search %q", svc.gotQuery.Search)
	}
	if svc.gotQuery.Tab != enums.TabFilterPending {
		t.Fatalf("tab %s", svc.gotQuery.Tab)
	}
	if svc.gotQuery.GroupBy != enums.GroupKeyProject {
		t.Fatalf("group %s", svc.gotQuery.GroupBy)
	}
}

func TestPaymentsListRejectsUnknownTab(t *testing.T) {
	svc := &stubPaymentService{}
	handler := PaymentsList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments?tab=archived", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPaymentsGetSuccess(t *testing.T) {
	record := sampleRecord()
	svc := &stubPaymentService{record: record}
	handler := PaymentsGet(svc, nil)

	req := withRecordID(httptest.NewRequest(http.MethodGet, "/api/v1/payments/"+record.ID.String(), nil), record.ID.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data models.PaymentRecord `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.PaymentNumber != record.PaymentNumber {
		t.Fatalf("unexpected payment number %s", envelope.Data.PaymentNumber)
	}
}

func TestPaymentsGetInvalidID(t *testing.T) {
	handler := PaymentsGet(&stubPaymentService{}, nil)

	req := withRecordID(httptest.NewRequest(http.MethodGet, "/api/v1/payments/not-a-uuid", nil), "not-a-uuid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPaymentsGetNotFound(t *testing.T) {
	svc := &stubPaymentService{err: pkgerrors.New(pkgerrors.CodeNotFound, "missing")}
	handler := PaymentsGet(svc, nil)

	id := uuid.New().String()
	req := withRecordID(httptest.NewRequest(http.MethodGet, "/api/v1/payments/"+id, nil), id)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestPaymentsInsightsSuccess(t *testing.T) {
	svc := &stubPaymentService{insights: []insights.Insight{
		{Rule: "all_clear", Severity: enums.InsightSeveritySuccess, Title: "All clear"},
	}}
	handler := PaymentsInsights(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/insights", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []insights.Insight `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Rule != "all_clear" {
		t.Fatalf("unexpected insights %+v", envelope.Data)
	}
	if got := resp.Header().Get("X-Insight-Severity"); got != "success" {
		t.Fatalf("severity header %q", got)
	}
}

func TestPaymentsInsightsSeverityHeaderPicksMostUrgent(t *testing.T) {
	svc := &stubPaymentService{insights: []insights.Insight{
		{Rule: "upcoming_due", Severity: enums.InsightSeverityWarning},
		{Rule: "overdue_exposure", Severity: enums.InsightSeverityCritical},
		{Rule: "vendor_concentration", Severity: enums.InsightSeverityInfo},
	}}
	handler := PaymentsInsights(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/insights", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("X-Insight-Severity"); got != "critical" {
		t.Fatalf("severity header %q, want critical", got)
	}
}

func TestPaymentsListNilService(t *testing.T) {
	handler := PaymentsList(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	authdomain "github.com/sahayahq/sahaya/internal/auth/domain"
	"github.com/sahayahq/sahaya/internal/auth/session"
	campaigndomain "github.com/sahayahq/sahaya/internal/campaign/domain"
	"github.com/sahayahq/sahaya/internal/config"
	donationdomain "github.com/sahayahq/sahaya/internal/donation/domain"
	newsletterdomain "github.com/sahayahq/sahaya/internal/newsletter/domain"
)

type fakeDonationService struct {
	beginErr      error
	successErr    error
	cancelErr     error
	successCalls  int
	cancelCalls   int
	lastSuccess   donationdomain.RecordSuccessRequest
	lastCancelled donationdomain.RecordCancellationRequest
}

func (f *fakeDonationService) BeginCheckout(ctx context.Context, req donationdomain.BeginCheckoutRequest) (*donationdomain.CheckoutSession, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	intent := req.Intent
	return &donationdomain.CheckoutSession{
		OrderID:     "order_test",
		AmountMinor: intent.TotalMinor(),
		Currency:    "INR",
		KeyID:       "rzp_test_key",
		Amount:      intent.Amount,
		Tip:         intent.Tip(),
		Total:       intent.Total(),
	}, nil
}

func (f *fakeDonationService) RecordSuccess(ctx context.Context, req donationdomain.RecordSuccessRequest) (*donationdomain.Donation, error) {
	f.successCalls++
	f.lastSuccess = req
	if f.successErr != nil {
		return nil, f.successErr
	}
	return &donationdomain.Donation{OrderID: req.OrderID, Status: donationdomain.StatusSuccess}, nil
}

func (f *fakeDonationService) RecordCancellation(ctx context.Context, req donationdomain.RecordCancellationRequest) (*donationdomain.Donation, error) {
	f.cancelCalls++
	f.lastCancelled = req
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &donationdomain.Donation{OrderID: req.OrderID, Status: donationdomain.StatusCancelled}, nil
}

func (f *fakeDonationService) ListByEmail(ctx context.Context, req donationdomain.ListByEmailRequest) (*donationdomain.ListDonationsResponse, error) {
	return &donationdomain.ListDonationsResponse{}, nil
}

func (f *fakeDonationService) ListByCampaign(ctx context.Context, req donationdomain.ListByCampaignRequest) (*donationdomain.ListDonationsResponse, error) {
	return &donationdomain.ListDonationsResponse{}, nil
}

type fakeCampaignService struct{}

func (f *fakeCampaignService) Create(ctx context.Context, req campaigndomain.CreateCampaignRequest) (campaigndomain.Campaign, error) {
	return campaigndomain.Campaign{Title: req.Title}, nil
}

func (f *fakeCampaignService) List(ctx context.Context, req campaigndomain.ListCampaignRequest) (campaigndomain.ListCampaignResponse, error) {
	return campaigndomain.ListCampaignResponse{}, nil
}

func (f *fakeCampaignService) GetByID(ctx context.Context, req campaigndomain.GetCampaignRequest) (campaigndomain.Campaign, error) {
	return campaigndomain.Campaign{}, campaigndomain.ErrNotFound
}

type fakeAuthService struct{}

func (f *fakeAuthService) Register(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.LoginResult, error) {
	return nil, authdomain.ErrInvalidCredentials
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	return nil, authdomain.ErrInvalidCredentials
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	return nil, authdomain.ErrInvalidSession
}

func (f *fakeAuthService) GetUser(ctx context.Context, id snowflake.ID) (*authdomain.User, error) {
	return nil, authdomain.ErrUserNotFound
}

type fakeNewsletterService struct {
	err error
}

func (f *fakeNewsletterService) Subscribe(ctx context.Context, req newsletterdomain.SubscribeRequest) (*newsletterdomain.Subscriber, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &newsletterdomain.Subscriber{Email: req.Email}, nil
}

type testServer struct {
	srv        *Server
	donation   *fakeDonationService
	newsletter *fakeNewsletterService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	donationSvc := &fakeDonationService{}
	newsletterSvc := &fakeNewsletterService{}
	srv := NewServer(ServerParams{
		Gin:           NewEngine(),
		Cfg:           config.Config{},
		Authsvc:       &fakeAuthService{},
		Sessions:      session.NewManager(config.Config{}),
		CampaignSvc:   &fakeCampaignService{},
		DonationSvc:   donationSvc,
		NewsletterSvc: newsletterSvc,
	})
	return &testServer{srv: srv, donation: donationSvc, newsletter: newsletterSvc}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return resp.Error
}

func orderPayload() map[string]any {
	return map[string]any{
		"campaign_id": "123",
		"donor": map[string]any{
			"name":  "Asha",
			"email": "asha@example.com",
			"phone": "9876543210",
		},
		"amount":      500,
		"tip_percent": 18,
	}
}

func TestCreateDonationOrder(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/donations/order", orderPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data donationdomain.CheckoutSession `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.OrderID != "order_test" || resp.Data.KeyID != "rzp_test_key" {
		t.Fatalf("data = %+v", resp.Data)
	}
	if resp.Data.AmountMinor != 59000 {
		t.Fatalf("amount minor = %d", resp.Data.AmountMinor)
	}
}

func TestCreateDonationOrderValidationError(t *testing.T) {
	ts := newTestServer(t)
	ts.donation.beginErr = donationdomain.ErrInvalidPhone

	w := ts.do(t, http.MethodPost, "/api/v1/donations/order", orderPayload())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	payload := decodeError(t, w)
	if payload.Type != "validation_error" {
		t.Fatalf("type = %q", payload.Type)
	}
	if len(payload.Errors) != 1 || payload.Errors[0].Field != "phone" || payload.Errors[0].Code != "invalid_phone" {
		t.Fatalf("errors = %+v", payload.Errors)
	}
}

func TestRecordDonationSuccess(t *testing.T) {
	ts := newTestServer(t)

	body := orderPayload()
	body["order_id"] = "order_test"
	body["payment_id"] = "pay_1"
	body["signature"] = "sig_1"
	body["status"] = "success"

	w := ts.do(t, http.MethodPost, "/api/v1/donations", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ts.donation.successCalls != 1 || ts.donation.cancelCalls != 0 {
		t.Fatalf("success=%d cancel=%d", ts.donation.successCalls, ts.donation.cancelCalls)
	}
	if ts.donation.lastSuccess.PaymentID != "pay_1" || ts.donation.lastSuccess.Signature != "sig_1" {
		t.Fatalf("request = %+v", ts.donation.lastSuccess)
	}
}

func TestRecordDonationCancelled(t *testing.T) {
	ts := newTestServer(t)

	body := orderPayload()
	body["order_id"] = "order_test"
	body["status"] = "cancelled"

	w := ts.do(t, http.MethodPost, "/api/v1/donations", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ts.donation.cancelCalls != 1 || ts.donation.successCalls != 0 {
		t.Fatalf("success=%d cancel=%d", ts.donation.successCalls, ts.donation.cancelCalls)
	}
	if ts.donation.lastCancelled.OrderID != "order_test" {
		t.Fatalf("request = %+v", ts.donation.lastCancelled)
	}
}

func TestRecordDonationUnknownStatus(t *testing.T) {
	ts := newTestServer(t)

	body := orderPayload()
	body["status"] = "pending"

	w := ts.do(t, http.MethodPost, "/api/v1/donations", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	payload := decodeError(t, w)
	if len(payload.Errors) != 1 || payload.Errors[0].Code != "invalid_status" {
		t.Fatalf("errors = %+v", payload.Errors)
	}
	if ts.donation.successCalls != 0 || ts.donation.cancelCalls != 0 {
		t.Fatal("service called for unknown status")
	}
}

func TestRecordDonationDuplicate(t *testing.T) {
	ts := newTestServer(t)
	ts.donation.successErr = donationdomain.ErrDuplicateOutcome

	body := orderPayload()
	body["order_id"] = "order_test"
	body["payment_id"] = "pay_1"
	body["signature"] = "sig_1"
	body["status"] = "success"

	w := ts.do(t, http.MethodPost, "/api/v1/donations", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	if payload := decodeError(t, w); payload.Type != "conflict" {
		t.Fatalf("type = %q", payload.Type)
	}
}

func TestRecordDonationBadSignature(t *testing.T) {
	ts := newTestServer(t)
	ts.donation.successErr = donationdomain.ErrInvalidSignature

	body := orderPayload()
	body["order_id"] = "order_test"
	body["payment_id"] = "pay_1"
	body["signature"] = "forged"
	body["status"] = "success"

	w := ts.do(t, http.MethodPost, "/api/v1/donations", body)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSubscribe(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/newsletter/subscribe", map[string]any{"email": "asha@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	ts.newsletter.err = newsletterdomain.ErrAlreadySubscribed
	w = ts.do(t, http.MethodPost, "/api/v1/newsletter/subscribe", map[string]any{"email": "asha@example.com"})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d", w.Code)
	}
}

func TestAuthRequiredWithoutSession(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/auth/me", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if payload := decodeError(t, w); payload.Type != "unauthorized" {
		t.Fatalf("type = %q", payload.Type)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

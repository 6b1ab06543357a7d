package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sahayahq/sahaya/internal/donation/domain"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		from    State
		event   Event
		want    State
		wantErr bool
	}{
		{StateIdle, EventSubmit, StateProcessing, false},
		{StateProcessing, EventSucceed, StateSucceeded, false},
		{StateProcessing, EventFail, StateFailed, false},
		{StateFailed, EventReset, StateIdle, false},
		{StateSucceeded, EventReset, StateIdle, false},
		{StateProcessing, EventSubmit, StateProcessing, true},
		{StateIdle, EventSucceed, StateIdle, true},
		{StateIdle, EventFail, StateIdle, true},
		{StateIdle, EventReset, StateIdle, true},
		{StateSucceeded, EventFail, StateSucceeded, true},
	}

	for _, tc := range cases {
		got, err := Transition(tc.from, tc.event)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("Transition(%s, %s): expected ErrInvalidTransition, got %v", tc.from, tc.event, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Transition(%s, %s): %v", tc.from, tc.event, err)
		}
		if got != tc.want {
			t.Fatalf("Transition(%s, %s) = %s, want %s", tc.from, tc.event, got, tc.want)
		}
	}
}

type fakeService struct {
	domain.Service

	beginErr      error
	successCalls  int
	cancelCalls   int
	lastSuccess   domain.RecordSuccessRequest
	lastCancelled domain.RecordCancellationRequest
}

func (f *fakeService) BeginCheckout(ctx context.Context, req domain.BeginCheckoutRequest) (*domain.CheckoutSession, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return &domain.CheckoutSession{
		OrderID:     "order_test_1",
		AmountMinor: req.Intent.TotalMinor(),
		Currency:    "INR",
		KeyID:       "rzp_test_key",
		Amount:      req.Intent.Amount,
		Tip:         req.Intent.Tip(),
		Total:       req.Intent.Total(),
	}, nil
}

func (f *fakeService) RecordSuccess(ctx context.Context, req domain.RecordSuccessRequest) (*domain.Donation, error) {
	f.successCalls++
	f.lastSuccess = req
	return &domain.Donation{Status: domain.StatusSuccess}, nil
}

func (f *fakeService) RecordCancellation(ctx context.Context, req domain.RecordCancellationRequest) (*domain.Donation, error) {
	f.cancelCalls++
	f.lastCancelled = req
	return &domain.Donation{Status: domain.StatusCancelled}, nil
}

type fakeOpener struct {
	outcome Outcome
	err     error
	opened  int
}

func (f *fakeOpener) Open(ctx context.Context, session domain.CheckoutSession) (Outcome, error) {
	f.opened++
	if f.err != nil {
		return Outcome{}, f.err
	}
	return f.outcome, nil
}

func checkoutRequest() domain.BeginCheckoutRequest {
	return domain.BeginCheckoutRequest{
		CampaignID: "1",
		Donor:      domain.DonorInfo{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"},
		Intent:     domain.Intent{Amount: 500, TipPercent: 18},
	}
}

func TestRunSuccess(t *testing.T) {
	svc := &fakeService{}
	opener := &fakeOpener{outcome: Outcome{PaymentID: "pay_1", Signature: "sig_1"}}
	runner := NewRunner(svc, opener)

	d, err := runner.Run(context.Background(), checkoutRequest())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d.Status != domain.StatusSuccess {
		t.Fatalf("status = %s, want success", d.Status)
	}
	if svc.successCalls != 1 || svc.cancelCalls != 0 {
		t.Fatalf("successCalls=%d cancelCalls=%d", svc.successCalls, svc.cancelCalls)
	}
	if svc.lastSuccess.PaymentID != "pay_1" || svc.lastSuccess.Signature != "sig_1" {
		t.Fatalf("outcome not forwarded: %+v", svc.lastSuccess)
	}
	if got := runner.State(); got != StateSucceeded {
		t.Fatalf("state = %s, want succeeded", got)
	}
}

func TestRunDismissedRecordsCancellation(t *testing.T) {
	svc := &fakeService{}
	opener := &fakeOpener{outcome: Outcome{Dismissed: true}}
	runner := NewRunner(svc, opener)

	d, err := runner.Run(context.Background(), checkoutRequest())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", d.Status)
	}
	if svc.successCalls != 0 || svc.cancelCalls != 1 {
		t.Fatalf("successCalls=%d cancelCalls=%d", svc.successCalls, svc.cancelCalls)
	}
	if svc.lastCancelled.OrderID != "order_test_1" {
		t.Fatalf("cancellation order id = %q", svc.lastCancelled.OrderID)
	}
	// Dismissal resets straight back to idle for another attempt.
	if got := runner.State(); got != StateIdle {
		t.Fatalf("state = %s, want idle", got)
	}
}

func TestRunOrderFailureSkipsCheckout(t *testing.T) {
	svc := &fakeService{beginErr: errors.New("gateway down")}
	opener := &fakeOpener{}
	runner := NewRunner(svc, opener)
	runner.SetResetDelay(10 * time.Millisecond)

	_, err := runner.Run(context.Background(), checkoutRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	if opener.opened != 0 {
		t.Fatal("checkout dialog opened after order failure")
	}
	if svc.successCalls != 0 || svc.cancelCalls != 0 {
		t.Fatal("outcome recorded after order failure")
	}
	if got := runner.State(); got != StateFailed {
		t.Fatalf("state = %s, want failed", got)
	}

	// Failure reverts to idle so the donor can retry.
	deadline := time.Now().Add(time.Second)
	for runner.State() != StateIdle {
		if time.Now().After(deadline) {
			t.Fatalf("state = %s, want idle after reset delay", runner.State())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRunRejectsConcurrentSubmit(t *testing.T) {
	svc := &fakeService{}
	opener := &fakeOpener{outcome: Outcome{PaymentID: "pay_1", Signature: "sig_1"}}
	runner := NewRunner(svc, opener)

	if _, err := runner.Run(context.Background(), checkoutRequest()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	// Succeeded is terminal until Reset.
	if _, err := runner.Run(context.Background(), checkoutRequest()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second run: got %v, want ErrInvalidTransition", err)
	}
	if err := runner.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := runner.Run(context.Background(), checkoutRequest()); err != nil {
		t.Fatalf("run after reset: %v", err)
	}
}

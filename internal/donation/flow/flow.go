// Package flow drives a single donation checkout attempt through its
// states: idle until the donor submits, processing while the gateway
// order and provider dialog are in flight, then succeeded or failed.
// A failure reverts to idle after a short delay so the donor can retry.
package flow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sahayahq/sahaya/internal/donation/domain"
)

type State string

const (
	StateIdle       State = "idle"
	StateProcessing State = "processing"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

type Event string

const (
	EventSubmit  Event = "submit"
	EventSucceed Event = "succeed"
	EventFail    Event = "fail"
	EventReset   Event = "reset"
)

var ErrInvalidTransition = errors.New("invalid_transition")

// DefaultResetDelay is how long a failed attempt stays visible before the
// flow returns to idle.
const DefaultResetDelay = 3 * time.Second

// Transition is the pure state table. Submitting is only allowed from idle,
// so a double click during processing is a no-op error rather than a second
// gateway order.
func Transition(s State, e Event) (State, error) {
	switch e {
	case EventSubmit:
		if s == StateIdle {
			return StateProcessing, nil
		}
	case EventSucceed:
		if s == StateProcessing {
			return StateSucceeded, nil
		}
	case EventFail:
		if s == StateProcessing {
			return StateFailed, nil
		}
	case EventReset:
		if s == StateFailed || s == StateSucceeded {
			return StateIdle, nil
		}
	}
	return s, ErrInvalidTransition
}

// Outcome is what the provider dialog reports back. Dismissed means the
// donor closed the dialog without paying.
type Outcome struct {
	Dismissed bool
	PaymentID string
	Signature string
}

// Opener opens the provider checkout dialog for a created order and blocks
// until the donor finishes or dismisses it.
type Opener interface {
	Open(ctx context.Context, session domain.CheckoutSession) (Outcome, error)
}

// Runner owns the flow state for one donor session. It is safe for
// concurrent use; only one attempt can be in flight at a time.
type Runner struct {
	svc        domain.Service
	opener     Opener
	resetDelay time.Duration

	mu    sync.Mutex
	state State
}

func NewRunner(svc domain.Service, opener Opener) *Runner {
	return &Runner{
		svc:        svc,
		opener:     opener,
		resetDelay: DefaultResetDelay,
		state:      StateIdle,
	}
}

// SetResetDelay overrides the failure reset delay. Tests use this to avoid
// waiting the full default.
func (r *Runner) SetResetDelay(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetDelay = d
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) apply(e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, err := Transition(r.state, e)
	if err != nil {
		return err
	}
	r.state = next
	return nil
}

// Run executes one checkout attempt end to end. A dismissed dialog records
// a cancellation and resets immediately; any failure schedules an automatic
// reset after the configured delay.
func (r *Runner) Run(ctx context.Context, req domain.BeginCheckoutRequest) (*domain.Donation, error) {
	if err := r.apply(EventSubmit); err != nil {
		return nil, err
	}

	session, err := r.svc.BeginCheckout(ctx, req)
	if err != nil {
		r.fail()
		return nil, err
	}

	outcome, err := r.opener.Open(ctx, *session)
	if err != nil {
		r.fail()
		return nil, err
	}
	if outcome.Dismissed {
		d, err := r.svc.RecordCancellation(ctx, domain.RecordCancellationRequest{
			CampaignID: req.CampaignID,
			Donor:      req.Donor,
			Intent:     req.Intent,
			OrderID:    session.OrderID,
		})
		if err != nil {
			r.fail()
			return nil, err
		}
		r.apply(EventFail)
		r.apply(EventReset)
		return d, nil
	}

	d, err := r.svc.RecordSuccess(ctx, domain.RecordSuccessRequest{
		CampaignID: req.CampaignID,
		Donor:      req.Donor,
		Intent:     req.Intent,
		OrderID:    session.OrderID,
		PaymentID:  outcome.PaymentID,
		Signature:  outcome.Signature,
	})
	if err != nil {
		r.fail()
		return nil, err
	}
	r.apply(EventSucceed)
	return d, nil
}

// Reset returns a finished flow to idle so the donor can start over.
func (r *Runner) Reset() error {
	return r.apply(EventReset)
}

func (r *Runner) fail() {
	if err := r.apply(EventFail); err != nil {
		return
	}
	r.mu.Lock()
	delay := r.resetDelay
	r.mu.Unlock()
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		<-timer.C
		r.apply(EventReset)
	}()
}

package payment

import (
	"sync"

	"github.com/sahayahq/sahaya/internal/providers/payment/domain"
)

// Loader builds the configured gateway at most once per process and hands the
// same instance to every caller afterwards. A build failure is sticky for the
// attempt that observed it but is retried on the next Get.
type Loader struct {
	mu    sync.Mutex
	ready bool
	gw    domain.Gateway
	build func() (domain.Gateway, error)
}

func NewLoader(build func() (domain.Gateway, error)) *Loader {
	return &Loader{build: build}
}

func (l *Loader) Get() (domain.Gateway, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ready {
		return l.gw, nil
	}

	gw, err := l.build()
	if err != nil {
		return nil, err
	}

	l.gw = gw
	l.ready = true
	return gw, nil
}

// Package domain defines the payment gateway contract. The gateway issues
// pending orders before the hosted checkout opens and verifies the signature
// the provider returns on a successful payment.
package domain

import (
	"context"
	"errors"
)

// Order is a gateway-issued handle for a pending charge. It is passed through
// to the client and never persisted here.
type Order struct {
	ID          string `json:"id"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt,omitempty"`
	Status      string `json:"status,omitempty"`
}

type CreateOrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

type Gateway interface {
	// CreateOrder registers a pending order with the provider. A non-2xx
	// provider response yields ErrOrderCreation.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	// VerifyPaymentSignature checks the signature the provider hands to the
	// success callback against the order and payment identifiers.
	VerifyPaymentSignature(orderID, paymentID, signature string) error
	// KeyID is the public key the client needs to open checkout.
	KeyID() string
}

// Config carries provider credentials into a factory.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

type Factory interface {
	Provider() string
	NewGateway(cfg Config) (Gateway, error)
}

var (
	ErrInvalidConfig      = errors.New("invalid gateway config")
	ErrProviderNotFound   = errors.New("gateway provider not found")
	ErrOrderCreation      = errors.New("order creation failed")
	ErrInvalidSignature   = errors.New("invalid payment signature")
	ErrGatewayUnavailable = errors.New("gateway unavailable")
)

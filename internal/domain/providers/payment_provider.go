package providers

import (
	"context"
)

// ChargeParams describes a destination charge routed to a host's connected
// account. Amount and ApplicationFee are in the smallest currency unit.
type ChargeParams struct {
	Amount             int64
	Currency           string
	Source             string
	DestinationAccount string
	ApplicationFee     int64

	// IdempotencyKey guards against double charging if the request has to
	// be replayed by a reconciliation job. It is never retried in-process.
	IdempotencyKey string
}

// ChargeResult carries the processor's reference for a captured charge
type ChargeResult struct {
	ChargeID string
}

// PaymentProvider is the external payment processor. Implementations must
// bound Charge with a timeout; a timed-out charge is a failure.
type PaymentProvider interface {
	// Charge captures a payment against source on behalf of the destination
	// account, keeping ApplicationFee for the platform
	Charge(ctx context.Context, params ChargeParams) (*ChargeResult, error)

	// Connect exchanges a host onboarding authorization code for the
	// connected account identity
	Connect(ctx context.Context, code string) (string, error)
}

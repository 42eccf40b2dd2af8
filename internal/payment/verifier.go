package payment

import "context"

// Verifier checks a provider-specific transaction handle before the fund
// ledger records a money donation. Implementations must not mutate any
// ledger state.
type Verifier interface {
	Verify(ctx context.Context, paymentReference string, amountCents int64) (bool, error)
}

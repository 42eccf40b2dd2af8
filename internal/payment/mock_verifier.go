package payment

import (
	"context"
	"strings"

	"ecoshare-backend/internal/logger"
)

// MockVerifier approves any non-empty payment reference. Used in dev and
// test environments where no gateway is wired; selected via config the same
// way storage backends are.
type MockVerifier struct{}

func NewMockVerifier() *MockVerifier {
	return &MockVerifier{}
}

func (v *MockVerifier) Verify(ctx context.Context, paymentReference string, amountCents int64) (bool, error) {
	if strings.TrimSpace(paymentReference) == "" {
		return false, nil
	}
	logger.Debug("Mock payment verification", "reference", paymentReference, "amount_cents", amountCents)
	return true, nil
}

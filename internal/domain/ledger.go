package domain

import "time"

type PointTransactionType string

const (
	PointTransactionTypeDonationReward PointTransactionType = "DONATION_REWARD"
	PointTransactionTypeMoneyReward    PointTransactionType = "MONEY_REWARD"
	PointTransactionTypeAdHold         PointTransactionType = "AD_HOLD"
	PointTransactionTypeAdRefund       PointTransactionType = "AD_REFUND"
	PointTransactionTypeAdjustment     PointTransactionType = "ADJUSTMENT"
)

// PointTransaction records every EcoPoints balance change, appended in the
// same store transaction as the balance update itself.
type PointTransaction struct {
	ID          int64                `json:"id"`
	UserID      int64                `json:"user_id"`
	Amount      int64                `json:"amount"` // positive for credit, negative for debit
	Type        PointTransactionType `json:"type"`
	RelatedID   *int64               `json:"related_id,omitempty"`
	Description string               `json:"description"`
	CreatedOn   time.Time            `json:"created_on"`
}

package domain

import "time"

type TransactionType string

const (
	TransactionTypeDonation   TransactionType = "DONATION"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// FinancialTransaction is an append-only record on the shared monetary fund.
// Amounts are in paisa (PKR cents).
type FinancialTransaction struct {
	ID               int64           `json:"id"`
	UserID           *int64          `json:"user_id,omitempty"`
	Type             TransactionType `json:"type"`
	AmountCents      int64           `json:"amount_cents"`
	Reference        string          `json:"reference"`
	Description      string          `json:"description"`
	RelatedRequestID *int64          `json:"related_request_id,omitempty"`
	CreatedOn        time.Time       `json:"created_on"`
}

// FundBalance is the single mutable aggregate row. The invariant
// total_balance == total_donations - total_withdrawals holds after every
// mutation.
type FundBalance struct {
	TotalDonationsCents   int64     `json:"total_donations_cents"`
	TotalWithdrawalsCents int64     `json:"total_withdrawals_cents"`
	TotalBalanceCents     int64     `json:"total_balance_cents"`
	UpdatedOn             time.Time `json:"updated_on"`
}

type MoneyDonationStatus string

const (
	MoneyDonationStatusCompleted MoneyDonationStatus = "COMPLETED"
)

type MoneyDonation struct {
	ID               int64               `json:"id"`
	UserID           int64               `json:"user_id"`
	AmountCents      int64               `json:"amount_cents"`
	PaymentReference string              `json:"payment_reference"`
	Status           MoneyDonationStatus `json:"status"`
	CreatedOn        time.Time           `json:"created_on"`
}

type MoneyRequestStatus string

const (
	MoneyRequestStatusPending  MoneyRequestStatus = "PENDING"
	MoneyRequestStatusApproved MoneyRequestStatus = "APPROVED"
	MoneyRequestStatusRejected MoneyRequestStatus = "REJECTED"
)

// MoneyRequest does not hold funds at creation time; the fund is only
// touched on approval. This asymmetry with ad-redemption holds is
// deliberate.
type MoneyRequest struct {
	ID          int64              `json:"id"`
	RequesterID int64              `json:"requester_id"`
	AmountCents int64              `json:"amount_cents"`
	Purpose     string             `json:"purpose"`
	Status      MoneyRequestStatus `json:"status"`
	Reason      string             `json:"reason,omitempty"`
	ReviewedBy  *int64             `json:"reviewed_by,omitempty"`
	CreatedOn   time.Time          `json:"created_on"`
	UpdatedOn   time.Time          `json:"updated_on"`
}

package domain

import "time"

type VoucherStatus string

const (
	VoucherStatusActive   VoucherStatus = "ACTIVE"
	VoucherStatusInactive VoucherStatus = "INACTIVE"
	VoucherStatusExpired  VoucherStatus = "EXPIRED"
)

type Voucher struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	// MinEcoPoints gates redemption; it is not deducted from the balance.
	MinEcoPoints       int64         `json:"min_eco_points"`
	MaxRedemptions     int32         `json:"max_redemptions"`
	CurrentRedemptions int32         `json:"current_redemptions"`
	Status             VoucherStatus `json:"status"`
	CreatedBy          int64         `json:"created_by"`
	CreatedOn          time.Time     `json:"created_on"`
	UpdatedOn          time.Time     `json:"updated_on"`
}

// VoucherRedemption is unique per (voucher, user) pair and immutable once
// created.
type VoucherRedemption struct {
	ID         int64     `json:"id"`
	VoucherID  int64     `json:"voucher_id"`
	UserID     int64     `json:"user_id"`
	PointsCost int64     `json:"points_cost"`
	RedeemedOn time.Time `json:"redeemed_on"`
}

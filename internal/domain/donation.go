package domain

import "time"

type DonationStatus string

const (
	DonationStatusAvailable DonationStatus = "AVAILABLE"
	DonationStatusClaimed   DonationStatus = "CLAIMED"
	DonationStatusDelivered DonationStatus = "DELIVERED"
	DonationStatusCompleted DonationStatus = "COMPLETED"
	DonationStatusExpired   DonationStatus = "EXPIRED"
	DonationStatusRecycled  DonationStatus = "RECYCLED"
)

type Donation struct {
	ID          int64  `json:"id"`
	DonorID     int64  `json:"donor_id"`
	ClaimedByID *int64 `json:"claimed_by_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	FoodType    string `json:"food_type"`
	WeightKg    float64 `json:"weight_kg"`
	Quantity    int32   `json:"quantity"`
	Status      DonationStatus `json:"status"`
	// Confirmation flags are monotonic: once true they are never reset, and
	// receiver_confirmed can only become true after sender_confirmed.
	SenderConfirmed   bool `json:"sender_confirmed"`
	ReceiverConfirmed bool `json:"receiver_confirmed"`
	// PointsAwarded guards the completion credit so a re-entered terminal
	// transition can never double-credit.
	PointsAwarded bool `json:"points_awarded"`
	// Advisory figure captured at claim time; feeds the money-request flow
	// and moves no points by itself.
	TransportCostCents int64     `json:"transport_cost_cents"`
	PickupLat          float64   `json:"pickup_lat"`
	PickupLng          float64   `json:"pickup_lng"`
	Expiry             time.Time `json:"expiry"`
	CreatedOn          time.Time `json:"created_on"`
	UpdatedOn          time.Time `json:"updated_on"`
}

// IsTerminal reports whether no further mutation is permitted.
func (d *Donation) IsTerminal() bool {
	switch d.Status {
	case DonationStatusCompleted, DonationStatusExpired, DonationStatusRecycled:
		return true
	}
	return false
}

// EffectiveStatus treats an Available donation whose expiry has passed as
// Expired for read purposes, regardless of whether the sweep has persisted
// the transition yet.
func (d *Donation) EffectiveStatus(now time.Time) DonationStatus {
	if d.Status == DonationStatusAvailable && now.After(d.Expiry) {
		return DonationStatusExpired
	}
	return d.Status
}

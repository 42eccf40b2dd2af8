package domain

import "time"

type AdRequestStatus string

const (
	AdRequestStatusPending  AdRequestStatus = "PENDING"
	AdRequestStatusApproved AdRequestStatus = "APPROVED"
	AdRequestStatusRejected AdRequestStatus = "REJECTED"
)

// AdRedemptionRequest holds the user's points from the moment it is created:
// the debit happens in the same store transaction as the insert. Approval
// consumes the hold, rejection refunds exactly the held amount.
type AdRedemptionRequest struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	PointsCost      int64           `json:"points_cost"`
	DurationMinutes int32           `json:"duration_minutes"`
	Title           string          `json:"title"`
	ImageURL        string          `json:"image_url"`
	TargetURL       string          `json:"target_url"`
	Status          AdRequestStatus `json:"status"`
	Reason          string          `json:"reason,omitempty"`
	BannerID        *int64          `json:"banner_id,omitempty"`
	CreatedOn       time.Time       `json:"created_on"`
	UpdatedOn       time.Time       `json:"updated_on"`
}

type BannerStatus string

const (
	BannerStatusDraft     BannerStatus = "DRAFT"
	BannerStatusScheduled BannerStatus = "SCHEDULED"
	BannerStatusActive    BannerStatus = "ACTIVE"
	BannerStatusCompleted BannerStatus = "COMPLETED"
)

type SponsorBanner struct {
	ID          int64        `json:"id"`
	SponsorID   int64        `json:"sponsor_id"`
	Title       string       `json:"title"`
	ImageURL    string       `json:"image_url"`
	TargetURL   string       `json:"target_url"`
	Active      bool         `json:"active"`
	Status      BannerStatus `json:"status"`
	StartDate   *time.Time   `json:"start_date,omitempty"`
	EndDate     *time.Time   `json:"end_date,omitempty"`
	Impressions int64        `json:"impressions"`
	Clicks      int64        `json:"clicks"`
	CreatedOn   time.Time    `json:"created_on"`
	UpdatedOn   time.Time    `json:"updated_on"`
}

package domain

import "time"

type UserRole string

const (
	UserRoleIndividual UserRole = "INDIVIDUAL"
	UserRoleRestaurant UserRole = "RESTAURANT"
	UserRoleNGO        UserRole = "NGO"
	UserRoleShelter    UserRole = "SHELTER"
	UserRoleFertilizer UserRole = "FERTILIZER"
	UserRoleAdmin      UserRole = "ADMIN"
)

type User struct {
	ID    int64    `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
	// EcoPoints is mutated only through ledger operations and never goes
	// negative; debits are guarded at the store level.
	EcoPoints int64     `json:"eco_points"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

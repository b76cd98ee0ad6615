package domain

import "time"

// User is an account known to the mock identity provider. The user set is
// fixed demo data; there is no real account storage.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PlanID       string    `json:"plan_id"`
	CreatedAt    time.Time `json:"created_at"`
}

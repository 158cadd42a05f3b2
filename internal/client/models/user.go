package models

// StoredUser is the denormalized user object persisted alongside the tokens
// for fast boot. It is UI convenience state only — the backend remains the
// source of truth for identity, and nothing here is ever used as an
// authorization input.
type StoredUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// NewUser is the payload for creating a staff account under the company.
type NewUser struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
}

// User is the full account object from /api/v1/users/.
type User struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Phone       string   `json:"phone"`
	AccountType string   `json:"account_type"`
	Role        string   `json:"role"`
	IsActive    bool     `json:"is_active"`
	IsStaff     bool     `json:"is_staff"`
	CreatedAt   string   `json:"created_at"`
	LastLogin   *string  `json:"last_login"`
	Company     *Company `json:"company"`
}

package domain

import "time"

type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the public view of an Account handed out by profile and validate.
type Identity struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Account) Identity() *Identity {
	return &Identity{
		ID:        a.ID,
		Username:  a.Username,
		FirstName: a.FirstName,
		CreatedAt: a.CreatedAt,
	}
}

package model

import "time"

// User is the credential record behind the session tokens. The rest of
// the system only ever sees the id.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

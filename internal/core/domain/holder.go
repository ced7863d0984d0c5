package domain

import "time"

// AccountHolder is the bank's customer record. It doubles as the
// authentication principal: login is by email + password hash, and the
// holder ID is the subject of every issued token.
type AccountHolder struct {
	HolderID       string    `json:"holderID"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	SSNEncrypted   []byte    `json:"-"` // opaque ciphertext, never interpreted here
	DateOfBirth    time.Time `json:"dateOfBirth"`
	MailingAddress string    `json:"mailingAddress"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

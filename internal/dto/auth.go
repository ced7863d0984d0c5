package dto

import (
	"time"

	"github.com/invisiblebank/bank_api/internal/core/domain"
)

// RegisterRequest carries the data needed to open a holder record.
type RegisterRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	SSN            string `json:"ssn" binding:"required,len=11"` // NNN-NN-NNNN, encrypted at rest
	DateOfBirth    string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	MailingAddress string `json:"mailingAddress" binding:"required,max=500"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed access token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HolderResponse is the public view of an account holder. SSN and password
// hash are never exposed.
type HolderResponse struct {
	HolderID       string    `json:"holderID"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
	MailingAddress string    `json:"mailingAddress"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToHolderResponse converts a domain.AccountHolder to its response DTO.
func ToHolderResponse(h *domain.AccountHolder) HolderResponse {
	return HolderResponse{
		HolderID:       h.HolderID,
		Name:           h.Name,
		Email:          h.Email,
		DateOfBirth:    h.DateOfBirth,
		MailingAddress: h.MailingAddress,
		CreatedAt:      h.CreatedAt,
	}
}

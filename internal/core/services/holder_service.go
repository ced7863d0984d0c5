package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/invisiblebank/bank_api/internal/apperrors"
	"github.com/invisiblebank/bank_api/internal/core/domain"
	portsrepo "github.com/invisiblebank/bank_api/internal/core/ports/repositories"
	portssvc "github.com/invisiblebank/bank_api/internal/core/ports/services"
	"github.com/invisiblebank/bank_api/internal/dto"
	"github.com/invisiblebank/bank_api/internal/middleware"
	"github.com/invisiblebank/bank_api/internal/utils"
)

type HolderService struct {
	holderRepo    portsrepo.HolderRepository
	encryptionKey []byte
}

func NewHolderService(holderRepo portsrepo.HolderRepository, encryptionKey []byte) *HolderService {
	return &HolderService{holderRepo: holderRepo, encryptionKey: encryptionKey}
}

var _ portssvc.HolderSvcFacade = (*HolderService)(nil)

// RegisterHolder creates a new holder record. The password is bcrypt-hashed
// and the SSN encrypted before anything touches storage.
func (s *HolderService) RegisterHolder(ctx context.Context, req dto.RegisterRequest) (*domain.AccountHolder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date of birth", apperrors.ErrValidation)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: password hashing failed", apperrors.ErrInternal)
	}

	ssnEncrypted, err := utils.Encrypt(s.encryptionKey, req.SSN)
	if err != nil {
		logger.Error("Failed to encrypt SSN", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: encryption failed", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	holder := domain.AccountHolder{
		HolderID:       uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   passwordHash,
		SSNEncrypted:   ssnEncrypted,
		DateOfBirth:    dob,
		MailingAddress: req.MailingAddress,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.holderRepo.SaveHolder(ctx, holder); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save holder", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Holder registered", slog.String("holder_id", holder.HolderID))
	return &holder, nil
}

// AuthenticateHolder verifies credentials. Unknown email, wrong password, and
// deactivated holders all surface the same ErrUnauthorized so login probing
// cannot distinguish them.
func (s *HolderService) AuthenticateHolder(ctx context.Context, email string, password string) (*domain.AccountHolder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	holder, err := s.holderRepo.FindHolderByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		logger.Error("Failed to look up holder for login", slog.String("error", err.Error()))
		return nil, err
	}

	if !utils.CheckPasswordHash(password, holder.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if !holder.IsActive {
		return nil, apperrors.ErrUnauthorized
	}

	return holder, nil
}

// GetHolderByID retrieves a holder by ID.
func (s *HolderService) GetHolderByID(ctx context.Context, holderID string) (*domain.AccountHolder, error) {
	return s.holderRepo.FindHolderByID(ctx, holderID)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invisiblebank/bank_api/internal/apperrors"
	"github.com/invisiblebank/bank_api/internal/core/domain"
	portsrepo "github.com/invisiblebank/bank_api/internal/core/ports/repositories"
	portssvc "github.com/invisiblebank/bank_api/internal/core/ports/services"
	"github.com/invisiblebank/bank_api/internal/dto"
	"github.com/invisiblebank/bank_api/internal/middleware"
	"github.com/invisiblebank/bank_api/internal/utils"
)

// maxAccountNumberAttempts bounds the generate-and-insert retry loop. Ten
// collisions in a row against a 10-digit space means something is wrong with
// the generator or the table, not bad luck.
const maxAccountNumberAttempts = 10

type AccountService struct {
	accountRepo   portsrepo.AccountRepository
	routingNumber string
}

func NewAccountService(accountRepo portsrepo.AccountRepository, routingNumber string) *AccountService {
	return &AccountService{accountRepo: accountRepo, routingNumber: routingNumber}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// CreateAccount opens a new account with a zero balance. The account number
// is generated randomly and uniqueness is enforced by the database: on a
// collision the insert fails with ErrDuplicate and a fresh number is tried,
// up to maxAccountNumberAttempts.
func (s *AccountService) CreateAccount(ctx context.Context, holderID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for attempt := 1; attempt <= maxAccountNumberAttempts; attempt++ {
		number, err := utils.GenerateAccountNumber()
		if err != nil {
			logger.Error("Failed to generate account number", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: account number generation failed", apperrors.ErrInternal)
		}

		now := time.Now().UTC()
		account := domain.Account{
			AccountID:     uuid.NewString(),
			HolderID:      holderID,
			AccountNumber: number,
			RoutingNumber: s.routingNumber,
			AccountType:   req.AccountType,
			Balance:       decimal.Zero,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			logger.Info("Account created", slog.String("account_id", account.AccountID), slog.Int("attempt", attempt))
			return &account, nil
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Account number collision, regenerating", slog.Int("attempt", attempt))
			continue
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Error("Account number generation exhausted", slog.Int("attempts", maxAccountNumberAttempts))
	return nil, apperrors.ErrIdentifierExhausted
}

// GetAccountByID retrieves an account, enforcing that the caller owns it.
// Ownership failures are reported as ErrUnauthorized, not ErrNotFound, so the
// caller knows the ID was valid but off-limits.
func (s *AccountService) GetAccountByID(ctx context.Context, holderID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.HolderID != holderID {
		return nil, apperrors.ErrUnauthorized
	}
	return account, nil
}

// ListAccountsByHolder retrieves all accounts owned by the holder.
func (s *AccountService) ListAccountsByHolder(ctx context.Context, holderID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByHolderID(ctx, holderID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

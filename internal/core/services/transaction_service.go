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
)

const maxDescriptionLength = 500

type TransactionService struct {
	accountRepo   portsrepo.AccountRepository
	ledgerRepo    portsrepo.LedgerRepository
	routingNumber string
}

func NewTransactionService(accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository, routingNumber string) *TransactionService {
	return &TransactionService{
		accountRepo:   accountRepo,
		ledgerRepo:    ledgerRepo,
		routingNumber: routingNumber,
	}
}

var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// validateAmount enforces the money rules shared by every ledger operation:
// strictly positive, at most two decimal places.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if amount.Exponent() < -2 {
		return fmt.Errorf("%w: amount must have at most two decimal places", apperrors.ErrValidation)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", apperrors.ErrValidation, maxDescriptionLength)
	}
	return nil
}

// ownedActiveAccount loads an account and checks that the caller owns it and
// that it is active. These checks run outside the ledger's database
// transaction; the repository re-locks the row before mutating anything.
func (s *TransactionService) ownedActiveAccount(ctx context.Context, holderID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.HolderID != holderID {
		return nil, apperrors.ErrUnauthorized
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	}
	return account, nil
}

func optionalDescription(description string) *string {
	if description == "" {
		return nil
	}
	return &description
}

// Deposit credits an owned account and records the transaction atomically.
func (s *TransactionService) Deposit(ctx context.Context, holderID string, req dto.DepositRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}
	if _, err := s.ownedActiveAccount(ctx, holderID, req.AccountID); err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.AccountID,
		TransactionType: domain.Deposit,
		Amount:          req.Amount,
		Description:     optionalDescription(req.Description),
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.ledgerRepo.SaveDeposit(ctx, txn); err != nil {
		logger.Error("Deposit failed", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, err
	}

	logger.Info("Deposit recorded", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	return &txn, nil
}

// Withdraw debits an owned account and records the transaction atomically.
// The insufficient-funds check runs on the locked row inside the repository.
func (s *TransactionService) Withdraw(ctx context.Context, holderID string, req dto.WithdrawalRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}
	if _, err := s.ownedActiveAccount(ctx, holderID, req.AccountID); err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.AccountID,
		TransactionType: domain.Withdrawal,
		Amount:          req.Amount,
		Description:     optionalDescription(req.Description),
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.ledgerRepo.SaveWithdrawal(ctx, txn); err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Error("Withdrawal failed", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		}
		return nil, err
	}

	logger.Info("Withdrawal recorded", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	return &txn, nil
}

// Transfer moves funds out of an owned account. When the destination routing
// number matches this institution's the transfer settles internally: both
// legs are written in one database transaction, and a destination account
// number that does not exist fails the whole transfer. Any other routing
// number records only the outgoing leg.
func (s *TransactionService) Transfer(ctx context.Context, holderID string, req dto.TransferRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}
	source, err := s.ownedActiveAccount(ctx, holderID, req.FromAccountID)
	if err != nil {
		return nil, err
	}

	internal := req.ToRoutingNumber == s.routingNumber
	if internal && req.ToAccountNumber == source.AccountNumber {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	toRouting := req.ToRoutingNumber
	toNumber := req.ToAccountNumber

	outgoing := domain.Transaction{
		TransactionID:     uuid.NewString(),
		AccountID:         source.AccountID,
		TransactionType:   domain.Transfer,
		Amount:            req.Amount,
		PeerRoutingNumber: &toRouting,
		PeerAccountNumber: &toNumber,
		Description:       optionalDescription(req.Description),
		CreatedAt:         now,
	}
	if outgoing.Description == nil {
		desc := "Transfer to account " + req.ToAccountNumber
		outgoing.Description = &desc
	}

	var incoming *domain.Transaction
	if internal {
		fromRouting := source.RoutingNumber
		fromNumber := source.AccountNumber
		desc := "Transfer from account " + source.AccountNumber
		incoming = &domain.Transaction{
			TransactionID:     uuid.NewString(),
			TransactionType:   domain.Transfer,
			Amount:            req.Amount,
			PeerRoutingNumber: &fromRouting,
			PeerAccountNumber: &fromNumber,
			Description:       &desc,
			CreatedAt:         now,
		}
	}

	if err := s.ledgerRepo.SaveTransfer(ctx, outgoing, incoming, req.ToAccountNumber); err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Transfer failed", slog.String("error", err.Error()), slog.String("account_id", source.AccountID))
		}
		return nil, err
	}

	logger.Info("Transfer recorded",
		slog.String("transaction_id", outgoing.TransactionID),
		slog.String("account_id", source.AccountID),
		slog.Bool("internal", internal),
	)
	return &outgoing, nil
}

// ListTransactions returns the holder's transactions newest first, optionally
// restricted to one owned account. Inactive accounts remain readable.
func (s *TransactionService) ListTransactions(ctx context.Context, holderID string, accountID *string) ([]domain.Transaction, error) {
	var accountIDs []string

	if accountID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, *accountID)
		if err != nil {
			return nil, err
		}
		if account.HolderID != holderID {
			return nil, apperrors.ErrUnauthorized
		}
		accountIDs = []string{account.AccountID}
	} else {
		accounts, err := s.accountRepo.FindAccountsByHolderID(ctx, holderID)
		if err != nil {
			return nil, err
		}
		for _, acc := range accounts {
			accountIDs = append(accountIDs, acc.AccountID)
		}
	}

	txns, err := s.ledgerRepo.ListTransactionsByAccountIDs(ctx, accountIDs)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

package services

import (
	"context"
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

type CardService struct {
	accountRepo   portsrepo.AccountRepository
	cardRepo      portsrepo.CardRepository
	encryptionKey []byte
}

func NewCardService(accountRepo portsrepo.AccountRepository, cardRepo portsrepo.CardRepository, encryptionKey []byte) *CardService {
	return &CardService{
		accountRepo:   accountRepo,
		cardRepo:      cardRepo,
		encryptionKey: encryptionKey,
	}
}

var _ portssvc.CardSvcFacade = (*CardService)(nil)

// CreateCard issues a Luhn-valid card against an owned, active account. The
// card number is generated fresh, encrypted at rest, and only its last four
// digits are returned.
func (s *CardService) CreateCard(ctx context.Context, holderID string, req dto.CreateCardRequest) (*dto.CardResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.HolderID != holderID {
		return nil, apperrors.ErrUnauthorized
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account is inactive", apperrors.ErrValidation)
	}

	number, err := utils.GenerateCardNumber()
	if err != nil {
		logger.Error("Failed to generate card number", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: card number generation failed", apperrors.ErrInternal)
	}

	numberEncrypted, err := utils.Encrypt(s.encryptionKey, number)
	if err != nil {
		logger.Error("Failed to encrypt card number", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: encryption failed", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	card := domain.Card{
		CardID:          uuid.NewString(),
		AccountID:       account.AccountID,
		NumberEncrypted: numberEncrypted,
		CardType:        req.CardType,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.cardRepo.SaveCard(ctx, card); err != nil {
		logger.Error("Failed to save card", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Card issued", slog.String("card_id", card.CardID), slog.String("account_id", card.AccountID))
	res := dto.CardResponse{
		CardID:      card.CardID,
		AccountID:   card.AccountID,
		NumberLast4: utils.Last4(number),
		CardType:    card.CardType,
		IsActive:    card.IsActive,
		CreatedAt:   card.CreatedAt,
	}
	return &res, nil
}

// ListCards returns the holder's cards, masked to the last four digits,
// optionally restricted to one owned account.
func (s *CardService) ListCards(ctx context.Context, holderID string, accountID *string) ([]dto.CardResponse, error) {
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

	cards, err := s.cardRepo.FindCardsByAccountIDs(ctx, accountIDs)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list cards", slog.String("error", err.Error()))
		return nil, err
	}

	responses := make([]dto.CardResponse, 0, len(cards))
	for _, card := range cards {
		number, err := utils.Decrypt(s.encryptionKey, card.NumberEncrypted)
		if err != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to decrypt card number", slog.String("card_id", card.CardID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: card decryption failed", apperrors.ErrInternal)
		}
		responses = append(responses, dto.CardResponse{
			CardID:      card.CardID,
			AccountID:   card.AccountID,
			NumberLast4: utils.Last4(number),
			CardType:    card.CardType,
			IsActive:    card.IsActive,
			CreatedAt:   card.CreatedAt,
		})
	}
	return responses, nil
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/invisiblebank/bank_api/internal/core/ports/services"
	"github.com/invisiblebank/bank_api/internal/dto"
	"github.com/invisiblebank/bank_api/internal/middleware"
)

// cardHandler handles HTTP requests related to cards.
type cardHandler struct {
	cardService portssvc.CardSvcFacade
}

// RegisterCardRoutes registers routes related to cards.
func RegisterCardRoutes(rg *gin.RouterGroup, cardService portssvc.CardSvcFacade) {
	h := &cardHandler{cardService: cardService}

	cards := rg.Group("/cards")
	{
		cards.POST("", h.createCard)
		cards.GET("", h.listCards)
	}
}

// createCard godoc
// @Summary Issue a card
// @Description Issues a Luhn-valid card against an owned, active account. Only the last four digits are ever returned.
// @Tags cards
// @Accept json
// @Produce json
// @Param card body dto.CreateCardRequest true "Card details"
// @Success 201 {object} dto.CardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cards [post]
func (h *cardHandler) createCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	holderID, ok := middleware.GetHolderIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), holderID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Card issued", slog.String("card_id", card.CardID))
	c.JSON(http.StatusCreated, card)
}

// listCards godoc
// @Summary List cards
// @Description Lists the holder's cards masked to the last four digits, optionally restricted to one owned account.
// @Tags cards
// @Produce json
// @Param accountID query string false "Restrict to one account"
// @Success 200 {object} dto.ListCardsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cards [get]
func (h *cardHandler) listCards(c *gin.Context) {
	holderID, ok := middleware.GetHolderIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var accountID *string
	if v := c.Query("accountID"); v != "" {
		accountID = &v
	}

	cards, err := h.cardService.ListCards(c.Request.Context(), holderID, accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListCardsResponse{Cards: cards})
}

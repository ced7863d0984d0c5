package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/invisiblebank/bank_api/internal/core/ports/services"
	"github.com/invisiblebank/bank_api/internal/dto"
	"github.com/invisiblebank/bank_api/internal/middleware"
)

// statementHandler handles HTTP requests related to statements.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

// RegisterStatementRoutes registers routes related to statements.
func RegisterStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade) {
	h := &statementHandler{statementService: statementService}

	rg.GET("/statements", h.getStatement)
}

// getStatement godoc
// @Summary Get a statement
// @Description Builds a read-only statement of every owned account and its transactions over the trailing window (default 30 days, max 365).
// @Tags statements
// @Produce json
// @Param days query int false "Trailing window in days" default(30)
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements [get]
func (h *statementHandler) getStatement(c *gin.Context) {
	holderID, ok := middleware.GetHolderIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	days := 0
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "days must be an integer"})
			return
		}
		days = parsed
	}

	statement, err := h.statementService.GetStatement(c.Request.Context(), holderID, days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
	portssvc "github.com/finbase/sepa_payments_app/internal/core/ports/services"
	"github.com/finbase/sepa_payments_app/internal/dto"
	"github.com/finbase/sepa_payments_app/internal/middleware"
)

// partyHandler handles HTTP requests related to parties and bank accounts.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

// newPartyHandler creates a new partyHandler.
func newPartyHandler(partyService portssvc.PartySvcFacade) *partyHandler {
	return &partyHandler{
		partyService: partyService,
	}
}

// createParty godoc
// @Summary Create a party
// @Description Creates a party, optionally with its SEPA creditor identifier
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   party body dto.CreatePartyRequest true "Party"
// @Success 201 {object} dto.PartyResponse "The created party"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /parties [post]
func (h *partyHandler) createParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreatePartyRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createParty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		logger.Error("Failed to create party", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create party"})
		return
	}

	logger.Info("Party created successfully", slog.String("party_id", party.PartyID))
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// getParty godoc
// @Summary Get a party
// @Description Retrieves a party by ID
// @Tags parties
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Success 200 {object} dto.PartyResponse "The party"
// @Failure 404 {object} map[string]string "Party not found"
// @Router /parties/{partyID} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	party, err := h.partyService.GetPartyByID(c.Request.Context(), partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
			return
		}
		logger.Error("Failed to get party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve party"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// addBankAccount godoc
// @Summary Add a bank account
// @Description Attaches a bank account with its numbers to a party; IBAN numbers are format-checked
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateBankAccountRequest true "Bank account"
// @Success 201 {object} dto.BankAccountResponse "The created bank account"
// @Failure 400 {object} map[string]string "Invalid request format or invalid IBAN"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /bank-accounts [post]
func (h *partyHandler) addBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateBankAccountRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for addBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.partyService.AddBankAccount(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Validation error adding bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to add bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add bank account"})
		}
		return
	}

	logger.Info("Bank account added successfully", slog.String("bank_account_id", account.BankAccountID))
	// Numbers are echoed through the list endpoint; the create response carries
	// the account identity only.
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account, nil))
}

// listBankAccounts godoc
// @Summary List a party's bank accounts
// @Description Lists bank accounts of a party with their numbers
// @Tags parties
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Success 200 {array} dto.BankAccountResponse "The party's bank accounts"
// @Failure 500 {object} map[string]string "Failed to list bank accounts"
// @Router /parties/{partyID}/bank-accounts [get]
func (h *partyHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	accounts, err := h.partyService.ListBankAccountsByParty(c.Request.Context(), partyID)
	if err != nil {
		logger.Error("Failed to list bank accounts", slog.String("error", err.Error()), slog.String("party_id", partyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bank accounts"})
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// deleteBankAccountNumber godoc
// @Summary Delete a bank account number
// @Description Deletes a bank account number; blocked while a mandate references it
// @Tags parties
// @Produce  json
// @Param   numberID path string true "Account number ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Account number not found"
// @Failure 409 {object} map[string]string "Number is referenced by a mandate"
// @Router /bank-account-numbers/{numberID} [delete]
func (h *partyHandler) deleteBankAccountNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	numberID := c.Param("numberID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.partyService.DeleteBankAccountNumber(c.Request.Context(), numberID, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account number not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Account number still referenced", slog.String("number_id", numberID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete account number", slog.String("error", err.Error()), slog.String("number_id", numberID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account number"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// registerPartyRoutes registers party and bank account specific routes
func registerPartyRoutes(group *gin.RouterGroup, partyService portssvc.PartySvcFacade) {
	h := newPartyHandler(partyService)

	parties := group.Group("/parties")
	{
		parties.POST("", h.createParty)
		parties.GET("/:partyID", h.getParty)
		parties.GET("/:partyID/bank-accounts", h.listBankAccounts)
	}

	group.POST("/bank-accounts", h.addBankAccount)
	group.DELETE("/bank-account-numbers/:numberID", h.deleteBankAccountNumber)
}

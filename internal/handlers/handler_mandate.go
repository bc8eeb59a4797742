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

// mandateHandler handles HTTP requests related to SEPA mandates.
type mandateHandler struct {
	mandateService portssvc.MandateSvcFacade
}

// newMandateHandler creates a new mandateHandler.
func newMandateHandler(mandateService portssvc.MandateSvcFacade) *mandateHandler {
	return &mandateHandler{
		mandateService: mandateService,
	}
}

// createMandate godoc
// @Summary Create a mandate
// @Description Creates a SEPA mandate in the draft state
// @Tags mandates
// @Accept  json
// @Produce  json
// @Param   mandate body dto.CreateMandateRequest true "Mandate"
// @Success 201 {object} dto.MandateResponse "The created mandate"
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create mandate"
// @Router /mandates [post]
func (h *mandateHandler) createMandate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateMandateRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createMandate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	mandate, err := h.mandateService.CreateMandate(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating mandate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Referenced entity not found creating mandate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create mandate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mandate"})
		}
		return
	}

	logger.Info("Mandate created successfully", slog.String("mandate_id", mandate.MandateID))
	c.JSON(http.StatusCreated, dto.ToMandateResponse(mandate))
}

// getMandate godoc
// @Summary Get a mandate
// @Description Retrieves a mandate by ID, including the computed payment link flag
// @Tags mandates
// @Produce  json
// @Param   mandateID path string true "Mandate ID"
// @Success 200 {object} dto.MandateResponse "The mandate"
// @Failure 404 {object} map[string]string "Mandate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve mandate"
// @Router /mandates/{mandateID} [get]
func (h *mandateHandler) getMandate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	mandateID := c.Param("mandateID")

	mandate, err := h.mandateService.GetMandateByID(c.Request.Context(), mandateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Mandate not found", slog.String("mandate_id", mandateID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Mandate not found"})
			return
		}
		logger.Error("Failed to get mandate", slog.String("error", err.Error()), slog.String("mandate_id", mandateID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve mandate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMandateResponse(mandate))
}

// listMandates godoc
// @Summary List a party's mandates
// @Description Lists mandates of a party in creation order, token-paginated
// @Tags mandates
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListMandatesResponse "A page of mandates"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Failed to list mandates"
// @Router /parties/{partyID}/mandates [get]
func (h *mandateHandler) listMandates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	params := dto.ListMandatesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid list parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	res, err := h.mandateService.ListMandatesByParty(c.Request.Context(), partyID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list mandates", slog.String("error", err.Error()), slog.String("party_id", partyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list mandates"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// updateMandate godoc
// @Summary Update a mandate
// @Description Updates editable fields; rejected once the mandate is validated or canceled
// @Tags mandates
// @Accept  json
// @Produce  json
// @Param   mandateID path string true "Mandate ID"
// @Param   mandate body dto.UpdateMandateRequest true "Fields to update"
// @Success 200 {object} dto.MandateResponse "The updated mandate"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Mandate not found"
// @Failure 409 {object} map[string]string "Mandate is immutable in its current state"
// @Router /mandates/{mandateID} [put]
func (h *mandateHandler) updateMandate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	mandateID := c.Param("mandateID")

	updateReq := dto.UpdateMandateRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateMandate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	mandate, err := h.mandateService.UpdateMandate(c.Request.Context(), mandateID, updateReq, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Mandate not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Mandate immutable", slog.String("mandate_id", mandateID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update mandate", slog.String("error", err.Error()), slog.String("mandate_id", mandateID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update mandate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMandateResponse(mandate))
}

// transition wraps the four lifecycle endpoints, which only differ in the
// service call they make.
func (h *mandateHandler) transition(c *gin.Context, action string, call func(c *gin.Context, mandateID, userID string) error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	mandateID := c.Param("mandateID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := call(c, mandateID, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Mandate not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Illegal mandate transition", slog.String("mandate_id", mandateID), slog.String("action", action), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Mandate not ready for transition", slog.String("mandate_id", mandateID), slog.String("action", action), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed mandate transition", slog.String("error", err.Error()), slog.String("mandate_id", mandateID), slog.String("action", action))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " mandate"})
		}
	}
}

// requestMandate godoc
// @Summary Request a mandate
// @Description Moves a draft mandate to the requested state
// @Tags mandates
// @Produce  json
// @Param   mandateID path string true "Mandate ID"
// @Success 200 {object} dto.MandateResponse "The mandate after the transition"
// @Failure 404 {object} map[string]string "Mandate not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Router /mandates/{mandateID}/request [post]
func (h *mandateHandler) requestMandate(c *gin.Context) {
	h.transition(c, "request", func(c *gin.Context, mandateID, userID string) error {
		mandate, err := h.mandateService.RequestMandate(c.Request.Context(), mandateID, userID)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, dto.ToMandateResponse(mandate))
		return nil
	})
}

// recallMandate godoc
// @Summary Recall a mandate
// @Description Moves a requested mandate back to draft
// @Tags mandates
// @Produce  json
// @Param   mandateID path string true "Mandate ID"
// @Success 200 {object} dto.MandateResponse "The mandate after the transition"
// @Failure 404 {object} map[string]string "Mandate not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Router /mandates/{mandateID}/recall [post]
func (h *mandateHandler) recallMandate(c *gin.Context) {
	h.transition(c, "recall", func(c *gin.Context, mandateID, userID string) error {
		mandate, err := h.mandateService.RecallMandate(c.Request.Context(), mandateID, userID)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, dto.ToMandateResponse(mandate))
		return nil
	})
}

// validateMandate godoc
// @Summary Validate a mandate
// @Description Moves a requested mandate to validated; the account number, identification and signature date become mandatory
// @Tags mandates
// @Produce  json
// @Param   mandateID path string true "Mandate ID"
// @Success 200 {object} dto.MandateResponse "The mandate after the transition"
// @Failure 400 {object} map[string]string "Missing mandatory fields"
// @Failure 404 {object} map[string]string "Mandate not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Router /mandates/{mandateID}/validate [post]
func (h *mandateHandler) validateMandate(c *gin.Context) {
	h.transition(c, "validate", func(c *gin.Context, mandateID, userID string) error {
		mandate, err := h.mandateService.ValidateMandate(c.Request.Context(), mandateID, userID)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, dto.ToMandateResponse(mandate))
		return nil
	})
}

// cancelMandate godoc
// @Summary Cancel a mandate
// @Description Moves a requested or validated mandate to canceled
// @Tags mandates
// @Produce  json
// @Param   mandateID path string true "Mandate ID"
// @Success 200 {object} dto.MandateResponse "The mandate after the transition"
// @Failure 404 {object} map[string]string "Mandate not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Router /mandates/{mandateID}/cancel [post]
func (h *mandateHandler) cancelMandate(c *gin.Context) {
	h.transition(c, "cancel", func(c *gin.Context, mandateID, userID string) error {
		mandate, err := h.mandateService.CancelMandate(c.Request.Context(), mandateID, userID)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, dto.ToMandateResponse(mandate))
		return nil
	})
}

// deleteMandate godoc
// @Summary Delete a mandate
// @Description Deletes a mandate; only draft and canceled mandates may be deleted
// @Tags mandates
// @Produce  json
// @Param   mandateID path string true "Mandate ID"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Mandate not deletable in its current state"
// @Failure 404 {object} map[string]string "Mandate not found"
// @Failure 409 {object} map[string]string "Mandate is referenced by payments"
// @Router /mandates/{mandateID} [delete]
func (h *mandateHandler) deleteMandate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	mandateID := c.Param("mandateID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.mandateService.DeleteMandate(c.Request.Context(), mandateID, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Mandate not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Mandate not deletable", slog.String("mandate_id", mandateID), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete mandate", slog.String("error", err.Error()), slog.String("mandate_id", mandateID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete mandate"})
		}
		return
	}

	logger.Info("Mandate deleted", slog.String("mandate_id", mandateID))
	c.Status(http.StatusNoContent)
}

// registerMandateRoutes registers mandate specific routes
func registerMandateRoutes(group *gin.RouterGroup, mandateService portssvc.MandateSvcFacade) {
	h := newMandateHandler(mandateService)

	mandates := group.Group("/mandates")
	{
		mandates.POST("", h.createMandate)
		mandates.GET("/:mandateID", h.getMandate)
		mandates.PUT("/:mandateID", h.updateMandate)
		mandates.DELETE("/:mandateID", h.deleteMandate)
		mandates.POST("/:mandateID/request", h.requestMandate)
		mandates.POST("/:mandateID/recall", h.recallMandate)
		mandates.POST("/:mandateID/validate", h.validateMandate)
		mandates.POST("/:mandateID/cancel", h.cancelMandate)
	}

	group.GET("/parties/:partyID/mandates", h.listMandates)
}

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbase/sepa_payments_app/internal/apperrors"
	portssvc "github.com/finbase/sepa_payments_app/internal/core/ports/services"
	"github.com/finbase/sepa_payments_app/internal/dto"
	"github.com/finbase/sepa_payments_app/internal/middleware"
)

// groupHandler handles HTTP requests related to payment groups.
type groupHandler struct {
	groupService portssvc.GroupSvcFacade
}

// newGroupHandler creates a new groupHandler.
func newGroupHandler(groupService portssvc.GroupSvcFacade) *groupHandler {
	return &groupHandler{
		groupService: groupService,
	}
}

// createGroup godoc
// @Summary Create a payment group
// @Description Assembles payments of one journal and direction into a new batch
// @Tags groups
// @Accept  json
// @Produce  json
// @Param   group body dto.CreateGroupRequest true "Group"
// @Success 201 {object} dto.GroupResponse "The created group"
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 409 {object} map[string]string "A payment is already grouped"
// @Router /groups [post]
func (h *groupHandler) createGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateGroupRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createGroup", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), createReq, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Validation error creating group", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create group", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		}
		return
	}

	logger.Info("Group created successfully", slog.String("group_id", group.GroupID))
	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

// getGroup godoc
// @Summary Get a payment group
// @Description Retrieves a group by ID; the message body is served by the file endpoint
// @Tags groups
// @Produce  json
// @Param   groupID path string true "Group ID"
// @Success 200 {object} dto.GroupResponse "The group"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{groupID} [get]
func (h *groupHandler) getGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	group, err := h.groupService.GetGroupByID(c.Request.Context(), groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		logger.Error("Failed to get group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve group"})
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// processGroup godoc
// @Summary Process a payment group
// @Description Assigns mandates to receivable payments, renders the journal's SEPA flavor and stores the message
// @Tags groups
// @Produce  json
// @Param   groupID path string true "Group ID"
// @Success 200 {object} dto.GroupResponse "The processed group"
// @Failure 400 {object} map[string]string "A payment has no valid mandate"
// @Failure 404 {object} map[string]string "Group not found"
// @Failure 500 {object} map[string]string "No SEPA flavor configured or processing failed"
// @Router /groups/{groupID}/process [post]
func (h *groupHandler) processGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	group, err := h.groupService.ProcessGroup(c.Request.Context(), groupID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Group cannot be processed", slog.String("group_id", groupID), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnimplemented):
			// Configuration hole, nothing the caller can fix in the request.
			logger.Error("Group processing unconfigured", slog.String("group_id", groupID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process group", slog.String("error", err.Error()), slog.String("group_id", groupID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process group"})
		}
		return
	}

	logger.Info("Group processed successfully", slog.String("group_id", groupID))
	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// listGroups godoc
// @Summary List a journal's payment groups
// @Description Lists a journal's groups, token-paginated
// @Tags groups
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListGroupsResponse "A page of groups"
// @Router /journals/{journalID}/groups [get]
func (h *groupHandler) listGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	params := dto.ListGroupsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	res, err := h.groupService.ListGroupsByJournal(c.Request.Context(), journalID, params)
	if err != nil {
		logger.Error("Failed to list groups", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list groups"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// listGroupPayments godoc
// @Summary List a group's payments
// @Description Lists the group's payments in their batch order
// @Tags groups
// @Produce  json
// @Param   groupID path string true "Group ID"
// @Success 200 {array} dto.PaymentResponse "The group's payments"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{groupID}/payments [get]
func (h *groupHandler) listGroupPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	payments, err := h.groupService.ListGroupPayments(c.Request.Context(), groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		logger.Error("Failed to list group payments", slog.String("error", err.Error()), slog.String("group_id", groupID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list group payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// getGroupFile godoc
// @Summary Download a group's generated file
// @Description Serves the generated SEPA XML as a file attachment
// @Tags groups
// @Produce  application/xml
// @Param   groupID path string true "Group ID"
// @Success 200 {file} file "The generated XML"
// @Failure 404 {object} map[string]string "Group not found or no message generated yet"
// @Router /groups/{groupID}/file [get]
func (h *groupHandler) getGroupFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groupID := c.Param("groupID")

	filename, data, err := h.groupService.GetGroupFile(c.Request.Context(), groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get group file", slog.String("error", err.Error()), slog.String("group_id", groupID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve group file"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/xml; charset=utf-8", data)
}

// registerGroupRoutes registers payment group specific routes
func registerGroupRoutes(group *gin.RouterGroup, groupService portssvc.GroupSvcFacade) {
	h := newGroupHandler(groupService)

	groups := group.Group("/groups")
	{
		groups.POST("", h.createGroup)
		groups.GET("/:groupID", h.getGroup)
		groups.POST("/:groupID/process", h.processGroup)
		groups.GET("/:groupID/payments", h.listGroupPayments)
		groups.GET("/:groupID/file", h.getGroupFile)
	}

	group.GET("/journals/:journalID/groups", h.listGroups)
}

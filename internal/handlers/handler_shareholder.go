package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
	"github.com/SscSPs/equity_management_app/internal/dto"
	"github.com/SscSPs/equity_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shareholderHandler handles HTTP requests related to shareholders.
type shareholderHandler struct {
	shareholderService portssvc.ShareholderSvcFacade
}

func newShareholderHandler(ss portssvc.ShareholderSvcFacade) *shareholderHandler {
	return &shareholderHandler{shareholderService: ss}
}

// registerShareholderRoutes registers shareholder routes under a company group and
// returns the per-shareholder group.
func registerShareholderRoutes(company *gin.RouterGroup, shareholderService portssvc.ShareholderSvcFacade) *gin.RouterGroup {
	h := newShareholderHandler(shareholderService)

	shareholders := company.Group("/shareholders")
	{
		shareholders.POST("", h.createShareholder)
		shareholders.GET("", h.listShareholders)
	}

	shareholder := company.Group("/shareholders/:shareholder_id")
	shareholder.GET("", h.getShareholder)
	return shareholder
}

// createShareholder godoc
// @Summary Register a shareholder
// @Tags shareholders
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   shareholder body dto.CreateShareholderRequest true "Shareholder details"
// @Success 201 {object} dto.ShareholderResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 403 {object} errorResponse "Forbidden"
// @Security BearerAuth
// @Router /companies/{company_id}/shareholders [post]
func (h *shareholderHandler) createShareholder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var req dto.CreateShareholderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	shareholder, err := h.shareholderService.CreateShareholder(c.Request.Context(), companyID, userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create shareholder")
		return
	}

	logger.Info("Shareholder created successfully", slog.String("shareholder_id", shareholder.ShareholderID))
	c.JSON(http.StatusCreated, dto.ToShareholderResponse(shareholder))
}

// getShareholder godoc
// @Summary Get a shareholder
// @Tags shareholders
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   shareholder_id path string true "Shareholder ID"
// @Success 200 {object} dto.ShareholderResponse
// @Failure 404 {object} errorResponse "Shareholder not found"
// @Security BearerAuth
// @Router /companies/{company_id}/shareholders/{shareholder_id} [get]
func (h *shareholderHandler) getShareholder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, shareholderID := c.Param("company_id"), c.Param("shareholder_id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	shareholder, err := h.shareholderService.GetShareholder(c.Request.Context(), companyID, shareholderID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("shareholder_id", shareholderID)), err, "Failed to get shareholder")
		return
	}
	c.JSON(http.StatusOK, dto.ToShareholderResponse(shareholder))
}

// listShareholders godoc
// @Summary List shareholders
// @Tags shareholders
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListShareholdersResponse
// @Security BearerAuth
// @Router /companies/{company_id}/shareholders [get]
func (h *shareholderHandler) listShareholders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var params dto.ListShareholdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	shareholders, err := h.shareholderService.ListShareholders(c.Request.Context(), companyID, userID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to list shareholders")
		return
	}

	logger.Info("Shareholders listed successfully", slog.Int("count", len(shareholders)))
	c.JSON(http.StatusOK, dto.ToListShareholdersResponse(shareholders))
}

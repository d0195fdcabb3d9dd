package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
	"github.com/SscSPs/equity_management_app/internal/dto"
	"github.com/SscSPs/equity_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// equityHandler handles the share register, holdings, issuances, transfers and buybacks of a company.
type equityHandler struct {
	equityService portssvc.EquitySvcFacade
}

func newEquityHandler(es portssvc.EquitySvcFacade) *equityHandler {
	return &equityHandler{equityService: es}
}

// registerEquityRoutes registers equity routes under a company group and a shareholder group.
func registerEquityRoutes(company, shareholder *gin.RouterGroup, equityService portssvc.EquitySvcFacade) {
	h := newEquityHandler(equityService)

	shareConfig := company.Group("/share-configuration")
	{
		shareConfig.GET("", h.getShareConfiguration)
		shareConfig.POST("", h.setupShareConfiguration)
		shareConfig.PUT("", h.updateShareConfiguration)
	}

	company.GET("/cap-table", h.getCapTable)
	company.POST("/allocations", h.allocateShares)

	shareholder.GET("/holding", h.getShareholding)
	shareholder.GET("/vesting", h.getVesting)

	issuances := company.Group("/issuances")
	{
		issuances.POST("", h.proposeIssuance)
		issuances.GET("", h.listIssuances)
		issuances.GET("/:issuance_id", h.getIssuance)
		issuances.POST("/:issuance_id/execute", h.executeIssuance)
		issuances.POST("/:issuance_id/reject", h.rejectIssuance)
	}

	transfers := company.Group("/transfers")
	{
		transfers.POST("", h.transferShares)
		transfers.GET("", h.listTransfers)
	}

	company.POST("/buybacks", h.buybackShares)
}

// currencyOf returns the register currency used to format money in responses.
// Formatting is best effort: without a readable configuration amounts are rendered plain.
func (h *equityHandler) currencyOf(c *gin.Context, companyID, userID string) string {
	cfg, err := h.equityService.GetShareConfiguration(c.Request.Context(), companyID, userID)
	if err != nil {
		return ""
	}
	return cfg.CurrencyCode
}

// getShareConfiguration godoc
// @Summary Get the share configuration
// @Tags share-configuration
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.ShareConfigurationResponse
// @Failure 404 {object} errorResponse "No share configuration"
// @Security BearerAuth
// @Router /companies/{company_id}/share-configuration [get]
func (h *equityHandler) getShareConfiguration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cfg, err := h.equityService.GetShareConfiguration(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to get share configuration")
		return
	}
	c.JSON(http.StatusOK, dto.ToShareConfigurationResponse(cfg))
}

// setupShareConfiguration godoc
// @Summary Set up the share configuration
// @Description Creates the authorized/issued share register of a company. Requires authorized >= issued > 0.
// @Tags share-configuration
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   configuration body dto.SetupShareConfigurationRequest true "Share configuration"
// @Success 201 {object} dto.ShareConfigurationResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 409 {object} errorResponse "Configuration already exists"
// @Failure 422 {object} errorResponse "Invalid share configuration"
// @Security BearerAuth
// @Router /companies/{company_id}/share-configuration [post]
func (h *equityHandler) setupShareConfiguration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var req dto.SetupShareConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	logger.Info("Received request to set up share configuration",
		slog.Int64("authorized_shares", req.AuthorizedShares),
		slog.Int64("issued_shares", req.IssuedShares))

	cfg, err := h.equityService.SetupShareConfiguration(c.Request.Context(), companyID, userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to set up share configuration")
		return
	}
	c.JSON(http.StatusCreated, dto.ToShareConfigurationResponse(cfg))
}

// updateShareConfiguration godoc
// @Summary Update the share configuration
// @Tags share-configuration
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   configuration body dto.UpdateShareConfigurationRequest true "Fields to change"
// @Success 200 {object} dto.ShareConfigurationResponse
// @Failure 422 {object} errorResponse "Invalid share configuration"
// @Security BearerAuth
// @Router /companies/{company_id}/share-configuration [put]
func (h *equityHandler) updateShareConfiguration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var req dto.UpdateShareConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	cfg, err := h.equityService.UpdateShareConfiguration(c.Request.Context(), companyID, userID, req)
	if err != nil {
		respondError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to update share configuration")
		return
	}
	c.JSON(http.StatusOK, dto.ToShareConfigurationResponse(cfg))
}

// allocateShares godoc
// @Summary Allocate issued shares
// @Description Assigns already-issued, unallocated shares to a shareholder.
// @Tags holdings
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   allocation body dto.AllocateSharesRequest true "Allocation"
// @Success 201 {object} dto.ShareholdingResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 409 {object} errorResponse "Insufficient capacity"
// @Security BearerAuth
// @Router /companies/{company_id}/allocations [post]
func (h *equityHandler) allocateShares(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var req dto.AllocateSharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("shareholder_id", req.ShareholderID))
	logger.Info("Received request to allocate shares", slog.Int64("shares", req.Shares))

	holding, err := h.equityService.Allocate(c.Request.Context(), companyID, userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to allocate shares")
		return
	}

	logger.Info("Shares allocated successfully", slog.Int64("shares_owned", holding.SharesOwned))
	c.JSON(http.StatusCreated, dto.ToShareholdingResponse(holding, h.currencyOf(c, companyID, userID)))
}

// getCapTable godoc
// @Summary Get the cap table
// @Description Lists every active holding with ownership and value at the current price per share.
// @Tags holdings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.CapTableResponse
// @Security BearerAuth
// @Router /companies/{company_id}/cap-table [get]
func (h *equityHandler) getCapTable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	table, err := h.equityService.GetCapTable(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to get cap table")
		return
	}
	c.JSON(http.StatusOK, dto.ToCapTableResponse(table))
}

// getShareholding godoc
// @Summary Get a shareholder's holding
// @Tags holdings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   shareholder_id path string true "Shareholder ID"
// @Success 200 {object} dto.ShareholdingResponse
// @Failure 404 {object} errorResponse "Holding not found"
// @Security BearerAuth
// @Router /companies/{company_id}/shareholders/{shareholder_id}/holding [get]
func (h *equityHandler) getShareholding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, shareholderID := c.Param("company_id"), c.Param("shareholder_id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	holding, err := h.equityService.GetShareholding(c.Request.Context(), companyID, shareholderID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("shareholder_id", shareholderID)), err, "Failed to get shareholding")
		return
	}
	c.JSON(http.StatusOK, dto.ToShareholdingResponse(holding, h.currencyOf(c, companyID, userID)))
}

// getVesting godoc
// @Summary Get vesting status
// @Description Vested and unvested shares of a holding at asOf (defaults to now).
// @Tags holdings
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   shareholder_id path string true "Shareholder ID"
// @Param   asOf query string false "RFC3339 timestamp"
// @Success 200 {object} dto.VestingStatusResponse
// @Security BearerAuth
// @Router /companies/{company_id}/shareholders/{shareholder_id}/vesting [get]
func (h *equityHandler) getVesting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, shareholderID := c.Param("company_id"), c.Param("shareholder_id")
	var params dto.GetVestingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if params.AsOf != nil {
		asOf = params.AsOf.UTC()
	}

	status, err := h.equityService.GetVesting(c.Request.Context(), companyID, shareholderID, userID, asOf)
	if err != nil {
		respondError(c, logger.With(slog.String("shareholder_id", shareholderID)), err, "Failed to get vesting status")
		return
	}
	c.JSON(http.StatusOK, dto.ToVestingStatusResponse(status))
}

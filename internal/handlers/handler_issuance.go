package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/equity_management_app/internal/dto"
	"github.com/SscSPs/equity_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// proposeIssuance godoc
// @Summary Propose a share issuance
// @Description Records a PENDING issuance with its dilution impact. Nothing changes until a second member executes it.
// @Tags issuances
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   issuance body dto.ProposeIssuanceRequest true "Issuance proposal"
// @Success 201 {object} dto.IssuanceResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 409 {object} errorResponse "Beyond authorized shares"
// @Security BearerAuth
// @Router /companies/{company_id}/issuances [post]
func (h *equityHandler) proposeIssuance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var req dto.ProposeIssuanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	proposerID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("recipient_id", req.RecipientID))
	logger.Info("Received request to propose issuance", slog.Int64("shares", req.Shares))

	issuance, err := h.equityService.ProposeIssuance(c.Request.Context(), companyID, proposerID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to propose issuance")
		return
	}

	logger.Info("Issuance proposed", slog.String("issuance_id", issuance.IssuanceID))
	c.JSON(http.StatusCreated, dto.ToIssuanceResponse(issuance))
}

// getIssuance godoc
// @Summary Get an issuance
// @Tags issuances
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   issuance_id path string true "Issuance ID"
// @Success 200 {object} dto.IssuanceResponse
// @Failure 404 {object} errorResponse "Issuance not found"
// @Security BearerAuth
// @Router /companies/{company_id}/issuances/{issuance_id} [get]
func (h *equityHandler) getIssuance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, issuanceID := c.Param("company_id"), c.Param("issuance_id")
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	issuance, err := h.equityService.GetIssuance(c.Request.Context(), companyID, issuanceID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("issuance_id", issuanceID)), err, "Failed to get issuance")
		return
	}
	c.JSON(http.StatusOK, dto.ToIssuanceResponse(issuance))
}

// listIssuances godoc
// @Summary List issuances
// @Tags issuances
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   status query string false "PENDING, APPROVED or REJECTED"
// @Param   recipientID query string false "Recipient shareholder ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListIssuancesResponse
// @Security BearerAuth
// @Router /companies/{company_id}/issuances [get]
func (h *equityHandler) listIssuances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var params dto.ListIssuancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	issuances, next, err := h.equityService.ListIssuances(c.Request.Context(), companyID, userID, params.ToFilter())
	if err != nil {
		respondError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to list issuances")
		return
	}
	c.JSON(http.StatusOK, dto.ToListIssuancesResponse(issuances, next))
}

// executeIssuance godoc
// @Summary Execute a pending issuance
// @Description Approves the issuance, raises issued shares and credits the recipient. The approver must differ from the proposer.
// @Tags issuances
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   issuance_id path string true "Issuance ID"
// @Success 200 {object} dto.ShareholdingResponse
// @Failure 403 {object} errorResponse "Proposer cannot approve"
// @Failure 409 {object} errorResponse "Already processed or beyond authorized shares"
// @Security BearerAuth
// @Router /companies/{company_id}/issuances/{issuance_id}/execute [post]
func (h *equityHandler) executeIssuance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, issuanceID := c.Param("company_id"), c.Param("issuance_id")
	approverID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("issuance_id", issuanceID))
	holding, err := h.equityService.ExecuteIssuance(c.Request.Context(), companyID, issuanceID, approverID)
	if err != nil {
		respondError(c, logger, err, "Failed to execute issuance")
		return
	}

	logger.Info("Issuance executed", slog.Int64("shares_owned", holding.SharesOwned))
	c.JSON(http.StatusOK, dto.ToShareholdingResponse(holding, h.currencyOf(c, companyID, approverID)))
}

// rejectIssuance godoc
// @Summary Reject a pending issuance
// @Tags issuances
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   issuance_id path string true "Issuance ID"
// @Param   rejection body dto.RejectIssuanceRequest true "Reason"
// @Success 200 {object} dto.IssuanceResponse
// @Failure 409 {object} errorResponse "Already processed"
// @Security BearerAuth
// @Router /companies/{company_id}/issuances/{issuance_id}/reject [post]
func (h *equityHandler) rejectIssuance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, issuanceID := c.Param("company_id"), c.Param("issuance_id")
	var req dto.RejectIssuanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	approverID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	issuance, err := h.equityService.RejectIssuance(c.Request.Context(), companyID, issuanceID, approverID, req.Reason)
	if err != nil {
		respondError(c, logger.With(slog.String("issuance_id", issuanceID)), err, "Failed to reject issuance")
		return
	}
	c.JSON(http.StatusOK, dto.ToIssuanceResponse(issuance))
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/equity_management_app/internal/dto"
	"github.com/SscSPs/equity_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferShares godoc
// @Summary Transfer shares between holders
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   transfer body dto.TransferSharesRequest true "Transfer"
// @Success 201 {object} dto.TransferResultResponse
// @Failure 400 {object} errorResponse "Invalid input"
// @Failure 409 {object} errorResponse "Insufficient shares"
// @Security BearerAuth
// @Router /companies/{company_id}/transfers [post]
func (h *equityHandler) transferShares(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var req dto.TransferSharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(
		slog.String("company_id", companyID),
		slog.String("from_shareholder_id", req.FromShareholderID),
		slog.String("to_shareholder_id", req.ToShareholderID))
	logger.Info("Received request to transfer shares", slog.Int64("shares", req.Shares))

	result, err := h.equityService.Transfer(c.Request.Context(), companyID, userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to transfer shares")
		return
	}

	logger.Info("Shares transferred", slog.String("transfer_id", result.Transfer.TransferID))
	c.JSON(http.StatusCreated, dto.ToTransferResultResponse(result))
}

// listTransfers godoc
// @Summary List transfers
// @Tags transfers
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   shareholderID query string false "Either side of the transfer"
// @Param   transferType query string false "SALE, GIFT, INHERITANCE or OTHER"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransfersResponse
// @Security BearerAuth
// @Router /companies/{company_id}/transfers [get]
func (h *equityHandler) listTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var params dto.ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	transfers, next, err := h.equityService.ListTransfers(c.Request.Context(), companyID, userID, params.ToFilter())
	if err != nil {
		respondError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to list transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransfersResponse(transfers, next))
}

// buybackShares godoc
// @Summary Buy back and retire shares
// @Description Repurchases shares from a holder; they are retired and issued shares decrease.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   buyback body dto.BuybackSharesRequest true "Buyback"
// @Success 201 {object} dto.BuybackResponse
// @Failure 409 {object} errorResponse "Insufficient shares"
// @Failure 422 {object} errorResponse "Would retire every issued share"
// @Security BearerAuth
// @Router /companies/{company_id}/buybacks [post]
func (h *equityHandler) buybackShares(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var req dto.BuybackSharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("shareholder_id", req.ShareholderID))
	buyback, holding, err := h.equityService.Buyback(c.Request.Context(), companyID, userID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to buy back shares")
		return
	}

	logger.Info("Shares bought back", slog.String("buyback_id", buyback.BuybackID), slog.Int64("issued_after", buyback.IssuedSharesAfter))
	c.JSON(http.StatusCreated, dto.ToBuybackResponse(buyback, holding, h.currencyOf(c, companyID, userID)))
}

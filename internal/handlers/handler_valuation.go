package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/equity_management_app/internal/core/ports/services"
	"github.com/SscSPs/equity_management_app/internal/dto"
	"github.com/SscSPs/equity_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type valuationHandler struct {
	valuationService portssvc.ValuationSvcFacade
}

func registerValuationRoutes(company *gin.RouterGroup, valuationService portssvc.ValuationSvcFacade) {
	h := &valuationHandler{valuationService: valuationService}
	company.GET("/valuation", h.getValuation)
}

// getValuation godoc
// @Summary Get the company valuation
// @Description Net worth, strategic value and price per share. Served from a short-lived cache unless refresh=true.
// @Tags valuation
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   refresh query bool false "Bypass the cache"
// @Success 200 {object} dto.ValuationResponse
// @Failure 404 {object} errorResponse "Company not found"
// @Security BearerAuth
// @Router /companies/{company_id}/valuation [get]
func (h *valuationHandler) getValuation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	var params dto.GetValuationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	snapshot, err := h.valuationService.GetValuation(c.Request.Context(), companyID, userID, params.Refresh)
	if err != nil {
		respondError(c, logger.With(slog.String("company_id", companyID)), err, "Failed to compute valuation")
		return
	}

	logger.Debug("Valuation served", slog.Bool("from_cache", snapshot.FromCache))
	c.JSON(http.StatusOK, dto.ToValuationResponse(snapshot))
}

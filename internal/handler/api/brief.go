package api

import (
	"context"

	"github.com/labstack/echo/v4"

	"PortfolioPulse/internal/domain/models"
	xhttp "PortfolioPulse/pkg/http"
	"PortfolioPulse/pkg/http/middleware"
	xlogger "PortfolioPulse/pkg/logger"
)

type BriefGenerator interface {
	Generate(ctx context.Context, tickers []string, daysBack int) (*models.BriefResult, error)
}

type BriefHandler struct {
	logger *xlogger.Logger
	brief  BriefGenerator
	allow  middleware.AllowFunc
	days   int
}

// NewBriefHandler wires POST /brief. A nil allow disables throttling; daysBack applies when the body omits it.
func NewBriefHandler(logger *xlogger.Logger, brief BriefGenerator, allow middleware.AllowFunc, daysBack int) *BriefHandler {
	return &BriefHandler{logger: logger, brief: brief, allow: allow, days: daysBack}
}

func (h *BriefHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/brief", h.Brief, middleware.RateLimit(h.allow))
}

func (h *BriefHandler) Brief(c echo.Context) error {
	req := &models.BriefRequest{DaysBack: h.days}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}

	res, err := h.brief.Generate(c.Request().Context(), req.Tickers, req.DaysBack)
	if err != nil {
		h.logger.Error("brief usecase error", xlogger.Strings("tickers", req.Tickers), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

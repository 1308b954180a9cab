package api

import (
	"context"

	"github.com/labstack/echo/v4"

	"PortfolioPulse/internal/domain/models"
	xhttp "PortfolioPulse/pkg/http"
	xlogger "PortfolioPulse/pkg/logger"
)

type DashboardBuilder interface {
	Build(ctx context.Context) (*models.DashboardResult, error)
}

type DashboardHandler struct {
	logger    *xlogger.Logger
	dashboard DashboardBuilder
}

func NewDashboardHandler(logger *xlogger.Logger, dashboard DashboardBuilder) *DashboardHandler {
	return &DashboardHandler{logger: logger, dashboard: dashboard}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/dashboard", h.Dashboard)
}

// Dashboard returns 200 with partial data even when some assets failed.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	res, err := h.dashboard.Build(c.Request().Context())
	if err != nil {
		h.logger.Error("dashboard usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, res)
}

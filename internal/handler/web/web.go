// Package web serves the server-rendered dashboard and brief pages.
package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"PortfolioPulse/internal/domain/models"
	"PortfolioPulse/internal/presentation"
	"PortfolioPulse/internal/usecase"
	xhttp "PortfolioPulse/pkg/http"
	"PortfolioPulse/pkg/http/middleware"
	xlogger "PortfolioPulse/pkg/logger"
)

type DashboardBuilder interface {
	Build(ctx context.Context) (*models.DashboardResult, error)
}

type BriefGenerator interface {
	Generate(ctx context.Context, tickers []string, daysBack int) (*models.BriefResult, error)
}

type Handler struct {
	logger    *xlogger.Logger
	dashboard DashboardBuilder
	brief     BriefGenerator
	allow     middleware.AllowFunc
	daysBack  int
}

func NewHandler(logger *xlogger.Logger, dashboard DashboardBuilder, brief BriefGenerator, allow middleware.AllowFunc, daysBack int) *Handler {
	return &Handler{logger: logger, dashboard: dashboard, brief: brief, allow: allow, daysBack: daysBack}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Dashboard)
	e.GET("/brief/view", h.Brief, middleware.RateLimit(h.allow))
}

// Dashboard renders the grouped table. ?cluster= selects one strategy group.
func (h *Handler) Dashboard(c echo.Context) error {
	selected := c.QueryParam("cluster")

	res, err := h.dashboard.Build(c.Request().Context())
	if err != nil {
		h.logger.Error("dashboard page error", xlogger.Error(err))
		status, msg := pageError(err)
		return h.render(c, status, func(buf *bytes.Buffer) error {
			return presentation.RenderDashboard(buf, presentation.DashboardView{Selected: presentation.AllClusters, Error: msg})
		})
	}
	return h.render(c, http.StatusOK, func(buf *bytes.Buffer) error {
		return presentation.RenderDashboard(buf, presentation.BuildDashboardView(res, selected))
	})
}

// Brief renders a brief for ?tickers=A,B&daysBack=N. Without tickers it renders the empty form.
func (h *Handler) Brief(c echo.Context) error {
	view := presentation.BriefView{
		Tickers:  usecase.NormalizeTickers(xhttp.SplitCSV(c.QueryParam("tickers"))),
		DaysBack: xhttp.ParseIntDefault(c.QueryParam("daysBack"), h.daysBack),
	}
	if view.DaysBack < 1 || view.DaysBack > 30 {
		view.Error = "daysBack must be between 1 and 30"
		return h.render(c, http.StatusBadRequest, func(buf *bytes.Buffer) error {
			return presentation.RenderBriefPage(buf, view)
		})
	}
	if len(view.Tickers) == 0 {
		return h.render(c, http.StatusOK, func(buf *bytes.Buffer) error {
			return presentation.RenderBriefPage(buf, view)
		})
	}

	status := http.StatusOK
	res, err := h.brief.Generate(c.Request().Context(), view.Tickers, view.DaysBack)
	if err != nil {
		h.logger.Error("brief page error", xlogger.Strings("tickers", view.Tickers), xlogger.Error(err))
		status, view.Error = pageError(err)
	} else if view.HTML, err = presentation.RenderBrief(res.Brief); err != nil {
		h.logger.Error("brief markdown error", xlogger.Error(err))
		status, view.Error = http.StatusInternalServerError, "could not render brief"
	}
	return h.render(c, status, func(buf *bytes.Buffer) error {
		return presentation.RenderBriefPage(buf, view)
	})
}

func (h *Handler) render(c echo.Context, status int, fn func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		h.logger.Error("template render error", xlogger.Error(err))
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func pageError(err error) (int, string) {
	var cfgErr *models.ConfigError
	var sumErr *usecase.SummarizationError
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError, "Configuration error: " + cfgErr.Error()
	case errors.As(err, &sumErr):
		return http.StatusBadGateway, "Summarization failed: " + sumErr.Err.Error()
	case errors.Is(err, usecase.ErrNoTickers):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}

package api

import (
	"context"

	"github.com/labstack/echo/v4"

	"PortfolioPulse/internal/domain/models"
	xhttp "PortfolioPulse/pkg/http"
	xlogger "PortfolioPulse/pkg/logger"
)

type NewsFetcher interface {
	Fetch(ctx context.Context, tickers []string, daysBack, limit int) (*models.NewsBatch, error)
}

// NewsHandler serves the trimmed news list without summarization.
type NewsHandler struct {
	logger *xlogger.Logger
	news   NewsFetcher
	limit  int
	days   int
}

// NewNewsHandler serves at most limit items per ticker; daysBack applies when the query omits it.
func NewNewsHandler(logger *xlogger.Logger, news NewsFetcher, limit, daysBack int) *NewsHandler {
	return &NewsHandler{logger: logger, news: news, limit: limit, days: daysBack}
}

func (h *NewsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/news", h.News)
}

func (h *NewsHandler) News(c echo.Context) error {
	req := &models.NewsRequest{DaysBack: h.days}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}

	batch, err := h.news.Fetch(c.Request().Context(), xhttp.SplitCSV(req.Tickers), req.DaysBack, h.limit)
	if err != nil {
		h.logger.Error("news usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, batch)
}

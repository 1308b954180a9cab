package api

import (
	"errors"

	"PortfolioPulse/internal/domain/models"
	"PortfolioPulse/internal/usecase"
	xhttp "PortfolioPulse/pkg/http"
)

// toAppError maps usecase failures onto the HTTP error taxonomy.
func toAppError(err error) *xhttp.AppError {
	var cfgErr *models.ConfigError
	var sumErr *usecase.SummarizationError
	switch {
	case errors.As(err, &cfgErr):
		return xhttp.MissingConfigurationError(cfgErr.Error()).WithError(err)
	case errors.As(err, &sumErr):
		return xhttp.BadGatewayError(xhttp.CodeSummarizationFailed, sumErr.Err.Error()).WithError(err)
	case errors.Is(err, usecase.ErrNoTickers):
		return xhttp.BadRequestError(err.Error())
	default:
		return xhttp.InternalError("Something went wrong").WithError(err)
	}
}

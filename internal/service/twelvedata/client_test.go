package twelvedata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PortfolioPulse/internal/domain/models"
)

const sampleSeries = `{
  "meta": {"symbol": "ADBE", "interval": "1day", "currency": "USD"},
  "values": [
    {"datetime": "2025-01-03", "open": "410.0", "high": "415.5", "low": "405.25", "close": "412.10", "volume": "1000"},
    {"datetime": "2025-01-02", "open": "400.0", "high": "420.0", "low": "NaN", "close": "", "volume": "900"}
  ],
  "status": "ok"
}`

func TestTimeSeriesParsesValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/time_series", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "ADBE", q.Get("symbol"))
		assert.Equal(t, "1day", q.Get("interval"))
		assert.Equal(t, "260", q.Get("outputsize"))
		assert.Equal(t, "secret", q.Get("apikey"))
		_, _ = w.Write([]byte(sampleSeries))
	}))
	defer srv.Close()

	c := New("secret", srv.URL, 0)
	ts, err := c.TimeSeries(context.Background(), "ADBE")
	require.NoError(t, err)

	assert.Equal(t, "USD", ts.Currency)
	require.Len(t, ts.Points, 2)
	assert.Equal(t, "2025-01-03", ts.Points[0].Date)
	require.NotNil(t, ts.Points[0].Close)
	assert.InDelta(t, 412.10, *ts.Points[0].Close, 1e-9)
	assert.Nil(t, ts.Points[1].Low)
	assert.Nil(t, ts.Points[1].Close)
	require.NotNil(t, ts.Points[1].High)
	assert.InDelta(t, 420.0, *ts.Points[1].High, 1e-9)
}

func TestTimeSeriesErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":404,"message":"symbol not found","status":"error"}`))
	}))
	defer srv.Close()

	_, err := New("k", srv.URL, 260).TimeSeries(context.Background(), "NOPE")
	require.Error(t, err)

	var upErr *models.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "symbol not found", upErr.Message)
}

func TestTimeSeriesNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	_, err := New("k", srv.URL, 260).TimeSeries(context.Background(), "ADBE")
	var upErr *models.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "quote provider returned HTTP 502", upErr.Message)
	assert.Equal(t, http.StatusBadGateway, upErr.Status)
}

func TestTimeSeriesNon2xxWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New("k", srv.URL, 260).TimeSeries(context.Background(), "ADBE")
	var upErr *models.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "quote provider returned HTTP 429", upErr.Message)
}

func TestTimeSeriesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New("k", url, 260).TimeSeries(context.Background(), "ADBE")
	assert.Error(t, err)
}

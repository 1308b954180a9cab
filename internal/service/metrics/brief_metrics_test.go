package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})

	SummarizerErrors.WithLabelValues("claude").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(SummarizerErrors.WithLabelValues("claude")))
}

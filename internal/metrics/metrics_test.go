package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveParse(t *testing.T) {
	beforeRejected := testutil.ToFloat64(DecisionsParsed.WithLabelValues("REJECTED"))
	beforeNone := testutil.ToFloat64(DecisionsParsed.WithLabelValues("none"))
	beforeWarnings := testutil.ToFloat64(ParseWarnings)

	ObserveParse("REJECTED", 2, 3*time.Millisecond)
	ObserveParse("", 1, time.Millisecond)

	assert.Equal(t, beforeRejected+1, testutil.ToFloat64(DecisionsParsed.WithLabelValues("REJECTED")))
	assert.Equal(t, beforeNone+1, testutil.ToFloat64(DecisionsParsed.WithLabelValues("none")))
	assert.Equal(t, beforeWarnings+3, testutil.ToFloat64(ParseWarnings))
}

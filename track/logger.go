package track

import (
	"context"
	"reflect"
	"runtime"
	"strings"
)

// Logger is a destination for scalar telemetry. Implementations must be
// side-effect-only: the Tracker never inspects anything beyond the returned
// error, which is propagated to the caller verbatim. No retry policy is
// applied here; sinks that need one must bring their own.
type Logger interface {
	LogScalar(ctx context.Context, tag string, value float64, step int) error
}

// Metric computes a scalar score over flat ground-truth and prediction
// sequences of equal length.
type Metric func(y, pred []float64) float64

// metricName derives a tag for a metric that was registered without an
// explicit name, using the function's symbol name.
func metricName(m Metric) string {
	fn := runtime.FuncForPC(reflect.ValueOf(m).Pointer())
	if fn == nil {
		return "metric"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

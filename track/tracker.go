package track

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoLosses is returned by Summarize when no losses were tracked during the
// epoch; the mean of an empty buffer is undefined.
var ErrNoLosses = errors.New("no losses tracked this epoch")

// Config controls Tracker bookkeeping.
//   - LogEvery: cadence, in updates, for emitting per-batch loss (0 disables).
//   - Metrics: optional metric functions computed by ComputeMetrics.
//   - MetricNames: optional labels parallel to Metrics; when empty the metric
//     function names are used.
//   - PreTag: optional prefix prepended to every emitted tag as "pretag.name".
type Config struct {
	LogEvery    int
	Metrics     []Metric
	MetricNames []string
	PreTag      string
}

// Tracker accumulates per-batch losses for the current epoch and fans scalar
// telemetry out to its loggers. It is single-caller: construct one per
// training run (or per phase) and do not share it across goroutines.
type Tracker struct {
	loggers     []Logger
	logEvery    int
	metrics     []Metric
	metricNames []string
	preTag      string

	epoch  int
	update int
	losses []float64
}

// New validates cfg and builds a Tracker over the provided loggers. The
// logger list is fixed for the lifetime of the Tracker.
func New(cfg Config, loggers ...Logger) (*Tracker, error) {
	if cfg.LogEvery < 0 {
		return nil, fmt.Errorf("log_every must be >= 0, got %d", cfg.LogEvery)
	}
	if len(cfg.MetricNames) > 0 && len(cfg.MetricNames) != len(cfg.Metrics) {
		return nil, fmt.Errorf(
			"metric names (%d) do not match metrics (%d)",
			len(cfg.MetricNames), len(cfg.Metrics),
		)
	}
	names := cfg.MetricNames
	if len(names) == 0 {
		names = make([]string, len(cfg.Metrics))
		for i, m := range cfg.Metrics {
			names[i] = metricName(m)
		}
	}
	return &Tracker{
		loggers:     append([]Logger(nil), loggers...),
		logEvery:    cfg.LogEvery,
		metrics:     cfg.Metrics,
		metricNames: names,
		preTag:      cfg.PreTag,
	}, nil
}

// Epoch returns the number of completed Summarize calls.
func (t *Tracker) Epoch() int { return t.epoch }

// Update returns the number of optimization steps tracked after epoch 0.
func (t *Tracker) Update() int { return t.update }

func (t *Tracker) pre(tag string) string {
	if t.preTag == "" {
		return tag
	}
	return t.preTag + "." + tag
}

// TrackLoss records one batch loss. When the update counter is a positive
// multiple of the cadence, the loss is also emitted to every logger at
// step=update. Epoch 0 is reserved for measuring baseline performance, so the
// update counter stays frozen until the first Summarize; cadence gating
// therefore evaluates the stale counter during epoch 0. A logger failure
// aborts the call and the loss is not buffered.
func (t *Tracker) TrackLoss(ctx context.Context, loss float64) error {
	if t.epoch > 0 {
		t.update++
	}
	if t.logEvery > 0 && t.update%t.logEvery == 0 && t.update != 0 {
		for _, l := range t.loggers {
			if err := l.LogScalar(ctx, t.pre("loss"), loss, t.update); err != nil {
				return fmt.Errorf("log loss: %w", err)
			}
		}
	}
	t.losses = append(t.losses, loss)
	return nil
}

// Summarize closes out the epoch: it returns the arithmetic mean of the
// buffered losses, clears the buffer, emits "avg_loss" to every logger at
// step=epoch, and increments the epoch counter. Calling it with an empty
// buffer returns ErrNoLosses.
func (t *Tracker) Summarize(ctx context.Context) (float64, error) {
	if len(t.losses) == 0 {
		return 0, ErrNoLosses
	}
	var sum float64
	for _, loss := range t.losses {
		sum += loss
	}
	avg := sum / float64(len(t.losses))
	t.losses = t.losses[:0]

	for _, l := range t.loggers {
		if err := l.LogScalar(ctx, t.pre("avg_loss"), avg, t.epoch); err != nil {
			return 0, fmt.Errorf("log avg_loss: %w", err)
		}
	}
	t.epoch++
	return avg, nil
}

// ComputeMetrics evaluates every configured metric on the flat ground-truth
// and prediction sequences and emits the results to every logger at
// step=epoch. It is a no-op when no metrics are configured, rejects
// mismatched lengths before emitting anything, and increments no counters.
func (t *Tracker) ComputeMetrics(ctx context.Context, y, pred []float64) error {
	if len(t.metrics) == 0 {
		return nil
	}
	if len(y) != len(pred) {
		return fmt.Errorf(
			"ground truth and predictions are not the same length: %d != %d",
			len(y), len(pred),
		)
	}
	for _, l := range t.loggers {
		for i, m := range t.metrics {
			if err := l.LogScalar(ctx, t.pre(t.metricNames[i]), m(y, pred), t.epoch); err != nil {
				return fmt.Errorf("log metric %s: %w", t.metricNames[i], err)
			}
		}
	}
	return nil
}

package train_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradsignal/traintrack/track"
	"github.com/gradsignal/traintrack/track/metrics"
	"github.com/gradsignal/traintrack/train"
)

type scalarCall struct {
	tag   string
	value float64
	step  int
}

// recordingLogger captures every emission for assertions.
type recordingLogger struct {
	calls []scalarCall
}

func (r *recordingLogger) LogScalar(_ context.Context, tag string, value float64, step int) error {
	r.calls = append(r.calls, scalarCall{tag: tag, value: value, step: step})
	return nil
}

func (r *recordingLogger) tagged(tag string) []scalarCall {
	var out []scalarCall
	for _, c := range r.calls {
		if c.tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// separable returns a linearly separable 1-feature dataset.
func separable(n int) ([][]float64, []float64) {
	inputs := make([][]float64, n)
	targets := make([]float64, n)
	for i := range inputs {
		if i%2 == 0 {
			inputs[i] = []float64{1.5}
			targets[i] = 1
		} else {
			inputs[i] = []float64{-1.5}
			targets[i] = 0
		}
	}
	return inputs, targets
}

func TestEvaluateReturnsAllPredictions(t *testing.T) {
	t.Parallel()

	inputs, targets := separable(12)
	src, err := train.NewSliceSource(inputs, targets, 4)
	require.NoError(t, err)
	require.Equal(t, 3, src.Len())

	model, err := train.NewLinearModel(1, 7)
	require.NoError(t, err)

	sink := &recordingLogger{}
	tracker, err := track.New(track.Config{}, sink)
	require.NoError(t, err)

	avg, preds, err := train.Evaluate(context.Background(), model, src, train.BCEWithLogits{}, tracker)
	require.NoError(t, err)

	assert.Len(t, preds, 12, "one prediction per sample across all batches")
	for _, p := range preds {
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
	}
	assert.Greater(t, avg, 0.0)
	assert.Equal(t, 1, tracker.Epoch(), "Evaluate closes the epoch")
	assert.Len(t, sink.tagged("avg_loss"), 1)
}

func TestEvaluateComputesConfiguredMetrics(t *testing.T) {
	t.Parallel()

	inputs, targets := separable(8)
	src, err := train.NewSliceSource(inputs, targets, 4)
	require.NoError(t, err)

	model, err := train.NewLinearModel(1, 3)
	require.NoError(t, err)

	sink := &recordingLogger{}
	tracker, err := track.New(track.Config{
		Metrics:     []track.Metric{metrics.Accuracy, metrics.BrierScore},
		MetricNames: []string{"accuracy", "brier"},
		PreTag:      "valid",
	}, sink)
	require.NoError(t, err)

	_, _, err = train.Evaluate(context.Background(), model, src, train.BCEWithLogits{}, tracker)
	require.NoError(t, err)

	acc := sink.tagged("valid.accuracy")
	require.Len(t, acc, 1)
	assert.Equal(t, 0, acc[0].step, "metrics are stamped with the epoch being closed")
	require.Len(t, sink.tagged("valid.brier"), 1)
}

func TestEvaluateEmptySourceFails(t *testing.T) {
	t.Parallel()

	src, err := train.NewSliceSource(nil, nil, 4)
	require.NoError(t, err)

	model, err := train.NewLinearModel(1, 1)
	require.NoError(t, err)

	tracker, err := track.New(track.Config{})
	require.NoError(t, err)

	_, _, err = train.Evaluate(context.Background(), model, src, train.BCEWithLogits{}, tracker)
	require.ErrorIs(t, err, track.ErrNoLosses)
}

func TestUpdateLeavesGradientsZeroed(t *testing.T) {
	t.Parallel()

	inputs, targets := separable(8)
	src, err := train.NewSliceSource(inputs, targets, 2)
	require.NoError(t, err)

	model, err := train.NewLinearModel(1, 11)
	require.NoError(t, err)
	opt, err := train.NewSGD(model, 0.1)
	require.NoError(t, err)

	tracker, err := track.New(track.Config{})
	require.NoError(t, err)

	avg, err := train.Update(context.Background(), model, src, train.BCEWithLogits{}, opt, tracker)
	require.NoError(t, err)
	assert.Greater(t, avg, 0.0)

	gradW, gradB := model.Grads()
	for _, g := range gradW {
		assert.Zero(t, g)
	}
	assert.Zero(t, gradB)
}

func TestUpdateReducesLoss(t *testing.T) {
	t.Parallel()

	inputs, targets := separable(16)
	src, err := train.NewSliceSource(inputs, targets, 4)
	require.NoError(t, err)

	model, err := train.NewLinearModel(1, 5)
	require.NoError(t, err)
	opt, err := train.NewSGD(model, 0.5)
	require.NoError(t, err)

	tracker, err := track.New(track.Config{})
	require.NoError(t, err)

	ctx := context.Background()
	first, err := train.Update(ctx, model, src, train.BCEWithLogits{}, opt, tracker)
	require.NoError(t, err)

	var last float64
	for epoch := 0; epoch < 30; epoch++ {
		last, err = train.Update(ctx, model, src, train.BCEWithLogits{}, opt, tracker)
		require.NoError(t, err)
	}
	assert.Less(t, last, first, "loss must decrease on separable data")
}

func TestUpdateHonorsContext(t *testing.T) {
	t.Parallel()

	inputs, targets := separable(4)
	src, err := train.NewSliceSource(inputs, targets, 2)
	require.NoError(t, err)

	model, err := train.NewLinearModel(1, 1)
	require.NoError(t, err)
	opt, err := train.NewSGD(model, 0.1)
	require.NoError(t, err)

	tracker, err := track.New(track.Config{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = train.Update(ctx, model, src, train.BCEWithLogits{}, opt, tracker)
	require.ErrorIs(t, err, context.Canceled)
}

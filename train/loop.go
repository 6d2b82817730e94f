package train

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gradsignal/traintrack/track"
)

// step carries the per-batch results yielded by the forward stream.
type step struct {
	batch   Batch
	outputs []float64
	loss    float64
}

// forwardStream lazily runs batches through the model and scores them. One
// stream serves exactly one pass; build a fresh one per driver call.
type forwardStream struct {
	model   Model
	loss    Loss
	batches BatchIter
}

func newForwardStream(model Model, data DataSource, loss Loss) *forwardStream {
	return &forwardStream{model: model, loss: loss, batches: data.Batches()}
}

// next yields the following (batch, outputs, loss) triple, or io.EOF once the
// pass is exhausted.
func (f *forwardStream) next(ctx context.Context) (step, error) {
	batch, err := f.batches.Next(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return step{}, io.EOF
		}
		return step{}, fmt.Errorf("next batch: %w", err)
	}
	outputs, err := f.model.Forward(batch.Inputs)
	if err != nil {
		return step{}, fmt.Errorf("forward pass: %w", err)
	}
	return step{
		batch:   batch,
		outputs: outputs,
		loss:    f.loss.Loss(outputs, batch.Targets),
	}, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Evaluate drives one inference pass: the model is put in eval mode, every
// batch loss is tracked, and flat ground-truth and sigmoid-activated
// prediction sequences are accumulated. It then computes the tracker's
// metrics over the full pass and closes the epoch, returning the average loss
// and the predictions.
func Evaluate(
	ctx context.Context,
	model Model,
	data DataSource,
	loss Loss,
	tracker *track.Tracker,
) (float64, []float64, error) {
	model.Eval()

	var y []float64
	var preds []float64

	stream := newForwardStream(model, data, loss)
	for {
		st, err := stream.next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, nil, err
		}
		if err := tracker.TrackLoss(ctx, st.loss); err != nil {
			return 0, nil, err
		}
		y = append(y, st.batch.Targets...)
		for _, logit := range st.outputs {
			preds = append(preds, sigmoid(logit))
		}
	}

	if err := tracker.ComputeMetrics(ctx, y, preds); err != nil {
		return 0, nil, err
	}
	avg, err := tracker.Summarize(ctx)
	if err != nil {
		return 0, nil, err
	}
	return avg, preds, nil
}

// Update drives one training pass: for every batch it backpropagates the loss
// gradient, applies an optimizer step, tracks the loss, and clears the
// gradients. The gradients are therefore zeroed when Update returns. It
// closes the epoch and returns the average loss.
func Update(
	ctx context.Context,
	model Backprop,
	data DataSource,
	loss Loss,
	opt Optimizer,
	tracker *track.Tracker,
) (float64, error) {
	model.Train()
	opt.ZeroGrad()

	stream := newForwardStream(model, data, loss)
	for {
		st, err := stream.next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		if err := model.Backward(loss.Grad(st.outputs, st.batch.Targets)); err != nil {
			return 0, fmt.Errorf("backward pass: %w", err)
		}
		if err := opt.Step(); err != nil {
			return 0, fmt.Errorf("optimizer step: %w", err)
		}
		if err := tracker.TrackLoss(ctx, st.loss); err != nil {
			return 0, err
		}
		opt.ZeroGrad()
	}

	return tracker.Summarize(ctx)
}

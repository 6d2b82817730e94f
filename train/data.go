package train

import (
	"context"
	"fmt"
	"io"
)

// Batch is one mini-batch of samples: a row of inputs per sample and a flat
// target per sample.
type Batch struct {
	Inputs  [][]float64
	Targets []float64
}

// BatchIter is a single-pass iterator over batches. Next returns io.EOF once
// the pass is exhausted; iterators are not restartable.
type BatchIter interface {
	Next(ctx context.Context) (Batch, error)
}

// DataSource produces a fresh single-pass iterator per epoch.
type DataSource interface {
	// Batches starts a new pass over the data.
	Batches() BatchIter
	// Len returns the number of batches in one pass.
	Len() int
}

// SliceSource is an in-memory DataSource over parallel input/target slices.
type SliceSource struct {
	inputs    [][]float64
	targets   []float64
	batchSize int
}

// NewSliceSource validates the slices and returns a source that yields
// batches of up to batchSize samples in order.
func NewSliceSource(inputs [][]float64, targets []float64, batchSize int) (*SliceSource, error) {
	if len(inputs) != len(targets) {
		return nil, fmt.Errorf("inputs (%d) and targets (%d) are not the same length", len(inputs), len(targets))
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be > 0, got %d", batchSize)
	}
	return &SliceSource{inputs: inputs, targets: targets, batchSize: batchSize}, nil
}

// Len returns the number of batches per pass, counting a short tail batch.
func (s *SliceSource) Len() int {
	return (len(s.inputs) + s.batchSize - 1) / s.batchSize
}

// Batches starts a new pass.
func (s *SliceSource) Batches() BatchIter {
	return &sliceIter{src: s}
}

type sliceIter struct {
	src *SliceSource
	pos int
}

func (it *sliceIter) Next(ctx context.Context) (Batch, error) {
	if err := ctx.Err(); err != nil {
		return Batch{}, err
	}
	if it.pos >= len(it.src.inputs) {
		return Batch{}, io.EOF
	}
	end := it.pos + it.src.batchSize
	if end > len(it.src.inputs) {
		end = len(it.src.inputs)
	}
	batch := Batch{
		Inputs:  it.src.inputs[it.pos:end],
		Targets: it.src.targets[it.pos:end],
	}
	it.pos = end
	return batch, nil
}

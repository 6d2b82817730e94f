package train

import "math"

// BCEWithLogits is binary cross-entropy evaluated directly on logits, using
// the numerically stable max(x,0) - x*t + log(1+exp(-|x|)) form.
type BCEWithLogits struct{}

// Loss returns the mean binary cross-entropy over the batch.
func (BCEWithLogits) Loss(outputs, targets []float64) float64 {
	if len(outputs) == 0 {
		return 0
	}
	var sum float64
	for i, x := range outputs {
		t := targets[i]
		sum += math.Max(x, 0) - x*t + math.Log1p(math.Exp(-math.Abs(x)))
	}
	return sum / float64(len(outputs))
}

// Grad returns dLoss/dLogit per sample: (sigmoid(x) - t) / n.
func (BCEWithLogits) Grad(outputs, targets []float64) []float64 {
	grad := make([]float64, len(outputs))
	n := float64(len(outputs))
	for i, x := range outputs {
		grad[i] = (sigmoid(x) - targets[i]) / n
	}
	return grad
}

// Package metrics provides stock evaluation metrics for binary-output models.
// Every function matches the track.Metric signature: it scores a flat
// ground-truth sequence against an equally long prediction sequence, where
// predictions are post-activation values in [0, 1].
package metrics

import "math"

// DecisionThreshold converts a probability into a hard class label.
const DecisionThreshold = 0.5

// Accuracy returns the fraction of predictions whose thresholded label
// matches the ground truth.
func Accuracy(y, pred []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var correct int
	for i := range y {
		label := 0.0
		if pred[i] >= DecisionThreshold {
			label = 1.0
		}
		if label == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y))
}

// MeanAbsoluteError returns the mean of |y - pred|.
func MeanAbsoluteError(y, pred []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var sum float64
	for i := range y {
		sum += math.Abs(y[i] - pred[i])
	}
	return sum / float64(len(y))
}

// RootMeanSquaredError returns sqrt(mean((y - pred)^2)).
func RootMeanSquaredError(y, pred []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var sum float64
	for i := range y {
		d := y[i] - pred[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(y)))
}

// BrierScore returns the mean squared error of probabilistic predictions
// against binary outcomes. Lower is better; 0 is a perfect forecast.
func BrierScore(y, pred []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var sum float64
	for i := range y {
		d := pred[i] - y[i]
		sum += d * d
	}
	return sum / float64(len(y))
}

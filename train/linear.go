package train

import (
	"fmt"
	"math/rand"
)

// LinearModel is a single-output linear model (logits = w·x + b) with manual
// gradient accumulation. Paired with BCEWithLogits it is a logistic
// regression; it exists as the reference Backprop implementation for the loop
// drivers and the demo binary.
type LinearModel struct {
	weights []float64
	bias    float64

	gradW []float64
	gradB float64

	lastInputs [][]float64
	training   bool
}

// NewLinearModel builds a model over the given feature count with small
// random initial weights drawn from the seeded source.
func NewLinearModel(features int, seed int64) (*LinearModel, error) {
	if features <= 0 {
		return nil, fmt.Errorf("feature count must be > 0, got %d", features)
	}
	rng := rand.New(rand.NewSource(seed))
	weights := make([]float64, features)
	for i := range weights {
		weights[i] = rng.NormFloat64() * 0.01
	}
	return &LinearModel{
		weights: weights,
		gradW:   make([]float64, features),
	}, nil
}

// Train enables gradient tracking: Forward starts caching activations.
func (m *LinearModel) Train() { m.training = true }

// Eval disables gradient tracking and drops any cached activations.
func (m *LinearModel) Eval() {
	m.training = false
	m.lastInputs = nil
}

// Forward returns one logit per sample. In training mode the inputs are
// cached for the next Backward call.
func (m *LinearModel) Forward(inputs [][]float64) ([]float64, error) {
	outputs := make([]float64, len(inputs))
	for i, x := range inputs {
		if len(x) != len(m.weights) {
			return nil, fmt.Errorf("sample %d has %d features, model expects %d", i, len(x), len(m.weights))
		}
		sum := m.bias
		for j, w := range m.weights {
			sum += w * x[j]
		}
		outputs[i] = sum
	}
	if m.training {
		m.lastInputs = inputs
	}
	return outputs, nil
}

// Backward accumulates parameter gradients from dLoss/dLogit per sample of
// the most recent Forward call.
func (m *LinearModel) Backward(grad []float64) error {
	if !m.training {
		return fmt.Errorf("backward called in eval mode")
	}
	if len(grad) != len(m.lastInputs) {
		return fmt.Errorf("gradient has %d entries, last forward saw %d samples", len(grad), len(m.lastInputs))
	}
	for i, g := range grad {
		for j, x := range m.lastInputs[i] {
			m.gradW[j] += g * x
		}
		m.gradB += g
	}
	return nil
}

// Grads exposes the accumulated gradients; used by optimizers and tests.
func (m *LinearModel) Grads() ([]float64, float64) {
	return m.gradW, m.gradB
}

// Weights returns the current parameters.
func (m *LinearModel) Weights() ([]float64, float64) {
	return m.weights, m.bias
}

// SGD applies plain stochastic gradient descent to a LinearModel.
type SGD struct {
	model *LinearModel
	lr    float64
}

// NewSGD validates the learning rate and wraps the model.
func NewSGD(model *LinearModel, lr float64) (*SGD, error) {
	if model == nil {
		return nil, fmt.Errorf("model is required")
	}
	if lr <= 0 {
		return nil, fmt.Errorf("learning rate must be > 0, got %g", lr)
	}
	return &SGD{model: model, lr: lr}, nil
}

// Step descends along the accumulated gradients.
func (o *SGD) Step() error {
	for j, g := range o.model.gradW {
		o.model.weights[j] -= o.lr * g
	}
	o.model.bias -= o.lr * o.model.gradB
	return nil
}

// ZeroGrad clears the model's accumulated gradients.
func (o *SGD) ZeroGrad() {
	for j := range o.model.gradW {
		o.model.gradW[j] = 0
	}
	o.model.gradB = 0
}

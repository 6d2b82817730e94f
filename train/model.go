// Package train defines the contracts between a model, its data source, and
// the telemetry tracker, plus the two loop drivers (Evaluate, Update) that
// iterate one epoch of batches through a model and feed the tracker. The
// tensor math itself stays behind the Model and Loss interfaces; a reference
// linear model, SGD optimizer, and BCE loss are provided so the loops are
// runnable end to end.
package train

// Model is a forward-capable model with switchable train/inference modes.
// Implementations own device placement and any internal gradient tracking.
type Model interface {
	// Train puts the model in training mode (gradient tracking on).
	Train()
	// Eval puts the model in inference mode (gradient tracking off).
	Eval()
	// Forward runs the batch through the model and returns one output per
	// sample.
	Forward(inputs [][]float64) ([]float64, error)
}

// Backprop is a Model that can accumulate parameter gradients from the
// gradient of the loss with respect to its outputs.
type Backprop interface {
	Model
	// Backward accumulates parameter gradients; grad holds dLoss/dOutput
	// per sample of the most recent Forward call.
	Backward(grad []float64) error
}

// Optimizer applies and clears accumulated parameter gradients.
type Optimizer interface {
	// Step applies the accumulated gradients to the parameters.
	Step() error
	// ZeroGrad clears the accumulated gradients.
	ZeroGrad()
}

// Loss scores model outputs against targets and differentiates the score.
type Loss interface {
	// Loss returns the scalar loss for the batch.
	Loss(outputs, targets []float64) float64
	// Grad returns dLoss/dOutput per sample.
	Grad(outputs, targets []float64) []float64
}

package optim

import (
	"github.com/chewxy/math32"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/matrix"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Moment buffers are indexed by position in the parameter list. They are
// allocated zero-filled on the first Step and again whenever the list length
// changes; the timestep t is global and keeps counting across reallocations.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float32{0.9, 0.999},
//	    Eps:   1e-8,
//	})
type Adam struct {
	lr    float32
	beta1 float32
	beta2 float32
	eps   float32
	t     int             // Timestep for bias correction
	m     []matrix.Matrix // First moment estimates
	v     []matrix.Matrix // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float32    // Learning rate (default: 0.001)
	Betas [2]float32 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float32    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
//
// Default hyperparameters:
//   - LR: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
	}
}

// Step performs a single optimization step using Adam algorithm:
//  1. Update biased first moment estimate
//  2. Update biased second moment estimate
//  3. Compute bias-corrected moment estimates
//  4. Update parameters and zero their gradients
func (a *Adam) Step(params []*autodiff.Parameter) error {
	if err := checkParams(params); err != nil {
		return err
	}
	if len(a.m) != len(params) {
		a.m = zeroBuffers(params)
		a.v = zeroBuffers(params)
	}
	for i, p := range params {
		if !a.m[i].Shape().Equal(p.Shape()) {
			return &matrix.ShapeError{Op: "adam", Left: a.m[i].Shape(), Right: p.Shape()}
		}
	}

	a.t++
	biasCorrection1 := 1 - math32.Pow(a.beta1, float32(a.t))
	biasCorrection2 := 1 - math32.Pow(a.beta2, float32(a.t))

	for i, p := range params {
		a.updateParameter(p, &a.m[i], &a.v[i], biasCorrection1, biasCorrection2)
		p.ZeroGrad()
	}
	return nil
}

// updateParameter performs Adam update for a single parameter.
func (a *Adam) updateParameter(p *autodiff.Parameter, m, v *matrix.Matrix, biasCorrection1, biasCorrection2 float32) {
	grad := p.Grad()
	value := p.Value()
	rows, cols := value.Rows(), value.Cols()

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g := grad.At(i, j)

			mt := a.beta1*m.At(i, j) + (1-a.beta1)*g
			vt := a.beta2*v.At(i, j) + (1-a.beta2)*g*g
			m.Set(i, j, mt)
			v.Set(i, j, vt)

			mHat := mt / biasCorrection1
			vHat := vt / biasCorrection2
			value.Set(i, j, value.At(i, j)-a.lr*mHat/(math32.Sqrt(vHat)+a.eps))
		}
	}
}

// LR returns the current learning rate.
func (a *Adam) LR() float32 {
	return a.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (a *Adam) SetLR(lr float32) {
	a.lr = lr
}

// Timestep returns the number of completed Step calls.
func (a *Adam) Timestep() int {
	return a.t
}

// Moments returns copies of the first and second moment buffers of the i-th
// parameter. ok is false before the buffers exist or when i is out of range.
func (a *Adam) Moments(i int) (m, v matrix.Matrix, ok bool) {
	if i < 0 || i >= len(a.m) {
		return matrix.Matrix{}, matrix.Matrix{}, false
	}
	return a.m[i].Clone(), a.v[i].Clone(), true
}

var (
	_ Optimizer = (*SGD)(nil)
	_ Optimizer = (*Adam)(nil)
)

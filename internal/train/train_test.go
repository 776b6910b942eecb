package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/minigrad/internal/autodiff"
	"github.com/born-ml/minigrad/internal/dataset"
	"github.com/born-ml/minigrad/internal/matrix"
	"github.com/born-ml/minigrad/internal/optim"
	"github.com/born-ml/minigrad/internal/rng"
)

func TestFitLinear(t *testing.T) {
	var epochs int
	stats, err := FitLinear(LinearConfig{
		X:      []float32{1, 2, 3},
		Y:      []float32{3, 5, 7},
		LR:     0.01,
		Epochs: 5000,
		OnEpoch: func(LinearStats) {
			epochs++
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 5000, epochs)
	assert.Equal(t, 5000, stats.Epoch)
	assert.InDelta(t, 2.0, stats.W, 0.05)
	assert.InDelta(t, 1.0, stats.B, 0.05)
	assert.Less(t, stats.Loss, float32(1e-3))
}

func TestFitLinearRejectsMismatchedSamples(t *testing.T) {
	_, err := FitLinear(LinearConfig{X: []float32{1, 2}, Y: []float32{3}})
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)

	_, err = FitLinear(LinearConfig{})
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestNewMLP(t *testing.T) {
	m, err := NewMLP(4, 3, 2, rng.New(DefaultSeed))
	require.NoError(t, err)

	assert.Equal(t, matrix.Shape{Rows: 4, Cols: 3}, m.FC1.Weight().Shape())
	assert.Equal(t, matrix.Shape{Rows: 1, Cols: 3}, m.FC1.Bias().Shape())
	assert.Equal(t, matrix.Shape{Rows: 3, Cols: 2}, m.FC2.Weight().Shape())
	assert.Equal(t, matrix.Shape{Rows: 1, Cols: 2}, m.FC2.Bias().Shape())

	assert.Zero(t, m.FC1.Bias().Value().Sum())
	assert.Zero(t, m.FC2.Bias().Value().Sum())

	bound, err := rng.XavierBound(4, 3)
	require.NoError(t, err)
	for _, v := range m.FC1.Weight().Value().Data() {
		assert.LessOrEqual(t, v, bound)
		assert.GreaterOrEqual(t, v, -bound)
	}

	names := make([]string, 0, 4)
	for _, p := range m.Parameters() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"fc1.weight", "fc1.bias", "fc2.weight", "fc2.bias"}, names)

	_, err = NewMLP(0, 3, 2, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestNewMLPDeterministic(t *testing.T) {
	a, err := NewMLP(5, 4, 3, nil)
	require.NoError(t, err)
	b, err := NewMLP(5, 4, 3, rng.New(DefaultSeed))
	require.NoError(t, err)

	assert.True(t, a.FC1.Weight().Value().Equal(*b.FC1.Weight().Value()))
	assert.True(t, a.FC2.Weight().Value().Equal(*b.FC2.Weight().Value()))
}

func TestMLPForwardBroadcastsBias(t *testing.T) {
	m, err := NewMLP(2, 2, 2, nil)
	require.NoError(t, err)
	require.NoError(t, m.FC1.Weight().SetValue(matrix.Identity(2)))
	require.NoError(t, m.FC2.Weight().SetValue(matrix.Identity(2)))
	b2, err := matrix.FromRows([][]float32{{10, 20}})
	require.NoError(t, err)
	require.NoError(t, m.FC2.Bias().SetValue(b2))

	x, err := matrix.FromRows([][]float32{{1, -1}, {2, 3}, {-4, 5}})
	require.NoError(t, err)

	tape := autodiff.NewTape()
	logits, err := m.Forward(tape, tape.Constant(x))
	require.NoError(t, err)

	want, err := matrix.FromRows([][]float32{{11, 20}, {12, 23}, {10, 25}})
	require.NoError(t, err)
	assert.True(t, want.AllClose(tape.Value(logits), 1e-6), "got %s", tape.Value(logits))

	// Bias gradient is the column sum of the upstream gradient.
	require.NoError(t, tape.SeedOnes(logits))
	require.NoError(t, tape.Backward(logits))
	grad, err := matrix.FromRows([][]float32{{3, 3}})
	require.NoError(t, err)
	assert.True(t, grad.AllClose(*m.FC2.Bias().Grad(), 1e-6), "got %s", m.FC2.Bias().Grad())
}

func TestPredict(t *testing.T) {
	m, err := NewMLP(2, 2, 2, nil)
	require.NoError(t, err)
	require.NoError(t, m.FC1.Weight().SetValue(matrix.Identity(2)))
	require.NoError(t, m.FC2.Weight().SetValue(matrix.Identity(2)))

	x, err := matrix.FromRows([][]float32{{3, 1}, {0, 2}, {1, 1}})
	require.NoError(t, err)
	got, err := m.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, got)
}

func TestParseLoss(t *testing.T) {
	for _, k := range []LossKind{LossCrossEntropy, LossCrossEntropyWithLogits, LossMSE} {
		got, err := ParseLoss(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseLoss("hinge")
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
	assert.Equal(t, "LossKind(9)", LossKind(9).String())
}

func TestNewClassifierValidation(t *testing.T) {
	m, err := NewMLP(2, 2, 2, nil)
	require.NoError(t, err)

	_, err = NewClassifier(nil, optim.NewSGD(optim.SGDConfig{}), LossCrossEntropy)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
	_, err = NewClassifier(m, nil, LossCrossEntropy)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
	_, err = NewClassifier(m, optim.NewSGD(optim.SGDConfig{}), LossKind(7))
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func newSyntheticClassifier(t *testing.T, loss LossKind) (*Classifier, []dataset.Batch) {
	t.Helper()

	r := rng.New(7)
	data := dataset.Synthetic(200, r)
	batches, err := data.Batches(20, r)
	require.NoError(t, err)

	m, err := NewMLP(dataset.ImagePixels, 32, dataset.NumClasses, nil)
	require.NoError(t, err)
	c, err := NewClassifier(m, optim.NewAdam(optim.AdamConfig{LR: 0.01}), loss)
	require.NoError(t, err)
	return c, batches
}

func TestClassifierLearnsSynthetic(t *testing.T) {
	for _, loss := range []LossKind{LossCrossEntropy, LossCrossEntropyWithLogits} {
		t.Run(loss.String(), func(t *testing.T) {
			c, batches := newSyntheticClassifier(t, loss)

			first, err := c.Epoch(batches)
			require.NoError(t, err)
			assert.Equal(t, 1, first.Epoch)
			assert.Equal(t, 200, first.Samples)

			var last EpochStats
			for range 29 {
				last, err = c.Epoch(batches)
				require.NoError(t, err)
			}

			assert.Equal(t, 30, last.Epoch)
			assert.Less(t, last.Loss, first.Loss)
			assert.GreaterOrEqual(t, last.Accuracy, float32(0.9))

			eval, err := c.Evaluate(batches)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, eval.Accuracy, float32(0.9))
			assert.Equal(t, 30, eval.Epoch)
		})
	}
}

func TestClassifierMSELossDecreases(t *testing.T) {
	c, batches := newSyntheticClassifier(t, LossMSE)

	first, err := c.Epoch(batches)
	require.NoError(t, err)
	var last EpochStats
	for range 9 {
		last, err = c.Epoch(batches)
		require.NoError(t, err)
	}
	assert.Less(t, last.Loss, first.Loss)
}

func TestEvaluateLeavesParameters(t *testing.T) {
	c, batches := newSyntheticClassifier(t, LossCrossEntropy)
	before := c.Model.FC1.Weight().Value().Clone()

	_, err := c.Evaluate(batches)
	require.NoError(t, err)

	assert.True(t, before.Equal(*c.Model.FC1.Weight().Value()))
	assert.Zero(t, c.Model.FC1.Weight().Grad().Sum())
}

func TestEpochRejectsMismatchedBatch(t *testing.T) {
	m, err := NewMLP(3, 2, dataset.NumClasses, nil)
	require.NoError(t, err)
	c, err := NewClassifier(m, optim.NewSGD(optim.SGDConfig{}), LossCrossEntropy)
	require.NoError(t, err)

	data := dataset.Synthetic(4, rng.New(1))
	batches, err := data.Batches(2, nil)
	require.NoError(t, err)

	_, err = c.Epoch(batches)
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestFit(t *testing.T) {
	r := rng.New(3)
	data := dataset.Synthetic(200, r)
	trainSet, valSet := data.Split(0.2)

	m, err := NewMLP(dataset.ImagePixels, 32, dataset.NumClasses, nil)
	require.NoError(t, err)
	c, err := NewClassifier(m, optim.NewAdam(optim.AdamConfig{LR: 0.01}), LossCrossEntropy)
	require.NoError(t, err)

	var calls int
	var val EpochStats
	last, err := c.Fit(trainSet, valSet, FitConfig{
		Epochs:    15,
		BatchSize: 16,
		Rand:      r,
		OnEpoch: func(_, v EpochStats) {
			calls++
			val = v
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 15, calls)
	assert.Equal(t, 160, last.Samples)
	assert.Equal(t, 40, val.Samples)
	assert.GreaterOrEqual(t, val.Accuracy, float32(0.8))
}

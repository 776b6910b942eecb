package matrix

import "github.com/chewxy/math32"

// SoftmaxRows returns the row-wise softmax of m.
//
// Each row is shifted by its maximum before exponentiating, so large logits
// do not overflow.
func (m Matrix) SoftmaxRows() Matrix {
	out := ZerosLike(m)
	for i := 0; i < m.rows; i++ {
		softmaxRow(out.data[i*m.cols:(i+1)*m.cols], m.data[i*m.cols:(i+1)*m.cols])
	}
	return out
}

// LogSumExpRows returns log(Σ_j exp(m[i][j])) for every row i, computed as
// max + log(Σ exp(x - max)).
func (m Matrix) LogSumExpRows() []float32 {
	out := make([]float32, m.rows)
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.cols : (i+1)*m.cols]
		maxVal := rowMax(row)
		var sum float32
		for _, v := range row {
			sum += math32.Exp(v - maxVal)
		}
		out[i] = maxVal + math32.Log(sum)
	}
	return out
}

func softmaxRow(dst, src []float32) {
	maxVal := rowMax(src)
	var sum float32
	for j, v := range src {
		dst[j] = math32.Exp(v - maxVal)
		sum += dst[j]
	}
	for j := range dst {
		dst[j] /= sum
	}
}

func rowMax(row []float32) float32 {
	maxVal := row[0]
	for _, v := range row[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

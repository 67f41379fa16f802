package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePercentile(t *testing.T) {
	tests := []struct {
		name string
		data []int64
		p    float64
		want float64
	}{
		{name: "empty", data: nil, p: 50, want: 0},
		{name: "single", data: []int64{7}, p: 90, want: 7},
		{name: "median interpolates", data: []int64{4, 1, 3, 2}, p: 50, want: 2.5},
		{name: "max", data: []int64{4, 1, 3, 2}, p: 100, want: 4},
		{name: "min", data: []int64{4, 1, 3, 2}, p: 0, want: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, CalculatePercentile(tc.data, tc.p), 1e-9)
		})
	}
}

func TestCalculatePercentile_DoesNotReorderInput(t *testing.T) {
	data := []int64{3, 1, 2}

	CalculatePercentile(data, 50)

	assert.Equal(t, []int64{3, 1, 2}, data)
}

func TestCalculateMean(t *testing.T) {
	assert.Zero(t, CalculateMean([]int{}))
	assert.InDelta(t, 2.5, CalculateMean([]float64{1, 2, 3, 4}), 1e-9)
}

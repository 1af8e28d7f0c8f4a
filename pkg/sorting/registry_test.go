package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sortviz/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
	}{
		{"selection", Selection},
		{"Insertion", Insertion},
		{"BUBBLE", Bubble},
		{"merge sort", Merge},
		{"Quick Sort", Quick},
		{"heapsort", Heap},
		{"  heap  ", Heap},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		in   string
		code errors.Code
	}{
		{"", errors.ErrCodeInvalidAlgorithm},
		{"bogo", errors.ErrCodeInvalidAlgorithm},
		{"sort", errors.ErrCodeInvalidAlgorithm},
		{"../heap", errors.ErrCodeInvalidAlgorithm},
		{"shell", errors.ErrCodeInvalidAlgorithm},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestRegistryOrder(t *testing.T) {
	assert.Equal(t, []Algorithm{Selection, Insertion, Bubble, Merge, Quick, Heap}, All())
	assert.Equal(t, []string{"selection", "insertion", "bubble", "merge", "quick", "heap"}, Names())

	for i, alg := range All() {
		assert.Equal(t, i+1, alg.Key())
		assert.True(t, alg.Valid())
		assert.NotNil(t, alg.Func())
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	a := Algorithm("bogo")
	assert.False(t, a.Valid())
	assert.Nil(t, a.Func())
	assert.Equal(t, 0, a.Key())
	assert.Equal(t, "bogo", a.Title())
	assert.Zero(t, a.PauseUnits())
}

func TestTitles(t *testing.T) {
	assert.Equal(t, "Selection Sort", Selection.Title())
	assert.Equal(t, "Heap Sort", Heap.Title())
}

func TestLookup(t *testing.T) {
	fn, err := Lookup("merge")
	require.NoError(t, err)

	s := Ints{3, 1, 2}
	require.NoError(t, fn(s, NopTracer{}))
	assert.Equal(t, Ints{1, 2, 3}, s)

	_, err = Lookup("nope")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidAlgorithm))
}

package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/sprout/internal/tensor"
)

func buildTestNetwork() *Network {
	rng := tensor.NewRNG(42)
	return NewNetwork(
		NewLinear(4, 8, rng),
		NewReLU(),
		NewLinear(8, 3, rng),
		NewLogSoftmax(),
	)
}

func TestNetworkForward(t *testing.T) {
	net := buildTestNetwork()

	out := net.Forward(tensor.Randn(tensor.Shape{5, 4}, tensor.NewRNG(1)))
	assert.True(t, out.Shape().Equal(tensor.Shape{5, 3}),
		"output shape %v, want (5, 3)", out.Shape())
}

func TestNetworkParameters(t *testing.T) {
	net := buildTestNetwork()

	params := net.Parameters()
	require.Len(t, params, 4, "two linear stages contribute weight+bias each")
	assert.Equal(t, "weight", params[0].Name())
	assert.Equal(t, "bias", params[1].Name())
	assert.True(t, params[0].Tensor().Shape().Equal(tensor.Shape{8, 4}))
	assert.True(t, params[2].Tensor().Shape().Equal(tensor.Shape{3, 8}))
}

func TestNetworkAddLenLayer(t *testing.T) {
	net := NewNetwork()
	net.Add(NewLinear(2, 2, tensor.NewRNG(1)))
	net.Add(NewReLU())

	assert.Equal(t, 2, net.Len())
	_, ok := net.Layer(1).(*ReLU)
	assert.True(t, ok, "Layer(1) should be the ReLU stage")

	assert.Panics(t, func() { net.Layer(2) })
	assert.Panics(t, func() { net.Layer(-1) })
}

func TestNetworkBackwardBeforeForwardPanics(t *testing.T) {
	net := buildTestNetwork()
	assert.Panics(t, func() {
		net.Backward(tensor.Zeros(tensor.Shape{5, 3}))
	})
}

func TestNetworkBackwardShapesAndAccumulation(t *testing.T) {
	net := buildTestNetwork()
	input := tensor.Randn(tensor.Shape{5, 4}, tensor.NewRNG(2))
	seed := tensor.Full(tensor.Shape{5, 3}, 0.1)

	net.Forward(input)
	gradInput := net.Backward(seed)
	require.True(t, gradInput.Shape().Equal(tensor.Shape{5, 4}),
		"input gradient shape %v", gradInput.Shape())

	first := make(map[*Parameter]*tensor.Dense)
	for _, p := range net.Parameters() {
		require.NotNil(t, p.Grad(), "parameter %s has no gradient", p.Name())
		first[p] = p.Grad().Clone()
	}

	// A second backward against the same memoized forward doubles
	// every accumulated gradient.
	net.Backward(seed)
	for _, p := range net.Parameters() {
		for i, v := range p.Grad().Data() {
			assert.InDelta(t, 2*first[p].Data()[i], v, 1e-12)
		}
	}
}

func TestNetworkStateDict(t *testing.T) {
	net := buildTestNetwork()

	state := net.StateDict()
	require.Len(t, state, 4)
	assert.Contains(t, state, "0.weight")
	assert.Contains(t, state, "0.bias")
	assert.Contains(t, state, "2.weight")
	assert.Contains(t, state, "2.bias")

	other := NewNetwork(
		NewLinear(4, 8, tensor.NewRNG(99)),
		NewReLU(),
		NewLinear(8, 3, tensor.NewRNG(100)),
		NewLogSoftmax(),
	)
	require.NoError(t, other.LoadStateDict(state))

	input := tensor.Randn(tensor.Shape{2, 4}, tensor.NewRNG(5))
	a, b := net.Forward(input), other.Forward(input)
	for i := range a.Data() {
		assert.Equal(t, a.Data()[i], b.Data()[i], "outputs differ after LoadStateDict")
	}
}

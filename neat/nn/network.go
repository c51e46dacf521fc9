package nn

import (
	"fmt"
	"sort"

	"github.com/baldhumanity/neat-trainer/neat"
)

// neuron is a decoded neuron with its incoming enabled links.
type neuron struct {
	ID       int
	Type     neat.NeuronType
	Response float64
	Incoming []link
}

type link struct {
	From   int // index into Network.values
	Weight float64
}

// Network is the executable phenotype of a genome. Neurons are evaluated by
// depth; a link whose source has not been evaluated yet in the current pass
// reads the value left by the previous pass, which is how recurrent links
// carry state between calls to Compute.
type Network struct {
	InputCount  int
	OutputCount int

	activation  neat.ActivationFunc
	aggregation neat.AggregationFunc

	neurons   []neuron // evaluation order
	values    []float64
	inputIdx  []int
	biasIdx   int
	outputIdx []int
}

// Decoder turns genomes into networks using the named activation and
// aggregation functions.
type Decoder struct {
	Activation  string
	Aggregation string
}

// NewDecoder returns a decoder using the genome settings of the config.
func NewDecoder(config *neat.Config) Decoder {
	return Decoder{Activation: config.Genome.Activation, Aggregation: config.Genome.Aggregation}
}

// Decode builds a network from g. Disabled links are left out.
func (d Decoder) Decode(g *neat.Genome) (*Network, error) {
	actFn, err := neat.GetActivation(d.Activation)
	if err != nil {
		return nil, fmt.Errorf("failed to decode genome %d: %w", g.ID, err)
	}
	aggFn, err := neat.GetAggregation(d.Aggregation)
	if err != nil {
		return nil, fmt.Errorf("failed to decode genome %d: %w", g.ID, err)
	}

	ordered := make([]neat.NeuronGene, len(g.Neurons))
	copy(ordered, g.Neurons)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SplitY != ordered[j].SplitY {
			return ordered[i].SplitY < ordered[j].SplitY
		}
		return ordered[i].ID < ordered[j].ID
	})

	net := &Network{
		InputCount:  g.InputCount,
		OutputCount: g.OutputCount,
		activation:  actFn,
		aggregation: aggFn,
		neurons:     make([]neuron, 0, len(ordered)),
		values:      make([]float64, len(ordered)),
		biasIdx:     -1,
	}

	index := make(map[int]int, len(ordered))
	for i, n := range ordered {
		index[n.ID] = i
		net.neurons = append(net.neurons, neuron{ID: n.ID, Type: n.Type, Response: n.ActivationResponse})
		switch n.Type {
		case neat.NeuronInput:
			net.inputIdx = append(net.inputIdx, i)
		case neat.NeuronBias:
			net.biasIdx = i
		case neat.NeuronOutput:
			net.outputIdx = append(net.outputIdx, i)
		}
	}

	for _, l := range g.Links {
		if !l.Enabled {
			continue
		}
		from, ok := index[l.From]
		if !ok {
			return nil, fmt.Errorf("failed to decode genome %d: link %d reads unknown neuron %d", g.ID, l.InnovationID, l.From)
		}
		to, ok := index[l.To]
		if !ok {
			return nil, fmt.Errorf("failed to decode genome %d: link %d feeds unknown neuron %d", g.ID, l.InnovationID, l.To)
		}
		net.neurons[to].Incoming = append(net.neurons[to].Incoming, link{From: from, Weight: l.Weight})
	}

	// Inputs and outputs are addressed in neuron ID order.
	sort.Slice(net.inputIdx, func(i, j int) bool { return net.neurons[net.inputIdx[i]].ID < net.neurons[net.inputIdx[j]].ID })
	sort.Slice(net.outputIdx, func(i, j int) bool { return net.neurons[net.outputIdx[i]].ID < net.neurons[net.outputIdx[j]].ID })

	if len(net.inputIdx) != g.InputCount || len(net.outputIdx) != g.OutputCount {
		return nil, fmt.Errorf("failed to decode genome %d: found %d inputs and %d outputs, want %d and %d",
			g.ID, len(net.inputIdx), len(net.outputIdx), g.InputCount, g.OutputCount)
	}
	return net, nil
}

// Compute runs one pass of the network and returns the output values.
func (net *Network) Compute(inputs []float64) ([]float64, error) {
	if len(inputs) != net.InputCount {
		return nil, fmt.Errorf("mismatch between input count (%d) and network input neurons (%d)", len(inputs), net.InputCount)
	}
	for i, idx := range net.inputIdx {
		net.values[idx] = inputs[i]
	}
	if net.biasIdx >= 0 {
		net.values[net.biasIdx] = 1.0
	}

	var buf []float64
	for i := range net.neurons {
		n := &net.neurons[i]
		if n.Type == neat.NeuronInput || n.Type == neat.NeuronBias {
			continue
		}
		buf = buf[:0]
		for _, in := range n.Incoming {
			buf = append(buf, net.values[in.From]*in.Weight)
		}
		net.values[i] = net.activation(net.aggregation(buf) * n.Response)
	}

	outputs := make([]float64, len(net.outputIdx))
	for i, idx := range net.outputIdx {
		outputs[i] = net.values[idx]
	}
	return outputs, nil
}

// ClearContext zeroes every stored activation.
func (net *Network) ClearContext() {
	for i := range net.values {
		net.values[i] = 0
	}
}

// NeuronCount returns the number of neurons in the network.
func (net *Network) NeuronCount() int {
	return len(net.neurons)
}

package neat

import (
	"fmt"
	"math/rand"
)

// NeuronType tells the decoder what role a neuron plays in the network.
type NeuronType int

const (
	NeuronInput NeuronType = iota
	NeuronBias
	NeuronOutput
	NeuronHidden
)

func (t NeuronType) String() string {
	switch t {
	case NeuronInput:
		return "input"
	case NeuronBias:
		return "bias"
	case NeuronOutput:
		return "output"
	case NeuronHidden:
		return "hidden"
	default:
		return fmt.Sprintf("NeuronType(%d)", int(t))
	}
}

// --------------------------- NeuronGene ---------------------------

// NeuronGene represents a neuron in the genome.
type NeuronGene struct {
	ID   int
	Type NeuronType
	// SplitY is the neuron's depth: 0 for inputs and bias, 1 for outputs and
	// halfway between the two ends of the link it split for hidden neurons.
	SplitY             float64
	Recurrent          bool // true once the neuron carries a self loop
	ActivationResponse float64
}

// NewNeuronGene creates a neuron gene with a unit activation response.
func NewNeuronGene(id int, t NeuronType, splitY float64) NeuronGene {
	return NeuronGene{
		ID:                 id,
		Type:               t,
		SplitY:             splitY,
		ActivationResponse: 1.0,
	}
}

// String returns a string representation of the NeuronGene.
func (ng NeuronGene) String() string {
	return fmt.Sprintf("NeuronGene(ID: %d, Type: %s, SplitY: %.3f, Recurrent: %t)",
		ng.ID, ng.Type, ng.SplitY, ng.Recurrent)
}

// --------------------------- LinkGene ---------------------------

// LinkGene represents a weighted connection between two neurons.
type LinkGene struct {
	InnovationID int
	From         int
	To           int
	Weight       float64
	Enabled      bool
	Recurrent    bool
}

// String returns a string representation of the LinkGene.
func (lg LinkGene) String() string {
	return fmt.Sprintf("LinkGene(Innovation: %d, %d->%d, Weight: %.3f, Enabled: %t, Recurrent: %t)",
		lg.InnovationID, lg.From, lg.To, lg.Weight, lg.Enabled, lg.Recurrent)
}

// randomWeight draws a weight uniformly from [-1, 1).
func randomWeight(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}

package neat

// InnovationType distinguishes structural innovations.
type InnovationType int

const (
	InnovationLink InnovationType = iota
	InnovationNeuron
)

// Innovation records a structural change the first time any genome makes it,
// so later genomes making the same change receive the same numbers.
type Innovation struct {
	ID       int
	Type     InnovationType
	From     int
	To       int
	NeuronID int // set for InnovationNeuron only
}

type innovationKey struct {
	from, to int
}

// InnovationList is the shared innovation registry of a run.
// It is not safe for concurrent use.
type InnovationList struct {
	Innovations []*Innovation

	links        map[innovationKey]*Innovation
	neurons      map[innovationKey]*Innovation
	nextID       int
	nextNeuronID int
}

// NewInnovationList creates a registry for networks with the given shape.
// Neuron IDs 0..inputCount-1 are the inputs, inputCount is the bias, and the
// next outputCount IDs are the outputs. The links of a fully connected
// starting genome (every input and the bias to every output) are registered
// up front.
func NewInnovationList(inputCount, outputCount int) *InnovationList {
	il := &InnovationList{
		links:        make(map[innovationKey]*Innovation),
		neurons:      make(map[innovationKey]*Innovation),
		nextNeuronID: inputCount + 1 + outputCount,
	}
	for from := 0; from <= inputCount; from++ {
		for o := 0; o < outputCount; o++ {
			il.CreateLink(from, inputCount+1+o)
		}
	}
	return il
}

// FindLink returns the innovation for a link between two neurons, if any genome created one.
func (il *InnovationList) FindLink(from, to int) (*Innovation, bool) {
	inn, ok := il.links[innovationKey{from, to}]
	return inn, ok
}

// CreateLink registers a new link innovation.
func (il *InnovationList) CreateLink(from, to int) *Innovation {
	inn := &Innovation{ID: il.nextID, Type: InnovationLink, From: from, To: to, NeuronID: -1}
	il.nextID++
	il.Innovations = append(il.Innovations, inn)
	il.links[innovationKey{from, to}] = inn
	return inn
}

// FindOrCreateLink returns the existing link innovation or registers a new one.
func (il *InnovationList) FindOrCreateLink(from, to int) *Innovation {
	if inn, ok := il.FindLink(from, to); ok {
		return inn
	}
	return il.CreateLink(from, to)
}

// FindNeuron returns the innovation recorded for splitting the link from->to.
func (il *InnovationList) FindNeuron(from, to int) (*Innovation, bool) {
	inn, ok := il.neurons[innovationKey{from, to}]
	return inn, ok
}

// CreateNeuron registers a new hidden neuron splitting from->to and issues its neuron ID.
// The newest neuron innovation for a split wins future lookups.
func (il *InnovationList) CreateNeuron(from, to int) *Innovation {
	inn := &Innovation{ID: il.nextID, Type: InnovationNeuron, From: from, To: to, NeuronID: il.nextNeuronID}
	il.nextID++
	il.nextNeuronID++
	il.Innovations = append(il.Innovations, inn)
	il.neurons[innovationKey{from, to}] = inn
	return inn
}

// Len returns the number of innovations registered so far.
func (il *InnovationList) Len() int {
	return len(il.Innovations)
}

// advancePast moves the ID sequences beyond everything the genomes already use.
func (il *InnovationList) advancePast(genomes []*Genome) {
	for _, g := range genomes {
		if g == nil {
			continue
		}
		for _, l := range g.Links {
			if l.InnovationID >= il.nextID {
				il.nextID = l.InnovationID + 1
			}
		}
		for _, n := range g.Neurons {
			if n.ID >= il.nextNeuronID {
				il.nextNeuronID = n.ID + 1
			}
		}
	}
}

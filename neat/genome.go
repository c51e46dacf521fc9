package neat

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	cp "github.com/jinzhu/copier"
)

// Phenotype is the executable network decoded from a genome.
type Phenotype interface {
	// ClearContext drops any state the network carries between activations.
	ClearContext()
}

// MutationContext supplies the run-wide state the structural operators need.
type MutationContext interface {
	Innovations() *InnovationList
	Rand() *rand.Rand
	ChanceAddLink() float64
	ChanceAddRecurrentLink() float64
}

// CompatibilityCoefficients weight the terms of the compatibility distance.
type CompatibilityCoefficients struct {
	Excess   float64
	Disjoint float64
	Matched  float64
}

// Genome represents an individual organism in the population.
// Neurons are kept in the order inputs, bias, outputs, hidden; links are kept
// sorted by innovation number once SortGenes has run.
type Genome struct {
	ID            int
	InputCount    int
	OutputCount   int
	Neurons       []NeuronGene
	Links         []LinkGene
	Score         float64 // Raw score from the scorer.
	AdjustedScore float64 // Score after age bonus/penalty and fitness sharing.
	AmountToSpawn float64
	SpeciesID     int
	// Phenotype is decoded lazily and dropped whenever the genes change.
	Phenotype Phenotype `copier:"-"`
}

// NewGenome creates a fully connected genome: every input and the bias link
// to every output with a random weight.
func NewGenome(id int, innovations *InnovationList, inputCount, outputCount int, rng *rand.Rand) *Genome {
	g := &Genome{
		ID:          id,
		InputCount:  inputCount,
		OutputCount: outputCount,
		Neurons:     make([]NeuronGene, 0, inputCount+1+outputCount),
		SpeciesID:   -1,
	}
	for i := 0; i < inputCount; i++ {
		g.Neurons = append(g.Neurons, NewNeuronGene(i, NeuronInput, 0))
	}
	g.Neurons = append(g.Neurons, NewNeuronGene(inputCount, NeuronBias, 0))
	for o := 0; o < outputCount; o++ {
		g.Neurons = append(g.Neurons, NewNeuronGene(inputCount+1+o, NeuronOutput, 1))
	}

	for from := 0; from <= inputCount; from++ {
		for o := 0; o < outputCount; o++ {
			to := inputCount + 1 + o
			inn := innovations.FindOrCreateLink(from, to)
			g.Links = append(g.Links, LinkGene{
				InnovationID: inn.ID,
				From:         from,
				To:           to,
				Weight:       randomWeight(rng),
				Enabled:      true,
			})
		}
	}
	g.SortGenes()
	return g
}

// Clone returns a deep copy of the genome without its phenotype.
func (g *Genome) Clone() *Genome {
	clone := &Genome{}
	if err := cp.CopyWithOption(clone, g, cp.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("failed to clone genome %d: %v", g.ID, err))
	}
	clone.Phenotype = nil
	return clone
}

// NeuronCount returns the number of neuron genes.
func (g *Genome) NeuronCount() int {
	return len(g.Neurons)
}

// SortGenes orders the link genes by innovation number. Compatibility
// distance and crossover both walk the genes in this order.
func (g *Genome) SortGenes() {
	sort.SliceStable(g.Links, func(i, j int) bool {
		return g.Links[i].InnovationID < g.Links[j].InnovationID
	})
}

// Neuron returns the neuron gene with the given ID.
func (g *Genome) Neuron(id int) (NeuronGene, bool) {
	if i := g.neuronIndex(id); i >= 0 {
		return g.Neurons[i], true
	}
	return NeuronGene{}, false
}

func (g *Genome) neuronIndex(id int) int {
	for i := range g.Neurons {
		if g.Neurons[i].ID == id {
			return i
		}
	}
	return -1
}

func (g *Genome) hasLink(from, to int) bool {
	for _, l := range g.Links {
		if l.From == from && l.To == to {
			return true
		}
	}
	return false
}

// MutateWeights perturbs each link with probability rate. A mutated weight is
// replaced outright with probability replaceProb, otherwise shifted by up to
// ±perturb.
func (g *Genome) MutateWeights(rng *rand.Rand, rate, replaceProb, perturb float64) {
	for i := range g.Links {
		if rng.Float64() >= rate {
			continue
		}
		if rng.Float64() < replaceProb {
			g.Links[i].Weight = randomWeight(rng)
		} else {
			g.Links[i].Weight += randomWeight(rng) * perturb
		}
	}
	g.Phenotype = nil
}

// AddNeuron splits an existing link with a new hidden neuron, with probability
// chance. Up to tries links are sampled looking for an enabled, non-recurrent
// link that does not leave the bias. Reports whether a neuron was added.
func (g *Genome) AddNeuron(ctx MutationContext, chance float64, tries int) bool {
	rng := ctx.Rand()
	if len(g.Links) == 0 || rng.Float64() > chance {
		return false
	}

	// Small genomes split older links so growth does not chain off the newest gene.
	sizeThreshold := g.InputCount + g.OutputCount + 5
	chosen := -1
	for i := 0; i < tries; i++ {
		var candidate int
		if len(g.Links) < sizeThreshold {
			limit := max(1, len(g.Links)-1-int(math.Sqrt(float64(len(g.Links)))))
			candidate = rng.Intn(limit)
		} else {
			candidate = rng.Intn(len(g.Links))
		}
		link := g.Links[candidate]
		from, to := g.neuronIndex(link.From), g.neuronIndex(link.To)
		if link.Enabled && !link.Recurrent && from >= 0 && to >= 0 && g.Neurons[from].Type != NeuronBias {
			chosen = candidate
			break
		}
	}
	if chosen < 0 {
		return false
	}

	g.Links[chosen].Enabled = false
	fromID, toID, weight := g.Links[chosen].From, g.Links[chosen].To, g.Links[chosen].Weight
	fromY := g.Neurons[g.neuronIndex(fromID)].SplitY
	toY := g.Neurons[g.neuronIndex(toID)].SplitY

	il := ctx.Innovations()
	inn, ok := il.FindNeuron(fromID, toID)
	if !ok || g.neuronIndex(inn.NeuronID) >= 0 {
		// The genome already holds the neuron from an earlier split of this link.
		inn = il.CreateNeuron(fromID, toID)
	}
	newID := inn.NeuronID
	g.Neurons = append(g.Neurons, NewNeuronGene(newID, NeuronHidden, (fromY+toY)/2))

	in := il.FindOrCreateLink(fromID, newID)
	g.Links = append(g.Links, LinkGene{InnovationID: in.ID, From: fromID, To: newID, Weight: 1.0, Enabled: true})
	out := il.FindOrCreateLink(newID, toID)
	g.Links = append(g.Links, LinkGene{InnovationID: out.ID, From: newID, To: toID, Weight: weight, Enabled: true})

	g.Phenotype = nil
	return true
}

// AddLink adds a new link gene, gated by the context's add-link chance. With
// the recurrent chance it looks for a neuron to give a self loop (up to
// loopTries samples); otherwise it samples up to attempts neuron pairs that
// are not yet linked. Reports whether a link was added.
func (g *Genome) AddLink(ctx MutationContext, loopTries, attempts int) bool {
	rng := ctx.Rand()
	if rng.Float64() > ctx.ChanceAddLink() {
		return false
	}

	// Outputs start right after the inputs and the bias.
	firstTarget := g.InputCount + 1
	if len(g.Neurons) <= firstTarget {
		return false
	}

	fromID, toID := -1, -1
	recurrent := false
	if rng.Float64() < ctx.ChanceAddRecurrentLink() {
		for i := 0; i < loopTries; i++ {
			n := &g.Neurons[firstTarget+rng.Intn(len(g.Neurons)-firstTarget)]
			if n.Recurrent || n.Type == NeuronInput || n.Type == NeuronBias || g.hasLink(n.ID, n.ID) {
				continue
			}
			n.Recurrent = true
			fromID, toID = n.ID, n.ID
			recurrent = true
			break
		}
	} else {
		for i := 0; i < attempts; i++ {
			from := g.Neurons[rng.Intn(len(g.Neurons))]
			to := g.Neurons[firstTarget+rng.Intn(len(g.Neurons)-firstTarget)]
			if from.ID == to.ID || g.hasLink(from.ID, to.ID) {
				continue
			}
			fromID, toID = from.ID, to.ID
			recurrent = to.SplitY <= from.SplitY
			break
		}
	}
	if fromID < 0 {
		return false
	}

	inn := ctx.Innovations().FindOrCreateLink(fromID, toID)
	g.Links = append(g.Links, LinkGene{
		InnovationID: inn.ID,
		From:         fromID,
		To:           toID,
		Weight:       randomWeight(rng),
		Enabled:      true,
		Recurrent:    recurrent,
	})
	g.Phenotype = nil
	return true
}

// RemoveLink deletes a random link gene, keeping at least one, and drops any
// hidden neuron left without links. Reports whether a link was removed.
func (g *Genome) RemoveLink(rng *rand.Rand) bool {
	if len(g.Links) <= 1 {
		return false
	}
	idx := rng.Intn(len(g.Links))
	removed := g.Links[idx]
	g.Links = append(g.Links[:idx], g.Links[idx+1:]...)

	if removed.From == removed.To {
		if i := g.neuronIndex(removed.From); i >= 0 {
			g.Neurons[i].Recurrent = false
		}
	}

	used := make(map[int]bool, len(g.Links)*2)
	for _, l := range g.Links {
		used[l.From] = true
		used[l.To] = true
	}
	kept := g.Neurons[:0]
	for _, n := range g.Neurons {
		if n.Type != NeuronHidden || used[n.ID] {
			kept = append(kept, n)
		}
	}
	g.Neurons = kept

	g.Phenotype = nil
	return true
}

// CompatibilityDistance measures how far apart two genomes are. Both genomes
// must have their genes sorted by innovation number.
func (g *Genome) CompatibilityDistance(other *Genome, c CompatibilityCoefficients) float64 {
	a, b := g.Links, other.Links
	excess, disjoint, matched := 0, 0, 0
	weightDiff := 0.0

	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i == len(a):
			excess++
			j++
		case j == len(b):
			excess++
			i++
		case a[i].InnovationID == b[j].InnovationID:
			matched++
			weightDiff += math.Abs(a[i].Weight - b[j].Weight)
			i++
			j++
		case a[i].InnovationID < b[j].InnovationID:
			disjoint++
			i++
		default:
			disjoint++
			j++
		}
	}

	longest := float64(max(len(a), len(b), 1))
	distance := c.Excess*float64(excess)/longest + c.Disjoint*float64(disjoint)/longest
	if matched > 0 {
		distance += c.Matched * weightDiff / float64(matched)
	}
	return distance
}

// Crossover creates a child from two parents. Matching genes are inherited
// from either parent at random; disjoint and excess genes come only from the
// better parent. On a score tie the parent with fewer links counts as better.
// The child keeps the better parent's ID; callers assign a fresh one.
func Crossover(rng *rand.Rand, mom, dad *Genome, cmp Comparator) *Genome {
	best, other := mom, dad
	switch {
	case mom.Score == dad.Score:
		if len(dad.Links) < len(mom.Links) ||
			(len(dad.Links) == len(mom.Links) && rng.Intn(2) == 0) {
			best, other = dad, mom
		}
	case cmp.IsBetterThan(dad.Score, mom.Score):
		best, other = dad, mom
	}

	child := &Genome{
		ID:          best.ID,
		InputCount:  best.InputCount,
		OutputCount: best.OutputCount,
		SpeciesID:   -1,
	}

	a, b := best.Links, other.Links
	i, j := 0, 0
	for i < len(a) {
		switch {
		case j >= len(b) || a[i].InnovationID < b[j].InnovationID:
			child.Links = append(child.Links, a[i])
			i++
		case a[i].InnovationID > b[j].InnovationID:
			j++
		default:
			gene := a[i]
			if rng.Float64() < 0.5 {
				gene = b[j]
			}
			child.Links = append(child.Links, gene)
			i++
			j++
		}
	}

	needed := make(map[int]bool)
	for _, n := range best.Neurons {
		if n.Type != NeuronHidden {
			needed[n.ID] = true
		}
	}
	for _, l := range child.Links {
		needed[l.From] = true
		needed[l.To] = true
	}
	for id := range needed {
		n, ok := best.Neuron(id)
		if !ok {
			n, ok = other.Neuron(id)
		}
		if ok {
			child.Neurons = append(child.Neurons, n)
		}
	}
	// Neuron IDs grow inputs, bias, outputs, hidden, so ID order is the required layout.
	sort.Slice(child.Neurons, func(i, j int) bool {
		return child.Neurons[i].ID < child.Neurons[j].ID
	})

	child.SortGenes()
	return child
}

package neat

import (
	"math/rand"
	"sort"
)

// Population holds every genome and species of a run together with the
// innovation registry, the ID sequences and the species age policy.
type Population struct {
	Genomes     []*Genome
	Species     []*Species
	Innovations *InnovationList

	InputCount  int
	OutputCount int

	YoungBonusAgeThreshold int
	YoungScoreBonus        float64
	OldAgeThreshold        int
	OldAgePenalty          float64
	SurvivalRate           float64

	size          int
	index         map[int]*Genome
	nextGenomeID  int
	nextSpeciesID int
}

// NewPopulation creates size fresh, fully connected genomes. A nil config
// means DefaultConfig.
func NewPopulation(inputCount, outputCount, size int, config *Config, rng *rand.Rand) *Population {
	p := newPopulation(NewInnovationList(inputCount, outputCount), config)
	p.InputCount = inputCount
	p.OutputCount = outputCount
	p.size = size

	genomes := make([]*Genome, 0, size)
	for i := 0; i < size; i++ {
		genomes = append(genomes, NewGenome(p.AssignGenomeID(), p.Innovations, inputCount, outputCount, rng))
	}
	p.AddAll(genomes)
	return p
}

// PopulationFromGenomes wraps pre-built genomes. The shape is taken from the
// first genome. When innovations is nil a registry is created for that shape
// and advanced past every innovation and neuron ID the genomes already use.
func PopulationFromGenomes(genomes []*Genome, innovations *InnovationList, config *Config) *Population {
	var first *Genome
	for _, g := range genomes {
		if g != nil {
			first = g
			break
		}
	}
	in, out := 0, 0
	if first != nil {
		in, out = first.InputCount, first.OutputCount
	}
	if innovations == nil {
		innovations = NewInnovationList(in, out)
		innovations.advancePast(genomes)
	}

	p := newPopulation(innovations, config)
	p.InputCount = in
	p.OutputCount = out
	p.size = len(genomes)
	for _, g := range genomes {
		if g != nil && g.ID >= p.nextGenomeID {
			p.nextGenomeID = g.ID + 1
		}
	}
	p.AddAll(genomes)
	return p
}

func newPopulation(innovations *InnovationList, config *Config) *Population {
	if config == nil {
		config = DefaultConfig()
	}
	return &Population{
		Innovations:            innovations,
		YoungBonusAgeThreshold: config.Stagnation.YoungAgeThreshold,
		YoungScoreBonus:        config.Stagnation.YoungScoreBonus,
		OldAgeThreshold:        config.Stagnation.OldAgeThreshold,
		OldAgePenalty:          config.Stagnation.OldAgePenalty,
		SurvivalRate:           config.Reproduction.SurvivalRate,
		index:                  make(map[int]*Genome),
		nextGenomeID:           1,
		nextSpeciesID:          1,
	}
}

// Size returns the population size fixed at construction.
func (p *Population) Size() int {
	return p.size
}

// Get returns the genome at position i of the current ordering.
func (p *Population) Get(i int) *Genome {
	return p.Genomes[i]
}

// Genome looks a member up by ID.
func (p *Population) Genome(id int) (*Genome, bool) {
	g, ok := p.index[id]
	return g, ok
}

// Contains reports whether a genome with the given ID is a current member.
func (p *Population) Contains(id int) bool {
	_, ok := p.index[id]
	return ok
}

// Clear removes every genome. Species are left untouched.
func (p *Population) Clear() {
	p.Genomes = p.Genomes[:0:0]
	p.index = make(map[int]*Genome)
}

// AddAll appends genomes to the population.
func (p *Population) AddAll(genomes []*Genome) {
	for _, g := range genomes {
		p.Genomes = append(p.Genomes, g)
		if g != nil {
			p.index[g.ID] = g
		}
	}
}

// Sort orders the genomes best first by raw score.
func (p *Population) Sort(cmp Comparator) {
	sort.SliceStable(p.Genomes, func(i, j int) bool {
		return cmp.LessGenome(p.Genomes[i], p.Genomes[j])
	})
}

// AssignGenomeID issues the next unique genome ID.
func (p *Population) AssignGenomeID() int {
	id := p.nextGenomeID
	p.nextGenomeID++
	return id
}

// AssignSpeciesID issues the next unique species ID.
func (p *Population) AssignSpeciesID() int {
	id := p.nextSpeciesID
	p.nextSpeciesID++
	return id
}

// RemoveSpecies deletes a species, keeping the order of the others.
func (p *Population) RemoveSpecies(s *Species) {
	for i, sp := range p.Species {
		if sp == s {
			p.Species = append(p.Species[:i], p.Species[i+1:]...)
			return
		}
	}
}

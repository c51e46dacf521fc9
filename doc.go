// Package neat trains neural networks with NeuroEvolution of Augmenting
// Topologies (NEAT).
//
// NEAT evolves both the weights and the structure of networks. Genomes are
// grouped into species by compatibility distance, scores are shared inside
// each species, and every generation is bred from the species in proportion
// to their shared scores.
//
// The module is split into three packages:
//
//   - neat holds genomes, species, the population, the innovation registry and configuration.
//   - neat/nn decodes genomes into executable networks.
//   - neat/train runs the generational loop.
//
// Basic usage:
//
//	config, err := neat.LoadConfig("path/to/config")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	score := train.NewScoreFunc(func(net *nn.Network) float64 {
//		out, _ := net.Compute([]float64{1, 0})
//		return out[0]
//	}, false)
//
//	trainer, err := train.New(score, 2, 1, config.Neat.PopSize, train.WithConfig(config))
//	if err != nil {
//		log.Fatalf("Error creating trainer: %v", err)
//	}
//
//	for trainer.Generation() < 100 && trainer.Error() < 0.99 {
//		trainer.Iteration()
//	}
//	best := trainer.Method()
package neat

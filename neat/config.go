package neat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// ErrConfiguration is wrapped by every error caused by an invalid run setup:
// bad config values, an empty population, or genomes of mismatched shape.
var ErrConfiguration = errors.New("configuration error")

// Config stores the configuration parameters for a NEAT training run.
type Config struct {
	Neat         NeatConfig         `yaml:"neat"`
	Genome       GenomeConfig       `yaml:"genome"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	SpeciesSet   SpeciesSetConfig   `yaml:"species_set"`
	Stagnation   StagnationConfig   `yaml:"stagnation"`
}

// NeatConfig holds the shape of the run.
type NeatConfig struct {
	PopSize     int `ini:"pop_size" yaml:"pop_size"`
	InputCount  int `ini:"input_count" yaml:"input_count"`
	OutputCount int `ini:"output_count" yaml:"output_count"`
}

// GenomeConfig selects how genomes are decoded into networks.
type GenomeConfig struct {
	Activation  string `ini:"activation" yaml:"activation"`
	Aggregation string `ini:"aggregation" yaml:"aggregation"`
}

// MutationConfig holds the policy parameters handed to the genome operators.
type MutationConfig struct {
	MutationRate              float64 `ini:"mutation_rate" yaml:"mutation_rate"`
	ProbabilityWeightReplaced float64 `ini:"probability_weight_replaced" yaml:"probability_weight_replaced"`
	MaxWeightPerturbation     float64 `ini:"max_weight_perturbation" yaml:"max_weight_perturbation"`
	ChanceAddNode             float64 `ini:"chance_add_node" yaml:"chance_add_node"`
	ChanceAddLink             float64 `ini:"chance_add_link" yaml:"chance_add_link"`
	ChanceAddRecurrentLink    float64 `ini:"chance_add_recurrent_link" yaml:"chance_add_recurrent_link"`
	NumTrysToFindOldLink      int     `ini:"num_trys_to_find_old_link" yaml:"num_trys_to_find_old_link"`
	NumTrysToFindLoopedLink   int     `ini:"num_trys_to_find_looped_link" yaml:"num_trys_to_find_looped_link"`
	NumAddLinkAttempts        int     `ini:"num_add_link_attempts" yaml:"num_add_link_attempts"`
	MaxPermittedNeurons       int     `ini:"max_permitted_neurons" yaml:"max_permitted_neurons"`
	// Relative weights of mutate_weights, add_node, add_link, adjust_curve, remove_link.
	OperatorWeights []float64 `ini:"operator_weights" delim:" " yaml:"operator_weights"`
}

// ReproductionConfig holds parameters related to reproduction.
type ReproductionConfig struct {
	CrossoverRate  float64 `ini:"crossover_rate" yaml:"crossover_rate"`
	SurvivalRate   float64 `ini:"survival_rate" yaml:"survival_rate"`
	TournamentSize int     `ini:"tournament_size" yaml:"tournament_size"` // 0 means pop_size / 5
}

// SpeciesSetConfig holds parameters related to speciation.
type SpeciesSetConfig struct {
	CompatibilityThreshold float64 `ini:"compatibility_threshold" yaml:"compatibility_threshold"`
	MaxSpecies             int     `ini:"max_species" yaml:"max_species"` // < 1 disables threshold adaptation
	ExcessCoefficient      float64 `ini:"excess_coefficient" yaml:"excess_coefficient"`
	DisjointCoefficient    float64 `ini:"disjoint_coefficient" yaml:"disjoint_coefficient"`
	MatchedCoefficient     float64 `ini:"matched_coefficient" yaml:"matched_coefficient"`
}

// StagnationConfig holds the age and stagnation policy of species.
type StagnationConfig struct {
	GensAllowedNoImprovement int     `ini:"gens_allowed_no_improvement" yaml:"gens_allowed_no_improvement"`
	YoungAgeThreshold        int     `ini:"young_age_threshold" yaml:"young_age_threshold"`
	YoungScoreBonus          float64 `ini:"young_score_bonus" yaml:"young_score_bonus"`
	OldAgeThreshold          int     `ini:"old_age_threshold" yaml:"old_age_threshold"`
	OldAgePenalty            float64 `ini:"old_age_penalty" yaml:"old_age_penalty"`
}

// DefaultConfig returns the stock parameter set. LoadConfig overlays a file on top of it.
func DefaultConfig() *Config {
	return &Config{
		Neat: NeatConfig{PopSize: 150},
		Genome: GenomeConfig{
			Activation:  "sigmoid",
			Aggregation: "sum",
		},
		Mutation: MutationConfig{
			MutationRate:              0.2,
			ProbabilityWeightReplaced: 0.1,
			MaxWeightPerturbation:     0.5,
			ChanceAddNode:             0.04,
			ChanceAddLink:             0.07,
			ChanceAddRecurrentLink:    0.05,
			NumTrysToFindOldLink:      5,
			NumTrysToFindLoopedLink:   5,
			NumAddLinkAttempts:        5,
			MaxPermittedNeurons:       100,
			OperatorWeights:           []float64{0.988, 0.001, 0.01, 0.0, 0.001},
		},
		Reproduction: ReproductionConfig{
			CrossoverRate: 0.7,
			SurvivalRate:  0.2,
		},
		SpeciesSet: SpeciesSetConfig{
			CompatibilityThreshold: 0.26,
			ExcessCoefficient:      1.0,
			DisjointCoefficient:    1.0,
			MatchedCoefficient:     0.4,
		},
		Stagnation: StagnationConfig{
			GensAllowedNoImprovement: 15,
			YoungAgeThreshold:        10,
			YoungScoreBonus:          0.3,
			OldAgeThreshold:          50,
			OldAgePenalty:            0.3,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file, or a YAML file
// when the extension is .yaml or .yml. Keys missing from the file keep their
// DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		raw, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
		}
		if err := yaml.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
	default:
		if err := loadINI(filePath, config); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadINI(filePath string, config *Config) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	sections := []struct {
		name   string
		target interface{}
	}{
		{"NEAT", &config.Neat},
		{"DefaultGenome", &config.Genome},
		{"Mutation", &config.Mutation},
		{"Reproduction", &config.Reproduction},
		{"SpeciesSet", &config.SpeciesSet},
		{"Stagnation", &config.Stagnation},
	}
	for _, s := range sections {
		if !cfg.HasSection(s.name) {
			continue
		}
		if err := cfg.Section(s.name).MapTo(s.target); err != nil {
			return fmt.Errorf("failed to map [%s] section: %w", s.name, err)
		}
	}

	config.Genome.Activation = cleanIniString(config.Genome.Activation)
	config.Genome.Aggregation = cleanIniString(config.Genome.Aggregation)
	return nil
}

// Validate checks every parameter for a usable value.
func (c *Config) Validate() error {
	if c.Neat.PopSize < 0 {
		return configErrorf("pop_size cannot be negative")
	}
	if c.Neat.InputCount < 0 || c.Neat.OutputCount < 0 {
		return configErrorf("input_count and output_count cannot be negative")
	}
	if _, err := GetActivation(c.Genome.Activation); err != nil {
		return configErrorf("%v", err)
	}
	if _, err := GetAggregation(c.Genome.Aggregation); err != nil {
		return configErrorf("%v", err)
	}

	m := c.Mutation
	probabilities := map[string]float64{
		"mutation_rate":               m.MutationRate,
		"probability_weight_replaced": m.ProbabilityWeightReplaced,
		"chance_add_node":             m.ChanceAddNode,
		"chance_add_link":             m.ChanceAddLink,
		"chance_add_recurrent_link":   m.ChanceAddRecurrentLink,
		"crossover_rate":              c.Reproduction.CrossoverRate,
		"survival_rate":               c.Reproduction.SurvivalRate,
	}
	for name, p := range probabilities {
		if p < 0 || p > 1 {
			return configErrorf("%s must be between 0 and 1", name)
		}
	}
	if m.MaxWeightPerturbation < 0 {
		return configErrorf("max_weight_perturbation cannot be negative")
	}
	if m.NumTrysToFindOldLink < 0 || m.NumTrysToFindLoopedLink < 0 || m.NumAddLinkAttempts < 0 {
		return configErrorf("attempt limits cannot be negative")
	}
	if m.MaxPermittedNeurons < 0 {
		return configErrorf("max_permitted_neurons cannot be negative")
	}
	if len(m.OperatorWeights) != 5 {
		return configErrorf("operator_weights needs 5 entries, got %d", len(m.OperatorWeights))
	}
	total := 0.0
	for _, w := range m.OperatorWeights {
		if w < 0 {
			return configErrorf("operator_weights cannot be negative")
		}
		total += w
	}
	if total <= 0 {
		return configErrorf("operator_weights must not all be zero")
	}

	if c.Reproduction.TournamentSize < 0 {
		return configErrorf("tournament_size cannot be negative")
	}

	s := c.SpeciesSet
	if s.ExcessCoefficient < 0 || s.DisjointCoefficient < 0 || s.MatchedCoefficient < 0 {
		return configErrorf("compatibility coefficients cannot be negative")
	}

	st := c.Stagnation
	if st.GensAllowedNoImprovement < 0 {
		return configErrorf("gens_allowed_no_improvement cannot be negative")
	}
	if st.YoungScoreBonus < 0 || st.OldAgePenalty < 0 {
		return configErrorf("young_score_bonus and old_age_penalty cannot be negative")
	}
	return nil
}

// Coefficients returns the compatibility distance weights of the species set.
func (s SpeciesSetConfig) Coefficients() CompatibilityCoefficients {
	return CompatibilityCoefficients{
		Excess:   s.ExcessCoefficient,
		Disjoint: s.DisjointCoefficient,
		Matched:  s.MatchedCoefficient,
	}
}

func configErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

package train

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Offspring methods.
const (
	offspringElite      = "elite"
	offspringClone      = "clone"
	offspringCrossover  = "crossover"
	offspringTournament = "tournament"
)

// Extinction reasons.
const (
	extinctLeaderLost = "leader_lost"
	extinctStagnant   = "stagnant"
)

// Metrics exposes the progress of a training run to Prometheus.
type Metrics struct {
	Generation             prometheus.Gauge
	BestScore              prometheus.Gauge
	Species                prometheus.Gauge
	CompatibilityThreshold prometheus.Gauge

	// Labels: method (elite, clone, crossover, tournament)
	Offspring *prometheus.CounterVec
	// Labels: operator (mutate_weights, add_node, add_link, adjust_curve, remove_link)
	Mutations *prometheus.CounterVec
	// Labels: reason (leader_lost, stagnant)
	Extinctions *prometheus.CounterVec
}

// NewMetrics creates the run metrics and registers them on reg. A nil
// registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Generation: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "neat",
			Subsystem: "trainer",
			Name:      "generation",
			Help:      "Current generation of the training run",
		}),
		BestScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "neat",
			Subsystem: "trainer",
			Name:      "best_score",
			Help:      "Best score seen since the run started",
		}),
		Species: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "neat",
			Subsystem: "trainer",
			Name:      "species",
			Help:      "Number of species after speciation",
		}),
		CompatibilityThreshold: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "neat",
			Subsystem: "trainer",
			Name:      "compatibility_threshold",
			Help:      "Current compatibility distance threshold",
		}),
		Offspring: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neat",
			Subsystem: "trainer",
			Name:      "offspring_total",
			Help:      "Genomes placed in a new generation, by method",
		}, []string{"method"}),
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neat",
			Subsystem: "trainer",
			Name:      "mutations_total",
			Help:      "Mutation operators chosen, by operator",
		}, []string{"operator"}),
		Extinctions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neat",
			Subsystem: "trainer",
			Name:      "extinctions_total",
			Help:      "Species removed, by reason",
		}, []string{"reason"}),
	}
}

package cmd

import (
	"math"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/epinet-sim/epinet-sim/graphio"
	"github.com/epinet-sim/epinet-sim/sim"
	"github.com/epinet-sim/epinet-sim/sim/trace"
)

var (
	// CLI flags shared by the simulation subcommands
	logLevel         string   // Log verbosity level
	graphPath        string   // Edge-list file describing the contact network
	graphDirected    bool     // Treat edges as directed (one-way transmission)
	graphSeparator   string   // Edge-list field separator
	model            string   // Compartment model (sir or sis)
	tau              float64  // Per-contact transmission rate
	gamma            float64  // Per-node recovery rate
	rho              float64  // Initial infected fraction (negative = unset)
	initialInfecteds []string // Explicit initial infected node labels
	tmax             float64  // Simulation horizon
	seed             int64    // Master seed for the run RNG
	iterations       int      // Number of independent runs
	parallelism      int      // Concurrent runs (0 = GOMAXPROCS)
	outputPath       string   // JSON output destination ("-" = stdout)
	fullData         bool     // Include final per-node states in the output
	traceLevel       string   // Transition trace level
	scenarioFile     string   // YAML scenario preset file
	scenarioName     string   // Scenario preset name
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "epinet-sim",
	Short: "Event-driven simulator for epidemics on contact networks",
}

// runCmd executes stochastic simulation runs using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the stochastic epidemic simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		applyScenarioPreset()

		net, labels := loadNetwork()
		m, err := sim.ParseModel(model)
		if err != nil {
			logrus.Fatalf("Invalid model: %v", err)
		}
		cfg := buildRunConfig(labels)

		logrus.Infof("Starting %s simulation: N=%d, links=%d, tau=%g, gamma=%g, tmax=%g, iterations=%d",
			m, net.N(), net.NumLinks(), cfg.Tau, cfg.Gamma, cfg.TMax, iterations)

		if iterations > 1 {
			ens, err := sim.RunEnsemble(net, m, cfg, sim.EnsembleConfig{
				Iterations:  iterations,
				Parallelism: parallelism,
			})
			if err != nil {
				logrus.Fatalf("Ensemble failed: %v", err)
			}
			if err := writeJSON(outputPath, ensembleOutput(ens, labels)); err != nil {
				logrus.Fatalf("Writing output: %v", err)
			}
			return
		}

		var res *sim.Result
		switch m {
		case sim.ModelSIS:
			res, err = sim.FastSIS(net, cfg)
		default:
			res, err = sim.FastSIR(net, cfg)
		}
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		res.Metrics.Print()
		if err := writeJSON(outputPath, runOutput(res, labels)); err != nil {
			logrus.Fatalf("Writing output: %v", err)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// applyScenarioPreset overlays a named YAML scenario onto the flag values.
func applyScenarioPreset() {
	if scenarioFile == "" || scenarioName == "" {
		return
	}
	sc, err := GetScenario(scenarioFile, scenarioName)
	if err != nil {
		logrus.Fatalf("Loading scenario: %v", err)
	}
	logrus.Infof("Using preset scenario %q", scenarioName)
	model = sc.Model
	tau = sc.Tau
	gamma = sc.Gamma
	if sc.Rho != nil {
		rho = *sc.Rho
	}
	tmax = sc.TMax
}

func loadNetwork() (*sim.Network, []string) {
	if graphPath == "" {
		logrus.Fatalf("No contact network provided. Use --graph.")
	}
	sep := ','
	if graphSeparator != "" {
		sep = rune(graphSeparator[0])
	}
	net, labels, err := graphio.ReadEdgeList(graphPath, graphio.Options{Comma: sep, Directed: graphDirected})
	if err != nil {
		logrus.Fatalf("Loading network: %v", err)
	}
	return net, labels
}

// buildRunConfig assembles the RunConfig from the flag values, resolving
// initial-infected labels to node IDs.
func buildRunConfig(labels []string) sim.RunConfig {
	cfg := sim.RunConfig{
		Tau:            tau,
		Gamma:          gamma,
		TMax:           tmax,
		Seed:           seed,
		ReturnFullData: fullData,
		Trace:          trace.Config{Level: trace.Level(traceLevel)},
	}
	if rho >= 0 {
		r := rho
		cfg.Rho = &r
	}
	if len(initialInfecteds) > 0 {
		idOf := make(map[string]sim.NodeID, len(labels))
		for i, l := range labels {
			idOf[l] = sim.NodeID(i)
		}
		ids := make([]sim.NodeID, 0, len(initialInfecteds))
		for _, label := range initialInfecteds {
			label = strings.TrimSpace(label)
			id, ok := idOf[label]
			if !ok {
				logrus.Fatalf("Initial infected node %q not in network", label)
			}
			ids = append(ids, id)
		}
		cfg.InitialInfecteds = ids
	}
	return cfg
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// contact network
	runCmd.Flags().StringVar(&graphPath, "graph", "", "Path to edge-list file (src,dst[,weight])")
	runCmd.Flags().BoolVar(&graphDirected, "directed", false, "Treat edges as directed")
	runCmd.Flags().StringVar(&graphSeparator, "sep", ",", "Edge-list field separator")

	// epidemic parameters
	runCmd.Flags().StringVar(&model, "model", "sir", "Compartment model (sir or sis)")
	runCmd.Flags().Float64Var(&tau, "tau", 1.0, "Per-contact transmission rate")
	runCmd.Flags().Float64Var(&gamma, "gamma", 1.0, "Per-node recovery rate")
	runCmd.Flags().Float64Var(&rho, "rho", -1, "Initial infected fraction (default: one random node)")
	runCmd.Flags().StringSliceVar(&initialInfecteds, "initial-infecteds", nil, "Comma-separated labels of initially infected nodes")
	runCmd.Flags().Float64Var(&tmax, "tmax", math.Inf(1), "Simulation horizon (SIS requires a finite value)")

	// run control
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the run RNG")
	runCmd.Flags().IntVar(&iterations, "iterations", 1, "Number of independent runs")
	runCmd.Flags().IntVar(&parallelism, "parallelism", 0, "Concurrent runs (0 = GOMAXPROCS)")
	runCmd.Flags().StringVar(&outputPath, "output", "-", "JSON output path (- = stdout)")
	runCmd.Flags().BoolVar(&fullData, "full", false, "Include final per-node states in the output")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Transition trace level (none, transitions)")

	// scenario presets
	runCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "YAML scenario preset file")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Scenario preset name")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}

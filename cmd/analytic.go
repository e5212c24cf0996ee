package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/epinet-sim/epinet-sim/analytic"
	"github.com/epinet-sim/epinet-sim/sim"
)

var (
	approx     string  // ODE approximation family
	gridTMin   float64 // Integration grid start
	gridTMax   float64 // Integration grid end
	gridN      int     // Integration grid point count
	population float64 // Population size for the graph-free meanfield mode
	meanDegree float64 // Contact count for the graph-free meanfield mode
)

// analyticCmd integrates an ODE approximation of the epidemic instead of
// simulating it.
var analyticCmd = &cobra.Command{
	Use:   "analytic",
	Short: "Integrate a deterministic ODE approximation of the epidemic",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		applyScenarioPreset()
		if scenarioFile != "" && scenarioName != "" {
			gridTMax = tmax
		}

		m, err := sim.ParseModel(model)
		if err != nil {
			logrus.Fatalf("Invalid model: %v", err)
		}
		grid := analytic.Grid{TMin: gridTMin, TMax: gridTMax, Count: gridN}

		var traj *sim.Trajectory
		if graphPath == "" {
			// Graph-free mode: the homogeneous meanfield only needs N and
			// the contact count.
			traj, err = integrateMeanfield(m, grid)
		} else {
			var net *sim.Network
			net, _ = loadNetwork()
			traj, err = integrateApprox(net, m, grid)
		}
		if err != nil {
			logrus.Fatalf("Integration failed: %v", err)
		}
		if err := writeJSON(outputPath, trajectoryOutput(traj)); err != nil {
			logrus.Fatalf("Writing output: %v", err)
		}
	},
}

// integrateMeanfield handles the graph-free parameterization via --n and
// --mean-degree. Only the homogeneous meanfield family works without a
// degree distribution.
func integrateMeanfield(m sim.Model, grid analytic.Grid) (*sim.Trajectory, error) {
	if approx != "meanfield" {
		logrus.Fatalf("The %s approximation needs a contact network. Use --graph.", approx)
	}
	if population <= 0 {
		logrus.Fatalf("No contact network provided. Use --graph, or --n with --mean-degree.")
	}
	r := 1.0 / population
	if rho >= 0 {
		r = rho
	}
	i0 := r * population
	s0 := population - i0
	if m == sim.ModelSIS {
		return analytic.SISHomogeneousMeanfield(s0, i0, meanDegree, tau, gamma, grid)
	}
	return analytic.SIRHomogeneousMeanfield(s0, i0, 0, meanDegree, tau, gamma, grid)
}

// integrateApprox dispatches on the approximation family and model.
func integrateApprox(net *sim.Network, m sim.Model, grid analytic.Grid) (*sim.Trajectory, error) {
	var rhoPtr *float64
	if rho >= 0 {
		r := rho
		rhoPtr = &r
	}
	switch approx {
	case "meanfield":
		if m == sim.ModelSIS {
			return analytic.SISHomogeneousMeanfieldFromGraph(net, tau, gamma, rhoPtr, grid)
		}
		return analytic.SIRHomogeneousMeanfieldFromGraph(net, tau, gamma, rhoPtr, grid)
	case "pairwise":
		if m == sim.ModelSIS {
			return analytic.SISHomogeneousPairwiseFromGraph(net, tau, gamma, rhoPtr, grid)
		}
		return analytic.SIRHomogeneousPairwiseFromGraph(net, tau, gamma, rhoPtr, grid)
	case "heterogeneous":
		if m == sim.ModelSIS {
			return analytic.SISHeterogeneousMeanfieldFromGraph(net, tau, gamma, rhoPtr, grid)
		}
		return analytic.SIRHeterogeneousMeanfieldFromGraph(net, tau, gamma, rhoPtr, grid)
	case "ebcm":
		if m == sim.ModelSIS {
			logrus.Fatalf("The edge-based compartmental approximation supports SIR only")
		}
		return analytic.EBCMFromGraph(net, tau, gamma, rhoPtr, grid)
	default:
		logrus.Fatalf("Unknown approximation %q (want meanfield, pairwise, heterogeneous or ebcm)", approx)
		return nil, nil
	}
}

func init() {
	analyticCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	analyticCmd.Flags().StringVar(&graphPath, "graph", "", "Path to edge-list file (src,dst[,weight])")
	analyticCmd.Flags().BoolVar(&graphDirected, "directed", false, "Treat edges as directed")
	analyticCmd.Flags().StringVar(&graphSeparator, "sep", ",", "Edge-list field separator")

	analyticCmd.Flags().StringVar(&model, "model", "sir", "Compartment model (sir or sis)")
	analyticCmd.Flags().Float64Var(&tau, "tau", 1.0, "Per-contact transmission rate")
	analyticCmd.Flags().Float64Var(&gamma, "gamma", 1.0, "Per-node recovery rate")
	analyticCmd.Flags().Float64Var(&rho, "rho", -1, "Initial infected fraction (default 1/N)")

	analyticCmd.Flags().StringVar(&approx, "approx", "meanfield", "Approximation family (meanfield, pairwise, heterogeneous, ebcm)")
	analyticCmd.Flags().Float64Var(&population, "n", 0, "Population size (graph-free meanfield mode)")
	analyticCmd.Flags().Float64Var(&meanDegree, "mean-degree", 0, "Contact count per node (graph-free meanfield mode)")
	analyticCmd.Flags().Float64Var(&gridTMin, "tmin", 0, "Integration grid start")
	analyticCmd.Flags().Float64Var(&gridTMax, "tmax", 10, "Integration grid end")
	analyticCmd.Flags().IntVar(&gridN, "tcount", 1001, "Integration grid point count")
	analyticCmd.Flags().StringVar(&outputPath, "output", "-", "JSON output path (- = stdout)")

	analyticCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "YAML scenario preset file")
	analyticCmd.Flags().StringVar(&scenarioName, "scenario", "", "Scenario preset name")

	rootCmd.AddCommand(analyticCmd)
}

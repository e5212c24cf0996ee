package sim

import (
	"fmt"
	"runtime"
	"sync"
)

// EnsembleConfig controls a batch of independent runs of one scenario.
type EnsembleConfig struct {
	// Iterations is the number of independent runs. Each run gets its own
	// seed derived from the scenario seed (see IterationSeed), its own node
	// state store, event queue, and RNG.
	Iterations int

	// Parallelism bounds the number of concurrently executing runs.
	// Zero or negative means GOMAXPROCS. The network is immutable and shared
	// by reference; no synchronization happens between runs, and the result
	// is independent of the parallelism level.
	Parallelism int

	// ReportTimes is the common ascending grid each run is subsampled onto
	// for the ensemble mean. Nil derives a uniform 101-point grid spanning
	// the longest observed run.
	ReportTimes []float64
}

// EnsembleResult holds the per-run results and the ensemble mean trajectory
// on the common report grid.
type EnsembleResult struct {
	Runs []*Result

	ReportTimes []float64
	MeanS       []float64
	MeanI       []float64
	MeanR       []float64
}

// RunEnsemble executes cfg Iterations times with derived per-iteration seeds
// and averages the trajectories on a common report grid. Iterations are
// embarrassingly parallel; the first run error, if any, is returned.
func RunEnsemble(net *Network, model Model, cfg RunConfig, ens EnsembleConfig) (*EnsembleResult, error) {
	if ens.Iterations < 1 {
		return nil, fmt.Errorf("%w: iterations must be at least 1, got %d", ErrInvalidParameter, ens.Iterations)
	}
	if err := cfg.Validate(net, model); err != nil {
		return nil, err
	}

	workers := ens.Parallelism
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > ens.Iterations {
		workers = ens.Iterations
	}

	runs := make([]*Result, ens.Iterations)
	errs := make([]error, ens.Iterations)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				runCfg := cfg
				runCfg.Seed = IterationSeed(cfg.Seed, i)
				switch model {
				case ModelSIS:
					runs[i], errs[i] = FastSIS(net, runCfg)
				default:
					runs[i], errs[i] = FastSIR(net, runCfg)
				}
			}
		}()
	}
	for i := 0; i < ens.Iterations; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	grid := ens.ReportTimes
	if grid == nil {
		grid = defaultReportGrid(runs)
	}

	res := &EnsembleResult{
		Runs:        runs,
		ReportTimes: grid,
		MeanS:       make([]float64, len(grid)),
		MeanI:       make([]float64, len(grid)),
		MeanR:       make([]float64, len(grid)),
	}
	for _, run := range runs {
		sub, err := run.Trajectory.Subsample(grid)
		if err != nil {
			return nil, err
		}
		for j := range grid {
			res.MeanS[j] += sub.S[j]
			res.MeanI[j] += sub.I[j]
			res.MeanR[j] += sub.R[j]
		}
	}
	inv := 1.0 / float64(ens.Iterations)
	for j := range grid {
		res.MeanS[j] *= inv
		res.MeanI[j] *= inv
		res.MeanR[j] *= inv
	}
	return res, nil
}

// defaultReportGrid spans [0, tEnd] with 101 uniform points, where tEnd is
// the latest snapshot across the ensemble. Degenerate ensembles (every run a
// single t=0 snapshot) collapse to the single report time 0.
func defaultReportGrid(runs []*Result) []float64 {
	tEnd := 0.0
	for _, run := range runs {
		if t, _, _, _ := run.Trajectory.Final(); t > tEnd {
			tEnd = t
		}
	}
	if tEnd == 0 {
		return []float64{0}
	}
	const points = 101
	grid := make([]float64, points)
	for i := 1; i < points-1; i++ {
		grid[i] = tEnd * float64(i) / float64(points-1)
	}
	grid[points-1] = tEnd
	return grid
}

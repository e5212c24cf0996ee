package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/epinet-sim/epinet-sim/sim"
	"github.com/epinet-sim/epinet-sim/sim/trace"
)

// JSON shapes for the CLI output. Node references use the original edge-list
// labels rather than the internal dense IDs.

type trajectoryJSON struct {
	T []float64 `json:"t"`
	S []float64 `json:"S"`
	I []float64 `json:"I"`
	R []float64 `json:"R"`
}

type transitionJSON struct {
	Time   float64 `json:"time"`
	Kind   string  `json:"kind"`
	Node   string  `json:"node"`
	Source string  `json:"source,omitempty"`
}

type runJSON struct {
	RunID       string            `json:"run_id"`
	Model       string            `json:"model"`
	Seed        int64             `json:"seed"`
	AttackRate  float64           `json:"attack_rate"`
	Trajectory  trajectoryJSON    `json:"trajectory"`
	FinalStatus map[string]string `json:"final_status,omitempty"`
	Transitions []transitionJSON  `json:"transitions,omitempty"`
}

type ensembleJSON struct {
	Iterations  int            `json:"iterations"`
	ReportTimes []float64      `json:"report_times"`
	Mean        trajectoryJSON `json:"mean"`
	Runs        []runJSON      `json:"runs"`
}

func trajectoryOutput(traj *sim.Trajectory) trajectoryJSON {
	return trajectoryJSON{T: traj.T, S: traj.S, I: traj.I, R: traj.R}
}

func runOutput(res *sim.Result, labels []string) runJSON {
	out := runJSON{
		RunID:      res.RunID.String(),
		Model:      res.Model.String(),
		Seed:       res.Seed,
		AttackRate: res.AttackRate(),
		Trajectory: trajectoryOutput(res.Trajectory),
	}
	if res.FinalStatus != nil {
		out.FinalStatus = make(map[string]string, len(res.FinalStatus))
		for id, c := range res.FinalStatus {
			out.FinalStatus[labels[id]] = c.String()
		}
	}
	if res.Trace != nil {
		out.Transitions = make([]transitionJSON, 0, len(res.Trace.Transitions))
		for _, rec := range res.Trace.Transitions {
			tj := transitionJSON{Time: rec.Time, Kind: string(rec.Kind), Node: labels[rec.Node]}
			if rec.Source != trace.SeededSource {
				tj.Source = labels[rec.Source]
			}
			out.Transitions = append(out.Transitions, tj)
		}
	}
	return out
}

func ensembleOutput(ens *sim.EnsembleResult, labels []string) ensembleJSON {
	out := ensembleJSON{
		Iterations:  len(ens.Runs),
		ReportTimes: ens.ReportTimes,
		Mean:        trajectoryJSON{T: ens.ReportTimes, S: ens.MeanS, I: ens.MeanI, R: ens.MeanR},
		Runs:        make([]runJSON, 0, len(ens.Runs)),
	}
	for _, res := range ens.Runs {
		out.Runs = append(out.Runs, runOutput(res, labels))
	}
	return out
}

// writeJSON encodes v as indented JSON to path; "-" writes to stdout.
func writeJSON(path string, v any) error {
	w := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

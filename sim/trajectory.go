package sim

import "fmt"

// Trajectory is the time series of compartment counts, one snapshot per
// accepted state transition plus the initial snapshot at t=0. Counts are
// carried as float64 so that simulated and analytic trajectories share a
// shape. Times are strictly non-decreasing, and S+I+R equals the node count
// at every index. For SIS runs R is identically zero.
type Trajectory struct {
	T []float64
	S []float64
	I []float64
	R []float64
}

func newTrajectory(sizeHint int) *Trajectory {
	return &Trajectory{
		T: make([]float64, 0, sizeHint),
		S: make([]float64, 0, sizeHint),
		I: make([]float64, 0, sizeHint),
		R: make([]float64, 0, sizeHint),
	}
}

// append records one snapshot. Counts come from the state store's running
// totals: an O(1) update, never a rescan.
func (tr *Trajectory) append(t float64, s, i, r int) {
	tr.T = append(tr.T, t)
	tr.S = append(tr.S, float64(s))
	tr.I = append(tr.I, float64(i))
	tr.R = append(tr.R, float64(r))
}

// Len returns the number of snapshots.
func (tr *Trajectory) Len() int { return len(tr.T) }

// Final returns the last snapshot.
func (tr *Trajectory) Final() (t, s, i, r float64) {
	last := len(tr.T) - 1
	return tr.T[last], tr.S[last], tr.I[last], tr.R[last]
}

// Subsample returns the trajectory evaluated at the given ascending report
// times: each report time takes the counts of the latest snapshot at or
// before it, and the system freezes in its final state past the last
// snapshot. A report time before the first snapshot is an error.
func (tr *Trajectory) Subsample(reportTimes []float64) (*Trajectory, error) {
	if tr.Len() == 0 {
		return nil, fmt.Errorf("%w: cannot subsample an empty trajectory", ErrInvalidParameter)
	}
	out := &Trajectory{
		T: append([]float64(nil), reportTimes...),
		S: make([]float64, len(reportTimes)),
		I: make([]float64, len(reportTimes)),
		R: make([]float64, len(reportTimes)),
	}

	obs := 0
	var s, i, r float64
	prev := tr.T[0]
	for ri, rt := range reportTimes {
		if rt < tr.T[0] {
			return nil, fmt.Errorf("%w: report time %g precedes first observation %g", ErrInvalidParameter, rt, tr.T[0])
		}
		if rt < prev {
			return nil, fmt.Errorf("%w: report times must be ascending", ErrInvalidParameter)
		}
		prev = rt
		for obs < tr.Len() && tr.T[obs] <= rt {
			s, i, r = tr.S[obs], tr.I[obs], tr.R[obs]
			obs++
		}
		out.S[ri], out.I[ri], out.R[ri] = s, i, r
	}
	return out, nil
}

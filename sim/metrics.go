// Tracks run-wide counters for final reporting.

package sim

import "fmt"

// Metrics aggregates statistics about one run for final reporting.
// All counters are updated incrementally as events are processed.
type Metrics struct {
	InitialInfections     int // nodes seeded Infected at t=0
	TransmissionsAccepted int // transmission events that infected their target
	RecoveriesAccepted    int // recovery events applied (reversions in SIS)
	StaleDiscards         int // events discarded by revalidation on pop

	PeakPrevalence int     // max simultaneous infected
	PeakTime       float64 // time the peak was first reached
	EndTime        float64 // clock when the run stopped
}

// observePeak updates the prevalence peak after an accepted transition.
func (m *Metrics) observePeak(t float64, prevalence int) {
	if prevalence > m.PeakPrevalence {
		m.PeakPrevalence = prevalence
		m.PeakTime = t
	}
}

// Print displays aggregated metrics at the end of a run.
func (m *Metrics) Print() {
	fmt.Println("=== Epidemic Run Metrics ===")
	fmt.Printf("Initial infections   : %d\n", m.InitialInfections)
	fmt.Printf("Transmissions        : %d\n", m.TransmissionsAccepted)
	fmt.Printf("Recoveries           : %d\n", m.RecoveriesAccepted)
	fmt.Printf("Stale events dropped : %d\n", m.StaleDiscards)
	fmt.Printf("Peak prevalence      : %d at t=%.4f\n", m.PeakPrevalence, m.PeakTime)
	fmt.Printf("End time             : %.4f\n", m.EndTime)
}

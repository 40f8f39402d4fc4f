// Package builtin implements the shell's two toy demo commands,
// `schedule` and `vfs`, ported from the C original's scanf-driven
// process-scheduling and in-memory filesystem simulators into
// arguments a pipeline segment can pass directly, since this shell's
// built-ins run synchronously against the segment's own argv rather
// than reading further lines from stdin mid-command.
package builtin

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Process is one simulated job: its arrival time and CPU burst length,
// both in arbitrary time units.
type Process struct {
	PID        int
	Arrival    int
	Burst      int
	Remaining  int
	Completion int
	Turnaround int
	Waiting    int
}

// ParseProcesses reads "arrival:burst" specs, one per process, in the
// order `schedule fcfs`/`schedule rr` expect them as trailing
// arguments (e.g. "schedule fcfs 0:5 2:3 4:1").
func ParseProcesses(specs []string) ([]Process, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no processes given (want arrival:burst pairs)")
	}
	procs := make([]Process, len(specs))
	for i, spec := range specs {
		arrival, burst, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("invalid process spec %q, want arrival:burst", spec)
		}
		a, err := strconv.Atoi(arrival)
		if err != nil {
			return nil, fmt.Errorf("invalid arrival time %q: %w", arrival, err)
		}
		b, err := strconv.Atoi(burst)
		if err != nil || b <= 0 {
			return nil, fmt.Errorf("invalid burst time %q", burst)
		}
		procs[i] = Process{PID: i + 1, Arrival: a, Burst: b, Remaining: b}
	}
	return procs, nil
}

// SimulateFCFS runs first-come-first-served scheduling over procs, in
// arrival order, and writes the Gantt chart and per-process stats to w.
func SimulateFCFS(w io.Writer, procs []Process) {
	sort.SliceStable(procs, func(i, j int) bool { return procs[i].Arrival < procs[j].Arrival })
	fmt.Fprintln(w, "=== FCFS Scheduling Simulation ===")
	fmt.Fprint(w, "Gantt Chart: ")

	time := 0
	for i := range procs {
		if time < procs[i].Arrival {
			time = procs[i].Arrival
		}
		fmt.Fprintf(w, "| P%d ", procs[i].PID)
		time += procs[i].Burst
		procs[i].Completion = time
		procs[i].Turnaround = procs[i].Completion - procs[i].Arrival
		procs[i].Waiting = procs[i].Turnaround - procs[i].Burst
	}
	fmt.Fprintln(w, "|")
	printStats(w, procs)
}

// SimulateRR runs round-robin scheduling with the given quantum and
// writes the Gantt chart and per-process stats to w.
func SimulateRR(w io.Writer, procs []Process, quantum int) error {
	if quantum <= 0 {
		return fmt.Errorf("quantum must be > 0")
	}
	fmt.Fprintf(w, "=== Round Robin (Quantum = %d) Scheduling Simulation ===\n", quantum)
	fmt.Fprint(w, "Gantt Chart: ")

	n := len(procs)
	queue := make([]int, 0, n)
	queued := make([]bool, n)
	time, completed := 0, 0

	for completed < n {
		for i := range procs {
			if !queued[i] && procs[i].Arrival <= time && procs[i].Remaining > 0 {
				queue = append(queue, i)
				queued[i] = true
			}
		}
		if len(queue) == 0 {
			fmt.Fprint(w, " idle ")
			time++
			continue
		}
		idx := queue[0]
		queue = queue[1:]
		queued[idx] = false

		run := procs[idx].Remaining
		if run > quantum {
			run = quantum
		}
		for t := 0; t < run; t++ {
			fmt.Fprintf(w, " P%d ", procs[idx].PID)
		}
		time += run
		procs[idx].Remaining -= run

		if procs[idx].Remaining <= 0 {
			procs[idx].Completion = time
			procs[idx].Turnaround = time - procs[idx].Arrival
			procs[idx].Waiting = procs[idx].Turnaround - procs[idx].Burst
			completed++
		} else {
			queue = append(queue, idx)
			queued[idx] = true
		}
	}
	fmt.Fprintln(w, "|")
	printStats(w, procs)
	return nil
}

func printStats(w io.Writer, procs []Process) {
	fmt.Fprintf(w, "%-8s %-12s %-10s %-10s %-10s\n", "PID", "Arrival", "Burst", "Turnaround", "Waiting")
	var totalTAT, totalWT float64
	for _, p := range procs {
		fmt.Fprintf(w, "%-8d %-12d %-10d %-10d %-10d\n", p.PID, p.Arrival, p.Burst, p.Turnaround, p.Waiting)
		totalTAT += float64(p.Turnaround)
		totalWT += float64(p.Waiting)
	}
	n := float64(len(procs))
	fmt.Fprintf(w, "Average Turnaround Time: %.2f\n", totalTAT/n)
	fmt.Fprintf(w, "Average Waiting Time: %.2f\n", totalWT/n)
}

// Schedule dispatches `schedule fcfs <specs...>` or
// `schedule rr <quantum> <specs...>` and writes results to w.
func Schedule(w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: schedule fcfs <arrival:burst>... | schedule rr <quantum> <arrival:burst>...")
	}
	switch args[0] {
	case "fcfs":
		procs, err := ParseProcesses(args[1:])
		if err != nil {
			return err
		}
		SimulateFCFS(w, procs)
		return nil
	case "rr":
		if len(args) < 2 {
			return fmt.Errorf("usage: schedule rr <quantum> <arrival:burst>...")
		}
		quantum, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantum %q: %w", args[1], err)
		}
		procs, err := ParseProcesses(args[2:])
		if err != nil {
			return err
		}
		return SimulateRR(w, procs, quantum)
	default:
		return fmt.Errorf("schedule: unknown mode %q (want fcfs or rr)", args[0])
	}
}

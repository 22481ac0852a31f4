// Package scheduler simulates running a batch of processes on a machine with
// a fixed number of cores, using a pqueue.Queue as the ready queue.
//
// The most urgent ready process is the one with the highest Priority; equal
// priorities go to the lower ID. A process naming DependsOn becomes ready
// only when that process finishes.
//
// The simulation is discrete-event: time jumps from one finish to the next.
// At every instant finishing processes are reported first, in core order,
// then idle cores (lowest index first) take the most urgent ready processes.
//
// Run returns the Started and Finished events in the order they happened and
// also hands each one to an optional observer. Nothing here reads input or
// prints output.
package scheduler

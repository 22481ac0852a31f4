package scheduler_test

import (
	"fmt"

	"github.com/katalvlaran/ordlab/scheduler"
)

// ExampleScheduler_Run runs four processes on two cores; process 4 waits
// for process 2.
func ExampleScheduler_Run() {
	s, _ := scheduler.New(2)
	events, _ := s.Run([]scheduler.Process{
		{ID: 1, Clocks: 3, Priority: 1},
		{ID: 2, Clocks: 2, Priority: 5},
		{ID: 3, Clocks: 1, Priority: 5},
		{ID: 4, Clocks: 2, Priority: 9, DependsOn: 2},
	})
	for _, e := range events {
		fmt.Println(e)
	}
	// Output:
	// process 2 started on core 0 at clock 0
	// process 3 started on core 1 at clock 0
	// process 3 finished on core 1 at clock 1
	// process 1 started on core 1 at clock 1
	// process 2 finished on core 0 at clock 2
	// process 4 started on core 0 at clock 2
	// process 4 finished on core 0 at clock 4
	// process 1 finished on core 1 at clock 4
}

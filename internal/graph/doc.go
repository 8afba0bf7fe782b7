// Package graph is the GraphExecutor: task topology, precedence, the
// source-driven cycle loop, Open/Close fan-out and the stop signal. The
// worker-pool implementation is grounded in the teacher's internal/dag
// executor (ready-channel fan-out, per-task WaitGroup, dependent
// decrement-and-release), adapted from "run the DAG once to completion" to
// "run the DAG once per cycle, forever while keep_running."
package graph

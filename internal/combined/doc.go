// Package combined provides interaction benchmarks that run the queue,
// worker and progress packages together.
//
// These benchmarks are more representative of real pipeline cost than the
// per-package micro-benchmarks: they include goroutine hand-off, parking on
// full/empty queues and the per-item progress check.
package combined

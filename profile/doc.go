// Package profile provides optional runtime profiling for qosasa.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag [Modes] is empty and [Profiler.Start] does nothing.
//
// # Modes
//
//   - allocs:    memory allocations
//   - block:     blocking on synchronization primitives
//   - clock:     wall-clock time
//   - cpu:       CPU time
//   - goroutine: goroutine stacks
//   - heap:      live heap allocations
//   - mem:       memory (heap and allocations)
//   - mutex:     mutex contention
//   - thread:    thread creation
//   - trace:     execution trace
//
// # Usage
//
//	qosasa --pprof-mode=cpu gen php.class Foo:Bar
//	go tool pprof -http=: ~/.cache/qosasa/pprof/cpu.pprof
//
// The tagged build also imports [net/http/pprof], registering its handlers
// on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`

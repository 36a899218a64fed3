// Package sim provides the discrete-event simulation kernel for a
// finite-capacity, multi-source, multi-server queueing network with a
// displacement-based (last-arrived-replaces) overflow discipline.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - request.go: Request identity and the arrival/service-start timestamps it carries.
//   - event.go and calendar.go: Event types and the Calendar that orders them.
//   - buffer.go: the displacement-overflow discipline.
//   - dispatcher.go: the state machine executed on each popped event.
//   - simulator.go: the Kernel that wires everything together and owns the clock.
//
// # Architecture
//
// Sources generate arrivals, Servers perform service, and the Buffer
// holds arrivals that find every Server busy. The Dispatcher is the only
// code that mutates Source/Server/Buffer/Metrics state; it does so in
// response to Events popped from the Calendar, a time-ordered priority
// queue. Every state transition also produces a notification broadcast
// to the registered Observers (see observer.go), the extension point a
// host uses to drive metrics, timelines, or UI queries without coupling
// the kernel to presentation concerns.
//
// # Determinism
//
// Each Source and Server owns an independent pseudo-random stream
// derived from the Kernel's seed (see rng.go). Two Kernels
// built from identical Config values produce bit-identical sequences of
// observer notifications and identical Metrics, regardless of process,
// platform, or how many other Kernels run alongside them.
package sim

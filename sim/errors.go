package sim

import "fmt"

// KernelInvariantError marks a programming error the kernel detected in
// itself: scheduling an event in the past, starting a busy Server,
// finishing an idle Server, a full Buffer that yields nothing to
// displace (spec.md §7). Taking from an empty Buffer is not one of
// these: TakeForService reports it by returning false.
// These are not recoverable data conditions — they indicate a bug — so
// the kernel panics with this type rather than returning an error. A
// host may recover and log a stack trace; it should still treat the run
// as aborted.
type KernelInvariantError struct {
	Msg string
}

func (e *KernelInvariantError) Error() string {
	return fmt.Sprintf("kernel invariant violated: %s", e.Msg)
}

// ConfigError marks an invalid Config, surfaced at Kernel construction
// time (spec.md §7). The kernel refuses to exist when this occurs.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Msg)
}

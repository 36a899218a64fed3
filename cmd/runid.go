package cmd

import "github.com/google/uuid"

// newRunID generates a correlation id for one CLI invocation. It never
// influences simulation behavior — sim's determinism depends solely on
// Config.Seed — and exists purely so log lines from the same run can be
// tied together by an external sweep driver. It appears only in log
// lines: /metrics gauges and /ws frames carry no run id.
func newRunID() string {
	return uuid.New().String()
}

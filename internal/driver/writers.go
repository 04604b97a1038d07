package driver

// Writer handles the three output categories of the dump scheduler. File
// formats belong to the writers; the driver only decides when to call them.
// Writers are injected collaborator handles, never process-wide singletons,
// so the loop can be tested in isolation.

// VizWriter emits visualization data for the given step.
type VizWriter interface {
	WriteViz(step int, time float64) error
}

// RestartWriter emits a restart checkpoint for the given step.
type RestartWriter interface {
	WriteRestart(step int, time float64) error
}

// DiagnosticsWriter emits timer/diagnostic data for the given step.
type DiagnosticsWriter interface {
	WriteDiagnostics(step int, time float64) error
}

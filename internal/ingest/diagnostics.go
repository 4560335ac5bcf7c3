package ingest

import (
	"log/slog"
	"sync"
	"time"

	"cinelist/internal/logging"
)

// Diagnostic is one structured parse or resolution failure, emitted for
// operator visibility and never retried.
type Diagnostic struct {
	Source string
	Line   int
	Raw    string
	Reason string
}

// Summary holds the per-file outcome counts. Samples retains the first
// diagnostics for operator inspection; the count keeps going past the cap.
type Summary struct {
	Source      string
	Lines       int
	Written     int
	Skipped     int
	Diagnostics int
	Duration    time.Duration
	Samples     []Diagnostic
}

// reporter collects diagnostics and counts for one source file. Sources
// running concurrently each own their reporter, so no locking is needed on
// the counters; the shared logger handles its own synchronization.
type reporter struct {
	source  string
	logger  *slog.Logger
	mu      sync.Mutex
	summary Summary
	samples []Diagnostic
}

// maxDiagnosticSamples caps retained diagnostics per file; everything is
// still logged and counted.
const maxDiagnosticSamples = 100

func newReporter(source string, logger *slog.Logger) *reporter {
	return &reporter{
		source:  source,
		logger:  logging.NewComponentLogger(logger, "ingest"),
		summary: Summary{Source: source},
	}
}

func (r *reporter) diagnostic(line int, raw, reason string) {
	r.mu.Lock()
	r.summary.Diagnostics++
	r.summary.Skipped++
	if len(r.samples) < maxDiagnosticSamples {
		r.samples = append(r.samples, Diagnostic{Source: r.source, Line: line, Raw: raw, Reason: reason})
	}
	r.mu.Unlock()

	r.logger.Warn("line skipped",
		logging.String(logging.FieldSource, r.source),
		logging.Int(logging.FieldLine, line),
		logging.String(logging.FieldReason, reason),
		logging.String("raw", truncateRaw(raw)))
}

// skipInvalid counts a continuation line dropped because its group's owner
// never resolved. The group start already carried the diagnostic.
func (r *reporter) skipInvalid() {
	r.mu.Lock()
	r.summary.Skipped++
	r.mu.Unlock()
}

func (r *reporter) written() {
	r.mu.Lock()
	r.summary.Written++
	r.mu.Unlock()
}

func (r *reporter) finish(start time.Time, lines int) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.Lines = lines
	r.summary.Duration = time.Since(start)
	r.summary.Samples = r.samples
	return r.summary
}

func truncateRaw(raw string) string {
	const limit = 120
	if len(raw) <= limit {
		return raw
	}
	return raw[:limit] + "..."
}

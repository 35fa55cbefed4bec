package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sysnap-io/sysnap/pkg/collector"
	"github.com/sysnap-io/sysnap/pkg/defaults"
	snaperrors "github.com/sysnap-io/sysnap/pkg/errors"
	"github.com/sysnap-io/sysnap/pkg/header"
	"github.com/sysnap-io/sysnap/pkg/hostinfo"
)

// DefaultCollectorTimeout bounds a single collector invocation. A source
// that hangs past it reports a timeout failure and the run moves on.
const DefaultCollectorTimeout = defaults.CollectorTimeout

// APIVersion identifies the RunSummary schema version.
const APIVersion = "sysnap.dev/v1"

// Phase tracks assembly progress. Phases advance strictly in order and
// an assembler runs exactly once.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitializing
	PhaseRunning
	PhaseFinalizing
	PhaseDone
)

// String returns the lowercase phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitializing:
		return "initializing"
	case PhaseRunning:
		return "running"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// RunSummary reports what a completed run produced. It is what the CLI
// serializes as the machine-readable epilogue.
type RunSummary struct {
	header.Header `json:",inline" yaml:",inline"`

	ReportID         string `json:"reportId" yaml:"reportId"`
	Path             string `json:"path,omitempty" yaml:"path,omitempty"`
	Bytes            int64  `json:"bytes" yaml:"bytes"`
	SHA256           string `json:"sha256" yaml:"sha256"`
	Sections         int    `json:"sections" yaml:"sections"`
	Collectors       int    `json:"collectors" yaml:"collectors"`
	Failures         int    `json:"failures" yaml:"failures"`
	Skips            int    `json:"skips" yaml:"skips"`
	PermissionDenied int    `json:"permissionDenied" yaml:"permissionDenied"`
	Duration         string `json:"duration" yaml:"duration"`
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithCollectorTimeout overrides the per-collector time bound. Values
// of zero or below disable the bound.
func WithCollectorTimeout(d time.Duration) Option {
	return func(a *Assembler) {
		a.timeout = d
	}
}

// WithTool sets the tool identity line rendered in the preamble,
// e.g. "sysnap v1.2.0 (4f9c2d1)".
func WithTool(tool string) Option {
	return func(a *Assembler) {
		a.tool = tool
	}
}

// Assembler runs the registered sections strictly in order and writes
// one report artifact. Collectors execute one at a time: sources often
// read shared system state, and a single-writer append stream keeps the
// artifact reproducible.
//
// An assembler is single-use. Create one per report.
type Assembler struct {
	registry *Registry
	ledger   *Ledger
	timeout  time.Duration
	tool     string

	phase Phase

	// overridable for deterministic rendering in tests
	now     func() time.Time
	newID   func() string
	resolve func(context.Context) hostinfo.Info
}

// NewAssembler creates an assembler over the given registry.
func NewAssembler(reg *Registry, opts ...Option) *Assembler {
	a := &Assembler{
		registry: reg,
		ledger:   &Ledger{},
		timeout:  DefaultCollectorTimeout,
		tool:     "sysnap",
		now:      time.Now,
		newID:    uuid.NewString,
		resolve:  hostinfo.Resolve,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Phase returns the current assembly phase.
func (a *Assembler) Phase() Phase {
	return a.phase
}

// Ledger exposes the failure ledger, populated during Run.
func (a *Assembler) Ledger() *Ledger {
	return a.ledger
}

// Run assembles the report into w. Collector failures never abort the
// run; they degrade into report entries and ledger records. The only
// fatal condition is a write error on w, returned with the IO_FAILURE
// code. Cancellation mid-run degrades the remaining collectors into
// failure entries and the artifact still finalizes.
func (a *Assembler) Run(ctx context.Context, w io.Writer) (*RunSummary, error) {
	if a.phase != PhaseIdle {
		return nil, snaperrors.New(snaperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("assembler already ran (phase %s); create a new one per report", a.phase))
	}
	if err := ctx.Err(); err != nil {
		return nil, snaperrors.Wrap(snaperrors.ErrCodeInternal, "run canceled before any output was written", err)
	}

	start := time.Now()
	defer func() {
		reportRunDuration.Observe(time.Since(start).Seconds())
	}()

	a.phase = PhaseInitializing
	pre := Preamble{
		ReportID:  a.newID(),
		Generated: a.now(),
		Host:      a.resolve(ctx),
		Tool:      a.tool,
	}
	sections := a.registry.Sections()
	slog.Debug("assembling report",
		slog.String("id", pre.ReportID),
		slog.Int("sections", len(sections)),
		slog.Int("collectors", a.registry.CollectorCount()))

	hash := sha256.New()
	cw := &countingWriter{w: io.MultiWriter(w, hash)}

	cw.WriteString(renderPreamble(pre, sections))
	if err := cw.Err(); err != nil {
		return nil, a.fatal("writing report preamble", err)
	}

	a.phase = PhaseRunning
	collectors := 0
	for i, s := range sections {
		cw.WriteString(renderSectionHeader(i+1, s.Title, s.Purpose))
		for _, c := range s.Collectors {
			collectors++
			res := a.runCollector(ctx, c)
			a.record(s.Title, res)
			cw.WriteString(renderResult(c.Kind(), res) + "\n")
		}
		cw.WriteString(renderSectionFooter(i + 1))
		if err := cw.Err(); err != nil {
			return nil, a.fatal(fmt.Sprintf("writing section %q", s.Title), err)
		}
	}

	a.phase = PhaseFinalizing
	cw.WriteString(renderSummary(len(sections)+1, a.ledger))
	if err := cw.Err(); err != nil {
		return nil, a.fatal("writing summary section", err)
	}

	a.phase = PhaseDone
	reportRunsTotal.WithLabelValues("success").Inc()
	reportFailureCount.Set(float64(a.ledger.FailureCount()))

	sum := &RunSummary{
		ReportID:         pre.ReportID,
		Bytes:            cw.n,
		SHA256:           hex.EncodeToString(hash.Sum(nil)),
		Sections:         len(sections),
		Collectors:       collectors,
		Failures:         a.ledger.FailureCount(),
		Skips:            a.ledger.SkipCount(),
		PermissionDenied: a.ledger.PermissionCount(),
		Duration:         time.Since(start).Round(time.Millisecond).String(),
	}
	sum.Init(header.KindRunSummary, APIVersion, a.tool)
	slog.Debug("report assembled",
		slog.String("id", sum.ReportID),
		slog.Int64("bytes", sum.Bytes),
		slog.Int("failures", sum.Failures),
		slog.Int("skips", sum.Skips))
	return sum, nil
}

// RunFile assembles the report into a new file at path, created with
// owner-only permissions. Creation, flush, and close errors all carry
// the IO_FAILURE code.
func (a *Assembler) RunFile(ctx context.Context, path string) (*RunSummary, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		reportRunsTotal.WithLabelValues("error").Inc()
		return nil, snaperrors.Wrap(snaperrors.ErrCodeIOFailure,
			fmt.Sprintf("creating report at %s", path), err)
	}

	sum, runErr := a.Run(ctx, f)
	syncErr := f.Sync()
	closeErr := f.Close()

	if runErr != nil {
		return nil, runErr
	}
	if syncErr != nil {
		return nil, snaperrors.Wrap(snaperrors.ErrCodeIOFailure, "flushing report", syncErr)
	}
	if closeErr != nil {
		return nil, snaperrors.Wrap(snaperrors.ErrCodeIOFailure, "closing report", closeErr)
	}

	sum.Path = path
	return sum, nil
}

// runCollector invokes one collector under the configured time bound,
// converting a panic into a failure result so a broken source cannot
// abort the run.
func (a *Assembler) runCollector(ctx context.Context, c collector.Collector) (res collector.Result) {
	start := time.Now()
	defer func() {
		reportCollectorDuration.WithLabelValues(string(c.Kind())).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			slog.Error("collector panic",
				slog.String("origin", c.Origin()),
				slog.Any("panic", r))
			res = collector.FailResult(c.Origin(), fmt.Sprintf("internal error: %v", r))
		}
	}()

	cctx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return c.Collect(cctx)
}

// record feeds the ledger and skip tallies from one result, including
// walk entries under origins qualified by the walk root.
func (a *Assembler) record(section string, res collector.Result) {
	switch res.Status {
	case collector.StatusFailed:
		a.ledger.RecordFailure(section, res.Origin, res.Detail)
	case collector.StatusSkipped:
		a.ledger.RecordSkip(res.Reason)
	}
	for _, e := range res.Entries {
		switch e.Status {
		case collector.StatusFailed:
			a.ledger.RecordFailure(section, res.Origin+"/"+e.Origin, e.Detail)
		case collector.StatusSkipped:
			a.ledger.RecordSkip(e.Reason)
		}
	}
}

// fatal wraps an artifact write error. Write failures are the one
// condition that aborts a run: a report that cannot be written has no
// value, and continuing would only mask the fault.
func (a *Assembler) fatal(action string, err error) error {
	reportRunsTotal.WithLabelValues("error").Inc()
	slog.Error("report write failed",
		slog.String("action", action),
		slog.String("phase", a.phase.String()),
		slog.String("error", err.Error()))
	return snaperrors.Wrap(snaperrors.ErrCodeIOFailure, action, err)
}

// countingWriter counts bytes written and holds the first write error.
// After an error it drops further writes so the assembler can check at
// section granularity without losing the original fault.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) WriteString(s string) {
	if cw.err != nil {
		return
	}
	n, err := io.WriteString(cw.w, s)
	cw.n += int64(n)
	if err != nil {
		cw.err = err
	}
}

// Err returns the first write error, if any.
func (cw *countingWriter) Err() error {
	return cw.err
}

package bench

import (
	"context"
	"log/slog"
	"time"

	apperrors "chat-dblab/errors"
)

// Executor runs one parameterized query and returns how many rows it
// produced. Implemented by repositories.Store; tests substitute fakes.
type Executor interface {
	Run(ctx context.Context, sql string, args ...any) (rows int, err error)
}

type OverallStatus string

const (
	StatusSuccess      OverallStatus = "success"
	StatusWithWarnings OverallStatus = "success-with-warnings"
	StatusFailure      OverallStatus = "failure"
)

// QueryResult is the per-query detail of a run. Avg/Min/Max cover the
// successful trials after the warm-up; FailedTrials counts timeouts and
// errors, which never abort the catalogue.
type QueryResult struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Rows         int           `json:"rows"`
	Trials       int           `json:"trials"`
	FailedTrials int           `json:"failed_trials"`
	Avg          time.Duration `json:"avg_ns"`
	Min          time.Duration `json:"min_ns"`
	Max          time.Duration `json:"max_ns"`
	Threshold    time.Duration `json:"threshold_ns"`
	Regression   bool          `json:"regression"`
	LastError    string        `json:"last_error,omitempty"`
}

type Report struct {
	Results     []QueryResult `json:"results"`
	Status      OverallStatus `json:"status"`
	Regressions int           `json:"regressions"`
	Errors      int           `json:"errors"`
}

// Harness executes the catalogue. Each query runs Trials times after one
// discarded warm-up trial; each trial is bounded by Timeout.
type Harness struct {
	exec    Executor
	trials  int
	timeout time.Duration
	log     *slog.Logger
}

func NewHarness(exec Executor, trials int, timeout time.Duration, log *slog.Logger) *Harness {
	return &Harness{exec: exec, trials: trials, timeout: timeout, log: log}
}

// Run executes every catalogue entry and consolidates one report. Threshold
// breaches are warnings; a query whose every trial fails marks the run as a
// failure. The catalogue always runs to completion.
func (h *Harness) Run(ctx context.Context, catalogue []Query, subjects Subjects) (Report, error) {
	if len(catalogue) == 0 {
		return Report{}, apperrors.ErrEmptyCatalogue
	}

	rep := Report{Status: StatusSuccess}
	for _, q := range catalogue {
		res := h.runQuery(ctx, q, subjects)
		rep.Results = append(rep.Results, res)
		if res.Regression {
			rep.Regressions++
		}
		if res.FailedTrials > 0 && res.Trials == res.FailedTrials {
			rep.Errors++
		}
		if err := ctx.Err(); err != nil {
			return rep, err
		}
	}

	switch {
	case rep.Errors > 0:
		rep.Status = StatusFailure
	case rep.Regressions > 0:
		rep.Status = StatusWithWarnings
	}
	return rep, nil
}

func (h *Harness) runQuery(ctx context.Context, q Query, subjects Subjects) QueryResult {
	res := QueryResult{
		Name:        q.Name,
		Description: q.Description,
		Threshold:   q.Threshold,
		Trials:      h.trials,
	}
	args := q.Args(subjects)

	// Warm-up trial: executed, timed out like any other, never reported.
	_, _, _ = h.trial(ctx, q.SQL, args)

	var total time.Duration
	succeeded := 0
	for i := 0; i < h.trials; i++ {
		rows, elapsed, err := h.trial(ctx, q.SQL, args)
		if err != nil {
			res.FailedTrials++
			res.LastError = err.Error()
			h.log.Warn("benchmark trial failed", "query", q.Name, "trial", i+1, "error", err)
			continue
		}
		res.Rows = rows
		total += elapsed
		if succeeded == 0 || elapsed < res.Min {
			res.Min = elapsed
		}
		if elapsed > res.Max {
			res.Max = elapsed
		}
		succeeded++
	}
	if succeeded > 0 {
		res.Avg = total / time.Duration(succeeded)
		res.Regression = res.Avg > q.Threshold
	}
	if res.Regression {
		h.log.Warn("latency threshold exceeded", "query", q.Name, "avg", res.Avg, "threshold", q.Threshold)
	}
	return res
}

func (h *Harness) trial(ctx context.Context, sql string, args []any) (int, time.Duration, error) {
	trialCtx := ctx
	if h.timeout > 0 {
		var cancel context.CancelFunc
		trialCtx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	start := time.Now()
	rows, err := h.exec.Run(trialCtx, sql, args...)
	return rows, time.Since(start), err
}

// Package verify re-derives the invariants generation is supposed to
// guarantee, from the persisted rows alone. Each check is a pure function over
// a read snapshot so it can be exercised against fabricated fixtures; the
// runner executes every check regardless of earlier failures.
package verify

import (
	"fmt"

	"chat-dblab/domain"
)

// Snapshot is the read model loaded from the store in one pass. Checks never
// touch the store themselves and never assume how the rows got there.
type Snapshot struct {
	Users       []domain.User
	Chats       []domain.Chat
	Memberships []domain.Membership
	Messages    []domain.Message
}

type Status string

const (
	Pass         Status = "pass"
	Fail         Status = "fail"
	Inconclusive Status = "inconclusive"
)

// Result is the outcome of one check. Offending carries a bounded sample of
// row identifiers when the check fails.
type Result struct {
	Check     string   `json:"check"`
	Status    Status   `json:"status"`
	Detail    string   `json:"detail,omitempty"`
	Offending []string `json:"offending,omitempty"`
}

// Bounds is an inclusive row-count expectation; Min == Max means exact.
type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func Exactly(n int) Bounds { return Bounds{Min: n, Max: n} }

func Between(lo, hi int) Bounds { return Bounds{Min: lo, Max: hi} }

func (b Bounds) contains(n int) bool { return n >= b.Min && n <= b.Max }

func (b Bounds) String() string {
	if b.Min == b.Max {
		return fmt.Sprintf("exactly %d", b.Min)
	}
	return fmt.Sprintf("between %d and %d", b.Min, b.Max)
}

// Expectations parameterize the checks: count bounds from the scale or fixture
// configuration, the temporal weighting the generator was asked for, and the
// sampling limits of the report.
type Expectations struct {
	Users       Bounds
	Chats       Bounds
	Memberships Bounds
	Messages    Bounds

	GroupSizeMin int

	BusinessRatio     float64
	BusinessHourStart int
	BusinessHourEnd   int
	RatioTolerance    float64
	// MinTemporalSamples is the smallest message count the distribution check
	// accepts; below it the check reports inconclusive rather than guessing.
	MinTemporalSamples int

	// SampleLimit caps how many offending identifiers a failing check lists.
	SampleLimit int
}

// DefaultExpectations fills the knobs that rarely change; count bounds still
// need to be set by the caller.
func DefaultExpectations() Expectations {
	return Expectations{
		GroupSizeMin:       2,
		BusinessRatio:      0.7,
		BusinessHourStart:  9,
		BusinessHourEnd:    18,
		RatioTolerance:     0.15,
		MinTemporalSamples: 100,
		SampleLimit:        10,
	}
}

// Check is one independent invariant verification.
type Check func(*Snapshot, Expectations) Result

// Checks returns the full catalogue in report order.
func Checks() []Check {
	return []Check{
		CheckRowCounts,
		CheckUniqueness,
		CheckReferentialIntegrity,
		CheckCardinality,
		CheckDMKeyFormat,
		CheckTemporal,
	}
}

// Report aggregates every check result. Passed is false only when at least one
// check failed; inconclusive results are surfaced but do not fail the run.
type Report struct {
	Results      []Result `json:"results"`
	Passed       bool     `json:"passed"`
	Failed       int      `json:"failed"`
	Inconclusive int      `json:"inconclusive"`
}

// Run executes all checks against the snapshot, never stopping early.
func Run(snap *Snapshot, exp Expectations) Report {
	rep := Report{Passed: true}
	for _, check := range Checks() {
		res := check(snap, exp)
		rep.Results = append(rep.Results, res)
		switch res.Status {
		case Fail:
			rep.Passed = false
			rep.Failed++
		case Inconclusive:
			rep.Inconclusive++
		}
	}
	return rep
}

// sampler collects up to limit offending identifiers while counting them all.
type sampler struct {
	limit int
	total int
	ids   []string
}

func (s *sampler) add(id string) {
	s.total++
	if len(s.ids) < s.limit {
		s.ids = append(s.ids, id)
	}
}


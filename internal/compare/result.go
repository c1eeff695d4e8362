package compare

import (
	"github.com/redactyl/baseguard/internal/counter"
	"github.com/redactyl/baseguard/internal/types"
)

// Verdict is the outcome of a comparison.
type Verdict int

const (
	Same Verdict = iota
	Worse
	Improved
)

func (v Verdict) String() string {
	switch v {
	case Same:
		return "SAME"
	case Worse:
		return "WORSE"
	case Improved:
		return "IMPROVED"
	default:
		return "UNKNOWN"
	}
}

// TotalEntity names the per-linter summary row.
const TotalEntity = "Total"

// Row compares one file, or the linter total, against the baseline.
// Details are set on Total rows only.
type Row struct {
	Entity  string          `json:"entity"`
	Old     counter.Counter `json:"old"`
	New     counter.Counter `json:"new"`
	Details []types.Detail  `json:"details,omitempty"`
}

// Printer renders the rows of one linter.
type Printer interface {
	PrintLinterResults(linter string, rows []Row)
}

// Result accumulates regression rows per linter and the verdict.
type Result struct {
	Linters map[string][]Row `json:"linters"`
	Status  Verdict          `json:"-"`
	order   []string
}

func NewResult() *Result {
	return &Result{Linters: map[string][]Row{}}
}

// AddRow records a regression. Any row makes the verdict Worse.
func (r *Result) AddRow(linter string, row Row) {
	if _, ok := r.Linters[linter]; !ok {
		r.order = append(r.order, linter)
	}
	r.Linters[linter] = append(r.Linters[linter], row)
	r.Status = Worse
}

// MarkImproved moves Same to Improved. Worse is never downgraded.
func (r *Result) MarkImproved() {
	if r.Status != Worse {
		r.Status = Improved
	}
}

// IsWorse reports whether linter has any regression row.
func (r *Result) IsWorse(linter string) bool {
	_, ok := r.Linters[linter]
	return ok
}

// Order returns linters in the order their first row was added.
func (r *Result) Order() []string {
	return append([]string(nil), r.order...)
}

// ShowResults hands each linter's rows to p in discovery order.
func (r *Result) ShowResults(p Printer) {
	for _, l := range r.order {
		p.PrintLinterResults(l, r.Linters[l])
	}
}

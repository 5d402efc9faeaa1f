// Package scheda builds coverage-flag indexes from Schedule A records.
// Each index entry is keyed by (employer id, plan number, filing year) and
// accumulates health/stop-loss indicators by logical OR across every
// contributing record, so merges are associative and commutative.
package scheda

import (
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/benefits-cli/internal/model"
	"github.com/sells-group/benefits-cli/internal/parse"
)

// Key identifies a specific benefit plan in a specific filing year.
type Key struct {
	EIN     string
	PlanNum string
	Year    string
}

// Flags holds the OR-accumulated coverage indicators for one Key.
type Flags struct {
	Health   bool
	StopLoss bool
}

// or merges another Flags value into this one.
func (f Flags) or(other Flags) Flags {
	return Flags{
		Health:   f.Health || other.Health,
		StopLoss: f.StopLoss || other.StopLoss,
	}
}

// Index holds coverage flags keyed independently by plan-year-begin and
// plan-year-end, so a plan matches on either boundary of its filing year.
type Index struct {
	ByBegin map[Key]Flags
	ByEnd   map[Key]Flags
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{
		ByBegin: make(map[Key]Flags),
		ByEnd:   make(map[Key]Flags),
	}
}

// add OR-merges one row's flags into both year-boundary maps.
func (idx *Index) add(row model.ScheduleARow) {
	ein := strings.TrimSpace(row.EIN)
	pn := strings.TrimSpace(row.PlanNum)
	if ein == "" || pn == "" {
		return
	}

	flags := Flags{
		Health:   parse.ParseBoolFlag(row.HealthInd),
		StopLoss: parse.ParseBoolFlag(row.StopLossInd),
	}

	if by := parse.YearPrefix(row.PlanYearBegin); by != "" {
		k := Key{EIN: ein, PlanNum: pn, Year: by}
		idx.ByBegin[k] = idx.ByBegin[k].or(flags)
	}
	if ey := parse.YearPrefix(row.PlanYearEnd); ey != "" {
		k := Key{EIN: ein, PlanNum: pn, Year: ey}
		idx.ByEnd[k] = idx.ByEnd[k].or(flags)
	}
}

// merge OR-combines another index into this one.
func (idx *Index) merge(other *Index) {
	for k, f := range other.ByBegin {
		idx.ByBegin[k] = idx.ByBegin[k].or(f)
	}
	for k, f := range other.ByEnd {
		idx.ByEnd[k] = idx.ByEnd[k].or(f)
	}
}

// Lookup resolves a plan's coverage flags by checking both the
// plan-year-begin and plan-year-end keys; a match on either boundary
// counts and the results are OR-combined.
func (idx *Index) Lookup(ein, planNum, beginYear, endYear string) Flags {
	var out Flags
	if ein == "" || planNum == "" {
		return out
	}
	if beginYear != "" {
		out = out.or(idx.ByBegin[Key{EIN: ein, PlanNum: planNum, Year: beginYear}])
	}
	if endYear != "" {
		out = out.or(idx.ByEnd[Key{EIN: ein, PlanNum: planNum, Year: endYear}])
	}
	return out
}

// Build constructs the index from Schedule A rows. Rows lacking an
// employer id or plan number are skipped silently.
func Build(rows []model.ScheduleARow) *Index {
	idx := NewIndex()
	for _, row := range rows {
		idx.add(row)
	}
	return idx
}

// BuildParallel partitions the rows, builds a partial index per partition,
// and OR-merges the partials. Boolean OR is associative and commutative,
// so the result is identical to a sequential Build.
func BuildParallel(rows []model.ScheduleARow, partitions int) *Index {
	if partitions <= 0 {
		partitions = runtime.NumCPU()
	}
	if partitions > len(rows) {
		partitions = len(rows)
	}
	if partitions <= 1 {
		return Build(rows)
	}

	partials := make([]*Index, partitions)
	chunk := (len(rows) + partitions - 1) / partitions

	var g errgroup.Group
	for p := 0; p < partitions; p++ {
		p := p
		lo := p * chunk
		hi := lo + chunk
		if hi > len(rows) {
			hi = len(rows)
		}
		g.Go(func() error {
			partials[p] = Build(rows[lo:hi])
			return nil
		})
	}
	_ = g.Wait() // partition builds never fail

	idx := NewIndex()
	for _, partial := range partials {
		idx.merge(partial)
	}
	return idx
}

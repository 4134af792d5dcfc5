package ledger

import (
	"sort"

	"github.com/hammamikhairi/ottocost/internal/domain"
)

// Group is the records sharing one date.
type Group[T domain.Dated] struct {
	Date    string
	Records []T
}

// GroupByDate groups records by date, newest date first. Records keep
// their relative order inside a group.
func GroupByDate[T domain.Dated](records []T) []Group[T] {
	sorted := append([]T(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordDate() > sorted[j].RecordDate()
	})

	var out []Group[T]
	for _, r := range sorted {
		d := r.RecordDate()
		if n := len(out); n > 0 && out[n-1].Date == d {
			out[n-1].Records = append(out[n-1].Records, r)
			continue
		}
		out = append(out, Group[T]{Date: d, Records: []T{r}})
	}
	return out
}

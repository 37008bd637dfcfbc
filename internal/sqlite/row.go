package sqlite

// row is the transient column-to-value mapping built for one save and
// discarded after the database call. Values are driver-ready: string, bool,
// int64, float64, or nil for NULL. Column order follows field declaration
// order.
type row struct {
	cols []string
	vals []any
}

func (r *row) put(col string, v any) {
	r.cols = append(r.cols, col)
	r.vals = append(r.vals, v)
}

func (r *row) putNull(col string) {
	r.put(col, nil)
}

func (r *row) empty() bool {
	return len(r.cols) == 0
}

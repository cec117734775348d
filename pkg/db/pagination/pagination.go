package pagination

// Page is an offset window over an ordered listing.
type Page struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// Normalize clamps the window to the given default and maximum sizes.
func (p Page) Normalize(defaultLimit, maxLimit int) Page {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// NoMore reports whether the window reaches the end of a listing with total rows.
func (p Page) NoMore(total int64) bool {
	return total <= int64(p.Offset)+int64(p.Limit)
}

// Result is one page of items plus the exhaustion flag.
type Result[T any] struct {
	Items  []T
	Total  int64
	NoMore bool
}

func NewResult[T any](items []T, total int64, page Page) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{
		Items:  items,
		Total:  total,
		NoMore: page.NoMore(total),
	}
}

package services

// Page holds one page of items plus paging metadata. Pages are numbered from 1.
type Page[T any] struct {
	Items    []T
	Page     int
	PageSize int
	HasNext  bool
	HasPrev  bool
	Total    int
}

// Paginate slices items for the requested page. Out-of-range values fall back
// to page 1 and a default size.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	const defaultPageSize = 20

	total := len(items)

	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	// Pages past the data resolve to an empty tail slice. Checking against
	// total/pageSize before multiplying keeps huge page values from
	// overflowing into negative slice bounds.
	start := total
	if page-1 <= total/pageSize {
		start = (page - 1) * pageSize
	}
	end := total
	if pageSize < total-start {
		end = start + pageSize
	}

	return Page[T]{
		Items:    items[start:end],
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    total,
	}
}

package engine

// Paginated is the slice of a result set a caller wants back. Offset and
// Limit are both in "items", not bytes. A zero-value Paginated (both
// fields zero) means "everything", matching Paginated::default() in the
// original service.
type Paginated struct {
	Offset uint
	Limit  uint
}

// PaginatedResults is a Paginated slice of Total available items.
type PaginatedResults[T any] struct {
	Items []T
	Total uint
}

func paginate[T any](items []T, p Paginated) PaginatedResults[T] {
	total := uint(len(items))
	if p.Limit == 0 {
		return PaginatedResults[T]{Items: items, Total: total}
	}

	start := p.Offset
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return PaginatedResults[T]{Items: items[start:end], Total: total}
}

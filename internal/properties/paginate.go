package properties

// Paginate slices one page out of a filtered result set. Pages are
// zero-indexed. A page beyond the end yields an empty page with the counters
// still describing the full set.
func Paginate(list []Property, page, size int) ListResult {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	total := len(list)
	totalPages := (total + size - 1) / size

	start := page * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]Property, end-start)
	copy(items, list[start:end])

	return ListResult{
		Properties:      items,
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalProperties: total,
		PageSize:        size,
	}
}

package shared

// Paginated represents one page of an ordered result
type Paginated[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total, page, pageSize int) Paginated[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = total / pageSize
		if total%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Paginate slices items into the 1-based page. Pages below 1 are treated
// as page 1; pages past the end yield an empty item slice.
func Paginate[T any](items []T, page, pageSize int) Paginated[T] {
	if page < 1 {
		page = 1
	}
	start := len(items)
	if pageSize > 0 && page-1 < len(items)/pageSize+1 {
		start = min((page-1)*pageSize, len(items))
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	window := make([]T, end-start)
	copy(window, items[start:end])
	return NewPaginated(window, len(items), page, pageSize)
}

package usecase

type PageMetadata struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	HasNext       bool  `json:"has_next"`
	HasPrevious   bool  `json:"has_previous"`
	IsFirst       bool  `json:"is_first"`
	IsLast        bool  `json:"is_last"`
}

type Page[T any] struct {
	Data     []T          `json:"data"`
	Metadata PageMetadata `json:"metadata"`
}

// paginate windows items into the requested 0-based page. Callers clamp
// page and size beforehand; out-of-range pages yield an empty data slice
// with truthful metadata.
func paginate[T any](items []T, page, size int) Page[T] {
	total := len(items)
	totalPages := (total + size - 1) / size

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return Page[T]{
		Data: items[start:end],
		Metadata: PageMetadata{
			Page:          page,
			Size:          size,
			TotalElements: int64(total),
			TotalPages:    totalPages,
			HasNext:       page < totalPages-1,
			HasPrevious:   page > 0,
			IsFirst:       page == 0,
			IsLast:        page >= totalPages-1,
		},
	}
}

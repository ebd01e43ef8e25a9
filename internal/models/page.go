package models

const PageSize = 10

type Page[T any] struct {
	CurrentPage int `json:"current_page"`
	Data        []T `json:"data"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// NewPage fills the derived fields. From and To are 1-based positions of the
// first and last item, both zero on an empty page.
func NewPage[T any](data []T, page, total int) *Page[T] {
	if data == nil {
		data = []T{}
	}
	lastPage := (total + PageSize - 1) / PageSize
	if lastPage < 1 {
		lastPage = 1
	}
	p := &Page[T]{
		CurrentPage: page,
		Data:        data,
		PerPage:     PageSize,
		Total:       total,
		LastPage:    lastPage,
	}
	if len(data) > 0 {
		p.From = (page-1)*PageSize + 1
		p.To = p.From + len(data) - 1
	}
	return p
}

// Offset returns the row offset for a 1-based page number.
func Offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

package model

import "math"

// PageRequest addresses one page of the ordered author set.
type PageRequest struct {
	Number int // 1-based
	Size   int
}

// Validate rejects non-positive page numbers and sizes.
func (p PageRequest) Validate() error {
	if p.Number < 1 {
		return InvalidArgument("page number must be >= 1, got %d", p.Number)
	}
	if p.Size < 1 {
		return InvalidArgument("page size must be >= 1, got %d", p.Size)
	}
	return nil
}

// OutOfRange reports whether the page starts beyond any addressable row,
// i.e. its offset does not fit in an int.
func (p PageRequest) OutOfRange() bool {
	return p.Size > 0 && p.Number > 1 && p.Number-1 > math.MaxInt/p.Size
}

// Offset is the number of rows skipped before the page starts.
// It saturates at math.MaxInt instead of overflowing.
func (p PageRequest) Offset() int {
	if p.OutOfRange() {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// PaginationMeta - Reusable pagination metadata
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// NewPaginationMeta derives TotalPages from the total item count.
func NewPaginationMeta(page PageRequest, total int64) PaginationMeta {
	totalPages := 0
	if page.Size > 0 {
		size := int64(page.Size)
		totalPages = int(total / size)
		if total%size != 0 {
			totalPages++
		}
	}
	return PaginationMeta{
		CurrentPage: page.Number,
		PageSize:    page.Size,
		TotalItems:  total,
		TotalPages:  totalPages,
	}
}

// AuthorPage - one page of authors plus its metadata
type AuthorPage struct {
	Data       []Author       `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// CreateAuthorRequest carries the caller-supplied fields of a new author.
type CreateAuthorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CountryID string `json:"country_id,omitempty"`
}

// ToEntity converts CreateAuthorRequest to an Author with no identifier yet.
func (req CreateAuthorRequest) ToEntity() Author {
	return Author{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CountryID: req.CountryID,
	}
}

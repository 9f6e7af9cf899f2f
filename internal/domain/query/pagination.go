// Package query holds shared query types used by repositories and services.
package query

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination describes a page/limit window over a sorted result set.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit into their allowed ranges. Page is at
// least 1; limit is clamped to [1, MaxLimit]. Zero values take defaults.
func Normalize(page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the number of records to skip for this window.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

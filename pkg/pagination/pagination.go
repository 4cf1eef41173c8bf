package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSortBy = "created_at"
	DefaultOrder  = "desc"
)

// Options are the raw page/limit/sort query parameters, possibly absent
type Options struct {
	Page      string
	Limit     string
	SortBy    string
	SortOrder string
}

// Params is the canonical offset+limit+sort tuple used by repositories
type Params struct {
	Page      int
	Limit     int
	Skip      int
	SortBy    string
	SortOrder string
}

// Meta is the pagination block of list response envelopes
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}

// Resolve normalizes raw query parameters. Non-numeric or out-of-range
// page/limit silently fall back to the defaults; no error is ever raised.
func Resolve(opts Options) Params {
	page := atoiOr(opts.Page, DefaultPage)
	if page < 1 {
		page = DefaultPage
	}
	limit := atoiOr(opts.Limit, DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}

	// Clients sort by JSON field names (e.g. createdAt); columns are snake_case
	sortBy := toSnake(opts.SortBy)
	if !validColumn(sortBy) {
		sortBy = DefaultSortBy
	}

	sortOrder := strings.ToLower(opts.SortOrder)
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = DefaultOrder
	}

	return Params{
		Page:      page,
		Limit:     limit,
		Skip:      (page - 1) * limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}
}

// OrderClause renders the sort tuple for an ORDER BY. SortBy is restricted
// to identifier characters by Resolve, so the clause is safe to interpolate.
func (p Params) OrderClause() string {
	return p.SortBy + " " + p.SortOrder
}

// NewMeta computes the response metadata for a resolved page
func NewMeta(total int64, p Params) Meta {
	return Meta{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: int64(math.Ceil(float64(total) / float64(p.Limit))),
	}
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validColumn(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

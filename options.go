package senka

import (
	"encoding/json"
)

// SortField is a closed enumeration of the listing fields a client may sort
// by. Anything outside the map is rejected at parse time, never silently
// dropped and never forwarded to SQL.
type SortField string

const (
	SortByDate            SortField = "date"
	SortByUser            SortField = "user"
	SortByLang            SortField = "lang"
	SortByScore           SortField = "score"
	SortByStatus          SortField = "status"
	SortByExecutionTime   SortField = "executionTime"
	SortByExecutionMemory SortField = "executionMemory"

	// SortByTask orders by the contest position label using the same
	// char-length-then-lexical rule as ComparePositions
	SortByTask SortField = "task"
)

var sortableFields = map[SortField]bool{
	SortByDate:            true,
	SortByUser:            true,
	SortByLang:            true,
	SortByScore:           true,
	SortByStatus:          true,
	SortByExecutionTime:   true,
	SortByExecutionMemory: true,
	SortByTask:            true,
}

type FilterField string

const (
	FilterByUser   FilterField = "user"
	FilterByTask   FilterField = "task"
	FilterByStatus FilterField = "status"
)

var filterableFields = map[FilterField]bool{
	FilterByUser:   true,
	FilterByTask:   true,
	FilterByStatus: true,
}

type SortCriterion struct {
	Field      SortField `json:"target"`
	Descending bool      `json:"desc"`
}

type FilterCriterion struct {
	Field FilterField `json:"target"`
	Value string      `json:"value"`
}

// ListingOptions is the validated form of the client's `options` payload.
// Zero value means default ordering and no filters.
type ListingOptions struct {
	Sort   []SortCriterion   `json:"sort"`
	Filter []FilterCriterion `json:"filter"`
}

// ParseListingOptions decodes and whitelists a raw options payload.
// An empty payload is valid and yields the zero options.
func ParseListingOptions(raw string) (*ListingOptions, *StatusError) {
	opts := &ListingOptions{}
	if raw == "" {
		return opts, nil
	}
	if err := json.Unmarshal([]byte(raw), opts); err != nil {
		return nil, Statusf(400, "Malformed options payload")
	}
	for _, s := range opts.Sort {
		if !sortableFields[s.Field] {
			return nil, Statusf(400, "Unsupported sort field %q", s.Field)
		}
	}
	for _, f := range opts.Filter {
		if !filterableFields[f.Field] {
			return nil, Statusf(400, "Unsupported filter field %q", f.Field)
		}
	}
	return opts, nil
}

// Pagination is the 1-based page window of a listing request.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

func (p Pagination) WithDefaults(maxPerPage int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = 20
	}
	if maxPerPage > 0 && p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

type PaginationMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

func MakePaginationMeta(p Pagination, totalCount int) PaginationMeta {
	pages := totalCount / p.PerPage
	if totalCount%p.PerPage != 0 {
		pages++
	}
	return PaginationMeta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalCount: totalCount,
		TotalPages: pages,
	}
}

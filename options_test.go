package senka

import (
	"testing"
)

func TestParseListingOptions(t *testing.T) {
	opts, err := ParseListingOptions(`{"sort":[{"target":"score","desc":true},{"target":"task"}],"filter":[{"target":"user","value":"alice"}]}`)
	if err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if len(opts.Sort) != 2 || opts.Sort[0].Field != SortByScore || !opts.Sort[0].Descending {
		t.Errorf("sort criteria misparsed: %+v", opts.Sort)
	}
	if len(opts.Filter) != 1 || opts.Filter[0].Field != FilterByUser || opts.Filter[0].Value != "alice" {
		t.Errorf("filter criteria misparsed: %+v", opts.Filter)
	}
}

func TestParseListingOptionsEmpty(t *testing.T) {
	opts, err := ParseListingOptions("")
	if err != nil {
		t.Fatalf("empty payload should be valid: %v", err)
	}
	if len(opts.Sort) != 0 || len(opts.Filter) != 0 {
		t.Errorf("empty payload should yield zero options: %+v", opts)
	}
}

func TestParseListingOptionsUnknownField(t *testing.T) {
	if _, err := ParseListingOptions(`{"sort":[{"target":"banana"}]}`); err == nil {
		t.Error("unknown sort field should be rejected")
	} else if err.Code != 400 {
		t.Errorf("unknown sort field should be a 400, got %d", err.Code)
	}

	if _, err := ParseListingOptions(`{"filter":[{"target":"banana","value":"x"}]}`); err == nil {
		t.Error("unknown filter field should be rejected")
	} else if err.Code != 400 {
		t.Errorf("unknown filter field should be a 400, got %d", err.Code)
	}
}

func TestParseListingOptionsMalformed(t *testing.T) {
	if _, err := ParseListingOptions(`{"sort":`); err == nil {
		t.Error("malformed JSON should be rejected")
	}
}

func TestPaginationDefaults(t *testing.T) {
	p := Pagination{}.WithDefaults(100)
	if p.Page != 1 || p.PerPage != 20 {
		t.Errorf("zero pagination should default to page 1, 20 per page: %+v", p)
	}

	p = Pagination{Page: -3, PerPage: 5000}.WithDefaults(100)
	if p.Page != 1 || p.PerPage != 100 {
		t.Errorf("pagination should be clamped: %+v", p)
	}

	p = Pagination{Page: 3, PerPage: 20}.WithDefaults(100)
	if p.Offset() != 40 {
		t.Errorf("page 3 at 20 per page should start at offset 40, got %d", p.Offset())
	}
}

func TestMakePaginationMeta(t *testing.T) {
	meta := MakePaginationMeta(Pagination{Page: 2, PerPage: 20}, 45)
	if meta.TotalPages != 3 {
		t.Errorf("45 rows at 20 per page should be 3 pages, got %d", meta.TotalPages)
	}
	if meta.TotalCount != 45 || meta.Page != 2 || meta.PerPage != 20 {
		t.Errorf("meta misassembled: %+v", meta)
	}

	meta = MakePaginationMeta(Pagination{Page: 1, PerPage: 20}, 40)
	if meta.TotalPages != 2 {
		t.Errorf("exact division should not round up: got %d pages", meta.TotalPages)
	}

	meta = MakePaginationMeta(Pagination{Page: 1, PerPage: 20}, 0)
	if meta.TotalPages != 0 {
		t.Errorf("no rows should mean no pages, got %d", meta.TotalPages)
	}
}

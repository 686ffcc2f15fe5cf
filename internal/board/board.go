// Package board computes the list view of the fleet: search, filters,
// pagination and the option lists behind the filter dropdowns.
package board

import (
	"sort"
	"strings"

	"equipment-tracker/internal/domain"
)

const (
	DefaultPageSize = 25
	// MaxPageSize caps page sizes taken from requests.
	MaxPageSize = 500
	// All is the filter value that matches every record.
	All = "all"
)

// Criteria narrows a collection. Empty fields and All match everything.
type Criteria struct {
	Type   string
	Branch string
	Status string
}

type Page struct {
	Items       []domain.Equipment `json:"items"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
	TotalItems  int                `json:"totalItems"`
	PageSize    int                `json:"pageSize"`
}

type FacetSet struct {
	Types    []string `json:"types"`
	Branches []string `json:"branches"`
}

// Search keeps records where term is a case-insensitive substring of code,
// type, make, model, branch or customer. Order is preserved.
func Search(items []domain.Equipment, term string) []domain.Equipment {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]domain.Equipment{}, items...)
	}
	out := []domain.Equipment{}
	for _, e := range items {
		if matches(e, term) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e domain.Equipment, term string) bool {
	for _, field := range []string{e.Code, e.Type, e.Make, e.Model, e.Branch, e.Customer} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func Filter(items []domain.Equipment, c Criteria) []domain.Equipment {
	out := []domain.Equipment{}
	for _, e := range items {
		if !accepts(c.Type, e.Type) || !accepts(c.Branch, e.Branch) || !accepts(c.Status, string(e.Status)) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func accepts(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, All) {
		return true
	}
	return strings.EqualFold(want, strings.TrimSpace(got))
}

// Paginate slices items into 1-based pages. A page outside [1, TotalPages]
// falls back to page 1. pageSize <= 0 means DefaultPageSize.
func Paginate(items []domain.Equipment, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	if page < 1 || page > totalPages {
		page = 1
	}

	start := min((page-1)*pageSize, total)
	end := start + min(pageSize, total-start)

	return Page{
		Items:       append([]domain.Equipment{}, items[start:end]...),
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PageSize:    pageSize,
	}
}

// Facets returns the distinct non-empty types and branches in first-seen order.
func Facets(items []domain.Equipment) FacetSet {
	fs := FacetSet{Types: []string{}, Branches: []string{}}
	seenType := map[string]bool{}
	seenBranch := map[string]bool{}
	for _, e := range items {
		if e.Type != "" && !seenType[e.Type] {
			seenType[e.Type] = true
			fs.Types = append(fs.Types, e.Type)
		}
		if e.Branch != "" && !seenBranch[e.Branch] {
			seenBranch[e.Branch] = true
			fs.Branches = append(fs.Branches, e.Branch)
		}
	}
	return fs
}

// SortByCode returns a copy of items ordered by code.
func SortByCode(items []domain.Equipment) []domain.Equipment {
	out := append([]domain.Equipment{}, items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Query bundles the inputs of one board request.
type Query struct {
	Term     string
	Criteria Criteria
	Page     int
	PageSize int
}

type Result struct {
	Page   Page     `json:"page"`
	Facets FacetSet `json:"facets"`
}

// Build runs search, filter and pagination in that order. Facets come from
// the unfiltered collection so dropdowns keep every option.
func Build(items []domain.Equipment, q Query) Result {
	visible := Filter(Search(items, q.Term), q.Criteria)
	return Result{
		Page:   Paginate(visible, q.Page, q.PageSize),
		Facets: Facets(items),
	}
}

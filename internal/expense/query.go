package expense

import (
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

// DefaultPageSize is the table page size when the caller does not choose one
const DefaultPageSize = 10

// fuzzyMinTokenLen is the token length from which a one-character typo
// still counts as a match
const fuzzyMinTokenLen = 4

// SortKey selects the field a view is ordered by
type SortKey string

const (
	SortByAmount       SortKey = "amount"
	SortByPurchaseDate SortKey = "purchase_date"
	SortBySubmittedAt  SortKey = "submitted_at"
	SortByEmployee     SortKey = "employee_name"
)

// Direction is the sort direction
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Params are the UI-supplied query parameters for a view. Empty filter
// sets mean no restriction on that dimension; dimensions compose with
// AND, values within a dimension with OR.
type Params struct {
	Query      string
	Statuses   []Status
	Categories []Category
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Page is a single page of a view plus its pagination metadata
type Page struct {
	Items      []*Record `json:"items"`
	Page       int       `json:"page"`
	TotalCount int       `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// Apply narrows a snapshot to the records matching the query parameters.
// Search runs first, then status, category and date-range filters.
// The snapshot itself is never mutated; views only affect display.
func Apply(records []*Record, params Params) []*Record {
	result := make([]*Record, 0, len(records))
	for _, r := range records {
		if !matchesQuery(r, params.Query) {
			continue
		}
		if len(params.Statuses) > 0 && !containsStatus(params.Statuses, r.Status) {
			continue
		}
		if len(params.Categories) > 0 && !containsCategory(params.Categories, r.Category) {
			continue
		}
		if params.DateFrom != nil && dayOf(r.PurchaseDate).Before(dayOf(*params.DateFrom)) {
			continue
		}
		if params.DateTo != nil && dayOf(r.PurchaseDate).After(dayOf(*params.DateTo)) {
			continue
		}
		result = append(result, r)
	}
	return result
}

// Sort orders records by the given key without disturbing ties, so
// repeated sorts of an unchanged set are deterministic. The input slice
// is left untouched.
func Sort(records []*Record, key SortKey, dir Direction) []*Record {
	sorted := make([]*Record, len(records))
	copy(sorted, records)

	less := func(a, b *Record) bool {
		switch key {
		case SortByAmount:
			return a.Amount.LessThan(b.Amount)
		case SortByPurchaseDate:
			return a.PurchaseDate.Before(b.PurchaseDate)
		case SortBySubmittedAt:
			return a.SubmittedAt.Before(b.SubmittedAt)
		case SortByEmployee:
			return a.EmployeeName < b.EmployeeName
		default:
			return false
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if dir == Descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// Paginate slices records into a zero-based page. An out-of-range page
// index clamps to the last valid page instead of erroring.
func Paginate(records []*Record, pageIndex, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize

	if pageIndex < 0 {
		pageIndex = 0
	}
	if totalPages == 0 {
		return Page{Items: []*Record{}, Page: 0, TotalCount: 0, TotalPages: 0}
	}
	if pageIndex >= totalPages {
		pageIndex = totalPages - 1
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	items := make([]*Record, end-start)
	copy(items, records[start:end])
	return Page{Items: items, Page: pageIndex, TotalCount: total, TotalPages: totalPages}
}

// matchesQuery reports whether the record's employee name, vendor or
// description matches the free-text query. An exact (case-insensitive)
// substring always matches; otherwise every query token must be within
// edit distance one of some field token, with typos only tolerated in
// tokens of fuzzyMinTokenLen or more runes.
func matchesQuery(r *Record, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	fields := []string{
		strings.ToLower(r.EmployeeName),
		strings.ToLower(r.Vendor),
		strings.ToLower(r.Description),
	}
	for _, f := range fields {
		if strings.Contains(f, query) {
			return true
		}
	}

	var fieldTokens []string
	for _, f := range fields {
		fieldTokens = append(fieldTokens, strings.Fields(f)...)
	}

	for _, token := range strings.Fields(query) {
		if !matchesToken(token, fieldTokens) {
			return false
		}
	}
	return true
}

func matchesToken(token string, fieldTokens []string) bool {
	for _, ft := range fieldTokens {
		if strings.Contains(ft, token) {
			return true
		}
		if len([]rune(token)) >= fuzzyMinTokenLen && levenshtein.ComputeDistance(token, ft) <= 1 {
			return true
		}
	}
	return false
}

func containsStatus(set []Status, s Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsCategory(set []Category, c Category) bool {
	for _, v := range set {
		if v == c {
			return true
		}
	}
	return false
}

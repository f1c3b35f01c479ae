// Package query derives filtered, sorted, grouped and paginated views from a
// full post list already fetched from the store. Every function here is a
// pure transformation; nothing mutates the input slice or touches storage.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/rpupo63/blog-cms-backend/models"
)

// PageSize is the fixed number of posts per page.
const PageSize = 10

// AllFilter is the sentinel category/tag value meaning "no constraint",
// distinct from any real category or tag.
const AllFilter = "全部"

// UnclassifiedGroup collects posts whose createdAt cannot be parsed.
const UnclassifiedGroup = "unclassified"

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Options is the filter state for a single view. The zero value imposes no
// constraint except the default descending sort and first page.
type Options struct {
	Section   models.Section // empty: all sections
	Category  string         // empty or AllFilter: all categories
	Tag       string         // empty or AllFilter: all tags
	Search    string         // case-insensitive substring over title+summary
	StartDate string         // inclusive lower bound on createdAt (YYYY-MM-DD)
	EndDate   string         // inclusive upper bound at day granularity
	Sort      Order          // empty defaults to OrderDesc
	Page      int            // clamped to the valid page range
}

// Result is one visible page plus its pagination metadata.
type Result struct {
	Posts      []models.Post
	Total      int
	TotalPages int
	Page       int
}

func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse(models.DateLayout, s)
	return t, err == nil
}

// timestamp converts a post's createdAt for comparison. Unparseable dates
// compare as Unix timestamp 0, so they sort to the oldest end.
func timestamp(p models.Post) time.Time {
	if t, ok := parseDay(p.CreatedAt); ok {
		return t
	}
	return time.Unix(0, 0)
}

// Matches reports whether a single post passes every filter in opts. All
// filters are conjunctive.
func Matches(p models.Post, opts Options) bool {
	if opts.Section != "" && p.Section != opts.Section {
		return false
	}

	if opts.Category != "" && opts.Category != AllFilter {
		category := p.Category
		if category == "" {
			category = models.DefaultCategory
		}
		if category != opts.Category {
			return false
		}
	}

	if opts.Tag != "" && opts.Tag != AllFilter {
		found := false
		for _, tag := range p.Tags {
			if tag == opts.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if opts.Search != "" {
		haystack := strings.ToLower(p.Title + p.Summary)
		if !strings.Contains(haystack, strings.ToLower(opts.Search)) {
			return false
		}
	}

	ts := timestamp(p)
	if start, ok := parseDay(opts.StartDate); ok && ts.Before(start) {
		return false
	}
	// The end bound is exclusive one day past the supplied date, so the end
	// date itself is inclusive at day granularity.
	if end, ok := parseDay(opts.EndDate); ok && !ts.Before(end.AddDate(0, 0, 1)) {
		return false
	}

	return true
}

// Apply filters, sorts and paginates posts according to opts and returns the
// visible page with its pagination metadata.
func Apply(posts []models.Post, opts Options) Result {
	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if Matches(p, opts) {
			filtered = append(filtered, p)
		}
	}

	asc := opts.Sort == OrderAsc
	sort.SliceStable(filtered, func(i, j int) bool {
		ti, tj := timestamp(filtered[i]), timestamp(filtered[j])
		if asc {
			return ti.Before(tj)
		}
		return tj.Before(ti)
	})

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Posts:      filtered[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
	}
}

// CategoryOptions derives the candidate category list from the given posts,
// deduplicated in insertion order and prefixed with the AllFilter sentinel.
// Callers pass the already section-filtered posts for their view.
func CategoryOptions(posts []models.Post) []string {
	options := []string{AllFilter}
	seen := make(map[string]bool)
	for _, p := range posts {
		category := p.Category
		if category == "" {
			category = models.DefaultCategory
		}
		if !seen[category] {
			seen[category] = true
			options = append(options, category)
		}
	}
	return options
}

// TagOptions flattens all tags across the given posts, deduplicated in
// insertion order and prefixed with the AllFilter sentinel.
func TagOptions(posts []models.Post) []string {
	options := []string{AllFilter}
	seen := make(map[string]bool)
	for _, p := range posts {
		for _, tag := range p.Tags {
			if !seen[tag] {
				seen[tag] = true
				options = append(options, tag)
			}
		}
	}
	return options
}

// Group is a run of posts sharing a year-month.
type Group struct {
	Month string
	Posts []models.Post
}

// GroupByMonth groups an already filtered, sorted and paginated page of posts
// by the year-month of createdAt. Posts with unparseable dates fall into the
// UnclassifiedGroup bucket. Group order follows first occurrence within the
// input.
func GroupByMonth(posts []models.Post) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, p := range posts {
		month := UnclassifiedGroup
		if t, ok := parseDay(p.CreatedAt); ok {
			month = t.Format("2006-01")
		}
		i, ok := index[month]
		if !ok {
			i = len(groups)
			index[month] = i
			groups = append(groups, Group{Month: month})
		}
		groups[i].Posts = append(groups[i].Posts, p)
	}
	return groups
}

// Package view derives what the archive browser shows from the full record
// set and the current Params. Nothing here mutates its inputs.
package view

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matheuskafuri/ingester/internal/archive"
)

const DefaultLocale = "en"

// Engine holds the collation locale used for title ordering.
type Engine struct {
	locale language.Tag
}

// NewEngine returns an engine collating titles for locale (a BCP 47 tag).
// An unparseable locale falls back to DefaultLocale.
func NewEngine(locale string) *Engine {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Engine{locale: tag}
}

var defaultEngine = NewEngine(DefaultLocale)

// Visible derives the visible set with the default locale.
func Visible(records []archive.Record, p Params) []archive.Record {
	return defaultEngine.Visible(records, p)
}

// Visible applies text search, tag filter and type filter, then sorts.
// Filters are conjunctive; tags match if any selected tag is present.
// The result is a new slice, stable with respect to input order.
func (e *Engine) Visible(records []archive.Record, p Params) []archive.Record {
	out := make([]archive.Record, 0, len(records))

	query := strings.ToLower(p.Query)
	for _, r := range records {
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		if len(p.tags) > 0 && !matchesTags(r, p) {
			continue
		}
		if p.Type != "" && p.Type != TypeAll && TypeFilter(r.ResourceType) != p.Type {
			continue
		}
		out = append(out, r)
	}

	switch p.Sort {
	case SortTitle:
		e.sortByTitle(out)
	default:
		sortByDate(out)
	}
	return out
}

func matchesQuery(r archive.Record, query string) bool {
	return strings.Contains(strings.ToLower(r.Title), query) ||
		strings.Contains(strings.ToLower(r.Description), query) ||
		strings.Contains(strings.ToLower(r.URL), query)
}

func matchesTags(r archive.Record, p Params) bool {
	for _, t := range r.Tags {
		if p.HasTag(t) {
			return true
		}
	}
	return false
}

// sortByDate orders newest first. Records with an unparseable created_at
// count as the zero instant and therefore sort last.
func sortByDate(records []archive.Record) {
	keys := make(map[int]time.Time, len(records))
	for _, r := range records {
		keys[r.ID] = ParseCreatedAt(r.CreatedAt)
	}
	slices.SortStableFunc(records, func(a, b archive.Record) int {
		return keys[b.ID].Compare(keys[a.ID])
	})
}

func (e *Engine) sortByTitle(records []archive.Record) {
	// Collators are not safe for concurrent use.
	c := collate.New(e.locale)
	slices.SortStableFunc(records, func(a, b archive.Record) int {
		return c.CompareString(a.Title, b.Title)
	})
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseCreatedAt parses the timestamps the archive API emits. Values without
// a zone are taken as UTC. It returns the zero time when nothing matches.
func ParseCreatedAt(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// TagUniverse returns every distinct tag across records, sorted ascending.
func TagUniverse(records []archive.Record) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, r := range records {
		for _, t := range r.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	slices.Sort(tags)
	return tags
}

// Remove returns records without the one whose ID is id. The input slice is
// left untouched. ok is false when no record has that ID.
func Remove(records []archive.Record, id int) (rest []archive.Record, removed archive.Record, ok bool) {
	i := slices.IndexFunc(records, func(r archive.Record) bool { return r.ID == id })
	if i < 0 {
		return records, archive.Record{}, false
	}
	rest = make([]archive.Record, 0, len(records)-1)
	rest = append(rest, records[:i]...)
	rest = append(rest, records[i+1:]...)
	return rest, records[i], true
}

// Counts tallies articles and resources. Records with any other type count
// toward neither.
func Counts(records []archive.Record) (articles, resources int) {
	for _, r := range records {
		switch r.ResourceType {
		case archive.TypeArticle:
			articles++
		case archive.TypeResource:
			resources++
		}
	}
	return articles, resources
}

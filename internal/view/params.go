package view

import (
	"fmt"
	"slices"
	"sort"

	"github.com/matheuskafuri/ingester/internal/archive"
)

type TypeFilter string

const (
	TypeAll      TypeFilter = "all"
	TypeArticle  TypeFilter = TypeFilter(archive.TypeArticle)
	TypeResource TypeFilter = TypeFilter(archive.TypeResource)
)

type SortKey string

const (
	SortDate  SortKey = "date"
	SortTitle SortKey = "title"
)

func ParseTypeFilter(s string) (TypeFilter, error) {
	switch TypeFilter(s) {
	case "", TypeAll:
		return TypeAll, nil
	case TypeArticle, TypeResource:
		return TypeFilter(s), nil
	}
	return "", fmt.Errorf("unknown type %q (valid: all, article, resource)", s)
}

func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "", SortDate:
		return SortDate, nil
	case SortTitle:
		return SortTitle, nil
	}
	return "", fmt.Errorf("unknown sort %q (valid: date, title)", s)
}

// Params is the search, filter and sort configuration chosen by the user.
// It is a value: the With* and Toggle* methods return a modified copy.
type Params struct {
	Query string
	Type  TypeFilter
	Sort  SortKey

	// tags is kept sorted and de-duplicated so that Params compare by set.
	tags []string
}

// DefaultParams returns an empty query, no tags, all types, newest first.
func DefaultParams() Params {
	return Params{Type: TypeAll, Sort: SortDate}
}

func (p Params) WithQuery(q string) Params {
	p.Query = q
	return p
}

func (p Params) WithType(t TypeFilter) Params {
	p.Type = t
	return p
}

func (p Params) WithSort(s SortKey) Params {
	p.Sort = s
	return p
}

// WithTags replaces the selected tag set.
func (p Params) WithTags(tags ...string) Params {
	set := slices.Clone(tags)
	sort.Strings(set)
	p.tags = slices.Compact(set)
	if len(p.tags) == 0 {
		p.tags = nil
	}
	return p
}

// ToggleTag adds tag to the selection, or removes it if already selected.
func (p Params) ToggleTag(tag string) Params {
	i, found := slices.BinarySearch(p.tags, tag)
	if found {
		p.tags = slices.Delete(slices.Clone(p.tags), i, i+1)
		if len(p.tags) == 0 {
			p.tags = nil
		}
		return p
	}
	p.tags = slices.Insert(slices.Clone(p.tags), i, tag)
	return p
}

func (p Params) ClearTags() Params {
	p.tags = nil
	return p
}

func (p Params) HasTag(tag string) bool {
	_, found := slices.BinarySearch(p.tags, tag)
	return found
}

// Tags returns the selected tags in ascending order.
func (p Params) Tags() []string {
	return slices.Clone(p.tags)
}

// NextType cycles all -> article -> resource -> all.
func (p Params) NextType() Params {
	switch p.Type {
	case TypeAll, "":
		p.Type = TypeArticle
	case TypeArticle:
		p.Type = TypeResource
	default:
		p.Type = TypeAll
	}
	return p
}

// ToggleSort flips between date and title ordering.
func (p Params) ToggleSort() Params {
	if p.Sort == SortTitle {
		p.Sort = SortDate
	} else {
		p.Sort = SortTitle
	}
	return p
}

// Equal reports whether both values select the same visible set.
func (p Params) Equal(o Params) bool {
	return p.Query == o.Query && p.Type == o.Type && p.Sort == o.Sort && slices.Equal(p.tags, o.tags)
}

package appearance

import (
	"slices"
	"strings"
)

// IconList is an ordered, deduplicated list of custom icon references.
// The zero value is ready to use. It is not safe for concurrent use.
type IconList struct {
	items []string
}

// NewIconList builds a list from icons, dropping blanks and duplicates.
func NewIconList(icons ...string) *IconList {
	l := &IconList{}
	l.Merge(icons)
	return l
}

// Items returns a copy of the icons in insertion order.
func (l *IconList) Items() []string {
	return slices.Clone(l.items)
}

// Len returns the number of icons.
func (l *IconList) Len() int {
	return len(l.items)
}

// Contains reports whether icon is in the list.
func (l *IconList) Contains(icon string) bool {
	return slices.Contains(l.items, strings.TrimSpace(icon))
}

// Add appends icon unless it is blank or already present.
func (l *IconList) Add(icon string) bool {
	icon = strings.TrimSpace(icon)
	if icon == "" || slices.Contains(l.items, icon) {
		return false
	}
	l.items = append(l.items, icon)
	return true
}

// Remove deletes icon from the list.
func (l *IconList) Remove(icon string) bool {
	icon = strings.TrimSpace(icon)
	i := slices.Index(l.items, icon)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Merge adds every icon not yet present and reports whether the list grew.
func (l *IconList) Merge(icons []string) bool {
	grew := false
	for _, icon := range icons {
		if l.Add(icon) {
			grew = true
		}
	}
	return grew
}

// Dedupe returns icons without blanks and duplicates, keeping first occurrences.
func Dedupe(icons []string) []string {
	return NewIconList(icons...).Items()
}

package types

import "strings"

// Category is one of the fixed note categories. The zero value, CategoryNone,
// marks a note whose category was never set or was set to an unknown label.
type Category string

// Note categories, in display order.
const (
	CategoryNone    Category = ""
	CategoryHome    Category = "Home"
	CategoryWork    Category = "Work"
	CategoryHobby   Category = "Hobby"
	CategoryHoliday Category = "Holiday"
	CategoryCollege Category = "College"
)

// categoryOrder is the fixed, ordered registry of valid categories.
var categoryOrder = []Category{
	CategoryHome,
	CategoryWork,
	CategoryHobby,
	CategoryHoliday,
	CategoryCollege,
}

// categoryByKey maps the case-folded label to its canonical category.
var categoryByKey = func() map[string]Category {
	m := make(map[string]Category, len(categoryOrder))
	for _, c := range categoryOrder {
		m[strings.ToLower(string(c))] = c
	}
	return m
}()

// Categories returns the valid categories in display order. The returned
// slice is a copy; callers may modify it.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// CategoryLabels returns the valid category labels joined for prompts and
// error messages, e.g. "Home, Work, Hobby, Holiday, College".
func CategoryLabels() string {
	labels := make([]string, len(categoryOrder))
	for i, c := range categoryOrder {
		labels[i] = string(c)
	}
	return strings.Join(labels, ", ")
}

// ParseCategory trims s and matches it case-insensitively against the
// registry. It returns CategoryNone and false for unknown input.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryByKey[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// IsValidCategory reports whether s names a known category, ignoring case and
// surrounding whitespace.
func IsValidCategory(s string) bool {
	_, ok := ParseCategory(s)
	return ok
}

// FormatCategory returns the canonical label for s when s names a known
// category. Unknown input is returned unchanged.
func FormatCategory(s string) string {
	if c, ok := ParseCategory(s); ok {
		return string(c)
	}
	return s
}

// Valid reports whether c is one of the registered categories.
// CategoryNone is not valid.
func (c Category) Valid() bool {
	canonical, ok := categoryByKey[strings.ToLower(string(c))]
	return ok && canonical == c
}

// String returns the category label.
func (c Category) String() string {
	return string(c)
}

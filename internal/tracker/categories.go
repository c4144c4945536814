package tracker

import (
	"fmt"
	"strings"
)

const (
	PrimaryExternal = "external"
	PrimaryStudy    = "study"
	PrimaryHealth   = "health"
	PrimaryOther    = "other"
)

// PrimaryCategories is the closed set of top-level task classifications.
var PrimaryCategories = []Category{
	{Key: PrimaryExternal, Label: "External"},
	{Key: PrimaryStudy, Label: "Growth"},
	{Key: PrimaryHealth, Label: "Health"},
	{Key: PrimaryOther, Label: "Other"},
}

// SecondaryCategories are the built-in sub-classifications. User-defined
// ones live in a separate list.
var SecondaryCategories = []Category{
	{Key: "spontaneous", Label: "Spontaneous"},
	{Key: "obligation", Label: "Obligation"},
	{Key: "family", Label: "Family"},
}

// PrimaryLabel returns the label for key, or key itself when unknown.
func PrimaryLabel(key string) string {
	for _, c := range PrimaryCategories {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}

// IsPrimary reports whether key is one of the fixed primary categories.
func IsPrimary(key string) bool {
	for _, c := range PrimaryCategories {
		if c.Key == key {
			return true
		}
	}
	return false
}

// SecondaryLabel looks key up in the built-in and custom lists.
func SecondaryLabel(key string, custom []Category) string {
	for _, c := range AllSecondary(custom) {
		if c.Key == key {
			return c.Label
		}
	}
	return key
}

// AllSecondary is the built-in list followed by the custom one.
func AllSecondary(custom []Category) []Category {
	all := make([]Category, 0, len(SecondaryCategories)+len(custom))
	all = append(all, SecondaryCategories...)
	return append(all, custom...)
}

// AddCategory appends a custom category with a generated key. Blank labels
// are rejected and the list is returned unchanged.
func AddCategory(list []Category, label string) ([]Category, Category, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return list, Category{}, false
	}
	c := Category{Key: fmt.Sprintf("custom-%d", now().UnixNano()), Label: label}
	for hasKey(list, c.Key) {
		c.Key = "custom-" + NewID()
	}
	out := make([]Category, 0, len(list)+1)
	out = append(out, list...)
	return append(out, c), c, true
}

// RemoveCategory drops key from list. If selected pointed at it, the
// returned selection is cleared.
func RemoveCategory(list []Category, key, selected string) ([]Category, string) {
	out := make([]Category, 0, len(list))
	for _, c := range list {
		if c.Key != key {
			out = append(out, c)
		}
	}
	if selected == key {
		selected = ""
	}
	return out, selected
}

// MoveCategoryUp swaps position i with i-1.
func MoveCategoryUp(list []Category, i int) []Category {
	if i <= 0 || i >= len(list) {
		return list
	}
	return swap(list, i-1, i)
}

// MoveCategoryDown swaps position i with i+1.
func MoveCategoryDown(list []Category, i int) []Category {
	if i < 0 || i >= len(list)-1 {
		return list
	}
	return swap(list, i, i+1)
}

func swap(list []Category, i, j int) []Category {
	out := append([]Category(nil), list...)
	out[i], out[j] = out[j], out[i]
	return out
}

func hasKey(list []Category, key string) bool {
	for _, c := range list {
		if c.Key == key {
			return true
		}
	}
	return false
}

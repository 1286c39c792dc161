package models

import "strings"

// Legacy category labels mapped to their canonical names.
var categoryRenames = map[string]string{
	"Cuero Artesanal": "Cuero",
}

// CategoryCrochet is the canonical label for every trapillo variant.
const CategoryCrochet = "Tejidos Crochet"

// Migrate returns a copy of the item brought up to the current record
// shape and whether anything changed:
//   - a missing cost becomes 0
//   - the legacy single image folds into the images list and is cleared
//   - the images field always ends up a well-formed list
//   - legacy category labels are renamed to their canonical names
//
// Running it on an already migrated item reports no change, so repeated
// startup migrations write nothing.
func (m MenuItem) Migrate() (MenuItem, bool) {
	changed := false

	if m.Cost == nil {
		zero := int64(0)
		m.Cost = &zero
		changed = true
	}

	if m.Images.Malformed {
		m.Images = StringList{Values: []string{}}
		changed = true
	}

	if m.Image != "" {
		if len(m.Images.Values) == 0 {
			m.Images.Values = []string{m.Image}
		}
		m.Image = ""
		changed = true
	}

	if m.Images.Values == nil {
		m.Images.Values = []string{}
		changed = true
	}

	if canonical, ok := canonicalCategory(m.Category); ok {
		m.Category = canonical
		changed = true
	}

	return m, changed
}

func canonicalCategory(category string) (string, bool) {
	if canonical, ok := categoryRenames[category]; ok {
		return canonical, true
	}
	if category != CategoryCrochet && strings.Contains(strings.ToLower(category), "trapillo") {
		return CategoryCrochet, true
	}
	return "", false
}

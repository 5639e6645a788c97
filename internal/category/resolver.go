package category

import "strings"

// Resolve picks the category an item belongs to. Strategies run in a fixed
// order and the first match wins:
//
//  1. the item's explicit category id (or a ByID ref when no explicit id is set)
//  2. the id of an embedded category object
//  3. a case-insensitive exact match of a ByName ref
//
// Anything else resolves to Uncategorized. Resolve never fails.
func Resolve(categoryID *int, ref Ref, all []Category) Category {
	if categoryID != nil {
		if c, ok := findByID(all, *categoryID); ok {
			return c
		}
	} else if ref.Kind() == RefByID {
		if c, ok := findByID(all, ref.id); ok {
			return c
		}
	}

	if ref.Kind() == RefEmbedded && ref.hasID {
		if c, ok := findByID(all, ref.id); ok {
			return c
		}
	}

	if name, ok := ref.Name(); ok {
		for _, c := range all {
			if c.Name != "" && strings.EqualFold(c.Name, name) {
				return c
			}
		}
	}

	return Uncategorized
}

// Label is the display name for a category field as it arrived, without
// looking anything up.
func Label(ref Ref) string {
	switch ref.Kind() {
	case RefEmbedded:
		if ref.embedded.Name != "" {
			return ref.embedded.Name
		}
	case RefByName:
		return ref.name
	}
	return UncategorizedName
}

func findByID(all []Category, id int) (Category, bool) {
	for _, c := range all {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindByName looks a category up case-insensitively.
func FindByName(all []Category, name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range all {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

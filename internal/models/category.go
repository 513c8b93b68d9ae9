package models

const (
	CategoryProgramming = "programming"
	CategoryDesign      = "design"
	CategoryLanguage    = "language"
	CategoryMusic       = "music"
	CategoryOther       = "other"

	// CategoryAll is the filter value that matches every category.
	CategoryAll = "all"
)

var categoryLabels = map[string]string{
	CategoryProgramming: "Programming",
	CategoryDesign:      "Design",
	CategoryLanguage:    "Language",
	CategoryMusic:       "Music",
	CategoryOther:       "Other",
}

// Categories lists the known categories in display order.
func Categories() []string {
	return []string{CategoryProgramming, CategoryDesign, CategoryLanguage, CategoryMusic, CategoryOther}
}

// FormatCategory maps a stored category to its label. Unknown values
// display as "Other" but are never rewritten in storage.
func FormatCategory(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

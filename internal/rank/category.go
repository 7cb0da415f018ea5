package rank

// Category is the display tier of a match score.
type Category string

const (
	CategoryHigh   Category = "high"
	CategoryMedium Category = "medium"
	CategoryLow    Category = "low"
	CategoryNone   Category = "none"
)

func CategoryFor(score int) Category {
	switch {
	case score >= 80:
		return CategoryHigh
	case score >= 60:
		return CategoryMedium
	case score >= 40:
		return CategoryLow
	default:
		return CategoryNone
	}
}

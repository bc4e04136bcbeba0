package rules

// categoryIndexBase is the first index used by TagCategories. Categories is a
// zero-based slice, so lookups subtract it.
const categoryIndexBase = 1

// LabelColor names a label palette entry.
type LabelColor string

const (
	LabelBlue LabelColor = "blue"
	LabelRed  LabelColor = "red"
	LabelGrey LabelColor = "grey"
)

// CategoryLabel is a display chip for a rule category.
type CategoryLabel struct {
	Tag   string
	Text  string
	Color LabelColor
}

// CategoryLabels maps tags to category labels in input order. Tags without a
// category are skipped.
func CategoryLabels(tags []string, tables Tables) []CategoryLabel {
	labels := make([]CategoryLabel, 0, len(tags))
	for _, tag := range tags {
		idx, ok := tables.TagCategories[tag]
		if !ok {
			continue
		}
		pos := idx - categoryIndexBase
		if pos < 0 || pos >= len(tables.Categories) {
			continue
		}
		labels = append(labels, CategoryLabel{
			Tag:   tag,
			Text:  tables.Categories[pos].Label,
			Color: LabelBlue,
		})
	}
	return labels
}

// Package messages holds the user-facing strings of the advisor views.
package messages

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a message.
type Key string

const (
	UnableToConnect     Key = "unableToConnect"
	UnableToConnectDesc Key = "unableToConnectDesc"
	Loading             Key = "loading"
	Recommendations     Key = "recommendations"
	PublishDate         Key = "rulesDetailsPublishDate"
	AffectedClusters    Key = "affectedClusters"
	ImpactedClusters    Key = "impactedClusters"
	NoClusters          Key = "noClusters"
	NoMatchingClusters  Key = "noMatchingClusters"
	FilterByName        Key = "filterByName"
	ClustersPage        Key = "clustersPage"
	Reason              Key = "reason"
	Resolution          Key = "resolution"
	MoreInfo            Key = "moreInfo"
	TotalRisk           Key = "totalRisk"
	Likelihood          Key = "likelihood"
	Impact              Key = "impact"
	Incident            Key = "incident"
	Disabled            Key = "disabled"
	MoreLabels          Key = "moreLabels"
	ShowLess            Key = "showLess"
	RenderFailed        Key = "renderFailed"
	ColumnName          Key = "columnName"
	ColumnVersion       Key = "columnVersion"
	ColumnLastSeen      Key = "columnLastSeen"
	SkippedRecords      Key = "skippedRecords"
)

var english = map[Key]string{
	UnableToConnect:     "Unable to connect",
	UnableToConnectDesc: "There was an error retrieving data. Check your connection and reload the page.",
	Loading:             "Loading…",
	Recommendations:     "Advisor recommendations",
	PublishDate:         "Publish date: %s",
	AffectedClusters:    "Affected clusters",
	NoClusters:          "No clusters",
	NoMatchingClusters:  "No matching clusters found",
	FilterByName:        "Filter by name",
	ClustersPage:        "page %d of %d",
	Reason:              "Reason",
	Resolution:          "Resolution",
	MoreInfo:            "Additional info",
	TotalRisk:           "Total risk",
	Likelihood:          "Likelihood",
	Impact:              "Impact",
	Incident:            "Incident",
	Disabled:            "Disabled",
	MoreLabels:          "%d more",
	ShowLess:            "Show less",
	RenderFailed:        "Unable to display recommendation",
	ColumnName:          "Name",
	ColumnVersion:       "Version",
	ColumnLastSeen:      "Last seen",
	SkippedRecords:      "%d skipped · %s",
}

// Printer formats messages for one language.
type Printer struct {
	p *message.Printer
}

// NewPrinter returns a printer for tag. Languages without translations fall
// back to English.
func NewPrinter(tag language.Tag) *Printer {
	return &Printer{p: message.NewPrinter(tag, message.Catalog(newCatalog()))}
}

// English is a convenience for NewPrinter(language.English).
func English() *Printer {
	return NewPrinter(language.English)
}

// Format renders key with args.
func (p *Printer) Format(key Key, args ...any) string {
	return p.p.Sprintf(string(key), args...)
}

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		// SetString only fails on malformed messages, which the table above is not.
		_ = b.SetString(language.English, string(key), msg)
	}
	_ = b.Set(language.English, string(ImpactedClusters),
		plural.Selectf(1, "%d",
			"one", "%d cluster affected",
			"other", "%d clusters affected",
		))
	return b
}

// Package backend serves the trip tips document at /api/markdown. Tips are
// collected per source video, aggregated, and rendered as one markdown page.
package backend

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParkAttraction lists the must-do attractions of one park.
type ParkAttraction struct {
	ParkName        string   `yaml:"park_name" json:"park_name"`
	AttractionNames []string `yaml:"attraction_names" json:"attraction_names"`
}

// TripTips are the tips extracted from one video.
type TripTips struct {
	ParkUpdates           string           `yaml:"park_updates" json:"park_updates"`
	BestTimeToVisit       string           `yaml:"best_time_to_visit" json:"best_time_to_visit"`
	MustDoAttractions     []ParkAttraction `yaml:"must_do_attractions" json:"must_do_attractions"`
	DiningRecommendations []string         `yaml:"dining_recommendations" json:"dining_recommendations"`
	PremiumTips           string           `yaml:"premium_tips" json:"premium_tips"`
	BudgetTips            string           `yaml:"budget_tips" json:"budget_tips"`
	PackingEssentials     []string         `yaml:"packing_essentials" json:"packing_essentials"`
	TransportationOptions string           `yaml:"transportation_options" json:"transportation_options"`
	PlanningResources     []string         `yaml:"planning_resources" json:"planning_resources"`
	// PublishDateVideoURL holds [publish date, video url] pairs; one per video.
	PublishDateVideoURL [][]string `yaml:"publish_date_video_url" json:"publish_date_video_url"`
}

// Aggregated merges the tips of every video, field by field.
type Aggregated struct {
	ParkUpdates           []string
	BestTimeToVisit       []string
	MustDoAttractions     []ParkAttraction
	DiningRecommendations []string
	PremiumTips           []string
	BudgetTips            []string
	PackingEssentials     []string
	TransportationOptions []string
	PlanningResources     []string
	PublishDateVideoURL   [][][]string
}

// Aggregate merges tips in order. Nil entries (videos that failed
// processing) are skipped.
func Aggregate(all []*TripTips) Aggregated {
	var a Aggregated
	for _, t := range all {
		if t == nil {
			continue
		}
		a.ParkUpdates = append(a.ParkUpdates, t.ParkUpdates)
		a.BestTimeToVisit = append(a.BestTimeToVisit, t.BestTimeToVisit)
		a.MustDoAttractions = append(a.MustDoAttractions, t.MustDoAttractions...)
		a.DiningRecommendations = append(a.DiningRecommendations, t.DiningRecommendations...)
		a.PremiumTips = append(a.PremiumTips, t.PremiumTips)
		a.BudgetTips = append(a.BudgetTips, t.BudgetTips)
		a.PackingEssentials = append(a.PackingEssentials, t.PackingEssentials...)
		a.TransportationOptions = append(a.TransportationOptions, t.TransportationOptions)
		a.PlanningResources = append(a.PlanningResources, t.PlanningResources...)
		a.PublishDateVideoURL = append(a.PublishDateVideoURL, t.PublishDateVideoURL)
	}
	return a
}

var titleCase = cases.Title(language.English)

// sectionTitle turns a snake_case field name into a section heading.
func sectionTitle(field string) string {
	return titleCase.String(strings.ReplaceAll(field, "_", " "))
}

// GenerateMarkdown renders the aggregated tips. Publish date entries that
// are not exactly one [date, url] pair are logged and left out.
func GenerateMarkdown(a Aggregated, logger *zap.Logger) string {
	if logger == nil {
		logger = zap.NewNop()
	}
	var b strings.Builder
	b.WriteString("# Disney World Trip Tips\n\n")

	bullets := func(field string, values []string) {
		b.WriteString("## " + sectionTitle(field) + "\n")
		for _, v := range values {
			b.WriteString("- " + v + "\n")
		}
		b.WriteString("\n")
	}

	bullets("park_updates", a.ParkUpdates)
	bullets("best_time_to_visit", a.BestTimeToVisit)

	b.WriteString("## " + sectionTitle("must_do_attractions") + "\n")
	for _, pa := range a.MustDoAttractions {
		b.WriteString("### " + pa.ParkName + "\n")
		for _, name := range pa.AttractionNames {
			b.WriteString("- " + name + "\n")
		}
	}
	b.WriteString("\n\n")

	bullets("dining_recommendations", a.DiningRecommendations)
	bullets("premium_tips", a.PremiumTips)
	bullets("budget_tips", a.BudgetTips)
	bullets("packing_essentials", a.PackingEssentials)
	bullets("transportation_options", a.TransportationOptions)
	bullets("planning_resources", a.PlanningResources)

	b.WriteString("## Publish Date and Video URLs\n\n")
	for _, refs := range a.PublishDateVideoURL {
		if len(refs) != 1 || len(refs[0]) != 2 {
			logger.Error("unexpected data structure for publish_date_video_url", zap.Any("value", refs))
			continue
		}
		b.WriteString("- " + refs[0][0] + ": " + refs[0][1] + "\n")
	}
	return b.String()
}

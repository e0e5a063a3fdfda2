package listing

import (
	"strings"

	"github.com/jonathan/jobboard/internal/types"
)

var locationPages = []types.LocationPage{
	{
		State:           "Ohio",
		StateAbbr:       "OH",
		City:            "Columbus",
		Slug:            "ohio/columbus",
		MetaTitle:       "Industrial Sales Jobs in Columbus, Ohio",
		MetaDescription: "Find industrial sales jobs in Columbus, OH. Browse opportunities in manufacturing, automation, and industrial equipment sales in the Columbus area.",
		Heading:         "Industrial Sales Jobs in Columbus, Ohio",
		Content:         "Columbus is a thriving hub for industrial sales professionals. With its central location and strong manufacturing base, the Columbus area offers excellent opportunities in industrial equipment, automation, and B2B sales.",
	},
	{
		State:           "Michigan",
		StateAbbr:       "MI",
		City:            "Detroit",
		Slug:            "michigan/detroit",
		MetaTitle:       "Industrial Sales Jobs in Detroit, Michigan",
		MetaDescription: "Find industrial sales jobs in Detroit, MI. Explore careers in automotive, manufacturing, and industrial automation sales in the Detroit metro area.",
		Heading:         "Industrial Sales Jobs in Detroit, Michigan",
		Content:         "Detroit remains the heart of American manufacturing. Industrial sales professionals in Detroit enjoy access to major automotive manufacturers, tier-one suppliers, and a robust industrial automation sector.",
	},
	{
		State:           "Illinois",
		StateAbbr:       "IL",
		City:            "Chicago",
		Slug:            "illinois/chicago",
		MetaTitle:       "Industrial Sales Jobs in Chicago, Illinois",
		MetaDescription: "Find industrial sales jobs in Chicago, IL. Discover opportunities in manufacturing sales, industrial equipment, and B2B sales across the Chicago metropolitan area.",
		Heading:         "Industrial Sales Jobs in Chicago, Illinois",
		Content:         "Chicago is a major industrial and logistics hub with diverse opportunities in industrial sales. From manufacturing equipment to industrial supplies, the Chicago area offers roles across all sectors of industrial sales.",
	},
	{
		State:           "Ohio",
		StateAbbr:       "OH",
		City:            "Cincinnati",
		Slug:            "ohio/cincinnati",
		MetaTitle:       "Industrial Sales Jobs in Cincinnati, Ohio",
		MetaDescription: "Find industrial sales jobs in Cincinnati, OH. Explore manufacturing and industrial equipment sales opportunities in the Cincinnati tri-state area.",
		Heading:         "Industrial Sales Jobs in Cincinnati, Ohio",
		Content:         "Cincinnati is a growing center for manufacturing and industrial commerce. The tri-state region offers diverse opportunities in industrial sales, from precision manufacturing to consumer goods production.",
	},
	{
		State:           "Indiana",
		StateAbbr:       "IN",
		City:            "Indianapolis",
		Slug:            "indiana/indianapolis",
		MetaTitle:       "Industrial Sales Jobs in Indianapolis, Indiana",
		MetaDescription: "Find industrial sales jobs in Indianapolis, IN. Browse careers in manufacturing, logistics, and industrial equipment sales in central Indiana.",
		Heading:         "Industrial Sales Jobs in Indianapolis, Indiana",
		Content:         "Indianapolis sits at the crossroads of American commerce, making it an ideal location for industrial sales professionals. The region features strong logistics, manufacturing, and pharmaceutical industries.",
	},
}

// LocationPages returns a copy of every curated city page.
func LocationPages() []types.LocationPage {
	out := make([]types.LocationPage, len(locationPages))
	copy(out, locationPages)
	return out
}

// FindLocationPage looks up a curated page. State matches the full name or
// abbreviation; both comparisons ignore case. Hyphens in the city stand for
// spaces so URL path segments like "grand-rapids" resolve.
func FindLocationPage(state, city string) (*types.LocationPage, bool) {
	state = strings.TrimSpace(state)
	city = strings.ReplaceAll(strings.TrimSpace(city), "-", " ")
	for _, p := range locationPages {
		if !strings.EqualFold(p.City, city) {
			continue
		}
		if strings.EqualFold(p.State, state) || strings.EqualFold(p.StateAbbr, state) {
			page := p
			return &page, true
		}
	}
	return nil, false
}

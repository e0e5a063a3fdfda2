package payment

import "strings"

// Metadata keys carried on the checkout session.
const (
	MetadataJobID                = "job_id"
	MetadataIsFeatured           = "is_featured"
	MetadataIsNewsletterFeatured = "is_newsletter_featured"
)

// Metadata is the typed form of the session metadata. The provider only
// stores strings, so booleans travel as "true"/"false" and are converted here
// and nowhere else.
type Metadata struct {
	JobID                string
	IsFeatured           bool
	IsNewsletterFeatured bool
}

// EncodeMetadata converts typed metadata to the provider's string map.
func EncodeMetadata(m Metadata) map[string]string {
	return map[string]string{
		MetadataJobID:                m.JobID,
		MetadataIsFeatured:           formatBool(m.IsFeatured),
		MetadataIsNewsletterFeatured: formatBool(m.IsNewsletterFeatured),
	}
}

// DecodeMetadata reads typed metadata from the provider's string map.
// Anything other than the literal "true" decodes as false.
func DecodeMetadata(raw map[string]string) Metadata {
	return Metadata{
		JobID:                strings.TrimSpace(raw[MetadataJobID]),
		IsFeatured:           raw[MetadataIsFeatured] == "true",
		IsNewsletterFeatured: raw[MetadataIsNewsletterFeatured] == "true",
	}
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

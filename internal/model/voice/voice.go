package voice

// Voice describes a TTS voice selectable from the mirror UI.
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Lang string `json:"lang"`
}

// Seed provides the default voices exposed when the synthesis engine does not
// report its own catalogue.
func Seed() []Voice {
	return []Voice{
		{ID: "en-us-standard", Name: "English (US) Standard", Lang: "en-US"},
		{ID: "en-gb-standard", Name: "English (UK) Standard", Lang: "en-GB"},
		{ID: "pt-pt-standard", Name: "Português (Portugal)", Lang: "pt-PT"},
	}
}

package models

// Template is a draft message with {{field}} placeholder markers in its
// subject and bodies. It is sourced once per batch run and immutable for the
// duration of the run.
type Template struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// RenderedMessage is a Template after placeholder substitution for one
// record.
type RenderedMessage struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

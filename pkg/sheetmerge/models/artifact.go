package models

// Artifact is a reference to a newly created file or folder.
type Artifact struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

package model

// CandidateEntry is a (title, key) pair extracted from the source document.
type CandidateEntry struct {
	Title string `json:"title" yaml:"title"`
	Key   string `json:"key" yaml:"key"`
}

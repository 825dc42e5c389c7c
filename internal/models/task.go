package models

// Task is the only persisted entity. The JSON field names are the
// storage payload format and must stay stable.
type Task struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	About string `json:"about" yaml:"about"`
}

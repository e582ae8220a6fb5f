package entity

import "time"

// NewsArticle is a headline published for a country's region code.
type NewsArticle struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
	PublishedAt time.Time
	SourceName  string
}

package domain

import "strings"

// SearchQuery is the free-text query built from command-line terms.
type SearchQuery struct {
	text  string
	empty bool
}

// NewSearchQuery joins terms with single spaces.
func NewSearchQuery(terms []string) SearchQuery {
	return SearchQuery{text: strings.Join(terms, " "), empty: len(terms) == 0}
}

func (q SearchQuery) String() string {
	return q.text
}

func (q SearchQuery) IsEmpty() bool {
	return q.empty
}

// VideoRecord is a video as returned by videos.list with snippet and statistics parts.
type VideoRecord struct {
	ID           string
	Title        string
	PublishedAt  string // RFC3339, UTC
	ChannelTitle string
	// Counters are nil when the API left them out, e.g. hidden likes.
	ViewCount    *uint64
	LikeCount    *uint64
	CommentCount *uint64
	Tags         []string // nil when the video has no tags
}

// FormattedRecord is the display-ready projection of a VideoRecord.
type FormattedRecord struct {
	Title       string
	PublishedAt string
	Channel     string
	Views       string
	Likes       string
	Comments    string
	Tags        string
}

// Report is everything rendered for a single run.
type Report struct {
	Query   SearchQuery
	Records []FormattedRecord
}

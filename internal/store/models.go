package store

import "time"

// Feedback states a chat entry can carry. The current label reflects the
// most recent feedback submission; the tallies accumulate independently.
const (
	FeedbackThumbsUp   = "thumbsUp"
	FeedbackThumbsDown = "thumbsDown"
	FeedbackNeutral    = "neutral"
)

// CategoryOther is the fallback category for questions that don't mention
// the label a client suggested for them.
const CategoryOther = "other"

// ChatEntry is a cached question/answer pair. NormalizedQuestion is the
// dedup key: repeated submissions of stem-equivalent questions land on the
// same entry and bump its counters instead of creating new rows.
type ChatEntry struct {
	ID                 string    `json:"_id"`
	Question           string    `json:"question"`
	NormalizedQuestion string    `json:"normalizedQuestion"`
	Answer             string    `json:"answer"`
	Feedback           string    `json:"feedback"`
	ThumbsUp           int64     `json:"thumbsUp"`
	ThumbsDown         int64     `json:"thumbsDown"`
	Category           string    `json:"category"`
	Count              int64     `json:"count"`
	Timestamp          time.Time `json:"timestamp"`
}

// FAQGroup is one row of the grouped FAQ aggregation: entries sharing a
// normalized question collapsed into a single ranked item with their usage
// counts summed.
type FAQGroup struct {
	NormalizedQuestion string `json:"_id"`
	Count              int64  `json:"count"`
	Question           string `json:"question"`
	Answer             string `json:"answer"`
	Category           string `json:"category"`
}

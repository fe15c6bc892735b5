package models

// Topic is one entry of the fixed content-category enumeration.
type Topic struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Topics is the closed set of categories a briefing can cover, in the order
// the prefetch pass walks them.
var Topics = []Topic{
	{ID: "ai", Label: "AI & Tech"},
	{ID: "fitness", Label: "Fitness & Health"},
	{ID: "startups", Label: "Startups & Business"},
	{ID: "world", Label: "World News"},
	{ID: "science", Label: "Science"},
	{ID: "finance", Label: "Finance & Markets"},
	{ID: "sports", Label: "Sports"},
	{ID: "entertainment", Label: "Entertainment"},
	{ID: "medicine", Label: "Medicine"},
	{ID: "politics", Label: "Politics"},
}

// ValidTopicID reports whether id belongs to the topic enumeration.
func ValidTopicID(id string) bool {
	for _, t := range Topics {
		if t.ID == id {
			return true
		}
	}
	return false
}

// TopicLabel returns the display label for a topic id, or the id itself
// when it is unknown.
func TopicLabel(id string) string {
	for _, t := range Topics {
		if t.ID == id {
			return t.Label
		}
	}
	return id
}

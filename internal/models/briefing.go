package models

// Source is one cited web page, unique by URL within a record.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Message is a single chat bubble of the generated dialogue.
type Message struct {
	Speaker     Speaker  `json:"speaker"`
	Text        string   `json:"text"`
	Topic       string   `json:"topic,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// NewsSnapshotModel is the raw per-topic news fetched once per topic per day.
// A later write for the same (topic, date) supersedes the previous one.
type NewsSnapshotModel struct {
	Base
	TopicID string     `json:"topic_id" gorm:"uniqueIndex:idx_topic_date;not null"`
	Date    string     `json:"date"     gorm:"uniqueIndex:idx_topic_date;not null"`
	Content string     `json:"content"  gorm:"type:text;not null"`
	Sources SourceList `json:"sources"  gorm:"type:text"`
}

func (NewsSnapshotModel) TableName() string { return "news_cache" }

// BriefingModel is a finished dialogue digest, keyed by the canonical
// (date, topic-set) cache key.
type BriefingModel struct {
	Base
	CacheKey string      `json:"cache_key" gorm:"uniqueIndex;not null"`
	Date     string      `json:"date"      gorm:"index;not null"`
	Topics   StringList  `json:"topics"    gorm:"type:text"`
	Messages MessageList `json:"messages"  gorm:"type:text"`
	Sources  SourceList  `json:"sources"   gorm:"type:text"`
}

func (BriefingModel) TableName() string { return "briefings" }

// DedupeSources keeps the first occurrence of each URL, preserving order.
func DedupeSources(in []Source) []Source {
	out := make([]Source, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s.URL == "" {
			continue
		}
		if _, ok := seen[s.URL]; ok {
			continue
		}
		seen[s.URL] = struct{}{}
		out = append(out, s)
	}
	return out
}

package news

import "fmt"

// newsPrompt asks for a plain-text summary of today's stories for one topic;
// sources come back through the search tool results, not the text.
func newsPrompt(topicLabel string) string {
	return fmt.Sprintf(`Search the web for TODAY's most important and recent news about: %s.

Find the 5-7 most significant stories from today. For each story include:
- Headline and key facts
- Important numbers, names, dates, and quotes
- Why it matters

Be specific and factual. Return a plain text summary only.`, topicLabel)
}

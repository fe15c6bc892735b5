package dialogue

import (
	"fmt"
	"strings"

	"github.com/newsbrief/core/internal/models"
)

const dialogueRules = `Rules:
- For the biggest story, go deep (6-8 messages). Smaller stories get 2-3 messages.
- Be conversational — not like a news anchor. Include real facts, numbers, names.
- They react to each other: surprise, humor, disagreement, connecting dots.
- 20-35 messages total. Transition naturally between topics.`

func jsonContract(topics []string) string {
	first := topics[0]
	return fmt.Sprintf(`You MUST respond with ONLY a valid JSON array. No markdown, no backticks, no extra text before or after. Each element must be exactly this shape:
[{"speaker":"Kai","text":"message text here","topic":"%s"},{"speaker":"Zoe","text":"reply here","topic":"%s"}]

Some messages may include an optional "suggestions" field — an array of 1-2 short questions (under 8 words each) a curious reader might want to ask about something specific mentioned in that message: a name, term, place, or concept. Only add suggestions when genuinely useful; most messages won't need them.
Example with suggestions: {"speaker":"Kai","text":"...","topic":"ai","suggestions":["Who is Sam Altman?","What is the EU AI Act?"]}

Valid topic IDs are: %s

Your entire response must be parseable as JSON. Start with [ and end with ].`, first, first, strings.Join(topics, ", "))
}

func topicLabels(topics []string) []string {
	labels := make([]string, 0, len(topics))
	for _, id := range topics {
		labels = append(labels, models.TopicLabel(id))
	}
	return labels
}

// snapshotsPrompt embeds every requested topic's cached summary and asks for
// the dialogue without any live search.
func snapshotsPrompt(topics []string, content map[string]string) string {
	sections := make([]string, 0, len(topics))
	for _, id := range topics {
		sections = append(sections, fmt.Sprintf("=== %s ===\n%s", models.TopicLabel(id), content[id]))
	}

	return fmt.Sprintf(`You have today's news summaries for these topics: %s.

%s

Create a conversation between two people — Kai and Zoe — discussing this news in one natural chat thread. They weave between topics, connect stories, and react genuinely.

%s

%s`, strings.Join(topicLabels(topics), ", "), strings.Join(sections, "\n\n"), dialogueRules, jsonContract(topics))
}

// fullPrompt asks the model to search the web itself before writing the same
// dialogue; used when the per-topic cache is incomplete.
func fullPrompt(topics []string) string {
	return fmt.Sprintf(`Search the web for TODAY's most important and recent news across these topics: %s.

After searching, create a conversation between two people — Kai and Zoe — discussing the news you found in one natural chat thread. They weave between topics, connect stories, and react genuinely.

%s

%s`, strings.Join(topicLabels(topics), ", "), dialogueRules, jsonContract(topics))
}

// followupPrompt asks for a short grounded exchange about one message.
func followupPrompt(messageText, question, newsContent string) string {
	context := ""
	if newsContent != "" {
		context = fmt.Sprintf("Today's news context:\n%s\n\n", newsContent)
	}
	return fmt.Sprintf(`%sIn a news discussion, someone said: "%s"

A reader wants to know: "%s"

Have Kai and Zoe respond to this question in 3-5 short conversational messages. If it's about a person, place, or concept, explain it naturally in conversation. Stay grounded in the news context if provided.

Return ONLY a valid JSON array. No markdown, no backticks:
[{"speaker":"Kai","text":"..."},{"speaker":"Zoe","text":"..."}]
Start with [ and end with ].`, context, messageText, question)
}

package dialogue

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/newsbrief/core/internal/models"
)

// minBriefingMessages is the floor below which a parsed dialogue is rejected.
const minBriefingMessages = 3

// maxSuggestions caps the follow-up prompts carried per message.
const maxSuggestions = 2

var trailingCommaRe = regexp.MustCompile(`,\s*([\]\}])`)

// record is the raw shape of one array element in model output.
type record struct {
	Speaker     string   `json:"speaker"`
	Text        string   `json:"text"`
	Topic       string   `json:"topic"`
	Suggestions []string `json:"suggestions"`
}

// ParseMessages runs the staged decode pipeline over raw model output and
// returns the dialogue for the requested topic set: strip code fences, slice
// to the outer brackets, decode (with one trailing-comma repair retry),
// filter and coerce, then enforce the minimum count.
func ParseMessages(raw string, topics []string) ([]models.Message, error) {
	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}

	messages := coerceRecords(records, topics)
	if len(messages) < minBriefingMessages {
		return nil, ErrTooFewMessages
	}
	return messages, nil
}

// ParseExchange parses a follow-up exchange: same pipeline, but any nonzero
// number of messages passes and topic/suggestion fields are not carried.
func ParseExchange(raw string) ([]models.Message, error) {
	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}

	messages := make([]models.Message, 0, len(records))
	for _, r := range records {
		if r.Speaker == "" || r.Text == "" {
			continue
		}
		messages = append(messages, models.Message{
			Speaker: coerceSpeaker(r.Speaker),
			Text:    r.Text,
		})
	}
	if len(messages) == 0 {
		return nil, ErrTooFewMessages
	}
	return messages, nil
}

func decodeRecords(raw string) ([]record, error) {
	span, err := extractArray(stripFences(raw))
	if err != nil {
		return nil, err
	}

	elems, err := decodeElements(span)
	if err != nil {
		// Tolerate a truncated or sloppily emitted array: drop trailing
		// commas before closing brackets and try once more.
		repaired := trailingCommaRe.ReplaceAllString(span, "$1")
		if elems, err = decodeElements(repaired); err != nil {
			return nil, ErrMalformedPayload
		}
	}

	// Records decode one at a time so a single wrong-typed field drops only
	// its own record, not the whole payload.
	records := make([]record, 0, len(elems))
	for _, el := range elems {
		var r record
		if err := json.Unmarshal(el, &r); err != nil {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

func decodeElements(span string) ([]json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(span), &elems); err != nil {
		return nil, err
	}
	return elems, nil
}

func stripFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

func extractArray(cleaned string) (string, error) {
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end <= start {
		return "", ErrNoJSONArray
	}
	return cleaned[start : end+1], nil
}

func coerceRecords(records []record, topics []string) []models.Message {
	requested := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		requested[t] = struct{}{}
	}
	fallbackTopic := ""
	if len(topics) > 0 {
		fallbackTopic = topics[0]
	}

	messages := make([]models.Message, 0, len(records))
	for _, r := range records {
		if r.Speaker == "" || r.Text == "" {
			continue
		}

		topic := r.Topic
		if _, ok := requested[topic]; !ok {
			topic = fallbackTopic
		}

		suggestions := r.Suggestions
		if len(suggestions) > maxSuggestions {
			suggestions = suggestions[:maxSuggestions]
		}
		if len(suggestions) == 0 {
			suggestions = nil
		}

		messages = append(messages, models.Message{
			Speaker:     coerceSpeaker(r.Speaker),
			Text:        r.Text,
			Topic:       topic,
			Suggestions: suggestions,
		})
	}
	return messages
}

// coerceSpeaker maps anything that is not an exact member of the speaker
// enumeration to the default speaker, so model drift never leaks unknown
// speakers into stored briefings.
func coerceSpeaker(raw string) models.Speaker {
	if models.ValidSpeaker(raw) {
		return models.Speaker(raw)
	}
	return models.DefaultSpeaker
}

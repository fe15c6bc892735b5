// Package dialogue turns per-topic news into a two-speaker conversation via
// the external model, and parses the model's JSON output tolerantly.
package dialogue

import (
	"context"

	"github.com/newsbrief/core/internal/models"
	"github.com/newsbrief/core/internal/pkg/anthropic"
	"go.uber.org/zap"
)

const (
	dialogueMaxTokens = 16000
	followupMaxTokens = 2000
)

// LLM is the model call the synthesizer depends on.
type LLM interface {
	Complete(ctx context.Context, prompt string, maxTokens int64, webSearch bool) (*anthropic.Result, error)
}

// Result is a finished dialogue plus its contributing sources.
type Result struct {
	Messages []models.Message
	Sources  []models.Source
}

// Service synthesizes briefing dialogues and follow-up exchanges.
type Service struct {
	llm LLM
	log *zap.Logger
}

// NewService creates a Service.
func NewService(llm LLM, log *zap.Logger) *Service {
	return &Service{llm: llm, log: log.Named("dialogue")}
}

// FromSnapshots is the fast path: the dialogue is generated from already
// fetched per-topic content, with no search tool attached. Sources are the
// URL-deduplicated union of the snapshots' sources, iterated in requested
// topic order.
func (s *Service) FromSnapshots(ctx context.Context, topics []string, snapshots map[string]*models.NewsSnapshotModel) (*Result, error) {
	content := make(map[string]string, len(snapshots))
	for id, snap := range snapshots {
		content[id] = snap.Content
	}

	res, err := s.llm.Complete(ctx, snapshotsPrompt(topics, content), dialogueMaxTokens, false)
	if err != nil {
		return nil, err
	}

	messages, err := ParseMessages(res.Text, topics)
	if err != nil {
		return nil, err
	}

	var combined []models.Source
	for _, id := range topics {
		if snap, ok := snapshots[id]; ok {
			combined = append(combined, snap.Sources...)
		}
	}

	return &Result{Messages: messages, Sources: models.DedupeSources(combined)}, nil
}

// FullSynthesis is the slow path: one call that searches the web across all
// requested topics and writes the dialogue, used when the per-topic cache is
// incomplete. Sources come from the response's search results and citations.
func (s *Service) FullSynthesis(ctx context.Context, topics []string) (*Result, error) {
	res, err := s.llm.Complete(ctx, fullPrompt(topics), dialogueMaxTokens, true)
	if err != nil {
		return nil, err
	}

	messages, err := ParseMessages(res.Text, topics)
	if err != nil {
		return nil, err
	}

	return &Result{Messages: messages, Sources: res.Sources}, nil
}

// Followup produces a short ephemeral exchange answering a reader question
// about one message. Never cached or persisted.
func (s *Service) Followup(ctx context.Context, messageText, question, newsContent string) ([]models.Message, error) {
	res, err := s.llm.Complete(ctx, followupPrompt(messageText, question, newsContent), followupMaxTokens, false)
	if err != nil {
		return nil, err
	}
	return ParseExchange(res.Text)
}

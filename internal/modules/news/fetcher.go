// Package news fetches raw per-topic news snapshots through the external
// model's web search and keeps the per-topic cache warm ahead of demand.
package news

import (
	"context"
	"fmt"
	"time"

	"github.com/newsbrief/core/internal/models"
	"github.com/newsbrief/core/internal/pkg/anthropic"
	"go.uber.org/zap"
)

const newsMaxTokens = 4000

// LLM is the model call the fetcher depends on.
type LLM interface {
	Complete(ctx context.Context, prompt string, maxTokens int64, webSearch bool) (*anthropic.Result, error)
}

// Store is the slice of the persistence layer the fetcher needs.
type Store interface {
	GetNews(ctx context.Context, date, topicID string) (*models.NewsSnapshotModel, error)
	PutNews(ctx context.Context, date, topicID, content string, sources []models.Source) error
}

// Service fetches and caches per-topic news.
type Service struct {
	llm      LLM
	store    Store
	log      *zap.Logger
	throttle time.Duration
	now      func() time.Time
}

// NewService creates a Service. throttle is the pause between topics during a
// prefetch pass.
func NewService(llm LLM, store Store, log *zap.Logger, throttle time.Duration) *Service {
	return &Service{
		llm:      llm,
		store:    store,
		log:      log.Named("news"),
		throttle: throttle,
		now:      time.Now,
	}
}

// FetchTopic performs one search-enabled model call for a single topic and
// returns the normalized text plus URL-deduplicated sources. The caller
// persists.
func (s *Service) FetchTopic(ctx context.Context, topicID string) (string, []models.Source, error) {
	if !models.ValidTopicID(topicID) {
		return "", nil, fmt.Errorf("unknown topic: %s", topicID)
	}

	res, err := s.llm.Complete(ctx, newsPrompt(models.TopicLabel(topicID)), newsMaxTokens, true)
	if err != nil {
		return "", nil, err
	}
	return res.Text, res.Sources, nil
}

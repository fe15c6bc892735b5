package news

import (
	"context"
	"time"

	"github.com/newsbrief/core/internal/models"
	"go.uber.org/zap"
)

// PrefetchAll warms today's per-topic cache: every topic in the enumeration,
// in declared order, skipping topics already cached for today and pausing the
// configured throttle between fetches. One topic's failure is logged and
// never aborts the remaining topics. Returns ctx.Err() only when the pass is
// cancelled mid-way.
func (s *Service) PrefetchAll(ctx context.Context) error {
	today := s.now().Format(models.DateLayout)
	s.log.Info("prefetch starting", zap.String("date", today))

	fetched, skipped := 0, 0
	for _, topic := range models.Topics {
		if err := ctx.Err(); err != nil {
			return err
		}

		snap, err := s.store.GetNews(ctx, today, topic.ID)
		if err != nil {
			s.log.Warn("prefetch cache lookup failed", zap.String("topic", topic.ID), zap.Error(err))
		}
		if snap != nil {
			skipped++
			continue
		}

		content, sources, err := s.FetchTopic(ctx, topic.ID)
		if err != nil {
			s.log.Warn("prefetch topic failed", zap.String("topic", topic.Label), zap.Error(err))
		} else if err := s.store.PutNews(ctx, today, topic.ID, content, sources); err != nil {
			s.log.Warn("prefetch persist failed", zap.String("topic", topic.Label), zap.Error(err))
		} else {
			fetched++
			s.log.Info("prefetch topic cached", zap.String("topic", topic.Label))
		}

		// Stagger requests to avoid hammering the API.
		if err := s.wait(ctx); err != nil {
			return err
		}
	}

	s.log.Info("prefetch done", zap.Int("fetched", fetched), zap.Int("skipped", skipped))
	return nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.throttle <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.throttle):
		return nil
	}
}

// Package store is the persistence layer for the two cache tables: raw
// per-topic news snapshots and finished briefings, both partitioned by
// calendar date. All writes are whole-record upserts; the upsert is the sole
// commit point, so concurrent readers see either the old record or the new
// one, never a partial write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/newsbrief/core/internal/models"
	pkgredis "github.com/newsbrief/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const briefingKeyPrefix = "nb:briefing:"

// Store reads and writes snapshots and briefings. The optional Redis client
// fronts finished briefings as a hot cache; the database stays the source of
// truth and everything works with cache == nil.
type Store struct {
	db    *gorm.DB
	cache *pkgredis.Client
	log   *zap.Logger
	now   func() time.Time
}

// New creates a Store. cache may be nil.
func New(db *gorm.DB, cache *pkgredis.Client, log *zap.Logger) *Store {
	return &Store{db: db, cache: cache, log: log, now: time.Now}
}

// GetNews returns the snapshot for (date, topic), or nil when absent.
func (s *Store) GetNews(ctx context.Context, date, topicID string) (*models.NewsSnapshotModel, error) {
	var snap models.NewsSnapshotModel
	err := s.db.WithContext(ctx).
		Where("topic_id = ? AND date = ?", topicID, date).
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// PutNews upserts the snapshot for (date, topic). Last write wins.
func (s *Store) PutNews(ctx context.Context, date, topicID, content string, sources []models.Source) error {
	snap := models.NewsSnapshotModel{
		TopicID: topicID,
		Date:    date,
		Content: content,
		Sources: models.SourceList(sources),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "topic_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "sources", "updated_at"}),
	}).Create(&snap).Error
}

// GetBriefing returns the briefing cached for (date, topic-set), or nil when
// absent. Topic order does not matter.
func (s *Store) GetBriefing(ctx context.Context, date string, topics []string) (*models.BriefingModel, error) {
	key := CanonicalKey(date, topics)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, briefingKeyPrefix+key); err == nil && raw != "" {
			var b models.BriefingModel
			if err := json.Unmarshal([]byte(raw), &b); err == nil {
				return &b, nil
			}
		}
	}

	var b models.BriefingModel
	err := s.db.WithContext(ctx).Where("cache_key = ?", key).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.cacheBriefing(ctx, key, &b)
	return &b, nil
}

// PutBriefing upserts the briefing for (date, topic-set).
func (s *Store) PutBriefing(ctx context.Context, date string, topics []string, messages []models.Message, sources []models.Source) error {
	key := CanonicalKey(date, topics)
	b := models.BriefingModel{
		CacheKey: key,
		Date:     date,
		Topics:   models.StringList(topics),
		Messages: models.MessageList(messages),
		Sources:  models.SourceList(sources),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"topics", "messages", "sources", "updated_at"}),
	}).Create(&b).Error
	if err != nil {
		return err
	}

	s.cacheBriefing(ctx, key, &b)
	return nil
}

// cacheBriefing writes through to Redis best-effort; failures are logged and
// swallowed because briefings are date-scoped, so the TTL runs a bit past the
// end of the local day.
func (s *Store) cacheBriefing(ctx context.Context, key string, b *models.BriefingModel) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, briefingKeyPrefix+key, raw, s.ttlUntilTomorrow()); err != nil {
		s.log.Warn("briefing cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) ttlUntilTomorrow() time.Duration {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return midnight.Sub(now) + time.Hour
}

// PurgeOlderThan deletes snapshots and briefings dated more than days before
// today from both tables and returns the total rows removed.
func (s *Store) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -days).Format(models.DateLayout)

	news := s.db.WithContext(ctx).Where("date < ?", cutoff).Delete(&models.NewsSnapshotModel{})
	if news.Error != nil {
		return 0, news.Error
	}
	briefings := s.db.WithContext(ctx).Where("date < ?", cutoff).Delete(&models.BriefingModel{})
	if briefings.Error != nil {
		return news.RowsAffected, briefings.Error
	}
	return news.RowsAffected + briefings.RowsAffected, nil
}

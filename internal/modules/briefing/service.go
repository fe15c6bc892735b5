// Package briefing orchestrates the daily digest: cache lookup, fast/slow
// path selection, write-through persistence, and the thin HTTP handlers.
package briefing

import (
	"context"
	"strings"
	"time"

	"github.com/newsbrief/core/internal/models"
	"github.com/newsbrief/core/internal/modules/dialogue"
	"github.com/newsbrief/core/internal/store"
	"go.uber.org/zap"
)

// Store is the slice of the persistence layer the orchestrator needs.
type Store interface {
	GetNews(ctx context.Context, date, topicID string) (*models.NewsSnapshotModel, error)
	GetBriefing(ctx context.Context, date string, topics []string) (*models.BriefingModel, error)
	PutBriefing(ctx context.Context, date string, topics []string, messages []models.Message, sources []models.Source) error
}

// Synthesizer is the dialogue generation surface the orchestrator needs.
type Synthesizer interface {
	FromSnapshots(ctx context.Context, topics []string, snapshots map[string]*models.NewsSnapshotModel) (*dialogue.Result, error)
	FullSynthesis(ctx context.Context, topics []string) (*dialogue.Result, error)
	Followup(ctx context.Context, messageText, question, newsContent string) ([]models.Message, error)
}

// Result is a briefing ready for delivery.
type Result struct {
	Messages []models.Message
	Sources  []models.Source
	Cached   bool
}

// TopicStatus reports whether one topic's news is cached for today.
type TopicStatus struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Cached bool   `json:"cached"`
}

// Orchestrator decides between the cached, fast, and slow paths for each
// briefing request and writes results through to the store.
type Orchestrator struct {
	store  Store
	synth  Synthesizer
	apiKey string
	log    *zap.Logger
	now    func() time.Time
}

// NewOrchestrator creates an Orchestrator. apiKey may be empty; generation
// then fails with ErrNoAPIKey while cached briefings are still served.
func NewOrchestrator(st Store, synth Synthesizer, apiKey string, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:  st,
		synth:  synth,
		apiKey: strings.TrimSpace(apiKey),
		log:    log.Named("briefing"),
		now:    time.Now,
	}
}

func (o *Orchestrator) today() string { return o.now().Format(models.DateLayout) }

// Generate returns the briefing for the requested topic set, serving the
// stored copy when one exists for today and synthesizing (then persisting)
// otherwise. Nothing partial is ever persisted.
func (o *Orchestrator) Generate(ctx context.Context, topics []string) (*Result, error) {
	if len(topics) == 0 {
		return nil, ErrInvalidRequest
	}
	for _, id := range topics {
		if !models.ValidTopicID(id) {
			return nil, ErrInvalidRequest
		}
	}

	date := o.today()
	key := store.CanonicalKey(date, topics)

	cached, err := o.store.GetBriefing(ctx, date, topics)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		o.log.Info("cache hit", zap.String("key", key))
		return &Result{Messages: cached.Messages, Sources: cached.Sources, Cached: true}, nil
	}

	if o.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	o.log.Info("cache miss", zap.String("key", key))

	snapshots, complete, err := o.gatherSnapshots(ctx, date, topics)
	if err != nil {
		return nil, err
	}

	var generated *dialogue.Result
	if complete {
		o.log.Info("fast path: dialogue from cached news", zap.Strings("topics", topics))
		generated, err = o.synth.FromSnapshots(ctx, topics, snapshots)
	} else {
		o.log.Info("slow path: full web search", zap.Strings("topics", topics))
		generated, err = o.synth.FullSynthesis(ctx, topics)
	}
	if err != nil {
		return nil, err
	}

	if err := o.store.PutBriefing(ctx, date, topics, generated.Messages, generated.Sources); err != nil {
		return nil, err
	}
	o.log.Info("briefing cached", zap.String("key", key))

	return &Result{Messages: generated.Messages, Sources: generated.Sources, Cached: false}, nil
}

// gatherSnapshots collects today's snapshot for every requested topic.
// complete is false as soon as any topic is missing; the caller then takes
// the slow path for the whole set rather than mixing fresh and stale halves.
func (o *Orchestrator) gatherSnapshots(ctx context.Context, date string, topics []string) (map[string]*models.NewsSnapshotModel, bool, error) {
	snapshots := make(map[string]*models.NewsSnapshotModel, len(topics))
	for _, id := range topics {
		snap, err := o.store.GetNews(ctx, date, id)
		if err != nil {
			return nil, false, err
		}
		if snap == nil {
			return nil, false, nil
		}
		snapshots[id] = snap
	}
	return snapshots, true, nil
}

// FollowUp answers a reader question about one message. When topic names a
// valid topic with a same-day snapshot, its content grounds the exchange.
// The exchange is ephemeral: never cached, never persisted.
func (o *Orchestrator) FollowUp(ctx context.Context, messageText, question, topic string) ([]models.Message, error) {
	if strings.TrimSpace(messageText) == "" || strings.TrimSpace(question) == "" {
		return nil, ErrInvalidRequest
	}
	if o.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	newsContent := ""
	if topic != "" && models.ValidTopicID(topic) {
		if snap, err := o.store.GetNews(ctx, o.today(), topic); err == nil && snap != nil {
			newsContent = snap.Content
		}
	}

	return o.synth.Followup(ctx, messageText, question, newsContent)
}

// PrefetchStatus reports today's per-topic cache state.
func (o *Orchestrator) PrefetchStatus(ctx context.Context) (string, []TopicStatus, error) {
	date := o.today()
	statuses := make([]TopicStatus, 0, len(models.Topics))
	for _, t := range models.Topics {
		snap, err := o.store.GetNews(ctx, date, t.ID)
		if err != nil {
			return "", nil, err
		}
		statuses = append(statuses, TopicStatus{ID: t.ID, Label: t.Label, Cached: snap != nil})
	}
	return date, statuses, nil
}

package news

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/newsbrief/core/internal/models"
	"github.com/newsbrief/core/internal/pkg/anthropic"
	"go.uber.org/zap"
)

type fakeLLM struct {
	calls   []string
	failFor map[string]bool
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string, maxTokens int64, webSearch bool) (*anthropic.Result, error) {
	f.calls = append(f.calls, prompt)
	if !webSearch {
		return nil, errors.New("news fetch must use web search")
	}
	for label := range f.failFor {
		if strings.Contains(prompt, label) {
			return nil, errors.New("upstream down")
		}
	}
	return &anthropic.Result{
		Text:    "today's stories",
		Sources: []models.Source{{URL: "https://s.example", Title: "S"}},
	}, nil
}

type memStore struct {
	news map[string]*models.NewsSnapshotModel
}

func newMemStore() *memStore {
	return &memStore{news: make(map[string]*models.NewsSnapshotModel)}
}

func (m *memStore) key(date, topicID string) string { return date + "/" + topicID }

func (m *memStore) GetNews(ctx context.Context, date, topicID string) (*models.NewsSnapshotModel, error) {
	return m.news[m.key(date, topicID)], nil
}

func (m *memStore) PutNews(ctx context.Context, date, topicID, content string, sources []models.Source) error {
	m.news[m.key(date, topicID)] = &models.NewsSnapshotModel{
		TopicID: topicID,
		Date:    date,
		Content: content,
		Sources: models.SourceList(sources),
	}
	return nil
}

func newTestService(llm LLM, store Store) *Service {
	return NewService(llm, store, zap.NewNop(), 0)
}

func TestFetchTopicRejectsUnknown(t *testing.T) {
	svc := newTestService(&fakeLLM{}, newMemStore())
	_, _, err := svc.FetchTopic(context.Background(), "gardening")
	assert.NotEqual(t, nil, err)
}

func TestFetchTopicUsesLabelAndSearch(t *testing.T) {
	llm := &fakeLLM{}
	svc := newTestService(llm, newMemStore())

	content, sources, err := svc.FetchTopic(context.Background(), "ai")
	assert.Equal(t, nil, err)
	assert.Equal(t, "today's stories", content)
	assert.Equal(t, 1, len(sources))
	if !strings.Contains(llm.calls[0], "AI & Tech") {
		t.Error("expected the search prompt to use the topic label")
	}
}

func TestPrefetchAllFetchesEverything(t *testing.T) {
	llm := &fakeLLM{}
	store := newMemStore()
	svc := newTestService(llm, store)

	assert.Equal(t, nil, svc.PrefetchAll(context.Background()))
	assert.Equal(t, len(models.Topics), len(llm.calls))
	assert.Equal(t, len(models.Topics), len(store.news))
}

func TestPrefetchAllSkipsCachedTopics(t *testing.T) {
	llm := &fakeLLM{}
	store := newMemStore()
	svc := newTestService(llm, store)
	today := time.Now().Format(models.DateLayout)

	store.PutNews(context.Background(), today, "ai", "already here", nil)
	store.PutNews(context.Background(), today, "sports", "already here", nil)

	assert.Equal(t, nil, svc.PrefetchAll(context.Background()))
	assert.Equal(t, len(models.Topics)-2, len(llm.calls))

	snap, _ := store.GetNews(context.Background(), today, "ai")
	assert.Equal(t, "already here", snap.Content)
}

func TestPrefetchAllIsolatesTopicFailure(t *testing.T) {
	llm := &fakeLLM{failFor: map[string]bool{"World News": true}}
	store := newMemStore()
	svc := newTestService(llm, store)
	today := time.Now().Format(models.DateLayout)

	assert.Equal(t, nil, svc.PrefetchAll(context.Background()))

	// every topic was attempted despite the failure
	assert.Equal(t, len(models.Topics), len(llm.calls))
	assert.Equal(t, len(models.Topics)-1, len(store.news))

	snap, _ := store.GetNews(context.Background(), today, "world")
	if snap != nil {
		t.Fatal("failed topic must not be cached")
	}
}

func TestPrefetchAllStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	llm := &fakeLLM{}
	svc := newTestService(llm, newMemStore())

	err := svc.PrefetchAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	assert.Equal(t, 0, len(llm.calls))
}

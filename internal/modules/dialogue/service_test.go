package dialogue

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/newsbrief/core/internal/models"
	"github.com/newsbrief/core/internal/pkg/anthropic"
	"go.uber.org/zap"
)

type fakeLLM struct {
	lastPrompt    string
	lastWebSearch bool
	calls         int
	result        *anthropic.Result
	err           error
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string, maxTokens int64, webSearch bool) (*anthropic.Result, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastWebSearch = webSearch
	return f.result, f.err
}

const dialogueJSON = `[
  {"speaker":"Kai","text":"a","topic":"ai"},
  {"speaker":"Zoe","text":"b","topic":"finance"},
  {"speaker":"Kai","text":"c","topic":"ai"}
]`

func TestFromSnapshotsNoSearchAndSourceUnion(t *testing.T) {
	llm := &fakeLLM{result: &anthropic.Result{Text: dialogueJSON}}
	svc := NewService(llm, zap.NewNop())

	snapshots := map[string]*models.NewsSnapshotModel{
		"ai": {
			Content: "ai summary",
			Sources: models.SourceList{{URL: "https://a.example", Title: "A"}, {URL: "https://shared.example", Title: "via ai"}},
		},
		"finance": {
			Content: "finance summary",
			Sources: models.SourceList{{URL: "https://shared.example", Title: "via finance"}, {URL: "https://f.example", Title: "F"}},
		},
	}

	res, err := svc.FromSnapshots(context.Background(), []string{"ai", "finance"}, snapshots)
	assert.Equal(t, nil, err)
	assert.Equal(t, false, llm.lastWebSearch)
	assert.Equal(t, 3, len(res.Messages))

	// union in requested-topic order, first URL occurrence wins
	assert.Equal(t, 3, len(res.Sources))
	assert.Equal(t, "https://a.example", res.Sources[0].URL)
	assert.Equal(t, "via ai", res.Sources[1].Title)
	assert.Equal(t, "https://f.example", res.Sources[2].URL)

	if !strings.Contains(llm.lastPrompt, "ai summary") || !strings.Contains(llm.lastPrompt, "finance summary") {
		t.Error("expected prompt to embed every topic's cached summary")
	}
	if !strings.Contains(llm.lastPrompt, "AI & Tech") {
		t.Error("expected prompt to use the topic label")
	}
}

func TestFullSynthesisSearchesAndTakesResponseSources(t *testing.T) {
	llm := &fakeLLM{result: &anthropic.Result{
		Text:    dialogueJSON,
		Sources: []models.Source{{URL: "https://found.example", Title: "Found"}},
	}}
	svc := NewService(llm, zap.NewNop())

	res, err := svc.FullSynthesis(context.Background(), []string{"ai", "finance"})
	assert.Equal(t, nil, err)
	assert.Equal(t, true, llm.lastWebSearch)
	assert.Equal(t, 1, len(res.Sources))
	assert.Equal(t, "https://found.example", res.Sources[0].URL)
}

func TestFollowupGroundsContextAndSkipsSearch(t *testing.T) {
	llm := &fakeLLM{result: &anthropic.Result{
		Text: `[{"speaker":"Kai","text":"short answer"},{"speaker":"Zoe","text":"extra color"}]`,
	}}
	svc := NewService(llm, zap.NewNop())

	msgs, err := svc.Followup(context.Background(), "chips are having a moment", "what is TSMC?", "today's chip news context")
	assert.Equal(t, nil, err)
	assert.Equal(t, false, llm.lastWebSearch)
	assert.Equal(t, 2, len(msgs))

	if !strings.Contains(llm.lastPrompt, "today's chip news context") {
		t.Error("expected follow-up prompt to embed the news context")
	}
	if !strings.Contains(llm.lastPrompt, "what is TSMC?") {
		t.Error("expected follow-up prompt to embed the question")
	}
}

func TestFollowupWithoutContext(t *testing.T) {
	llm := &fakeLLM{result: &anthropic.Result{
		Text: `[{"speaker":"Zoe","text":"quick answer"}]`,
	}}
	svc := NewService(llm, zap.NewNop())

	msgs, err := svc.Followup(context.Background(), "msg", "question", "")
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(msgs))
	if strings.Contains(llm.lastPrompt, "Today's news context") {
		t.Error("expected no context preamble when newsContent is empty")
	}
}

package models

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestDedupeSourcesFirstSeenWins(t *testing.T) {
	in := []Source{
		{URL: "https://a.example/1", Title: "first title"},
		{URL: "https://b.example/2", Title: "other"},
		{URL: "https://a.example/1", Title: "second title"},
	}

	out := DedupeSources(in)

	assert.Equal(t, 2, len(out))
	assert.Equal(t, "first title", out[0].Title)
	assert.Equal(t, "https://b.example/2", out[1].URL)
}

func TestDedupeSourcesDropsEmptyURL(t *testing.T) {
	out := DedupeSources([]Source{{URL: "", Title: "no url"}, {URL: "https://a.example", Title: "a"}})
	assert.Equal(t, 1, len(out))
}

func TestSourceListRoundTrip(t *testing.T) {
	l := SourceList{{URL: "https://a.example", Title: "A"}}
	v, err := l.Value()
	assert.Equal(t, nil, err)

	var got SourceList
	assert.Equal(t, nil, got.Scan(v))
	assert.Equal(t, l, got)
}

func TestMessageListScanNull(t *testing.T) {
	var got MessageList
	assert.Equal(t, nil, got.Scan("null"))
	assert.Equal(t, 0, len(got))
}

func TestValidTopicID(t *testing.T) {
	assert.Equal(t, true, ValidTopicID("ai"))
	assert.Equal(t, true, ValidTopicID("politics"))
	assert.Equal(t, false, ValidTopicID("gardening"))
}

func TestValidSpeaker(t *testing.T) {
	assert.Equal(t, true, ValidSpeaker("Kai"))
	assert.Equal(t, true, ValidSpeaker("Zoe"))
	assert.Equal(t, false, ValidSpeaker("kai"))
	assert.Equal(t, false, ValidSpeaker("Narrator"))
}

// Package anthropic wraps the external model service behind the one call
// shape this app needs: a single user prompt, optionally with the provider's
// web-search tool attached, returning normalized text plus cited sources.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/newsbrief/core/internal/models"
)

// ErrEmptyResponse is returned when the model produced no text blocks.
var ErrEmptyResponse = errors.New("empty response from model")

// Result is the normalized outcome of one model call.
type Result struct {
	Text    string
	Sources []models.Source
}

// Client issues Messages API calls against a fixed model.
type Client struct {
	api   *sdk.Client
	model sdk.Model
}

// New builds a client for the given API key and model id.
func New(apiKey, model string) *Client {
	client := sdk.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		api:   &client,
		model: sdk.Model(model),
	}
}

// Complete sends a single-prompt request. When webSearch is set the server-side
// web-search tool is attached and tool results contribute to Result.Sources.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int64, webSearch bool) (*Result, error) {
	params := sdk.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	}
	if webSearch {
		params.Tools = []sdk.ToolUnionParam{{
			OfWebSearchTool20250305: &sdk.WebSearchTool20250305Param{},
		}}
	}

	resp, err := c.api.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api: %w", err)
	}

	return normalize(resp)
}

// normalize joins the text blocks and extracts {url,title} sources from
// web-search tool results and inline citations, first occurrence per URL.
func normalize(resp *sdk.Message) (*Result, error) {
	var (
		parts   []string
		sources []models.Source
	)

	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			if block.Text != "" {
				parts = append(parts, block.Text)
			}
			var tb struct {
				Citations []struct {
					URL   string `json:"url"`
					Title string `json:"title"`
				} `json:"citations"`
			}
			if err := json.Unmarshal([]byte(block.RawJSON()), &tb); err == nil {
				for _, cit := range tb.Citations {
					if cit.URL != "" && cit.Title != "" {
						sources = append(sources, models.Source{URL: cit.URL, Title: cit.Title})
					}
				}
			}
		case "web_search_tool_result":
			var tr struct {
				Content []struct {
					Type  string `json:"type"`
					URL   string `json:"url"`
					Title string `json:"title"`
				} `json:"content"`
			}
			if err := json.Unmarshal([]byte(block.RawJSON()), &tr); err == nil {
				for _, r := range tr.Content {
					if r.Type == "web_search_result" && r.URL != "" && r.Title != "" {
						sources = append(sources, models.Source{URL: r.URL, Title: r.Title})
					}
				}
			}
		}
	}

	text := strings.Join(parts, "\n")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	return &Result{
		Text:    text,
		Sources: models.DedupeSources(sources),
	}, nil
}

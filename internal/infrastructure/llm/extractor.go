// Package llm implements the extraction client against an OpenAI-compatible
// chat-completions API. The service is a black box with a defined JSON
// contract; the client repairs incomplete records with explicit sentinels
// before anything downstream touches them.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/config"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/ports"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/quantity"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/taxonomy"
)

// maxArticleChars truncates article text sent to the service.
const maxArticleChars = 4000

const systemPrompt = `You extract structured conflict-incident records from Nigerian news articles.
For each input article, emit zero or one incident record. Respond with ONLY a JSON object:
{
  "events": [
    {
      "article": <index of the input article>,
      "incident_date": "YYYY-MM-DD" or "unknown",
      "location": {"region": "<state>", "subregion": "<LGA>", "locality": "<town>"},
      "incident_type": one of [armed_attack, terrorism, kidnapping, communal_clash, military_operation, civil_unrest, cult_clash, other],
      "actor_primary": one of [military, police, boko_haram, iswap, bandits, herdsmen, cultists, unknown_gunmen, protesters, civilians, unknown],
      "actor_secondary": same enumeration or omit,
      "fatalities": integer or descriptive phrase,
      "injuries": integer or descriptive phrase
    }
  ]
}
Use "unknown" for any location part you cannot determine. Skip articles that describe no concrete incident.`

// ExtractionClient implements ports.EventExtractor. Batch requests amortize
// request overhead; on any batch failure the client falls back to per-article
// requests so one malformed item cannot lose the whole batch.
type ExtractionClient struct {
	endpoint   string
	model      string
	apiKey     string
	batchSize  int
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.EventExtractor = (*ExtractionClient)(nil)

// NewExtractionClient builds a client from configuration.
func NewExtractionClient(cfg config.ExtractorConfig, logger *slog.Logger) *ExtractionClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 5
	}
	return &ExtractionClient{
		endpoint:   cfg.Endpoint,
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		batchSize:  batchSize,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// wireEvent is one element of the service's events array. Counts come in as
// raw JSON because the service may answer with numbers or phrases.
type wireEvent struct {
	Article        int             `json:"article"`
	IncidentDate   string          `json:"incident_date"`
	Location       domain.Location `json:"location"`
	IncidentType   string          `json:"incident_type"`
	ActorPrimary   string          `json:"actor_primary"`
	ActorSecondary string          `json:"actor_secondary"`
	Fatalities     json.RawMessage `json:"fatalities"`
	Injuries       json.RawMessage `json:"injuries"`
}

type wireResponse struct {
	Events []wireEvent `json:"events"`
}

// Extract requests a single article's structured record. A service response
// with no event for the article yields (nil, nil).
func (c *ExtractionClient) Extract(ctx context.Context, article domain.Article) (*domain.ExtractedEvent, error) {
	events, err := c.request(ctx, []domain.Article{article})
	if err != nil {
		return nil, err
	}
	for _, wire := range events {
		if wire.Article == 0 {
			event := c.finish(wire, article)
			return &event, nil
		}
	}
	return nil, nil
}

// ExtractBatch packages articles into batchSize groups. A failed group falls
// back to per-article requests; per-article failures are logged and skipped.
// An error is returned only when every single request failed, which signals
// the service is unreachable for the whole run.
func (c *ExtractionClient) ExtractBatch(ctx context.Context, articles []domain.Article) ([]domain.ExtractedEvent, error) {
	var results []domain.ExtractedEvent
	anySuccess := len(articles) == 0

	for start := 0; start < len(articles); start += c.batchSize {
		end := start + c.batchSize
		if end > len(articles) {
			end = len(articles)
		}
		group := articles[start:end]

		wires, err := c.request(ctx, group)
		if err != nil {
			c.warn("batch extraction failed, falling back per article", "batch_size", len(group), "error", err)
			fallback, reached := c.extractOneByOne(ctx, group)
			results = append(results, fallback...)
			anySuccess = anySuccess || reached
			continue
		}
		anySuccess = true

		for _, wire := range wires {
			if wire.Article < 0 || wire.Article >= len(group) {
				c.warn("extraction response referenced unknown article index", "index", wire.Article)
				continue
			}
			results = append(results, c.finish(wire, group[wire.Article]))
		}
	}

	if !anySuccess {
		return nil, fmt.Errorf("extraction service unreachable: every request failed")
	}
	return results, nil
}

func (c *ExtractionClient) extractOneByOne(ctx context.Context, articles []domain.Article) ([]domain.ExtractedEvent, bool) {
	var results []domain.ExtractedEvent
	reached := false
	for _, article := range articles {
		event, err := c.Extract(ctx, article)
		if err != nil {
			c.warn("article extraction failed, skipping", "article", article.ID, "error", err)
			continue
		}
		reached = true
		if event != nil {
			results = append(results, *event)
		}
	}
	return results, reached
}

// request sends one chat-completions call covering the given articles and
// parses the events array out of the assistant message.
func (c *ExtractionClient) request(ctx context.Context, articles []domain.Article) ([]wireEvent, error) {
	if c.endpoint == "" || c.model == "" {
		return nil, fmt.Errorf("extraction client misconfigured")
	}

	payload, err := buildUserPayload(articles)
	if err != nil {
		return nil, fmt.Errorf("build extraction payload: %w", err)
	}

	body, err := json.Marshal(map[string]any{
		"model":       c.model,
		"temperature": 0,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": payload},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("extraction service %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("extraction service returned no choices")
	}

	var parsed wireResponse
	content := stripCodeFence(completion.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("parse events payload: %w", err)
	}

	return parsed.Events, nil
}

// finish repairs the wire record into a total ExtractedEvent: sentinel
// substitution, quantity normalization, and taxonomy mapping. Downstream
// stages assume every field is present after this step.
func (c *ExtractionClient) finish(wire wireEvent, article domain.Article) domain.ExtractedEvent {
	text := article.Title + ". " + article.Body

	location := wire.Location
	if strings.TrimSpace(location.Region) == "" {
		location.Region = domain.Unknown
	}
	if strings.TrimSpace(location.Subregion) == "" {
		location.Subregion = domain.Unknown
	}
	if strings.TrimSpace(location.Locality) == "" {
		location.Locality = domain.Unknown
	}

	return domain.ExtractedEvent{
		IncidentDate:   validDate(wire.IncidentDate),
		Location:       location,
		IncidentType:   taxonomy.MapIncidentType(wire.IncidentType, text),
		ActorPrimary:   taxonomy.MapActor(wire.ActorPrimary, text),
		ActorSecondary: taxonomy.MapSecondaryActor(wire.ActorSecondary, ""),
		Fatalities:     normalizeCount(wire.Fatalities, text),
		Injuries:       normalizeCount(wire.Injuries, ""),
		SourceRef:      article.ID,
		SourceName:     article.Source,
		SourceText:     text,
	}
}

// normalizeCount resolves a raw JSON count (number or phrase) to an integer.
// When the service omitted the field entirely, the fallback text (the article
// body for fatalities) drives the vague-quantity rules.
func normalizeCount(raw json.RawMessage, fallback string) int {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return quantity.Normalize(fallback)
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}

	var phrase string
	if err := json.Unmarshal(raw, &phrase); err == nil {
		return quantity.Normalize(phrase)
	}

	return quantity.Normalize(fallback)
}

func validDate(value string) string {
	value = strings.TrimSpace(value)
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return domain.Unknown
	}
	return value
}

func buildUserPayload(articles []domain.Article) (string, error) {
	type item struct {
		Index     int    `json:"index"`
		Source    string `json:"source"`
		Published string `json:"published,omitempty"`
		Text      string `json:"text"`
	}

	items := make([]item, 0, len(articles))
	for i, article := range articles {
		text := truncateText(article.Title+". "+article.Body, maxArticleChars)
		published := ""
		if !article.PublishedAt.IsZero() {
			published = article.PublishedAt.UTC().Format("2006-01-02")
		}
		items = append(items, item{Index: i, Source: article.Source, Published: published, Text: text})
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return "Articles (" + strconv.Itoa(len(items)) + "): " + string(payload), nil
}

// truncateText cuts the text at most max bytes, backing up so the cut never
// lands inside a multi-byte rune.
func truncateText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

func (c *ExtractionClient) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

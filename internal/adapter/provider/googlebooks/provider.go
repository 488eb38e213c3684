package googlebooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/math-s/yeargoals/internal/provider"
)

const (
	defaultBaseURL   = "https://www.googleapis.com/books/v1/volumes"
	defaultTimeout   = 8 * time.Second
	defaultUserAgent = "yeargoals/1.0"
)

// Config holds the catalog endpoint settings.
type Config struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

// Provider looks up book metadata in the Google Books volumes API.
type Provider struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. Zero config fields fall back to the public
// endpoint, an 8 second timeout and the default user agent.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "googlebooks"),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	return NewProvider(Config{BaseURL: baseURL}, logger)
}

// LookupISBN returns metadata of the first catalog match for isbn.
// Returns nil, nil if the catalog has no match. Any transport, status or
// decoding problem is returned as an error; there is no retry.
func (p *Provider) LookupISBN(ctx context.Context, isbn string) (*provider.BookResult, error) {
	q := url.Values{}
	q.Set("q", "isbn:"+isbn)
	if p.apiKey != "" {
		q.Set("key", p.apiKey)
	}
	reqURL := p.baseURL + "?" + q.Encode()

	p.log.DebugContext(ctx, "googlebooks request", slog.String("isbn", isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("googlebooks: create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "googlebooks request failed", slog.String("isbn", isbn), slog.String("error", err.Error()))
		return nil, fmt.Errorf("googlebooks: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("googlebooks: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("googlebooks: read body: %w", err)
	}

	var vr volumesResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("googlebooks: decode json: %w", err)
	}
	if len(vr.Items) == 0 {
		p.log.DebugContext(ctx, "googlebooks no match", slog.String("isbn", isbn))
		return nil, nil
	}

	result := mapVolume(vr.Items[0])

	p.log.DebugContext(ctx, "googlebooks response",
		slog.String("isbn", isbn),
		slog.Int("matches", len(vr.Items)),
		slog.Int("authors", len(result.Authors)),
	)

	return result, nil
}

// mapVolume extracts the fields the library keeps. volumeInfo is read as a
// loose object because the catalog is inconsistent about types; anything
// that is not an object is kept as {} and yields no fields.
func mapVolume(v volume) *provider.BookResult {
	result := &provider.BookResult{
		Authors:    []string{},
		Categories: []string{},
	}
	if v.ID != "" {
		id := v.ID
		result.VolumeID = &id
	}

	info, ok := decodeVolumeInfo(v.VolumeInfo)
	if !ok {
		result.VolumeInfo = json.RawMessage(`{}`)
		return result
	}
	result.VolumeInfo = v.VolumeInfo

	result.Title = stringField(info, "title")
	result.PublishedDate = stringField(info, "publishedDate")
	result.Authors = stringList(info["authors"])
	result.Categories = stringList(info["categories"])
	result.PageCount = intField(info, "pageCount")

	if links, ok := info["imageLinks"].(map[string]any); ok {
		result.Thumbnail = stringField(links, "thumbnail")
		if result.Thumbnail == nil {
			result.Thumbnail = stringField(links, "smallThumbnail")
		}
	}

	return result
}

func decodeVolumeInfo(raw json.RawMessage) (map[string]any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var info map[string]any
	if err := dec.Decode(&info); err != nil || info == nil {
		return nil, false
	}
	return info, true
}

func stringField(m map[string]any, key string) *string {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func intField(m map[string]any, key string) *int64 {
	n, ok := m[key].(json.Number)
	if !ok {
		return nil
	}
	i, err := n.Int64()
	if err != nil {
		return nil
	}
	return &i
}

// stringList keeps non-blank string and number elements, numbers rendered
// as strings.
func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		var s string
		switch t := e.(type) {
		case string:
			s = t
		case json.Number:
			s = t.String()
		default:
			continue
		}
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

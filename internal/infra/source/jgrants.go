package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"subsidy-finder/internal/domain/entity"
	"subsidy-finder/internal/pkg/dates"
	"subsidy-finder/internal/resilience/circuitbreaker"
	"subsidy-finder/internal/resilience/retry"
)

// DefaultJGrantsURL is the public jGrants subsidies endpoint.
const DefaultJGrantsURL = "https://api.jgrants-portal.go.jp/exp/v1/public/subsidies"

// jgrantsPayload is the top-level API response envelope.
type jgrantsPayload struct {
	Data []jgrantsItem `json:"data"`
}

// jgrantsItem is deliberately loose-typed. The API omits fields freely and
// keywords arrives as either a JSON array or a bare string.
type jgrantsItem struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Organization     string          `json:"organization"`
	Target           string          `json:"target"`
	Amount           string          `json:"amount"`
	ApplicationStart string          `json:"application_start"`
	ApplicationEnd   string          `json:"application_end"`
	URL              string          `json:"url"`
	Keywords         json.RawMessage `json:"keywords"`
}

// JGrantsAdapter pulls subsidy records from the jGrants public API.
type JGrantsAdapter struct {
	client      *http.Client
	apiURL      string
	breaker     *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
	limiter     *rate.Limiter
}

// NewJGrantsAdapter creates the API adapter. Pass an empty apiURL to use
// the public endpoint.
func NewJGrantsAdapter(client *http.Client, apiURL string) *JGrantsAdapter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if apiURL == "" {
		apiURL = DefaultJGrantsURL
	}
	return &JGrantsAdapter{
		client:      client,
		apiURL:      apiURL,
		breaker:     circuitbreaker.New(circuitbreaker.SourceFetchConfig("jgrants")),
		retryConfig: retry.SourceFetchConfig(),
		// 行政APIへの礼儀: 1req/sec に抑える
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Name implements Adapter.
func (a *JGrantsAdapter) Name() string { return "jgrants" }

// Fetch implements Adapter.
func (a *JGrantsAdapter) Fetch(ctx context.Context) ([]*entity.Subsidy, error) {
	var subsidies []*entity.Subsidy

	err := retry.WithBackoff(ctx, a.retryConfig, func() error {
		result, err := a.breaker.Execute(func() (interface{}, error) {
			return a.doFetch(ctx)
		})
		if err != nil {
			return err
		}
		subsidies = result.([]*entity.Subsidy)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("JGrantsAdapter.Fetch: %w", err)
	}
	return subsidies, nil
}

func (a *JGrantsAdapter) doFetch(ctx context.Context) ([]*entity.Subsidy, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := validateFetchURL(a.apiURL); err != nil {
		return nil, fmt.Errorf("URL validation failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: "jgrants API returned non-200"}
	}

	var payload jgrantsPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	subsidies := make([]*entity.Subsidy, 0, len(payload.Data))
	for _, item := range payload.Data {
		s := a.mapItem(item)
		if err := s.Validate(); err != nil {
			slog.Debug("skipping invalid jgrants item",
				slog.String("title", item.Title),
				slog.String("error", err.Error()))
			continue
		}
		subsidies = append(subsidies, s)
	}

	slog.Info("jgrants fetch completed",
		slog.Int("received", len(payload.Data)),
		slog.Int("accepted", len(subsidies)))
	return subsidies, nil
}

func (a *JGrantsAdapter) mapItem(item jgrantsItem) *entity.Subsidy {
	org := item.Organization
	if org == "" {
		org = "国"
	}
	return &entity.Subsidy{
		Title:            item.Title,
		Description:      item.Description,
		Organization:     org,
		Target:           item.Target,
		Amount:           item.Amount,
		ApplicationStart: dates.ParseLoose(item.ApplicationStart),
		ApplicationEnd:   dates.ParseLoose(item.ApplicationEnd),
		URL:              item.URL,
		Keywords:         normalizeKeywords(item.Keywords),
		Source:           entity.SourceAPI,
	}
}

// normalizeKeywords flattens the keywords field to a comma-joined string.
// The API sends an array on most records and a plain string on a few.
func normalizeKeywords(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ",")
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	return ""
}

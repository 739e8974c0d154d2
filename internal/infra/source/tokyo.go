package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"subsidy-finder/internal/domain/entity"
	"subsidy-finder/internal/resilience/circuitbreaker"
	"subsidy-finder/internal/resilience/retry"
)

// DefaultTokyoURL is the Tokyo metropolitan subsidy listing page.
const DefaultTokyoURL = "https://www.tokyo-kosha.or.jp/support/josei/index.html"

// tokyoBlockSelector matches listing blocks across the page layouts the
// site has shipped. The page has no stable markup contract, so each lookup
// below is an ordered chain of selectors tried until one yields text.
const tokyoBlockSelector = ".subsidy-item, .content-box, article, .list-item"

var (
	tokyoTitleChain = []string{
		"h3, h2, .title, .heading",
		`a[href*="subsidy"], a[href*="josei"]`,
		"a",
	}
	tokyoDescChain = []string{
		"p, .description, .summary",
	}
)

// TokyoAdapter scrapes the Tokyo metropolitan subsidy page.
type TokyoAdapter struct {
	client      *http.Client
	pageURL     string
	breaker     *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
	limiter     *rate.Limiter
}

// NewTokyoAdapter creates the scraping adapter. Pass an empty pageURL to
// use the public listing page.
func NewTokyoAdapter(client *http.Client, pageURL string) *TokyoAdapter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if pageURL == "" {
		pageURL = DefaultTokyoURL
	}
	return &TokyoAdapter{
		client:      client,
		pageURL:     pageURL,
		breaker:     circuitbreaker.New(circuitbreaker.SourceFetchConfig("tokyo")),
		retryConfig: retry.SourceFetchConfig(),
		limiter:     rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Name implements Adapter.
func (a *TokyoAdapter) Name() string { return "tokyo" }

// Fetch implements Adapter.
func (a *TokyoAdapter) Fetch(ctx context.Context) ([]*entity.Subsidy, error) {
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
		return nil, fmt.Errorf("TokyoAdapter.Fetch: %w", err)
	}
	return subsidies, nil
}

func (a *TokyoAdapter) doFetch(ctx context.Context) ([]*entity.Subsidy, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := validateFetchURL(a.pageURL); err != nil {
		return nil, fmt.Errorf("URL validation failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: "tokyo page returned non-200"}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(a.pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}

	var subsidies []*entity.Subsidy
	skipped := 0
	doc.Find(tokyoBlockSelector).Each(func(_ int, block *goquery.Selection) {
		s := a.parseBlock(base, block)
		if s == nil {
			skipped++
			return
		}
		if err := s.Validate(); err != nil {
			slog.Debug("skipping invalid tokyo block",
				slog.String("title", s.Title),
				slog.String("error", err.Error()))
			skipped++
			return
		}
		subsidies = append(subsidies, s)
	})

	slog.Info("tokyo fetch completed",
		slog.Int("accepted", len(subsidies)),
		slog.Int("skipped", skipped))
	return subsidies, nil
}

// parseBlock extracts one listing block. Blocks without a usable title or
// link are not subsidy entries (navigation, banners) and yield nil.
func (a *TokyoAdapter) parseBlock(base *url.URL, block *goquery.Selection) *entity.Subsidy {
	title := firstText(block, tokyoTitleChain)
	if title == "" {
		return nil
	}

	href, ok := block.Find("a").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return nil
	}

	return &entity.Subsidy{
		Title:        title,
		Description:  firstText(block, tokyoDescChain),
		Organization: "東京都",
		Target:       "中小企業等",
		URL:          resolveURL(base, strings.TrimSpace(href)),
		Source:       entity.SourceScraped,
	}
}

// firstText tries each selector in order and returns the first non-empty
// trimmed text it finds.
func firstText(block *goquery.Selection, chain []string) string {
	for _, selector := range chain {
		text := strings.TrimSpace(block.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

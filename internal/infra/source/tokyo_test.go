package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsidy-finder/internal/domain/entity"
)

/* ─── ヘルパ ─── */

func newTokyoTestAdapter(serverURL string) *TokyoAdapter {
	a := NewTokyoAdapter(http.DefaultClient, serverURL)
	a.retryConfig = fastRetry()
	return a
}

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}))
}

/* ─── TokyoAdapter ─── */

func TestTokyoAdapter_Fetch(t *testing.T) {
	html := `<html><body>
		<div class="subsidy-item">
			<h3>創業助成金</h3>
			<p>都内で創業する中小企業者への助成</p>
			<a href="/support/josei/sogyo.html">詳細</a>
		</div>
		<article>
			<h2>設備投資支援事業</h2>
			<p>生産性向上のための設備導入を支援</p>
			<a href="https://example.com/setsubi">詳細はこちら</a>
		</article>
	</body></html>`

	server := serveHTML(t, html)
	defer server.Close()

	adapter := newTokyoTestAdapter(server.URL + "/support/josei/index.html")
	subsidies, err := adapter.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, subsidies, 2)

	first := subsidies[0]
	assert.Equal(t, "創業助成金", first.Title)
	assert.Equal(t, "都内で創業する中小企業者への助成", first.Description)
	assert.Equal(t, "東京都", first.Organization)
	assert.Equal(t, "中小企業等", first.Target)
	assert.Equal(t, entity.SourceScraped, first.Source)
	// 相対リンクはページURL基準で絶対化される
	assert.Equal(t, server.URL+"/support/josei/sogyo.html", first.URL)

	second := subsidies[1]
	assert.Equal(t, "設備投資支援事業", second.Title)
	assert.Equal(t, "https://example.com/setsubi", second.URL)
}

func TestTokyoAdapter_Fetch_TitleFallbackChain(t *testing.T) {
	// 見出しタグのないブロックはリンクテキストをタイトルに使う
	html := `<html><body>
		<div class="content-box">
			<a href="/josei/hojo.html">若手人材確保助成金</a>
		</div>
	</body></html>`

	server := serveHTML(t, html)
	defer server.Close()

	adapter := newTokyoTestAdapter(server.URL)
	subsidies, err := adapter.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, subsidies, 1)
	assert.Equal(t, "若手人材確保助成金", subsidies[0].Title)
}

func TestTokyoAdapter_Fetch_SkipsIncompleteBlocks(t *testing.T) {
	html := `<html><body>
		<div class="subsidy-item"><h3>リンクのないブロック</h3></div>
		<div class="subsidy-item"><a href="/no-title.html"> </a></div>
		<div class="subsidy-item">
			<h3>完全なブロック</h3>
			<a href="/complete.html">詳細</a>
		</div>
	</body></html>`

	server := serveHTML(t, html)
	defer server.Close()

	adapter := newTokyoTestAdapter(server.URL)
	subsidies, err := adapter.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, subsidies, 1)
	assert.Equal(t, "完全なブロック", subsidies[0].Title)
}

func TestTokyoAdapter_Fetch_EmptyPage(t *testing.T) {
	server := serveHTML(t, "<html><body><nav>メニュー</nav></body></html>")
	defer server.Close()

	adapter := newTokyoTestAdapter(server.URL)
	subsidies, err := adapter.Fetch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, subsidies)
}

func TestTokyoAdapter_Fetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := newTokyoTestAdapter(server.URL)
	_, err := adapter.Fetch(context.Background())

	require.Error(t, err)
}

func TestFirstText(t *testing.T) {
	server := serveHTML(t, `<html><body>
		<div class="list-item">
			<span class="title">本命タイトル</span>
			<a href="/x">リンク</a>
		</div>
	</body></html>`)
	defer server.Close()

	adapter := newTokyoTestAdapter(server.URL)
	subsidies, err := adapter.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, subsidies, 1)
	// ".title" は最初のセレクタ連で拾われ、リンクテキストより優先される
	assert.Equal(t, "本命タイトル", subsidies[0].Title)
}

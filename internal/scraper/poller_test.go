package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
	"github.com/VictorSaf/ainvestfeed/internal/scraper/domain"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Market Wire</title>
  <link>https://wire.example.com</link>
  <language>en-us</language>
  <item>
    <title>Acme beats earnings estimates</title>
    <link>https://wire.example.com/acme</link>
    <description>Acme reported record revenue.</description>
    <pubDate>Mon, 02 Feb 2026 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Globex shares fall</title>
    <link>https://wire.example.com/globex</link>
    <description>Guidance missed.</description>
  </item>
  <item>
    <title></title>
    <link>https://wire.example.com/untitled</link>
  </item>
  <item>
    <title>Relative link</title>
    <link>/relative</link>
  </item>
</channel>
</rss>`

type finishedRun struct {
	configID string
	status   string
	items    int
}

type memRunRepo struct {
	mu       sync.Mutex
	configs  []*domain.Config
	listErr  error
	started  map[string]string // run id -> config id
	finished []finishedRun
}

func newMemRunRepo(configs ...*domain.Config) *memRunRepo {
	return &memRunRepo{configs: configs, started: map[string]string{}}
}

func (m *memRunRepo) ListActiveByType(ctx context.Context, sourceType string) ([]*domain.Config, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.Config
	for _, c := range m.configs {
		if c.IsActive && c.SourceType == sourceType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memRunRepo) StartRun(ctx context.Context, id, configID string, at time.Time) (*domain.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started[id] = configID
	return &domain.Run{ID: id, ConfigID: configID, StartedAt: at, Status: domain.RunRunning}, nil
}

func (m *memRunRepo) FinishRun(ctx context.Context, id string, at time.Time, status string, items int) (*domain.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	configID, ok := m.started[id]
	if !ok {
		return nil, nil
	}
	m.finished = append(m.finished, finishedRun{configID: configID, status: status, items: items})
	return &domain.Run{ID: id, ConfigID: configID, Status: status, ItemsFound: items, FinishedAt: &at}, nil
}

func (m *memRunRepo) runsByConfig() map[string]finishedRun {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]finishedRun, len(m.finished))
	for _, r := range m.finished {
		out[r.configID] = r
	}
	return out
}

type collector struct {
	mu    sync.Mutex
	got   []ingestion.Candidate
	failT string
}

func (c *collector) emit(ctx context.Context, cand ingestion.Candidate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cand.Title == c.failT {
		return errors.New("queue unavailable")
	}
	c.got = append(c.got, cand)
	return nil
}

func (c *collector) titles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.got))
	for i, cand := range c.got {
		out[i] = cand.Title
	}
	sort.Strings(out)
	return out
}

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = io.WriteString(w, rssFeed)
	})
	mux.HandleFunc("/broken.xml", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream error", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func rssConfig(id, name, url string) *domain.Config {
	return &domain.Config{ID: id, Name: name, SourceType: domain.SourceRSS, SourceURL: url, IsActive: true}
}

func newTestPoller(repo RunRepo, emit EmitFunc, client *http.Client) *Poller {
	return NewPoller(repo, emit, client, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPoller_PollOnce(t *testing.T) {
	srv := feedServer(t)
	repo := newMemRunRepo(
		rssConfig("c1", "wire", srv.URL+"/feed.xml"),
		rssConfig("c2", "broken", srv.URL+"/broken.xml"),
		&domain.Config{ID: "c3", Name: "inactive", SourceType: domain.SourceRSS, SourceURL: srv.URL + "/feed.xml"},
		&domain.Config{ID: "c4", Name: "api", SourceType: domain.SourceAPI, SourceURL: srv.URL, IsActive: true},
	)
	col := &collector{}
	p := newTestPoller(repo, col.emit, srv.Client())

	sum, err := p.PollOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Summary{Configs: 2, Items: 2, Failed: 1}, sum)
	assert.Equal(t, []string{"Acme beats earnings estimates", "Globex shares fall"}, col.titles())

	runs := repo.runsByConfig()
	require.Len(t, runs, 2)
	assert.Equal(t, finishedRun{configID: "c1", status: domain.RunSuccess, items: 2}, runs["c1"])
	assert.Equal(t, finishedRun{configID: "c2", status: domain.RunFailed, items: 0}, runs["c2"])
}

func TestPoller_EmitFailureMarksRunFailed(t *testing.T) {
	srv := feedServer(t)
	repo := newMemRunRepo(rssConfig("c1", "wire", srv.URL+"/feed.xml"))
	col := &collector{failT: "Globex shares fall"}
	p := newTestPoller(repo, col.emit, srv.Client())

	sum, err := p.PollOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Items)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, finishedRun{configID: "c1", status: domain.RunFailed, items: 1}, repo.runsByConfig()["c1"])
}

func TestPoller_ListError(t *testing.T) {
	repo := newMemRunRepo()
	repo.listErr = fmt.Errorf("connection refused")
	p := newTestPoller(repo, (&collector{}).emit, nil)

	_, err := p.PollOnce(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	srv := feedServer(t)
	repo := newMemRunRepo(rssConfig("c1", "wire", srv.URL+"/feed.xml"))
	col := &collector{}
	p := newTestPoller(repo, col.emit, srv.Client())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx, time.Hour) }()

	require.Eventually(t, func() bool { return len(repo.runsByConfig()) == 1 }, 5*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestToCandidate(t *testing.T) {
	published := time.Date(2026, 2, 2, 10, 0, 0, 0, time.FixedZone("EST", -5*3600))
	updated := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
	cfg := rssConfig("c1", "wire", "https://wire.example.com/feed")

	tests := []struct {
		name  string
		feed  *gofeed.Feed
		item  *gofeed.Item
		ok    bool
		check func(t *testing.T, c ingestion.Candidate)
	}{
		{
			name: "content preferred over description",
			feed: &gofeed.Feed{Language: "en"},
			item: &gofeed.Item{Title: " Acme ", Link: "https://wire.example.com/a", Description: "short", Content: "full body", PublishedParsed: &published},
			ok:   true,
			check: func(t *testing.T, c ingestion.Candidate) {
				assert.Equal(t, "Acme", c.Title)
				require.NotNil(t, c.ContentRaw)
				assert.Equal(t, "full body", *c.ContentRaw)
				require.NotNil(t, c.Excerpt)
				assert.Equal(t, "short", *c.Excerpt)
				require.NotNil(t, c.Language)
				assert.Equal(t, "en", *c.Language)
				require.NotNil(t, c.SourceName)
				assert.Equal(t, "wire", *c.SourceName)
				require.NotNil(t, c.PublishedAt)
				assert.Equal(t, time.UTC, c.PublishedAt.Location())
				assert.True(t, c.PublishedAt.Equal(published))
			},
		},
		{
			name: "description used as content, updated date fallback",
			feed: &gofeed.Feed{Language: "a-very-long-language-tag"},
			item: &gofeed.Item{Title: "Globex", Link: "http://wire.example.com/g", Description: "desc", UpdatedParsed: &updated},
			ok:   true,
			check: func(t *testing.T, c ingestion.Candidate) {
				require.NotNil(t, c.ContentRaw)
				assert.Equal(t, "desc", *c.ContentRaw)
				assert.Nil(t, c.Language)
				require.NotNil(t, c.PublishedAt)
				assert.True(t, c.PublishedAt.Equal(updated))
			},
		},
		{
			name: "no description",
			feed: &gofeed.Feed{},
			item: &gofeed.Item{Title: "Initech", Link: "https://wire.example.com/i"},
			ok:   true,
			check: func(t *testing.T, c ingestion.Candidate) {
				assert.Nil(t, c.Excerpt)
				assert.Nil(t, c.ContentRaw)
				assert.Nil(t, c.PublishedAt)
			},
		},
		{name: "blank title", feed: &gofeed.Feed{}, item: &gofeed.Item{Title: "  ", Link: "https://wire.example.com/x"}},
		{name: "relative link", feed: &gofeed.Feed{}, item: &gofeed.Item{Title: "x", Link: "/x"}},
		{name: "ftp link", feed: &gofeed.Feed{}, item: &gofeed.Item{Title: "x", Link: "ftp://wire.example.com/x"}},
		{name: "nil item", feed: &gofeed.Feed{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := toCandidate(cfg, tt.feed, tt.item)
			assert.Equal(t, tt.ok, ok)
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}

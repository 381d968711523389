package sources

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/rixia6254/info-teacher-radar/internal/config"
	"github.com/rixia6254/info-teacher-radar/internal/feedparse"
	"github.com/rixia6254/info-teacher-radar/internal/news"
)

// DirectFeedCollector загружает фиксированные синдикационные ленты.
// Каждая запись штампуется меткой ленты; дата берётся из pubDate,
// при нераспознанной дате — время сбора.
type DirectFeedCollector struct {
	feeds   []config.Feed
	fetcher Fetcher
	clock   func() time.Time
}

// NewDirectFeedCollector создаёт новый экземпляр.
func NewDirectFeedCollector(feeds []config.Feed, fetcher Fetcher, clock func() time.Time) *DirectFeedCollector {
	if clock == nil {
		clock = time.Now
	}
	return &DirectFeedCollector{feeds: feeds, fetcher: fetcher, clock: clock}
}

// Name реализует Collector.
func (c *DirectFeedCollector) Name() string { return "direct-feed" }

// Collect реализует Collector.
func (c *DirectFeedCollector) Collect(ctx context.Context) []news.RawItem {
	var results []news.RawItem
	for _, feed := range c.feeds {
		body, err := c.fetcher.Text(ctx, feed.URL)
		if err != nil {
			log.Printf("source %q: fetch %s: %v", feed.Label, feed.URL, err)
			continue
		}
		results = append(results, feedEntries(body, feed.Label, c.clock())...)
	}
	return results
}

// feedEntries превращает разобранную ленту в записи с общей меткой источника.
func feedEntries(body, label string, collectedAt time.Time) []news.RawItem {
	entries := feedparse.Parse(body)
	if len(entries) > maxFeedItems {
		entries = entries[:maxFeedItems]
	}

	items := make([]news.RawItem, 0, len(entries))
	for _, e := range entries {
		title := strings.TrimSpace(e.Title)
		link := strings.TrimSpace(e.Link)
		if title == "" || link == "" {
			continue
		}
		items = append(items, news.RawItem{
			Title:       title,
			URL:         link,
			Source:      label,
			PublishedAt: parseTime(e.PubDate, collectedAt),
		})
	}
	return items
}

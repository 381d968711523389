package sources

import (
	"context"
	"log"
	"time"

	"github.com/rixia6254/info-teacher-radar/internal/config"
	"github.com/rixia6254/info-teacher-radar/internal/harvest"
	"github.com/rixia6254/info-teacher-radar/internal/news"
)

// PageCollector собирает ссылки со страниц-списков без ленты.
// Такие страницы не сообщают дату публикации по каждой ссылке, поэтому все
// записи штампуются временем сбора и институциональной меткой страницы.
type PageCollector struct {
	pages   []config.Page
	fetcher Fetcher
	clock   func() time.Time
	limit   int
}

// NewPageCollector создаёт новый экземпляр. limit ограничивает число ссылок
// с одной страницы, чтобы шумные списки не раздували работу классификатора.
func NewPageCollector(pages []config.Page, fetcher Fetcher, clock func() time.Time, limit int) *PageCollector {
	if clock == nil {
		clock = time.Now
	}
	if limit <= 0 {
		limit = config.DefaultHarvestLimit
	}
	return &PageCollector{pages: pages, fetcher: fetcher, clock: clock, limit: limit}
}

// Name реализует Collector.
func (c *PageCollector) Name() string { return "link-harvest" }

// Collect реализует Collector.
func (c *PageCollector) Collect(ctx context.Context) []news.RawItem {
	var results []news.RawItem
	for _, page := range c.pages {
		body, err := c.fetcher.Text(ctx, page.URL)
		if err != nil {
			log.Printf("source %q: fetch %s: %v", page.Label, page.URL, err)
			continue
		}

		links := harvest.Links(body, page.URL)
		if len(links) > c.limit {
			links = links[:c.limit]
		}

		collectedAt := c.clock()
		for _, link := range links {
			results = append(results, news.RawItem{
				Title:       link.Title,
				URL:         link.URL,
				Source:      page.Label,
				PublishedAt: collectedAt,
			})
		}
	}
	return results
}

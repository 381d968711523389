package sources

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/rixia6254/info-teacher-radar/internal/news"
)

// searchFeedBase — поисковая лента Google News, пришпиленная к ja/JP.
// Обёрточные redirect-URL из выдачи не разворачиваются: запись сохраняет
// тот URL, который сообщила лента.
const searchFeedBase = "https://news.google.com/rss/search"

// QueryFeedCollector собирает ленты поисковых запросов: по одной на фразу.
// Метка источника составная («ニュース検索:フレーズ»), чтобы разные запросы
// оставались различимым происхождением даже для одного и того же URL.
type QueryFeedCollector struct {
	phrases []string
	fetcher Fetcher
	clock   func() time.Time
}

// NewQueryFeedCollector создаёт новый экземпляр.
func NewQueryFeedCollector(phrases []string, fetcher Fetcher, clock func() time.Time) *QueryFeedCollector {
	if clock == nil {
		clock = time.Now
	}
	return &QueryFeedCollector{phrases: phrases, fetcher: fetcher, clock: clock}
}

// Name реализует Collector.
func (c *QueryFeedCollector) Name() string { return "query-feed" }

// Collect реализует Collector.
func (c *QueryFeedCollector) Collect(ctx context.Context) []news.RawItem {
	var results []news.RawItem
	for _, phrase := range c.phrases {
		feedURL := SearchFeedURL(phrase)
		body, err := c.fetcher.Text(ctx, feedURL)
		if err != nil {
			log.Printf("source %q: fetch %s: %v", phrase, feedURL, err)
			continue
		}
		results = append(results, feedEntries(body, "ニュース検索:"+phrase, c.clock())...)
	}
	return results
}

// SearchFeedURL строит URL поисковой ленты для фразы.
func SearchFeedURL(phrase string) string {
	q := url.Values{}
	q.Set("q", phrase)
	q.Set("hl", "ja")
	q.Set("gl", "JP")
	q.Set("ceid", "JP:ja")
	return searchFeedBase + "?" + q.Encode()
}

// Package sources содержит коллекторы — по одному на вид источника.
//
// Контракт общий: Collect никогда не отдаёт ошибку наружу. Отказ загрузки
// или разбора одного источника пишется в лог и даёт пустой вклад, чтобы один
// недоступный сайт не срывал прогон целиком.
package sources

import (
	"context"
	"strings"
	"time"

	"github.com/rixia6254/info-teacher-radar/internal/news"
)

// Fetcher — сетевой примитив: текст по URL или отказ в пределах таймаута.
type Fetcher interface {
	Text(ctx context.Context, rawURL string) (string, error)
}

// Collector превращает сырое содержимое источника в список записей.
type Collector interface {
	Name() string
	Collect(ctx context.Context) []news.RawItem
}

// maxFeedItems ограничивает число записей с одной ленты: хвост из
// многолетнего архива обрабатывать незачем.
const maxFeedItems = 100

// parseTime разбирает дату публикации из ленты. Форматы дат в лентах
// гуляют, поэтому перебираем список; нераспознанная дата заменяется
// временем сбора.
func parseTime(value string, fallback time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}

	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC822Z,
		time.RFC822,
		time.RFC3339,
		"Mon, 02 Jan 2006 15:04:05 MST",
		"02 Jan 2006 15:04:05 MST",
		"2006-01-02T15:04:05-07:00",
	}

	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t
		}
	}

	return fallback
}

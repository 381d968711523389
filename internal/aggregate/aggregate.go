// Package aggregate сводит записи всех коллекторов в итоговый артефакт:
// дедупликация по канонической идентичности, слияние коллизий, окно
// удержания, сортировка и ограничение размера.
package aggregate

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rixia6254/info-teacher-radar/internal/classify"
	"github.com/rixia6254/info-teacher-radar/internal/news"
	"github.com/rixia6254/info-teacher-radar/internal/score"
	"github.com/rixia6254/info-teacher-radar/internal/urlutil"
)

// retentionEpsilon поглощает расхождение часов между источником и машиной
// сборки на границе окна удержания.
const retentionEpsilon = 6 * time.Hour

// Aggregator — чистое однопроходное преобразование без блокирующих вызовов.
type Aggregator struct {
	retentionDays int
	maxItems      int
	clock         func() time.Time
}

// New создаёт агрегатор. clock == nil означает time.Now.
func New(retentionDays, maxItems int, clock func() time.Time) *Aggregator {
	if clock == nil {
		clock = time.Now
	}
	return &Aggregator{
		retentionDays: retentionDays,
		maxItems:      maxItems,
		clock:         clock,
	}
}

// Aggregate превращает сырые записи в отсортированный список Item.
func (a *Aggregator) Aggregate(raw []news.RawItem) []news.Item {
	now := a.clock()

	byID := make(map[string]*news.Item, len(raw))
	order := make([]string, 0, len(raw))

	for _, r := range raw {
		title := strings.TrimSpace(r.Title)
		canon := urlutil.Normalize(r.URL)
		if title == "" || canon == "" {
			continue
		}

		id := urlutil.ItemID(canon)
		res := classify.Classify(title, canon, r.Source)
		candidate := news.Item{
			ID:          id,
			Title:       title,
			URL:         canon,
			Source:      r.Source,
			PublishedAt: r.PublishedAt,
			Tab:         res.Tab,
			Tags:        res.Tags,
		}
		candidate.Score = score.Score(candidate, now)

		if existing, ok := byID[id]; ok {
			merge(existing, candidate)
			continue
		}
		item := candidate
		byID[id] = &item
		order = append(order, id)
	}

	cutoff := now.Add(-time.Duration(a.retentionDays)*24*time.Hour - retentionEpsilon)

	items := make([]news.Item, 0, len(order))
	for _, id := range order {
		item := *byID[id]
		if item.PublishedAt.Before(cutoff) {
			continue
		}
		items = append(items, item)
	}

	// Сортировка по убыванию релевантности; равные — по убыванию даты.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	if a.maxItems > 0 && len(items) > a.maxItems {
		items = items[:a.maxItems]
	}

	return items
}

// Artifact собирает итоговый артефакт прогона.
func (a *Aggregator) Artifact(raw []news.RawItem) news.Artifact {
	return news.Artifact{
		GeneratedAt: a.clock(),
		Items:       a.Aggregate(raw),
	}
}

// merge — правило слияния при коллизии идентичности: более длинный
// заголовок, более ранняя дата, объединение тегов в порядке первого
// появления, максимум релевантности; остальные поля — от первой записи.
func merge(dst *news.Item, src news.Item) {
	if utf8.RuneCountInString(src.Title) > utf8.RuneCountInString(dst.Title) {
		dst.Title = src.Title
	}
	if src.PublishedAt.Before(dst.PublishedAt) {
		dst.PublishedAt = src.PublishedAt
	}
	dst.Tags = unionTags(dst.Tags, src.Tags)
	if src.Score > dst.Score {
		dst.Score = src.Score
	}
}

func unionTags(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, tags := range [][]string{a, b} {
		for _, tag := range tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// Package view — модель представления вьюера.
//
// Состояние выбора — неизменяемый снимок: каждое действие пользователя даёт
// новый State, производные списки считаются чистыми функциями заново на
// каждый запрос. Инкрементальных диффов нет: размер списка ограничен
// пределом артефакта.
package view

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/width"

	"github.com/rixia6254/info-teacher-radar/internal/bookmark"
	"github.com/rixia6254/info-teacher-radar/internal/news"
)

// Псевдо-вкладки поверх фиксированных категорий.
const (
	TabToday     = "today"     // сводка дня по категориям
	TabBookmarks = "bookmarks" // постоянные закладки
)

// SortMode — порядок сортировки видимого списка.
type SortMode int

const (
	SortByScore SortMode = iota // по убыванию релевантности
	SortByTime                  // по убыванию даты публикации
)

// Параметры сводки дня и фасетов.
const (
	digestPerTab     = 6
	digestTotal      = 20
	digestWindowDays = 7
	maxFacets        = 16
)

// digestTabs — фиксированное подмножество категорий сводки: каждая важная
// категория представлена, а не вытеснена чужим сырым счётом.
var digestTabs = []news.Tab{news.TabMext, news.TabICT, news.TabSubject, news.TabAIEdu, news.TabAINews}

// State — снимок выбора пользователя.
type State struct {
	ActiveTab     string
	ActiveTag     string
	SearchText    string
	Sort          SortMode
	RetentionDays int
	ClipsOpen     bool

	// lastNewsTab — вкладка до открытия оверлея вырезок: закрытие оверлея
	// возвращает её, а не сводку по умолчанию.
	lastNewsTab string
}

// NewState — состояние по умолчанию: сводка дня, окно 7 дней.
func NewState() State {
	return State{
		ActiveTab:     TabToday,
		RetentionDays: digestWindowDays,
	}
}

// SelectTab переключает вкладку и сбрасывает фильтры по тегу и поиску.
func (s State) SelectTab(tab string) State {
	s.ActiveTab = tab
	s.ActiveTag = ""
	s.SearchText = ""
	return s
}

// ToggleTag включает фильтр по тегу; повторный выбор активного тега снимает его.
func (s State) ToggleTag(tag string) State {
	if s.ActiveTag == tag {
		s.ActiveTag = ""
	} else {
		s.ActiveTag = tag
	}
	return s
}

// SetSearch задаёт текст поиска.
func (s State) SetSearch(text string) State {
	s.SearchText = text
	return s
}

// SetSort задаёт порядок сортировки.
func (s State) SetSort(mode SortMode) State {
	s.Sort = mode
	return s
}

// SetRetention задаёт окно удержания в днях (минимум один день).
func (s State) SetRetention(days int) State {
	if days > 0 {
		s.RetentionDays = days
	}
	return s
}

// OpenClips открывает оверлей вырезок, запоминая текущую вкладку.
func (s State) OpenClips() State {
	if !s.ClipsOpen {
		s.lastNewsTab = s.ActiveTab
		s.ClipsOpen = true
	}
	return s
}

// CloseClips закрывает оверлей и возвращает прежнюю вкладку.
func (s State) CloseClips() State {
	if s.ClipsOpen {
		s.ClipsOpen = false
		if s.lastNewsTab != "" {
			s.ActiveTab = s.lastNewsTab
		}
	}
	return s
}

// Model — данные, над которыми считаются производные списки.
type Model struct {
	Artifact  news.Artifact
	Bookmarks bookmark.State
	Now       time.Time
}

// Visible — конвейер фильтров: базовый список по режиму → фильтр по тегу →
// поиск → сортировка. Каждая ступень опциональна.
func (m Model) Visible(st State) []news.Item {
	items := m.baseList(st)

	if st.ActiveTag != "" {
		filtered := make([]news.Item, 0, len(items))
		for _, item := range items {
			if hasTag(item.Tags, st.ActiveTag) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if q := foldText(st.SearchText); q != "" {
		filtered := make([]news.Item, 0, len(items))
		for _, item := range items {
			if strings.Contains(searchText(item), q) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	return sortItems(items, st.Sort)
}

// Facets — частотные теги базового списка текущей вкладки; фильтры по тегу
// и поиску при подсчёте не учитываются.
func (m Model) Facets(st State) []Facet {
	counts := make(map[string]int)
	var order []string
	for _, item := range m.baseList(st) {
		for _, tag := range item.Tags {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	facets := make([]Facet, 0, len(order))
	for _, tag := range order {
		facets = append(facets, Facet{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(facets, func(i, j int) bool {
		return facets[i].Count > facets[j].Count
	})

	if len(facets) > maxFacets {
		facets = facets[:maxFacets]
	}
	return facets
}

// Facet — тег с частотой для быстрых фильтров.
type Facet struct {
	Tag   string
	Count int
}

// Digest — сводка дня: топ по релевантности из каждой категории сводки за
// неделю, склейка, дедупликация по идентичности, пересортировка, общий предел.
func (m Model) Digest() []news.Item {
	cutoff := m.Now.Add(-digestWindowDays * 24 * time.Hour)

	var combined []news.Item
	for _, tab := range digestTabs {
		var inTab []news.Item
		for _, item := range m.Artifact.Items {
			if item.Tab == tab && !item.PublishedAt.Before(cutoff) {
				inTab = append(inTab, item)
			}
		}
		inTab = sortItems(inTab, SortByScore)
		if len(inTab) > digestPerTab {
			inTab = inTab[:digestPerTab]
		}
		combined = append(combined, inTab...)
	}

	seen := make(map[string]struct{}, len(combined))
	deduped := combined[:0]
	for _, item := range combined {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		deduped = append(deduped, item)
	}

	deduped = sortItems(deduped, SortByScore)
	if len(deduped) > digestTotal {
		deduped = deduped[:digestTotal]
	}
	return deduped
}

// baseList выбирает основу по режиму: сводка, закладки или одна категория
// в пределах окна удержания. Для закладок окно не действует.
func (m Model) baseList(st State) []news.Item {
	switch st.ActiveTab {
	case TabToday:
		return m.Digest()
	case TabBookmarks:
		items := make([]news.Item, 0, len(m.Bookmarks.Order))
		for _, id := range m.Bookmarks.Order {
			if snap, ok := m.Bookmarks.Map[id]; ok {
				items = append(items, snap)
			}
		}
		return items
	default:
		cutoff := m.Now.Add(-time.Duration(st.RetentionDays) * 24 * time.Hour)
		var items []news.Item
		for _, item := range m.Artifact.Items {
			if string(item.Tab) == st.ActiveTab && !item.PublishedAt.Before(cutoff) {
				items = append(items, item)
			}
		}
		return items
	}
}

func sortItems(items []news.Item, mode SortMode) []news.Item {
	out := make([]news.Item, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		if mode == SortByTime {
			if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
				return out[i].PublishedAt.After(out[j].PublishedAt)
			}
			return out[i].Score > out[j].Score
		}
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

// searchText — склейка заголовка, источника, тегов и категории для поиска.
func searchText(item news.Item) string {
	parts := []string{item.Title, item.Source, string(item.Tab)}
	parts = append(parts, item.Tags...)
	return foldText(strings.Join(parts, " "))
}

func foldText(s string) string {
	return strings.ToLower(width.Fold.String(strings.TrimSpace(s)))
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

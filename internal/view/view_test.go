package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/rixia6254/info-teacher-radar/internal/bookmark"
	"github.com/rixia6254/info-teacher-radar/internal/news"
)

var viewNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func item(id string, tab news.Tab, score int, age time.Duration, tags ...string) news.Item {
	if len(tags) == 0 {
		tags = []string{"教育ニュース"}
	}
	return news.Item{
		ID:          id,
		Title:       "記事" + id,
		URL:         "https://example.com/" + id,
		Source:      "—",
		Tab:         tab,
		Tags:        tags,
		Score:       score,
		PublishedAt: viewNow.Add(-age),
	}
}

func model(items ...news.Item) Model {
	return Model{
		Artifact: news.Artifact{GeneratedAt: viewNow, Items: items},
		Now:      viewNow,
	}
}

func TestDigest_BalancedAcrossTabs(t *testing.T) {
	// Одна категория с одинаково высокими счетами не должна вытеснить
	// остальные представленные категории.
	var items []news.Item
	for i := 0; i < 30; i++ {
		items = append(items, item(fmt.Sprintf("ict%d", i), news.TabICT, 50, time.Hour))
	}
	items = append(items,
		item("mext1", news.TabMext, 3, 2*time.Hour),
		item("subj1", news.TabSubject, 2, 3*time.Hour),
		item("aiedu1", news.TabAIEdu, 1, 4*time.Hour),
	)

	digest := model(items...).Digest()

	if len(digest) > digestTotal {
		t.Fatalf("digest len = %d, want <= %d", len(digest), digestTotal)
	}

	present := make(map[news.Tab]bool)
	ictCount := 0
	for _, it := range digest {
		present[it.Tab] = true
		if it.Tab == news.TabICT {
			ictCount++
		}
	}
	if ictCount > digestPerTab {
		t.Errorf("ICT items in digest = %d, want <= per-tab cap %d", ictCount, digestPerTab)
	}
	for _, tab := range []news.Tab{news.TabMext, news.TabSubject, news.TabAIEdu} {
		if !present[tab] {
			t.Errorf("digest missing represented tab %q", tab)
		}
	}
}

func TestDigest_DedupAndWindow(t *testing.T) {
	old := item("old", news.TabICT, 90, 10*24*time.Hour)
	digest := model(old, item("fresh", news.TabICT, 5, time.Hour)).Digest()

	for _, it := range digest {
		if it.ID == "old" {
			t.Error("digest includes item outside 7-day window")
		}
	}
}

func TestVisible_FilterPipeline(t *testing.T) {
	m := model(
		item("a", news.TabICT, 5, time.Hour, "端末整備"),
		item("b", news.TabICT, 9, 2*time.Hour, "校務DX"),
		item("c", news.TabSubject, 7, time.Hour, "プログラミング"),
	)

	st := NewState().SelectTab(string(news.TabICT))

	got := m.Visible(st)
	if len(got) != 2 {
		t.Fatalf("tab filter: %d items, want 2", len(got))
	}
	// Сортировка по умолчанию — по убыванию счёта.
	if got[0].ID != "b" {
		t.Errorf("Visible()[0] = %q, want highest score first", got[0].ID)
	}

	// Фильтр по тегу.
	st = st.ToggleTag("端末整備")
	got = m.Visible(st)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("tag filter: %+v", got)
	}

	// Повторный выбор тега снимает фильтр.
	st = st.ToggleTag("端末整備")
	if st.ActiveTag != "" {
		t.Errorf("ToggleTag twice: ActiveTag = %q, want empty", st.ActiveTag)
	}

	// Поиск по подстроке склейки, без учёта регистра и ширины.
	st = st.SetSearch("記事C")
	got = m.Visible(st.SelectTab(string(news.TabSubject)).SetSearch("記事c"))
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("search filter: %+v", got)
	}
}

func TestVisible_SortModes(t *testing.T) {
	m := model(
		item("older-high", news.TabICT, 9, 48*time.Hour),
		item("newer-low", news.TabICT, 2, time.Hour),
	)
	st := NewState().SelectTab(string(news.TabICT))

	byScore := m.Visible(st.SetSort(SortByScore))
	if byScore[0].ID != "older-high" {
		t.Errorf("SortByScore first = %q", byScore[0].ID)
	}

	byTime := m.Visible(st.SetSort(SortByTime))
	if byTime[0].ID != "newer-low" {
		t.Errorf("SortByTime first = %q", byTime[0].ID)
	}
}

func TestVisible_RetentionWindow(t *testing.T) {
	m := model(
		item("in", news.TabICT, 5, 2*24*time.Hour),
		item("out", news.TabICT, 5, 5*24*time.Hour),
	)
	st := NewState().SelectTab(string(news.TabICT)).SetRetention(3)

	got := m.Visible(st)
	if len(got) != 1 || got[0].ID != "in" {
		t.Errorf("retention filter: %+v", got)
	}
}

func TestVisible_Bookmarks(t *testing.T) {
	snapshot := item("bm", news.TabICT, 5, 30*24*time.Hour) // старше любого окна
	m := model()
	m.Bookmarks = bookmark.State{
		Map:   map[string]news.Item{"bm": snapshot},
		Order: []string{"bm"},
	}

	got := m.Visible(NewState().SelectTab(TabBookmarks))
	if len(got) != 1 || got[0].ID != "bm" {
		t.Errorf("bookmarks mode: %+v, want snapshot regardless of age", got)
	}
}

func TestFacets(t *testing.T) {
	m := model(
		item("a", news.TabICT, 5, time.Hour, "端末整備", "自治体"),
		item("b", news.TabICT, 5, time.Hour, "端末整備"),
		item("c", news.TabICT, 5, time.Hour, "校務DX"),
	)
	st := NewState().SelectTab(string(news.TabICT)).ToggleTag("校務DX").SetSearch("x")

	// Фасеты считаются по базовому списку, активный тег и поиск не влияют.
	facets := m.Facets(st)
	if len(facets) != 3 {
		t.Fatalf("facets = %+v", facets)
	}
	if facets[0].Tag != "端末整備" || facets[0].Count != 2 {
		t.Errorf("top facet = %+v, want 端末整備 x2", facets[0])
	}
}

func TestClipsOverlayRestoresTab(t *testing.T) {
	st := NewState().SelectTab(string(news.TabSubject))

	st = st.OpenClips()
	if !st.ClipsOpen {
		t.Fatal("OpenClips() did not open overlay")
	}

	// Пока оверлей открыт, можно сменить вкладку — восстановление всё
	// равно вернёт вкладку на момент открытия.
	st = st.CloseClips()
	if st.ClipsOpen {
		t.Error("CloseClips() left overlay open")
	}
	if st.ActiveTab != string(news.TabSubject) {
		t.Errorf("ActiveTab after close = %q, want restored %q", st.ActiveTab, news.TabSubject)
	}
}

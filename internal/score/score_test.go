package score

import (
	"testing"
	"time"

	"github.com/rixia6254/info-teacher-radar/internal/news"
)

func TestScore_Components(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	old := now.Add(-30 * 24 * time.Hour) // вне всех бонусов свежести

	tests := []struct {
		name string
		item news.Item
		want int
	}{
		{
			name: "tab weight only",
			item: news.Item{Tab: news.TabExam, Title: "x", URL: "https://example.com/1", PublishedAt: old},
			want: 1,
		},
		{
			name: "trusted source bonus",
			item: news.Item{Tab: news.TabExam, Source: "教育新聞", URL: "https://example.com/1", PublishedAt: old},
			want: 1 + trustedSourceBonus,
		},
		{
			name: "regulator domain bonus",
			item: news.Item{Tab: news.TabMext, URL: "https://www.mext.go.jp/a.htm", PublishedAt: old},
			want: 3 + regulatorDomainBonus,
		},
		{
			name: "teaching keyword in title",
			item: news.Item{Tab: news.TabSubject, Title: "情報Iの指導案を公開", URL: "https://example.com/1", PublishedAt: old},
			want: 4 + teachingBonus,
		},
		{
			name: "fresh within a day",
			item: news.Item{Tab: news.TabICT, URL: "https://example.com/1", PublishedAt: now.Add(-2 * time.Hour)},
			want: 5 + recencyDayBonus,
		},
		{
			name: "within three days",
			item: news.Item{Tab: news.TabICT, URL: "https://example.com/1", PublishedAt: now.Add(-48 * time.Hour)},
			want: 5 + recency3DayBonus,
		},
		{
			name: "within a week",
			item: news.Item{Tab: news.TabICT, URL: "https://example.com/1", PublishedAt: now.Add(-6 * 24 * time.Hour)},
			want: 5 + recencyWeekBonus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.item, now)
			if got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScore_NonNegative(t *testing.T) {
	now := time.Now()
	items := []news.Item{
		{},
		{Tab: news.Tab("unknown")},
		{Tab: news.TabExam, PublishedAt: now.Add(-365 * 24 * time.Hour)},
	}
	for _, item := range items {
		if got := Score(item, now); got < 0 {
			t.Errorf("Score(%+v) = %d, want >= 0", item, got)
		}
	}
}

// Приоритет категорий: ICT выше всего, экзамены ниже всего.
func TestScore_TabOrder(t *testing.T) {
	now := time.Now()
	old := now.Add(-30 * 24 * time.Hour)

	at := func(tab news.Tab) int {
		return Score(news.Item{Tab: tab, URL: "https://example.com/", PublishedAt: old}, now)
	}

	if at(news.TabICT) <= at(news.TabExam) {
		t.Errorf("ICT weight %d should exceed exam weight %d", at(news.TabICT), at(news.TabExam))
	}
	for _, tab := range news.Tabs {
		if at(tab) > at(news.TabICT) {
			t.Errorf("tab %q weight exceeds ICT", tab)
		}
		if tab != news.TabExam && at(tab) < at(news.TabExam) {
			t.Errorf("tab %q weight below exam", tab)
		}
	}
}

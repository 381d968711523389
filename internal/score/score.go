// Package score вычисляет релевантность уже классифицированной записи.
//
// Функция чистая и аддитивная: ни одна компонента не отрицательна, итог >= 0.
// Порядок приоритетов категорий — продуктовое решение: выше всего
// образовательный ICT, ниже всего экзамены.
package score

import (
	"strings"
	"time"

	"golang.org/x/text/width"

	"github.com/rixia6254/info-teacher-radar/internal/news"
)

// Бонусы компонент.
const (
	trustedSourceBonus   = 4
	regulatorDomainBonus = 3
	teachingBonus        = 3

	recencyDayBonus   = 5 // опубликовано за последние сутки
	recency3DayBonus  = 3 // за последние трое суток
	recencyWeekBonus  = 1 // за последнюю неделю
	regulatorURLToken = "mext.go.jp"
)

// trustedSources — короткий список изданий с повышенным доверием.
var trustedSources = []string{
	"文部科学省",
	"教育新聞",
	"ICT教育ニュース",
}

// tabWeights — фиксированный вес категории.
var tabWeights = map[news.Tab]int{
	news.TabICT:     5,
	news.TabSubject: 4,
	news.TabAIEdu:   4,
	news.TabMext:    3,
	news.TabAINews:  2,
	news.TabExam:    1,
}

// teachingKeywords — признаки практической пользы для урока.
var teachingKeywords = []string{
	"授業", "教材", "指導案", "実践報告", "実践", "ワークシート", "評価", "ルーブリック",
}

// Score возвращает целочисленную релевантность записи на момент now.
func Score(item news.Item, now time.Time) int {
	total := tabWeights[item.Tab]

	for _, src := range trustedSources {
		if strings.Contains(item.Source, src) {
			total += trustedSourceBonus
			break
		}
	}

	if strings.Contains(item.URL, regulatorURLToken) {
		total += regulatorDomainBonus
	}

	title := strings.ToLower(width.Fold.String(item.Title))
	for _, kw := range teachingKeywords {
		if strings.Contains(title, strings.ToLower(width.Fold.String(kw))) {
			total += teachingBonus
			break
		}
	}

	total += recencyBonus(item.PublishedAt, now)

	return total
}

func recencyBonus(publishedAt, now time.Time) int {
	age := now.Sub(publishedAt)
	switch {
	case age <= 24*time.Hour:
		return recencyDayBonus
	case age <= 72*time.Hour:
		return recency3DayBonus
	case age <= 7*24*time.Hour:
		return recencyWeekBonus
	default:
		return 0
	}
}

// Package harvest извлекает ссылки из произвольного HTML.
// Используется для страниц-списков, у которых нет синдикационной ленты.
package harvest

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/width"
)

// minTitleRunes — минимальная видимая длина текста ссылки.
// Эвристика против иконок и ссылок вида «続きを読む».
const minTitleRunes = 8

// Link — пара «текст ссылки + абсолютный URL».
type Link struct {
	Title string
	URL   string
}

var spaceRe = regexp.MustCompile(`\s+`)

// Links разбирает HTML и возвращает якоря со значимым текстом.
// Относительные href разрешаются против base; никогда не возвращает ошибку.
func Links(htmlText, baseURL string) []Link {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var links []Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		// goquery сам снимает вложенную разметку и декодирует сущности.
		title := spaceRe.ReplaceAllString(strings.TrimSpace(sel.Text()), " ")
		if utf8.RuneCountInString(width.Fold.String(title)) < minTitleRunes {
			return
		}

		links = append(links, Link{
			Title: title,
			URL:   base.ResolveReference(ref).String(),
		})
	})

	return links
}

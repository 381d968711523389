// Package feedparse реализует толерантный разбор синдикационных лент.
//
// Это сознательно не строгий XML-парсер: реальные ленты различаются в
// мелочах форматирования, и битый фрагмент не должен ронять разбор целиком.
// Отсутствующий тег даёт пустое поле, записи без заголовка и без ссылки
// отбрасываются.
package feedparse

import (
	"regexp"
	"strings"
)

// Entry — одна запись ленты после извлечения полей.
type Entry struct {
	Title       string
	Link        string
	PubDate     string
	Description string
}

var (
	// Блоки записей: RSS <item> и Atom <entry>.
	itemBlockRe  = regexp.MustCompile(`(?is)<item[\s>].*?</item>`)
	entryBlockRe = regexp.MustCompile(`(?is)<entry[\s>].*?</entry>`)

	cdataRe = regexp.MustCompile(`(?is)^\s*<!\[CDATA\[(.*?)\]\]>\s*$`)
	tagRe   = regexp.MustCompile(`(?is)<[^>]+>`)

	// Atom кладёт ссылку в атрибут, а не в тело тега.
	atomLinkRe = regexp.MustCompile(`(?is)<link[^>]*href\s*=\s*["']([^"']+)["']`)

	titleRe     = tagRegexp("title")
	linkTagRe   = tagRegexp("link")
	guidRe      = tagRegexp("guid")
	pubDateRe   = tagRegexp("pubDate")
	publishedRe = tagRegexp("published")
	updatedRe   = tagRegexp("updated")
	descRe      = tagRegexp("description")
)

func tagRegexp(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<` + tag + `[^>]*>(.*?)</` + tag + `>`)
}

// entityReplacer декодирует пять стандартных HTML-сущностей.
// &amp; заменяется последней, чтобы не породить новые сущности.
var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&#39;", "'",
	"&amp;", "&",
)

// Parse извлекает записи из текста ленты. Никогда не возвращает ошибку:
// из невалидного документа извлекается то, что извлекается.
func Parse(doc string) []Entry {
	blocks := itemBlockRe.FindAllString(doc, -1)
	blocks = append(blocks, entryBlockRe.FindAllString(doc, -1)...)

	entries := make([]Entry, 0, len(blocks))
	for _, block := range blocks {
		e := Entry{
			Title:       tagValue(block, titleRe),
			Link:        linkValue(block),
			PubDate:     pubDateValue(block),
			Description: tagValue(block, descRe),
		}
		if e.Title == "" && e.Link == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// linkValue достаёт ссылку: <link>, затем Atom-атрибут href,
// затем запасной вариант <guid>.
func linkValue(block string) string {
	if v := tagValue(block, linkTagRe); v != "" {
		return v
	}
	if m := atomLinkRe.FindStringSubmatch(block); m != nil {
		return strings.TrimSpace(m[1])
	}
	return tagValue(block, guidRe)
}

func pubDateValue(block string) string {
	if v := tagValue(block, pubDateRe); v != "" {
		return v
	}
	// Atom-эквиваленты даты публикации.
	if v := tagValue(block, publishedRe); v != "" {
		return v
	}
	return tagValue(block, updatedRe)
}

// tagValue извлекает текст первого вхождения тега в блоке,
// снимает CDATA-обёртку и декодирует сущности.
func tagValue(block string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return cleanValue(m[1])
}

func cleanValue(v string) string {
	if m := cdataRe.FindStringSubmatch(v); m != nil {
		v = m[1]
	}
	v = tagRe.ReplaceAllString(v, "")
	v = entityReplacer.Replace(v)
	return strings.TrimSpace(v)
}

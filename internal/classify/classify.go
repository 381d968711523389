// Package classify присваивает записи категорию и набор тегов.
//
// Классификация — упорядоченный каскад взаимоисключающих правил: выигрывает
// первое совпавшее. Правила объявлены данными и исполняются одним обходчиком,
// чтобы каждую строку таблицы можно было проверить отдельно. Совпадение —
// регистронезависимый поиск подстроки по склейке «заголовок + URL + источник»
// без токенизации; полноширинные формы схлопываются перед сравнением.
package classify

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/rixia6254/info-teacher-radar/internal/news"
)

// Result — итог классификации: ровно одна категория и непустой набор тегов.
type Result struct {
	Tab  news.Tab
	Tags []string
}

// regulatorDomain — домен регулятора; записи с него уходят в отдельную
// категорию независимо от содержания заголовка.
const regulatorDomain = "mext.go.jp"

// target — предобработанный вход правила.
type target struct {
	urlFolded string
	all       string // склейка title+url+source, схлопнутая и в нижнем регистре
}

func fold(s string) string {
	return strings.ToLower(width.Fold.String(s))
}

func (t target) has(keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(t.all, fold(kw)) {
			return true
		}
	}
	return false
}

// tagCheck — одна строка чек-листа: тег вешается, если совпало любое слово.
type tagCheck struct {
	tag      string
	keywords []string
}

// checkTags прогоняет чек-лист и возвращает совпавшие теги;
// при пустом результате подставляется запасной тег категории.
func checkTags(t target, checks []tagCheck, fallback string) []string {
	var tags []string
	for _, c := range checks {
		if t.has(c.keywords...) {
			tags = append(tags, c.tag)
		}
	}
	if len(tags) == 0 {
		tags = []string{fallback}
	}
	return tags
}

// rule — строка каскада: предикат и построение результата.
type rule struct {
	name  string
	match func(target) bool
	apply func(target) Result
}

// Classify — чистая и тотальная функция: всегда возвращает категорию из
// фиксированного перечня и непустые теги.
func Classify(title, url, source string) Result {
	t := target{
		urlFolded: fold(url),
		all:       fold(title + " " + url + " " + source),
	}

	for _, r := range rules {
		if r.match(t) {
			return r.apply(t)
		}
	}

	// Недостижимо: последнее правило совпадает со всем.
	return Result{Tab: news.TabICT, Tags: []string{fallbackTag}}
}

const fallbackTag = "教育ニュース"

var rules = []rule{
	{
		name: "regulator",
		match: func(t target) bool {
			return strings.Contains(t.urlFolded, regulatorDomain) || t.has("文部科学省", "文科省")
		},
		apply: func(t target) Result {
			return Result{Tab: news.TabMext, Tags: checkTags(t, regulatorChecks, "文科省")}
		},
	},
	{
		name: "outlet-itmedia",
		match: func(t target) bool {
			return strings.Contains(t.urlFolded, "itmedia.co.jp") || t.has("ITmedia")
		},
		apply: applyOutlet,
	},
	{
		name:  "exam",
		match: func(t target) bool { return t.has(examKeywords...) },
		apply: func(t target) Result {
			return Result{Tab: news.TabExam, Tags: []string{"共通テスト"}}
		},
	},
	{
		name:  "ict",
		match: func(t target) bool { return t.has(ictKeywords...) },
		apply: func(t target) Result {
			return Result{Tab: news.TabICT, Tags: checkTags(t, ictChecks, "教育ICT")}
		},
	},
	{
		name:  "subject",
		match: func(t target) bool { return t.has(subjectKeywords...) },
		apply: func(t target) Result {
			return Result{Tab: news.TabSubject, Tags: checkTags(t, subjectChecks, "情報科")}
		},
	},
	{
		name:  "generative-ai",
		match: func(t target) bool { return t.has(aiKeywords...) },
		apply: func(t target) Result {
			// Ветвление: AI в образовательном контексте — отдельная категория.
			if t.has(eduContextKeywords...) {
				return Result{Tab: news.TabAIEdu, Tags: checkTags(t, aiEduChecks, "教育×AI")}
			}
			return Result{Tab: news.TabAINews, Tags: checkTags(t, aiNewsChecks, "AI動向")}
		},
	},
	{
		name:  "default",
		match: func(target) bool { return true },
		apply: func(target) Result {
			return Result{Tab: news.TabICT, Tags: []string{fallbackTag}}
		},
	},
}

// applyOutlet — правила известного издания: категория и теги зависят от
// раздела (сегмент пути URL или слова в тексте).
func applyOutlet(t target) Result {
	switch {
	case t.has("セキュリティ", "脆弱性", "不正アクセス", "ランサムウェア", "フィッシング"):
		return Result{Tab: news.TabICT, Tags: []string{"セキュリティ"}}
	case strings.Contains(t.urlFolded, "/enterprise/") || t.has("DX", "クラウド", "SaaS"):
		return Result{Tab: news.TabICT, Tags: []string{"企業DX"}}
	case t.has("倫理", "炎上", "誹謗中傷", "ネットの話題"):
		return Result{Tab: news.TabICT, Tags: []string{"ネット倫理"}}
	default:
		return Result{Tab: news.TabICT, Tags: []string{"ITmedia"}}
	}
}

// --- Таблицы ключевых слов. Добавление слова не меняет схему. ---

var regulatorChecks = []tagCheck{
	{tag: "通知", keywords: []string{"通知", "告示", "依頼"}},
	{tag: "審議会", keywords: []string{"審議会", "答申", "諮問", "部会", "中教審"}},
	{tag: "会議資料", keywords: []string{"会議資料", "議事録", "配付資料"}},
}

var examKeywords = []string{
	"共通テスト", "大学入学共通テスト", "大学入試センター", "センター試験", "入試改革",
}

var ictKeywords = []string{
	"ICT", "GIGAスクール", "GIGA端末", "1人1台", "一人一台",
	"校務DX", "校務支援", "教育DX", "BYOD", "電子黒板",
	"デジタル教科書", "学習eポータル", "MEXCBT", "教育委員会",
}

var ictChecks = []tagCheck{
	{tag: "端末整備", keywords: []string{"GIGA", "1人1台", "一人一台", "端末", "タブレット", "Chromebook"}},
	{tag: "校務DX", keywords: []string{"校務"}},
	{tag: "学習プラットフォーム", keywords: []string{"学習eポータル", "MEXCBT", "CBT", "デジタル教科書"}},
	{tag: "BYOD", keywords: []string{"BYOD"}},
	{tag: "ネットワーク", keywords: []string{"ネットワーク", "Wi-Fi", "回線", "通信環境"}},
	{tag: "自治体", keywords: []string{"自治体", "教育委員会"}},
}

var subjectKeywords = []string{
	"情報I", "情報Ⅰ", "情報II", "情報Ⅱ", "情報科", "情報教育",
	"プログラミング教育", "情報デザイン", "データ活用", "データサイエンス",
}

var subjectChecks = []tagCheck{
	{tag: "プログラミング", keywords: []string{"プログラミング", "Python", "Scratch", "コード"}},
	{tag: "データ活用", keywords: []string{"データ活用", "データサイエンス", "統計"}},
	{tag: "情報デザイン", keywords: []string{"情報デザイン", "デザイン"}},
	{tag: "ネットワーク", keywords: []string{"ネットワーク", "プロトコル", "通信のしくみ"}},
	{tag: "情報セキュリティ", keywords: []string{"セキュリティ", "暗号"}},
	{tag: "探究", keywords: []string{"探究", "PBL", "課題研究"}},
	{tag: "評価", keywords: []string{"評価", "ルーブリック", "観点別"}},
}

// aiKeywords сознательно без голого «AI»: двухбуквенная подстрока ловит
// слишком много ложных срабатываний в латинице.
var aiKeywords = []string{
	"生成AI", "生成系AI", "ChatGPT", "GPT", "Gemini", "Claude", "Copilot",
	"LLM", "大規模言語モデル", "人工知能", "OpenAI",
}

var eduContextKeywords = []string{
	"授業", "学校", "教育", "研修", "児童", "生徒", "教員", "先生",
	"著作権", "プライバシー", "情報モラル", "宿題",
}

var aiEduChecks = []tagCheck{
	{tag: "授業活用", keywords: []string{"授業", "活用", "実践"}},
	{tag: "ガイドライン", keywords: []string{"ガイドライン", "指針"}},
	{tag: "研修", keywords: []string{"研修"}},
	{tag: "著作権", keywords: []string{"著作権"}},
	{tag: "プライバシー", keywords: []string{"プライバシー", "個人情報"}},
}

var aiNewsChecks = []tagCheck{
	{tag: "新モデル", keywords: []string{"新モデル", "リリース", "発表", "公開"}},
	{tag: "新機能", keywords: []string{"新機能", "アップデート", "搭載"}},
	{tag: "規制", keywords: []string{"規制", "法案", "AI法"}},
}

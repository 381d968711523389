package news

import "time"

// Tab — фиксированная категория (вкладка) для классифицированной новости.
type Tab string

// Полный перечень категорий. Добавление ключевого слова схему не меняет,
// добавление категории требует правки классификатора и вьюера, поэтому
// перечень держим в одном месте.
const (
	TabMext    Tab = "mext"    // материалы регулятора (文部科学省)
	TabICT     Tab = "ict"     // образовательный ICT (GIGAスクール и т.п.)
	TabSubject Tab = "subject" // предмет «情報» (школьная информатика)
	TabExam    Tab = "exam"    // вступительные экзамены (共通テスト)
	TabAIEdu   Tab = "ai_edu"  // генеративный AI в образовании
	TabAINews  Tab = "ai_news" // общие новости AI/LLM
)

// Tabs перечисляет все категории в порядке отображения.
var Tabs = []Tab{TabMext, TabICT, TabSubject, TabExam, TabAIEdu, TabAINews}

// RawItem описывает новость сразу после получения из источника.
// Идентичности у записи ещё нет: URL сырой, категория не присвоена.
type RawItem struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// Item — каноническая запись в артефакте после дедупликации и классификации.
type Item struct {
	// ID — хеш канонизированного URL; ключ дедупликации и закладок.
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	Tab         Tab       `json:"tab"`
	Tags        []string  `json:"tags"`
	Score       int       `json:"score"`
}

// Artifact — единственный результат одного прогона агрегации.
// Файл перезаписывается целиком, инкрементального хранилища нет.
type Artifact struct {
	GeneratedAt time.Time `json:"generatedAt"`
	Items       []Item    `json:"items"`
}

// Clip — свободная запись из ручного списка «вырезок».
// Пространство идентификаторов не связано с Item.
type Clip struct {
	URL  string    `json:"url"`
	Memo string    `json:"memo"`
	TS   time.Time `json:"ts"`
}

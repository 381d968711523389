// Package bookmark — постоянные клиентские хранилища: закладки и вырезки.
// Записи живут дольше окна удержания артефакта и меняются только действиями
// пользователя; снимок полей делается в момент добавления закладки.
package bookmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rixia6254/info-teacher-radar/internal/kv"
	"github.com/rixia6254/info-teacher-radar/internal/news"
)

const (
	bookmarksKey = "bookmarks"

	// maxBookmarks — мягкий предел; при переполнении вытесняется самая
	// старая закладка (хвост списка порядка).
	maxBookmarks = 200
)

// ErrInvalidImport возвращается для импорта без обязательных полей.
// Существующее состояние при этом не меняется.
var ErrInvalidImport = errors.New("import payload missing required fields")

// State — сериализуемое состояние закладок: снимки по идентичности плюс
// список порядка вставки (новые в начале). Инвариант: каждый id из order
// имеет снимок в Map и наоборот.
type State struct {
	Map   map[string]news.Item `json:"map"`
	Order []string             `json:"order"`
}

// Store управляет закладками поверх kv-хранилища.
type Store struct {
	kv kv.Store
}

// NewStore создаёт хранилище закладок.
func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

// Load читает состояние. Порча сохранённого JSON не ошибка для
// пользователя: хранилище считается пустым.
func (s *Store) Load() State {
	raw, ok := s.kv.Get(bookmarksKey)
	if !ok {
		return emptyState()
	}

	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil || st.Map == nil {
		return emptyState()
	}
	return sanitize(st)
}

// Toggle добавляет или снимает закладку. Возвращает новое состояние и
// признак «теперь в закладках».
func (s *Store) Toggle(item news.Item) (State, bool, error) {
	st := s.Load()

	if _, ok := st.Map[item.ID]; ok {
		delete(st.Map, item.ID)
		st.Order = removeID(st.Order, item.ID)
		return st, false, s.save(st)
	}

	st.Map[item.ID] = item
	st.Order = append([]string{item.ID}, st.Order...)
	st = enforceCap(st)
	return st, true, s.save(st)
}

// Export сериализует всё состояние в форматированный текст для выгрузки.
func (s *Store) Export() (string, error) {
	data, err := json.MarshalIndent(s.Load(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal bookmarks: %w", err)
	}
	return string(data), nil
}

// Import вливает чужие записи: неизвестные идентичности добавляются в
// начало, затем порядок дедуплицируется и применяется мягкий предел.
// Невалидный payload отклоняется без изменения состояния.
func (s *Store) Import(data string) (State, int, error) {
	var foreign State
	if err := json.Unmarshal([]byte(data), &foreign); err != nil {
		return State{}, 0, fmt.Errorf("parse import payload: %w", err)
	}
	if foreign.Map == nil || foreign.Order == nil {
		return State{}, 0, ErrInvalidImport
	}

	st := s.Load()

	merged := 0
	// В обратном порядке, чтобы первый элемент чужого списка оказался
	// первым и в нашем.
	for i := len(foreign.Order) - 1; i >= 0; i-- {
		id := foreign.Order[i]
		snapshot, ok := foreign.Map[id]
		if !ok {
			continue
		}
		if _, exists := st.Map[id]; exists {
			continue
		}
		st.Map[id] = snapshot
		st.Order = append([]string{id}, st.Order...)
		merged++
	}

	st = sanitize(st)
	st = enforceCap(st)
	return st, merged, s.save(st)
}

func (s *Store) save(st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal bookmarks: %w", err)
	}
	if err := s.kv.Set(bookmarksKey, string(data)); err != nil {
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	return nil
}

func emptyState() State {
	return State{Map: make(map[string]news.Item), Order: nil}
}

// sanitize восстанавливает инвариант map<->order: дедуплицирует порядок,
// выбрасывает id без снимка и снимки без позиции в порядке.
func sanitize(st State) State {
	seen := make(map[string]struct{}, len(st.Order))
	order := make([]string, 0, len(st.Order))
	for _, id := range st.Order {
		if _, dup := seen[id]; dup {
			continue
		}
		if _, ok := st.Map[id]; !ok {
			continue
		}
		seen[id] = struct{}{}
		order = append(order, id)
	}
	for id := range st.Map {
		if _, ok := seen[id]; !ok {
			delete(st.Map, id)
		}
	}
	st.Order = order
	return st
}

func enforceCap(st State) State {
	for len(st.Order) > maxBookmarks {
		victim := st.Order[len(st.Order)-1]
		st.Order = st.Order[:len(st.Order)-1]
		delete(st.Map, victim)
	}
	return st
}

func removeID(order []string, id string) []string {
	out := order[:0]
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// --- Вырезки ---

const (
	clipsKey = "clips"

	// maxClips — большой мягкий предел на число вырезок.
	maxClips = 500
)

// ClipStore управляет ручным списком вырезок поверх kv-хранилища.
type ClipStore struct {
	kv    kv.Store
	clock func() time.Time
}

// NewClipStore создаёт хранилище вырезок.
func NewClipStore(store kv.Store, clock func() time.Time) *ClipStore {
	if clock == nil {
		clock = time.Now
	}
	return &ClipStore{kv: store, clock: clock}
}

// Load читает список; порча сохранённого JSON даёт пустой список.
func (c *ClipStore) Load() []news.Clip {
	raw, ok := c.kv.Get(clipsKey)
	if !ok {
		return nil
	}
	var clips []news.Clip
	if err := json.Unmarshal([]byte(raw), &clips); err != nil {
		return nil
	}
	return clips
}

// Add добавляет вырезку в конец списка, вытесняя самые старые при
// переполнении.
func (c *ClipStore) Add(url, memo string) ([]news.Clip, error) {
	clips := append(c.Load(), news.Clip{URL: url, Memo: memo, TS: c.clock()})
	if len(clips) > maxClips {
		clips = clips[len(clips)-maxClips:]
	}
	return clips, c.save(clips)
}

// Remove удаляет вырезку по позиции; позиция вне диапазона игнорируется.
func (c *ClipStore) Remove(index int) ([]news.Clip, error) {
	clips := c.Load()
	if index < 0 || index >= len(clips) {
		return clips, nil
	}
	clips = append(clips[:index], clips[index+1:]...)
	return clips, c.save(clips)
}

func (c *ClipStore) save(clips []news.Clip) error {
	data, err := json.Marshal(clips)
	if err != nil {
		return fmt.Errorf("marshal clips: %w", err)
	}
	if err := c.kv.Set(clipsKey, string(data)); err != nil {
		return fmt.Errorf("persist clips: %w", err)
	}
	return nil
}

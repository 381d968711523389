package bookmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rixia6254/info-teacher-radar/internal/kv"
	"github.com/rixia6254/info-teacher-radar/internal/news"
)

func testItem(id string) news.Item {
	return news.Item{
		ID:          id,
		Title:       "タイトル" + id,
		URL:         "https://example.com/" + id,
		Source:      "教育新聞",
		Tab:         news.TabICT,
		Tags:        []string{"教育ICT"},
		Score:       5,
		PublishedAt: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestStore_ToggleRoundTrip(t *testing.T) {
	store := NewStore(kv.Memory{})
	item := testItem("a1")

	st, on, err := store.Toggle(item)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !on {
		t.Error("first Toggle() should bookmark")
	}
	if len(st.Order) != 1 || st.Order[0] != "a1" {
		t.Errorf("Order = %v", st.Order)
	}
	if snap, ok := st.Map["a1"]; !ok || snap.Title != item.Title {
		t.Errorf("snapshot missing or wrong: %+v", st.Map)
	}

	// Повторный toggle возвращает хранилище в исходное состояние.
	st, on, err = store.Toggle(item)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if on {
		t.Error("second Toggle() should unbookmark")
	}
	if len(st.Order) != 0 || len(st.Map) != 0 {
		t.Errorf("state not empty after round trip: %+v", st)
	}
}

func TestStore_SnapshotFrozen(t *testing.T) {
	mem := kv.Memory{}
	store := NewStore(mem)

	item := testItem("a1")
	if _, _, err := store.Toggle(item); err != nil {
		t.Fatal(err)
	}

	// Артефакт обновился, но снимок закладки остался прежним.
	st := store.Load()
	if st.Map["a1"].Title != "タイトルa1" {
		t.Errorf("snapshot Title = %q, want frozen copy", st.Map["a1"].Title)
	}
}

func TestStore_CapEviction(t *testing.T) {
	store := NewStore(kv.Memory{})

	for i := 0; i < maxBookmarks+5; i++ {
		if _, _, err := store.Toggle(testItem(fmt.Sprintf("id%04d", i))); err != nil {
			t.Fatal(err)
		}
	}

	st := store.Load()
	if len(st.Order) != maxBookmarks {
		t.Fatalf("Order len = %d, want soft cap %d", len(st.Order), maxBookmarks)
	}
	if len(st.Map) != maxBookmarks {
		t.Fatalf("Map len = %d, want %d", len(st.Map), maxBookmarks)
	}
	// Вытесняются самые старые: id0000..id0004 должны уйти.
	if _, ok := st.Map["id0000"]; ok {
		t.Error("oldest bookmark should have been evicted")
	}
	if st.Order[0] != fmt.Sprintf("id%04d", maxBookmarks+4) {
		t.Errorf("newest bookmark should be first, got %q", st.Order[0])
	}
}

func TestStore_CorruptStateIsEmpty(t *testing.T) {
	mem := kv.Memory{"bookmarks": "{broken json"}
	st := NewStore(mem).Load()
	if len(st.Order) != 0 || len(st.Map) != 0 {
		t.Errorf("corrupt state should load as empty, got %+v", st)
	}
}

func TestStore_ExportImport(t *testing.T) {
	src := NewStore(kv.Memory{})
	for _, id := range []string{"a1", "a2"} {
		if _, _, err := src.Toggle(testItem(id)); err != nil {
			t.Fatal(err)
		}
	}

	exported, err := src.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// Экспорт — валидный JSON с обоими верхнеуровневыми полями.
	var check map[string]json.RawMessage
	if err := json.Unmarshal([]byte(exported), &check); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	dst := NewStore(kv.Memory{})
	if _, _, err := dst.Toggle(testItem("a2")); err != nil {
		t.Fatal(err)
	}
	if _, _, err := dst.Toggle(testItem("b1")); err != nil {
		t.Fatal(err)
	}

	st, merged, err := dst.Import(exported)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if merged != 1 {
		t.Errorf("merged = %d, want 1 (a2 already present)", merged)
	}
	if len(st.Order) != 3 {
		t.Errorf("Order = %v, want 3 ids", st.Order)
	}
	// Чужая новая запись добавляется в начало.
	if st.Order[0] != "a1" {
		t.Errorf("Order[0] = %q, want imported a1 first", st.Order[0])
	}
}

func TestStore_ImportRejectsMalformed(t *testing.T) {
	mem := kv.Memory{}
	store := NewStore(mem)
	if _, _, err := store.Toggle(testItem("keep")); err != nil {
		t.Fatal(err)
	}

	for _, payload := range []string{
		"{broken",
		`{"order":["x"]}`,
		`{"map":{}}`,
		`[]`,
	} {
		if _, _, err := store.Import(payload); err == nil {
			t.Errorf("Import(%q) should fail", payload)
		}
	}

	// Состояние не изменилось.
	st := store.Load()
	if len(st.Order) != 1 || st.Order[0] != "keep" {
		t.Errorf("state mutated by rejected import: %+v", st)
	}
}

func TestStore_ImportSentinel(t *testing.T) {
	_, _, err := NewStore(kv.Memory{}).Import(`{"map":{}}`)
	if !errors.Is(err, ErrInvalidImport) {
		t.Errorf("err = %v, want ErrInvalidImport", err)
	}
}

func TestClipStore(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	store := NewClipStore(kv.Memory{}, func() time.Time { return now })

	clips, err := store.Add("https://example.com/1", "授業で使えそう")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(clips) != 1 || clips[0].Memo != "授業で使えそう" || !clips[0].TS.Equal(now) {
		t.Errorf("clips = %+v", clips)
	}

	clips, err = store.Add("https://example.com/2", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(clips) != 2 || clips[1].URL != "https://example.com/2" {
		t.Errorf("insertion order broken: %+v", clips)
	}

	clips, err = store.Remove(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(clips) != 1 || clips[0].URL != "https://example.com/2" {
		t.Errorf("Remove(0) = %+v", clips)
	}

	// Индекс вне диапазона игнорируется.
	clips, err = store.Remove(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(clips) != 1 {
		t.Errorf("out-of-range Remove changed list: %+v", clips)
	}
}

func TestClipStore_CorruptStateIsEmpty(t *testing.T) {
	store := NewClipStore(kv.Memory{"clips": "not json"}, nil)
	if got := store.Load(); got != nil {
		t.Errorf("corrupt clips should load as empty, got %+v", got)
	}
}

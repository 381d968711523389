// Package artifact — файловое хранилище результата прогона.
// Артефакт всегда перезаписывается целиком и атомарно.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rixia6254/info-teacher-radar/internal/news"
)

// Store пишет и читает артефакт по фиксированному пути.
type Store struct {
	path string
}

// NewStore создаёт хранилище.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Write сохраняет артефакт атомарно: запись во временный файл и переименование.
// Отказ записи — единственная фатальная ошибка прогона: без артефакта
// результат прогона не существует.
func (s *Store) Write(a news.Artifact) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp artifact: %w", err)
	}

	// Переименование атомарно на обычных файловых системах.
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp artifact: %w", err)
	}

	return nil
}

// Load читает артефакт. Отсутствие или порча файла — ошибка: вьюер
// показывает деградированное состояние, а не падает.
func (s *Store) Load() (news.Artifact, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return news.Artifact{}, fmt.Errorf("read artifact: %w", err)
	}

	var a news.Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return news.Artifact{}, fmt.Errorf("unmarshal artifact: %w", err)
	}

	return a, nil
}

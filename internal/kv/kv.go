// Package kv — клиентское персистентное key-value хранилище.
// Ядро видит только контракт «get(key) -> текст или отсутствие / set(key,
// текст)»; файловая реализация нужна локальному вьюеру.
package kv

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store — контракт клиентского хранилища.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// FileStore хранит каждое значение в отдельном файле каталога.
// Параллельные вьюеры над одним каталогом — принятая гонка
// «последняя запись побеждает», арбитража нет.
type FileStore struct {
	dir string
}

// NewFileStore создаёт хранилище в каталоге dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Get возвращает значение ключа, если оно есть.
func (s *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set записывает значение атомарно (временный файл + переименование).
func (s *FileStore) Set(key, value string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create kv directory: %w", err)
	}

	path := s.keyPath(key)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(value), 0644); err != nil {
		return fmt.Errorf("write kv temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename kv temp file: %w", err)
	}
	return nil
}

func (s *FileStore) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Memory — хранилище в памяти для тестов и одноразовых прогонов.
type Memory map[string]string

// Get реализует Store.
func (m Memory) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Set реализует Store.
func (m Memory) Set(key, value string) error {
	m[key] = value
	return nil
}

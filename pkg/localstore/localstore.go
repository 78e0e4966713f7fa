package localstore

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"sync"
)

// Store 字符串键值的持久存储
// 购物车等设备侧数据的落盘抽象: 同步读写，键值都是字符串
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// ==================== 文件实现 ====================

// FileStore 每个键一个文件，写入即落盘
// 键经 base64 编码后作为文件名，避免路径字符问题
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore 创建文件存储，目录不存在时自动创建
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	name := base64.URLEncoding.EncodeToString([]byte(key))
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 先写临时文件再改名，避免写到一半的文件被读到
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ==================== 内存实现 ====================

// MemStore 内存键值存储，测试用
type MemStore struct {
	data sync.Map
}

// NewMemStore 创建内存存储
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Get(key string) (string, bool) {
	val, ok := s.data.Load(key)
	if !ok {
		return "", false
	}
	return val.(string), true
}

func (s *MemStore) Set(key, value string) error {
	s.data.Store(key, value)
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.data.Delete(key)
	return nil
}

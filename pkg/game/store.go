package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// ErrNotFound 存储中不存在请求的数据
var ErrNotFound = errors.New("store: not found")

// Store 简单的键值存储（对象/属性两级键）
// 浏览器中对应 localStorage，桌面与移动端对应本地文件
type Store interface {
	Exists(object, property string) bool
	Load(object, property string) ([]byte, error)
	Save(object, property string, data []byte) error
}

// GdataStore 基于 gdata 的跨平台存储
// gdata 在 wasm 上使用 localStorage，其余平台使用用户数据目录
type GdataStore struct {
	manager *gdata.Manager
}

// OpenGdataStore 打开应用的数据目录
func OpenGdataStore(appName string) (*GdataStore, error) {
	if err := ensureStorageDir(appName); err != nil {
		return nil, err
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage: %w", err)
	}
	return &GdataStore{manager: m}, nil
}

// NewGdataStore 包装已有的 gdata 管理器
func NewGdataStore(m *gdata.Manager) *GdataStore {
	return &GdataStore{manager: m}
}

func (s *GdataStore) Exists(object, property string) bool {
	return s.manager.ObjectPropExists(object, property)
}

func (s *GdataStore) Load(object, property string) ([]byte, error) {
	if !s.manager.ObjectPropExists(object, property) {
		return nil, ErrNotFound
	}
	data, err := s.manager.LoadObjectProp(object, property)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s/%s: %w", object, property, err)
	}
	return data, nil
}

func (s *GdataStore) Save(object, property string, data []byte) error {
	if err := s.manager.SaveObjectProp(object, property, data); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", object, property, err)
	}
	return nil
}

// MemoryStore 内存存储，用于测试和存储不可用时的降级
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore 创建空的内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func memoryKey(object, property string) string {
	return object + "/" + property
}

func (s *MemoryStore) Exists(object, property string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[memoryKey(object, property)]
	return ok
}

func (s *MemoryStore) Load(object, property string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[memoryKey(object, property)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStore) Save(object, property string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(data))
	copy(v, data)
	s.data[memoryKey(object, property)] = v
	return nil
}

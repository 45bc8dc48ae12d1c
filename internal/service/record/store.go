// Package record 提供按用户维度的健康记录存储
// 记录是用户的"病历卡"：跨会话共享，只增不删，进程生命周期内常驻内存
package record

import (
	"sync"
	"time"

	"github.com/drdeuce/health-agent/internal/model"
)

// Store 健康记录存储
// 不同用户的读写互不阻塞；同一用户的读写通过该用户的锁线性化，
// 读取不会观察到写了一半的记录
type Store struct {
	mu    sync.RWMutex
	users map[string]*userRecords
}

// userRecords 单个用户的全部记录
type userRecords struct {
	mu      sync.RWMutex
	latest  map[model.RecordKind]*model.HealthRecord
	history map[model.RecordKind][]*model.HealthRecord // 仅追加类型
}

// NewStore 创建记录存储
func NewStore() *Store {
	return &Store{users: make(map[string]*userRecords)}
}

// forUser 获取（或创建）用户的记录集
func (s *Store) forUser(userID string) *userRecords {
	s.mu.RLock()
	ur, ok := s.users[userID]
	s.mu.RUnlock()
	if ok {
		return ur
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ur, ok = s.users[userID]; ok {
		return ur
	}
	ur = &userRecords{
		latest:  make(map[model.RecordKind]*model.HealthRecord),
		history: make(map[model.RecordKind][]*model.HealthRecord),
	}
	s.users[userID] = ur
	return ur
}

// Put 写入一条记录
// 覆盖型类型替换同类型旧记录；追加型类型（生殖健康、进度跟踪）
// 在保留历史列表的同时更新"最新"条目
func (s *Store) Put(userID string, rec *model.HealthRecord) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	ur := s.forUser(userID)
	ur.mu.Lock()
	defer ur.mu.Unlock()

	if rec.Kind.AppendOnly() {
		ur.history[rec.Kind] = append(ur.history[rec.Kind], rec)
	}
	ur.latest[rec.Kind] = rec
}

// Get 返回用户各类型最新记录的快照
// 从未提交过记录的用户得到空 map，而不是 nil 错误
func (s *Store) Get(userID string) map[model.RecordKind]*model.HealthRecord {
	s.mu.RLock()
	ur, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return map[model.RecordKind]*model.HealthRecord{}
	}

	ur.mu.RLock()
	defer ur.mu.RUnlock()

	snapshot := make(map[model.RecordKind]*model.HealthRecord, len(ur.latest))
	for kind, rec := range ur.latest {
		snapshot[kind] = rec
	}
	return snapshot
}

// History 返回追加型类型的全部历史（时间升序）
func (s *Store) History(userID string, kind model.RecordKind) []*model.HealthRecord {
	s.mu.RLock()
	ur, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	ur.mu.RLock()
	defer ur.mu.RUnlock()

	out := make([]*model.HealthRecord, len(ur.history[kind]))
	copy(out, ur.history[kind])
	return out
}

// Has 判断用户是否有任意健康记录
func (s *Store) Has(userID string) bool {
	s.mu.RLock()
	ur, ok := s.users[userID]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	ur.mu.RLock()
	defer ur.mu.RUnlock()
	return len(ur.latest) > 0
}

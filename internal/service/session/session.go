// Package session 提供会话状态管理
// 会话以 (user_id, session_id) 为键，持有对话历史与确认状态机。
// 历史第 0 位固定为 system 消息，每轮整体替换其内容；
// 超出上限时丢弃最旧的 user/assistant 消息，system 槽位永不淘汰。
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	sessionKeyPrefix = "session:"
	// DefaultMaxHistory 默认历史消息上限（含 system 槽位）
	DefaultMaxHistory = 10
)

// Config 会话配置
type Config struct {
	MaxHistoryLength int           // 历史消息上限（含 system 槽位）
	MirrorTTL        time.Duration // Redis 镜像过期时间
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		MaxHistoryLength: DefaultMaxHistory,
		MirrorTTL:        24 * time.Hour,
	}
}

// Session 单个会话
// messages 与 confirmation 由 mu 保护；turnMu 串行化整轮对话，
// 模型调用期间只持有 turnMu，不阻塞其他会话和本会话的历史读取
type Session struct {
	UserID string
	ID     string

	mu           sync.RWMutex
	turnMu       sync.Mutex
	messages     []*schema.Message
	confirmation ConfirmationState
	title        string
	maxHistory   int
	createdAt    time.Time
	updatedAt    time.Time
}

// Manager 会话管理器
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	redis    *redis.Client
	cfg      *Config
}

// NewManager 创建会话管理器
// redisClient 为 nil 时仅使用进程内存
func NewManager(redisClient *redis.Client, cfg *Config) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.MaxHistoryLength < 2 {
		cfg.MaxHistoryLength = DefaultMaxHistory
	}
	return &Manager{
		sessions: make(map[string]*Session),
		redis:    redisClient,
		cfg:      cfg,
	}
}

func sessionKey(userID, sessionID string) string {
	return userID + ":" + sessionID
}

// Get 获取会话，首次访问时创建
// 新会话的历史以空内容的 system 槽位初始化，保证第 0 位恒为 system
func (m *Manager) Get(ctx context.Context, userID, sessionID string) *Session {
	key := sessionKey(userID, sessionID)

	m.mu.RLock()
	sess, ok := m.sessions[key]
	m.mu.RUnlock()
	if ok {
		return sess
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok = m.sessions[key]; ok {
		return sess
	}

	if m.redis != nil {
		if sess := m.loadFromRedis(ctx, userID, sessionID); sess != nil {
			m.sessions[key] = sess
			return sess
		}
	}

	now := time.Now()
	sess = &Session{
		UserID:     userID,
		ID:         sessionID,
		messages:   []*schema.Message{{Role: schema.System, Content: ""}},
		maxHistory: m.cfg.MaxHistoryLength,
		createdAt:  now,
		updatedAt:  now,
	}
	m.sessions[key] = sess
	return sess
}

// Mirror 将会话写入 Redis 镜像（尽力而为，失败不影响主流程）
func (m *Manager) Mirror(ctx context.Context, sess *Session) {
	if m.redis == nil {
		return
	}
	if err := m.saveToRedis(ctx, sess); err != nil {
		log.Printf("Warning: failed to mirror session to redis: %v", err)
	}
}

// ========== 会话历史 ==========

// BeginTurn 获取本会话的轮次锁
// 同一会话的并发轮次必须串行：truncate-then-append 是读改写操作
func (s *Session) BeginTurn() { s.turnMu.Lock() }

// EndTurn 释放轮次锁
func (s *Session) EndTurn() { s.turnMu.Unlock() }

// PrepareTurn 生成本轮发给模型的消息列表，不修改会话状态
// 返回 [最新 system 提示] + 截断后的历史尾部 + [本轮用户消息] 的副本，
// 模型调用失败时会话历史保持原样
func (s *Session) PrepareTurn(systemPrompt, userText string) []*schema.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prospective := make([]*schema.Message, 0, len(s.messages)+2)
	prospective = append(prospective, &schema.Message{Role: schema.System, Content: systemPrompt})
	prospective = append(prospective, s.messages[1:]...)
	prospective = append(prospective, &schema.Message{Role: schema.User, Content: userText})

	return truncate(prospective, s.maxHistory)
}

// CommitTurn 模型调用成功后提交本轮结果
// 替换 system 槽位内容，追加 user/assistant 消息并按上限截断
func (s *Session) CommitTurn(systemPrompt, userText, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[0] = &schema.Message{Role: schema.System, Content: systemPrompt}
	s.messages = append(s.messages,
		&schema.Message{Role: schema.User, Content: userText},
		&schema.Message{Role: schema.Assistant, Content: reply},
	)
	s.messages = truncate(s.messages, s.maxHistory)
	s.updatedAt = time.Now()
}

// History 返回历史消息的副本
func (s *Session) History() []*schema.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*schema.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// truncate 保留 system 槽位与最近的消息
func truncate(messages []*schema.Message, max int) []*schema.Message {
	if len(messages) <= max {
		return messages
	}
	kept := make([]*schema.Message, 0, max)
	kept = append(kept, messages[0])
	kept = append(kept, messages[len(messages)-(max-1):]...)
	return kept
}

// ========== 确认状态 ==========

// TriggerConfirmation 进入等待确认状态
func (s *Session) TriggerConfirmation(kind ConfirmationKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmation.Trigger(kind)
}

// PendingConfirmation 返回当前待确认项
func (s *Session) PendingConfirmation() (ConfirmationKind, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.confirmation.Pending()
}

// ResolveConfirmation 处理确认回合的输入（见 ConfirmationState.Resolve）
func (s *Session) ResolveConfirmation(text string) (ConfirmationKind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmation.Resolve(text)
}

// ========== 标题 ==========

// Title 返回会话标题
func (s *Session) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

// EnsureTitle 首轮对话时根据首条查询生成标题
func (s *Session) EnsureTitle(firstQuery string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.title == "" {
		s.title = GenerateTitle(firstQuery)
	}
	return s.title
}

// GenerateTitle 取查询的前 10 个词做标题，每词首字母大写
func GenerateTitle(query string) string {
	words := strings.Fields(query)
	if len(words) > 10 {
		words = words[:10]
	}
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// ========== Redis 镜像 ==========

// sessionData 会话数据（用于 Redis 存储）
type sessionData struct {
	UserID       string        `json:"user_id"`
	SessionID    string        `json:"session_id"`
	Title        string        `json:"title"`
	Messages     []messageData `json:"messages"`
	Confirmation string        `json:"confirmation,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// messageData 消息数据（用于 Redis 存储）
type messageData struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// roleToSchema 将字符串角色转换为 schema.RoleType
func roleToSchema(role string) schema.RoleType {
	switch role {
	case "system":
		return schema.System
	case "assistant":
		return schema.Assistant
	default:
		return schema.User
	}
}

func (m *Manager) loadFromRedis(ctx context.Context, userID, sessionID string) *Session {
	key := sessionKeyPrefix + sessionKey(userID, sessionID)
	data, err := m.redis.Get(ctx, key).Result()
	if err != nil {
		return nil
	}

	var sd sessionData
	if err := json.Unmarshal([]byte(data), &sd); err != nil {
		return nil
	}

	messages := make([]*schema.Message, 0, len(sd.Messages))
	for _, md := range sd.Messages {
		messages = append(messages, &schema.Message{
			Role:    roleToSchema(md.Role),
			Content: md.Content,
		})
	}
	if len(messages) == 0 || messages[0].Role != schema.System {
		messages = append([]*schema.Message{{Role: schema.System, Content: ""}}, messages...)
	}

	sess := &Session{
		UserID:     sd.UserID,
		ID:         sd.SessionID,
		messages:   truncate(messages, m.cfg.MaxHistoryLength),
		title:      sd.Title,
		maxHistory: m.cfg.MaxHistoryLength,
		createdAt:  sd.CreatedAt,
		updatedAt:  sd.UpdatedAt,
	}
	if sd.Confirmation != "" {
		sess.confirmation.Trigger(ConfirmationKind(sd.Confirmation))
	}
	return sess
}

func (m *Manager) saveToRedis(ctx context.Context, sess *Session) error {
	sess.mu.RLock()
	sd := sessionData{
		UserID:    sess.UserID,
		SessionID: sess.ID,
		Title:     sess.title,
		CreatedAt: sess.createdAt,
		UpdatedAt: sess.updatedAt,
	}
	if kind, pending := sess.confirmation.Pending(); pending {
		sd.Confirmation = string(kind)
	}
	sd.Messages = make([]messageData, len(sess.messages))
	for i, msg := range sess.messages {
		sd.Messages[i] = messageData{Role: string(msg.Role), Content: msg.Content}
	}
	sess.mu.RUnlock()

	data, err := json.Marshal(sd)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := sessionKeyPrefix + sessionKey(sess.UserID, sess.ID)
	return m.redis.Set(ctx, key, data, m.cfg.MirrorTTL).Err()
}

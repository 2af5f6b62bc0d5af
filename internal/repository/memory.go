package repository

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/wfunc/casino-jackpot/internal/errors"
	"github.com/wfunc/casino-jackpot/internal/models"
)

// memorySessionRepo 进程内会话仓储，不落库
// 用于单机部署和测试，读写均返回副本避免外部修改内部状态
type memorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*models.GameSession
	records  map[string][]*models.SpinRecord
	nextID   uint
}

// NewMemorySessionRepository 创建进程内会话仓储
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepo{
		sessions: make(map[string]*models.GameSession),
		records:  make(map[string][]*models.SpinRecord),
		nextID:   1,
	}
}

// Create 创建游戏会话
func (r *memorySessionRepo) Create(ctx context.Context, session *models.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.SessionID]; ok {
		return apperrors.New(apperrors.ErrAlreadyExists, session.SessionID)
	}

	now := time.Now()
	session.ID = r.nextID
	session.CreatedAt = now
	session.UpdatedAt = now
	r.nextID++

	stored := *session
	r.sessions[session.SessionID] = &stored
	return nil
}

// Update 更新游戏会话
func (r *memorySessionRepo) Update(ctx context.Context, session *models.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.SessionID]; !ok {
		return apperrors.New(apperrors.ErrSessionNotFound, session.SessionID)
	}

	session.UpdatedAt = time.Now()
	stored := *session
	r.sessions[session.SessionID] = &stored
	return nil
}

// FindBySessionID 根据会话ID查找
func (r *memorySessionRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, apperrors.New(apperrors.ErrSessionNotFound, sessionID)
	}

	copied := *session
	return &copied, nil
}

// SaveSettlement 原子保存一次结算
func (r *memorySessionRepo) SaveSettlement(ctx context.Context, session *models.GameSession, record *models.SpinRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.SessionID]; !ok {
		return apperrors.New(apperrors.ErrSessionNotFound, session.SessionID)
	}

	now := time.Now()
	session.UpdatedAt = now
	stored := *session
	r.sessions[session.SessionID] = &stored

	if record != nil {
		record.ID = r.nextID
		record.CreatedAt = now
		record.UpdatedAt = now
		r.nextID++

		copied := *record
		r.records[session.SessionID] = append(r.records[session.SessionID], &copied)
	}
	return nil
}

// FindSpinRecords 查询会话的转动记录
func (r *memorySessionRepo) FindSpinRecords(ctx context.Context, sessionID string, p *Pagination) ([]*models.SpinRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.records[sessionID]
	p.Total = int64(len(all))

	// 按时间倒序分页
	start := p.Offset()
	if start >= len(all) {
		return []*models.SpinRecord{}, nil
	}
	end := start + p.PageSize
	if end > len(all) {
		end = len(all)
	}

	result := make([]*models.SpinRecord, 0, end-start)
	for i := len(all) - 1 - start; i >= len(all)-end; i-- {
		copied := *all[i]
		result = append(result, &copied)
	}
	return result, nil
}

// CleanupExpiredSessions 清理过期会话
func (r *memorySessionRepo) CleanupExpiredSessions(ctx context.Context, expiredBefore time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, session := range r.sessions {
		if session.IsActive && session.LastActivityAt.Before(expiredBefore) {
			session.IsActive = false
			session.UpdatedAt = time.Now()
			count++
		}
	}
	return count, nil
}

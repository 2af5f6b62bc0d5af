package repository

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/wfunc/casino-jackpot/internal/errors"
	"github.com/wfunc/casino-jackpot/internal/logger"
	"github.com/wfunc/casino-jackpot/internal/models"
	"gorm.io/gorm"
)

// SessionRepository 游戏会话仓储接口
// 所有方法返回的错误均为 *apperrors.AppError，调用方按错误码判断
type SessionRepository interface {
	// Create 创建会话
	Create(ctx context.Context, session *models.GameSession) error
	// Update 更新会话
	Update(ctx context.Context, session *models.GameSession) error
	// FindBySessionID 根据会话ID查找，不存在时返回 ErrSessionNotFound
	FindBySessionID(ctx context.Context, sessionID string) (*models.GameSession, error)
	// SaveSettlement 原子保存一次结算：会话状态与转动记录要么同时落库要么同时回滚
	SaveSettlement(ctx context.Context, session *models.GameSession, record *models.SpinRecord) error
	// FindSpinRecords 查询会话的转动记录（分页，按时间倒序）
	FindSpinRecords(ctx context.Context, sessionID string, p *Pagination) ([]*models.SpinRecord, error)
	// CleanupExpiredSessions 关闭长时间无活动的会话
	CleanupExpiredSessions(ctx context.Context, expiredBefore time.Time) (int64, error)
}

// sessionRepo 游戏会话仓储实现
type sessionRepo struct {
	*BaseRepo
}

// NewSessionRepository 创建游戏会话仓储
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepo{
		BaseRepo: NewBaseRepo(db),
	}
}

// Create 创建游戏会话
func (r *sessionRepo) Create(ctx context.Context, session *models.GameSession) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Create(session).Error
	logger.LogDatabaseOperation("create", session.TableName(), time.Since(start), err)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrDatabaseInsert, "创建会话失败: %s", session.SessionID)
	}
	return nil
}

// Update 更新游戏会话
func (r *sessionRepo) Update(ctx context.Context, session *models.GameSession) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Save(session).Error
	logger.LogDatabaseOperation("update", session.TableName(), time.Since(start), err)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrDatabaseUpdate, "更新会话失败: %s", session.SessionID)
	}
	return nil
}

// FindBySessionID 根据会话ID查找
func (r *sessionRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.GameSession, error) {
	var session models.GameSession
	start := time.Now()
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrSessionNotFound, sessionID)
		}
		logger.LogDatabaseOperation("query", session.TableName(), time.Since(start), err)
		return nil, apperrors.Wrapf(err, apperrors.ErrDatabaseQuery, "查询会话失败: %s", sessionID)
	}
	logger.LogDatabaseOperation("query", session.TableName(), time.Since(start), nil)
	return &session, nil
}

// SaveSettlement 原子保存一次结算
func (r *sessionRepo) SaveSettlement(ctx context.Context, session *models.GameSession, record *models.SpinRecord) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(session).Error; err != nil {
			return err
		}
		if record != nil {
			if err := tx.Create(record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	logger.LogDatabaseOperation("settlement", session.TableName(), time.Since(start), err)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrTransaction, "结算落库失败: %s", session.SessionID)
	}
	return nil
}

// FindSpinRecords 查询会话的转动记录
func (r *sessionRepo) FindSpinRecords(ctx context.Context, sessionID string, p *Pagination) ([]*models.SpinRecord, error) {
	var records []*models.SpinRecord

	// 查询总数
	r.db.WithContext(ctx).
		Model(&models.SpinRecord{}).
		Where("session_id = ?", sessionID).
		Count(&p.Total)

	// 查询数据
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at desc").
		Scopes(Paginate(p)).
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrDatabaseQuery, "查询转动记录失败: %s", sessionID)
	}

	return records, nil
}

// CleanupExpiredSessions 清理过期会话
func (r *sessionRepo) CleanupExpiredSessions(ctx context.Context, expiredBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.GameSession{}).
		Where("is_active = ? AND last_activity_at < ?", true, expiredBefore).
		Update("is_active", false)

	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, apperrors.ErrDatabaseUpdate, "清理过期会话失败")
	}
	return result.RowsAffected, nil
}

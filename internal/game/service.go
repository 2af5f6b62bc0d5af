package game

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/casino-jackpot/internal/config"
	apperrors "github.com/wfunc/casino-jackpot/internal/errors"
	"github.com/wfunc/casino-jackpot/internal/game/slot"
	"github.com/wfunc/casino-jackpot/internal/logger"
	"github.com/wfunc/casino-jackpot/internal/models"
	"github.com/wfunc/casino-jackpot/internal/repository"
)

// SpinResult 转动结算结果
type SpinResult struct {
	Outcome       *slot.SpinOutcome `json:"outcome"`
	Balance       float64           `json:"balance"`
	TotalBet      float64           `json:"total_bet"`
	TotalWin      float64           `json:"total_win"`
	Rerolled      bool              `json:"-"`
	SessionClosed bool              `json:"session_closed"`
}

// CashoutResult 兑付结果
type CashoutResult struct {
	SessionID      string    `json:"session_id"`
	Amount         float64   `json:"amount"`
	InitialBalance float64   `json:"initial_balance"`
	TotalBet       float64   `json:"total_bet"`
	TotalWin       float64   `json:"total_win"`
	NetProfit      float64   `json:"net_profit"`
	Timestamp      time.Time `json:"timestamp"`
}

// GameService 游戏结算服务
// 同一会话的所有操作经键控锁串行化，结算在持锁期间一次性落库
type GameService struct {
	repo      repository.SessionRepository
	payout    *slot.PayoutConfig
	generator *slot.Generator
	house     *slot.HouseAdvantage
	locks     *sessionLocks

	initialCredits   float64
	reactivateClosed bool
}

// NewGameService 创建游戏结算服务
func NewGameService(
	repo repository.SessionRepository,
	payout *slot.PayoutConfig,
	generator *slot.Generator,
	house *slot.HouseAdvantage,
	sessionCfg *config.SessionConfig,
) *GameService {
	return &GameService{
		repo:             repo,
		payout:           payout,
		generator:        generator,
		house:            house,
		locks:            newSessionLocks(),
		initialCredits:   sessionCfg.InitialCredits,
		reactivateClosed: sessionCfg.ReactivateClosed,
	}
}

// GetPayoutConfig 获取赔率配置
func (s *GameService) GetPayoutConfig() *slot.PayoutConfig {
	return s.payout
}

// CreateSession 创建游戏会话
// 初始余额非正时使用配置的默认积分
func (s *GameService) CreateSession(ctx context.Context, initialBalance float64) (*models.GameSession, error) {
	if math.IsNaN(initialBalance) || math.IsInf(initialBalance, 0) {
		return nil, apperrors.Newf(apperrors.ErrInvalidBalance, "初始余额非法: %v", initialBalance)
	}
	if initialBalance <= 0 {
		initialBalance = s.initialCredits
	}

	session := &models.GameSession{
		SessionID:      uuid.New().String(),
		Balance:        initialBalance,
		IsActive:       true,
		LastActivityAt: time.Now(),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	logger.LogGameEvent("session_created", session.SessionID, map[string]interface{}{
		"balance": session.Balance,
	})

	return session, nil
}

// GetSession 查询游戏会话
// 只刷新活跃时间，不做任何结算；reactivate_closed 开启时顺带复活已关闭的会话
func (s *GameService) GetSession(ctx context.Context, sessionID string) (*models.GameSession, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsActive && s.reactivateClosed {
		session.IsActive = true
	}
	session.LastActivityAt = time.Now()

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Spin 执行一次转动结算
// 先取会话再校验投注，保证未知会话始终报会话不存在
// 校验失败或余额不足时不产生任何状态变化
func (s *GameService) Spin(ctx context.Context, sessionID string, betAmount float64) (*SpinResult, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsActive {
		if !s.reactivateClosed {
			return nil, apperrors.New(apperrors.ErrSessionClosed, sessionID)
		}
		session.IsActive = true
	}

	if math.IsNaN(betAmount) || math.IsInf(betAmount, 0) {
		return nil, apperrors.Newf(apperrors.ErrInvalidBet, "投注金额非法: %v", betAmount)
	}
	if !s.payout.ValidBet(betAmount) {
		return nil, apperrors.Newf(apperrors.ErrInvalidBet, "投注金额 %v 不在 [%v, %v] 范围内",
			betAmount, s.payout.MinBet, s.payout.MaxBet)
	}

	if session.Balance < betAmount {
		return nil, apperrors.Newf(apperrors.ErrInsufficientFunds, "余额 %v 不足以投注 %v",
			session.Balance, betAmount)
	}

	// 庄家优势以扣注前余额判定档位
	preSpinBalance := session.Balance

	outcome := s.generator.Draw(s.payout, betAmount)
	outcome, rerolled := s.house.Apply(outcome, preSpinBalance, func() *slot.SpinOutcome {
		return s.generator.Draw(s.payout, betAmount)
	})

	session.Balance = session.Balance - betAmount + outcome.WinAmount
	session.TotalBet += betAmount
	session.TotalWin += outcome.WinAmount
	session.LastActivityAt = time.Now()

	// 输光即自动关闭
	sessionClosed := false
	if session.Balance <= 0 {
		session.IsActive = false
		sessionClosed = true
	}

	record := &models.SpinRecord{
		SessionID:    session.SessionID,
		BetAmount:    betAmount,
		WinAmount:    outcome.WinAmount,
		BalanceAfter: session.Balance,
		Result:       models.JSONMap(outcome.ToJSON()),
		Rerolled:     rerolled,
		PlayedAt:     outcome.Timestamp,
	}

	if err := s.repo.SaveSettlement(ctx, session, record); err != nil {
		return nil, err
	}

	logger.LogGameEvent("spin", session.SessionID, map[string]interface{}{
		"bet":      betAmount,
		"win":      outcome.WinAmount,
		"balance":  session.Balance,
		"rerolled": rerolled,
	})

	return &SpinResult{
		Outcome:       outcome,
		Balance:       session.Balance,
		TotalBet:      session.TotalBet,
		TotalWin:      session.TotalWin,
		Rerolled:      rerolled,
		SessionClosed: sessionClosed,
	}, nil
}

// CashOut 兑付并关闭会话
func (s *GameService) CashOut(ctx context.Context, sessionID string) (*CashoutResult, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	session, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.IsActive && !s.reactivateClosed {
		return nil, apperrors.New(apperrors.ErrSessionClosed, sessionID)
	}

	amount := session.Balance
	initialBalance := amount - session.TotalWin + session.TotalBet

	session.Balance = 0
	session.IsActive = false
	session.LastActivityAt = time.Now()

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	result := &CashoutResult{
		SessionID:      session.SessionID,
		Amount:         amount,
		InitialBalance: initialBalance,
		TotalBet:       session.TotalBet,
		TotalWin:       session.TotalWin,
		NetProfit:      amount - initialBalance,
		Timestamp:      time.Now(),
	}

	logger.LogGameEvent("cashout", session.SessionID, map[string]interface{}{
		"amount":     result.Amount,
		"net_profit": result.NetProfit,
	})

	return result, nil
}

// GetSpinRecords 查询会话的转动记录
func (s *GameService) GetSpinRecords(ctx context.Context, sessionID string, p *repository.Pagination) ([]*models.SpinRecord, error) {
	if _, err := s.repo.FindBySessionID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.repo.FindSpinRecords(ctx, sessionID, p)
}

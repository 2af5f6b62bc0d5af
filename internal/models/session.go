package models

import "time"

// GameSession 游戏会话
// 余额、累计投注、累计赢取均以积分为单位
type GameSession struct {
	BaseModel
	SessionID      string    `gorm:"uniqueIndex;size:64;not null" json:"session_id"`
	Balance        float64   `gorm:"not null;default:0" json:"balance"`
	TotalBet       float64   `gorm:"not null;default:0" json:"total_bet"`
	TotalWin       float64   `gorm:"not null;default:0" json:"total_win"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// TableName 指定表名
func (GameSession) TableName() string {
	return "game_sessions"
}

// SpinRecord 转动记录
type SpinRecord struct {
	BaseModel
	SessionID    string    `gorm:"index;size:64;not null" json:"session_id"`
	BetAmount    float64   `gorm:"not null" json:"bet_amount"`
	WinAmount    float64   `gorm:"not null;default:0" json:"win_amount"`
	BalanceAfter float64   `gorm:"not null" json:"balance_after"`
	Result       JSONMap   `gorm:"type:json" json:"result"`
	Rerolled     bool      `gorm:"not null;default:false" json:"rerolled"`
	PlayedAt     time.Time `json:"played_at"`
}

// TableName 指定表名
func (SpinRecord) TableName() string {
	return "spin_records"
}

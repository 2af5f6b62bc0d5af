package repository

import (
	"time"

	"github.com/wfunc/casino-jackpot/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB 为测试套件设置测试数据库
func SetupTestDB() *gorm.DB {
	// 使用内存数据库进行测试（更快，不需要文件系统，在所有环境中都能工作）
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.GameSession{},
		&models.SpinRecord{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

// CleanupTestDB 清理测试数据库
func CleanupTestDB(db *gorm.DB) {
	// 关闭数据库连接
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// CreateTestSession 创建测试游戏会话
func CreateTestSession(sessionID string, balance float64) *models.GameSession {
	return &models.GameSession{
		SessionID:      sessionID,
		Balance:        balance,
		TotalBet:       0,
		TotalWin:       0,
		IsActive:       true,
		LastActivityAt: time.Now(),
	}
}

// CreateTestSpinRecord 创建测试转动记录
func CreateTestSpinRecord(sessionID string, betAmount, winAmount, balanceAfter float64) *models.SpinRecord {
	return &models.SpinRecord{
		SessionID:    sessionID,
		BetAmount:    betAmount,
		WinAmount:    winAmount,
		BalanceAfter: balanceAfter,
		Result: models.JSONMap{
			"reels": [][]string{{"Cherry", "Cherry", "Cherry"}},
		},
		PlayedAt: time.Now(),
	}
}

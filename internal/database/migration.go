package database

import (
	"fmt"

	"github.com/wfunc/casino-jackpot/internal/logger"
	"github.com/wfunc/casino-jackpot/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		db = DB
	}

	if err := db.AutoMigrate(
		&models.GameSession{},
		&models.SpinRecord{},
	); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	logger.Info("数据库迁移完成")
	return nil
}

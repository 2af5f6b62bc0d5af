package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/wfunc/casino-jackpot/internal/api"
	"github.com/wfunc/casino-jackpot/internal/config"
	"github.com/wfunc/casino-jackpot/internal/database"
	"github.com/wfunc/casino-jackpot/internal/errors"
	"github.com/wfunc/casino-jackpot/internal/game"
	"github.com/wfunc/casino-jackpot/internal/game/slot"
	"github.com/wfunc/casino-jackpot/internal/logger"
	"github.com/wfunc/casino-jackpot/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 版本信息
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// 命令行参数
	var (
		configPath  = flag.String("config", "", "配置文件路径")
		showVersion = flag.Bool("version", false, "显示版本信息")
	)

	flag.Parse()

	// 显示版本信息
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// 加载配置
	if err := config.Init(*configPath); err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Get()

	// 初始化日志系统
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Cleanup()

	logger.Info("正在启动游戏结算服务器...",
		zap.String("version", Version),
		zap.String("mode", cfg.Server.Mode),
	)

	// 初始化存储层
	var (
		db   *gorm.DB
		repo repository.SessionRepository
	)
	if cfg.Database.InMemory {
		repo = repository.NewMemorySessionRepository()
		logger.Info("使用进程内会话存储")
	} else {
		if err := initDatabase(&cfg.Database); err != nil {
			logger.Fatal("初始化数据库失败", zap.Error(err))
		}
		db = database.GetDB()
		repo = repository.NewSessionRepository(db)
	}

	// 构建赔率配置
	payout, err := slot.NewPayoutConfig(
		cfg.Game.Slot.Reels,
		cfg.Game.Slot.Rows,
		cfg.Game.Slot.Symbols,
		cfg.Game.Slot.Payouts,
		cfg.Game.Slot.MinBet,
		cfg.Game.Slot.MaxBet,
	)
	if err != nil {
		logger.Fatal("构建赔率配置失败", zap.Error(err))
	}

	// 构建庄家优势策略
	tiers := make([]slot.AdvantageTier, 0, len(cfg.Game.House.Tiers))
	for _, tier := range cfg.Game.House.Tiers {
		tiers = append(tiers, slot.AdvantageTier{
			Threshold: tier.Threshold,
			Chance:    tier.Chance,
		})
	}
	house := slot.NewHouseAdvantage(cfg.Game.House.Enabled, tiers, nil)

	// 组装游戏服务
	generator := slot.NewGenerator(nil, nil)
	gameService := game.NewGameService(repo, payout, generator, house, &cfg.Game.Session)

	// 创建路由与HTTP服务器
	router := api.NewRouter(db, gameService, &cfg.Server, logger.GetLogger())
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动HTTP服务器
	go func() {
		logger.Info("HTTP服务器启动", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP服务器异常退出", zap.Error(err))
		}
	}()

	// 监听配置变化，日志级别即时生效
	config.Watch(func(newCfg *config.Config) {
		logger.SetLevel(newCfg.Log.Level)
		logger.Info("配置已更新", zap.String("log_level", newCfg.Log.Level))
	})

	// 等待退出信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	sig := <-sigCh
	logger.Info("收到退出信号", zap.String("signal", sig.String()))

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	if db != nil {
		if err := database.Close(); err != nil {
			logger.Error("关闭数据库失败", zap.Error(err))
		}
	}

	logger.Info("服务器已安全关闭")
}

// initDatabase 初始化数据库
func initDatabase(cfg *config.DatabaseConfig) error {
	if err := database.Init(cfg); err != nil {
		return errors.Wrap(err, errors.ErrDatabaseConnect, "初始化数据库连接失败")
	}

	if cfg.AutoMigrate {
		if err := database.AutoMigrate(nil); err != nil {
			return errors.Wrap(err, errors.ErrDatabaseConnect, "数据库迁移失败")
		}
	}

	if !database.IsConnected() {
		return errors.New(errors.ErrDatabaseConnect, "数据库连接检查失败")
	}

	return nil
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("游戏结算服务器\n")
	fmt.Printf("版本: %s\n", Version)
	fmt.Printf("构建时间: %s\n", BuildTime)
	fmt.Printf("Git提交: %s\n", GitCommit)
	fmt.Printf("Go版本: %s\n", runtime.Version())
	fmt.Printf("操作系统: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/wfunc/casino-jackpot/internal/config"
	apperrors "github.com/wfunc/casino-jackpot/internal/errors"
	"github.com/wfunc/casino-jackpot/internal/game"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Router API路由器
type Router struct {
	engine      *gin.Engine
	db          *gorm.DB
	gameHandler *GameHandler
	log         *zap.Logger
}

// NewRouter 创建路由器
func NewRouter(db *gorm.DB, gameService *game.GameService, cfg *config.ServerConfig, log *zap.Logger) *Router {
	if cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 全局中间件
	engine.Use(panicRecovery())
	engine.Use(requestLogger())

	router := &Router{
		engine:      engine,
		db:          db,
		gameHandler: NewGameHandler(gameService, log),
		log:         log,
	}

	router.setupRoutes()

	return router
}

// setupRoutes 设置路由
func (r *Router) setupRoutes() {
	// 健康检查
	r.engine.GET("/health", r.healthCheck)

	// API v1路由组
	v1 := r.engine.Group("/api/v1")
	{
		gameGroup := v1.Group("/game")
		{
			gameGroup.GET("/config", r.gameHandler.GetConfig)

			sessions := gameGroup.Group("/sessions")
			{
				sessions.POST("", r.gameHandler.CreateSession)
				sessions.GET("/:id", r.gameHandler.GetSession)
				sessions.POST("/:id/spin", r.gameHandler.Spin)
				sessions.POST("/:id/cashout", r.gameHandler.CashOut)
				sessions.GET("/:id/records", r.gameHandler.GetSpinRecords)
			}
		}
	}

	// 404处理
	r.engine.NoRoute(func(c *gin.Context) {
		appErr := apperrors.New(apperrors.ErrNotFound, "接口不存在")
		c.JSON(appErr.HTTPStatus(), apperrors.NewErrorResponse(appErr, c.GetHeader("X-Request-ID")))
	})
}

// healthCheck 健康检查
func (r *Router) healthCheck(c *gin.Context) {
	// 进程内存储模式没有数据库连接
	if r.db == nil {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "服务运行正常",
		})
		return
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		c.JSON(500, gin.H{
			"status":  "unhealthy",
			"message": "数据库连接失败",
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(500, gin.H{
			"status":  "unhealthy",
			"message": "数据库ping失败",
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  "healthy",
		"message": "服务运行正常",
	})
}

// Run 运行服务器
func (r *Router) Run(addr string) error {
	r.log.Info("Starting API server", zap.String("address", addr))
	return r.engine.Run(addr)
}

// GetEngine 获取Gin引擎（用于测试和自定义http.Server）
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

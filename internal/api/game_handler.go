package api

import (
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/wfunc/casino-jackpot/internal/errors"
	"github.com/wfunc/casino-jackpot/internal/game"
	"github.com/wfunc/casino-jackpot/internal/repository"
	"go.uber.org/zap"
)

// GameHandler 游戏处理器
type GameHandler struct {
	gameService *game.GameService
	logger      *zap.Logger
}

// NewGameHandler 创建游戏处理器
func NewGameHandler(gameService *game.GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		logger:      logger,
	}
}

// CreateSessionRequest 创建会话请求
type CreateSessionRequest struct {
	Balance float64 `json:"balance"`
}

// SpinRequest 转动请求
type SpinRequest struct {
	BetAmount float64 `json:"bet_amount" binding:"required"`
}

// SuccessResponse 成功响应信封
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// respondOK 输出成功响应
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

// respondError 按错误码输出错误响应
func (h *GameHandler) respondError(c *gin.Context, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.Wrap(err, apperrors.ErrUnknown)
	}

	if appErr.HTTPStatus() >= 500 {
		h.logger.Error("请求处理失败",
			zap.String("path", c.Request.URL.Path),
			zap.Int("code", int(appErr.Code)),
			zap.Error(appErr))
	}

	c.JSON(appErr.HTTPStatus(), apperrors.NewErrorResponse(appErr, c.GetHeader("X-Request-ID")))
}

// GetConfig 获取游戏配置
func (h *GameHandler) GetConfig(c *gin.Context) {
	respondOK(c, 200, h.gameService.GetPayoutConfig())
}

// CreateSession 创建游戏会话
func (h *GameHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidParam))
		return
	}

	session, err := h.gameService.CreateSession(c.Request.Context(), req.Balance)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, 201, session)
}

// GetSession 查询游戏会话
func (h *GameHandler) GetSession(c *gin.Context) {
	session, err := h.gameService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, 200, session)
}

// Spin 执行转动
func (h *GameHandler) Spin(c *gin.Context) {
	var req SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.Wrap(err, apperrors.ErrInvalidBet))
		return
	}

	result, err := h.gameService.Spin(c.Request.Context(), c.Param("id"), req.BetAmount)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, 200, result)
}

// CashOut 兑付并关闭会话
func (h *GameHandler) CashOut(c *gin.Context) {
	result, err := h.gameService.CashOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, 200, result)
}

// GetSpinRecords 查询转动记录
func (h *GameHandler) GetSpinRecords(c *gin.Context) {
	p := repository.NewPagination(
		queryInt(c, "page", 1),
		queryInt(c, "page_size", 20),
	)

	records, err := h.gameService.GetSpinRecords(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, 200, gin.H{
		"records":   records,
		"total":     p.Total,
		"page":      p.Page,
		"page_size": p.PageSize,
	})
}

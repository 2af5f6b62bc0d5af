package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfunc/casino-jackpot/internal/config"
	"github.com/wfunc/casino-jackpot/internal/game"
	"github.com/wfunc/casino-jackpot/internal/game/slot"
	"github.com/wfunc/casino-jackpot/internal/repository"
	"go.uber.org/zap"
)

// losingRandom 固定生成不中奖的卷轴（樱桃、柠檬、樱桃）
type losingRandom struct{ index int }

func (r *losingRandom) NextInt(min, max int) int {
	values := []int{0, 1, 0}
	v := values[r.index%len(values)]
	r.index++
	if v < min || v >= max {
		return min
	}
	return v
}

func setupTestRouter(t *testing.T) (*Router, repository.SessionRepository) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemorySessionRepository()
	generator := slot.NewGenerator(&losingRandom{}, nil)
	house := slot.NewHouseAdvantage(false, nil, nil)
	sessionCfg := &config.SessionConfig{InitialCredits: 10.0}
	gameService := game.NewGameService(repo, slot.DefaultConfig(), generator, house, sessionCfg)

	serverCfg := &config.ServerConfig{Mode: "development"}
	return NewRouter(nil, gameService, serverCfg, zap.NewNop()), repo
}

func doRequest(t *testing.T, router *Router, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.GetEngine().ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestGameHandler_GetConfig(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/game/config", nil)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, 3.0, data["reels"])
	assert.Equal(t, 1.0, data["rows"])
	assert.Equal(t, 1.0, data["min_bet"])
	assert.Equal(t, 5.0, data["max_bet"])
}

func TestGameHandler_CreateSession(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("指定余额", func(t *testing.T) {
		w, body := doRequest(t, router, http.MethodPost, "/api/v1/game/sessions",
			map[string]interface{}{"balance": 20})

		assert.Equal(t, 201, w.Code)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, 20.0, data["balance"])
		assert.NotEmpty(t, data["session_id"])
	})

	t.Run("默认积分", func(t *testing.T) {
		w, body := doRequest(t, router, http.MethodPost, "/api/v1/game/sessions",
			map[string]interface{}{})

		assert.Equal(t, 201, w.Code)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, 10.0, data["balance"])
	})
}

func TestGameHandler_GetSession_NotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/game/sessions/missing", nil)

	assert.Equal(t, 404, w.Code)
	assert.Equal(t, false, body["success"])

	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, 2000.0, errObj["code"])
}

func TestGameHandler_Spin(t *testing.T) {
	router, _ := setupTestRouter(t)

	_, created := doRequest(t, router, http.MethodPost, "/api/v1/game/sessions",
		map[string]interface{}{"balance": 20})
	sessionID := created["data"].(map[string]interface{})["session_id"].(string)

	t.Run("正常转动", func(t *testing.T) {
		w, body := doRequest(t, router, http.MethodPost,
			"/api/v1/game/sessions/"+sessionID+"/spin",
			map[string]interface{}{"bet_amount": 1})

		assert.Equal(t, 200, w.Code)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, 19.0, data["balance"])
		assert.Equal(t, false, data["session_closed"])
	})

	t.Run("无效投注", func(t *testing.T) {
		w, body := doRequest(t, router, http.MethodPost,
			"/api/v1/game/sessions/"+sessionID+"/spin",
			map[string]interface{}{"bet_amount": 100})

		assert.Equal(t, 400, w.Code)
		errObj := body["error"].(map[string]interface{})
		assert.Equal(t, 2003.0, errObj["code"])
	})

	t.Run("缺少投注金额", func(t *testing.T) {
		w, _ := doRequest(t, router, http.MethodPost,
			"/api/v1/game/sessions/"+sessionID+"/spin",
			map[string]interface{}{})

		assert.Equal(t, 400, w.Code)
	})
}

func TestGameHandler_CashOut(t *testing.T) {
	router, _ := setupTestRouter(t)

	_, created := doRequest(t, router, http.MethodPost, "/api/v1/game/sessions",
		map[string]interface{}{"balance": 20})
	sessionID := created["data"].(map[string]interface{})["session_id"].(string)

	w, body := doRequest(t, router, http.MethodPost,
		"/api/v1/game/sessions/"+sessionID+"/cashout", nil)

	assert.Equal(t, 200, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 20.0, data["amount"])
	assert.Equal(t, 0.0, data["net_profit"])

	// 关闭后再转动返回409
	w, body = doRequest(t, router, http.MethodPost,
		"/api/v1/game/sessions/"+sessionID+"/spin",
		map[string]interface{}{"bet_amount": 1})

	assert.Equal(t, 409, w.Code)
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, 2001.0, errObj["code"])
}

func TestGameHandler_SpinRecords(t *testing.T) {
	router, _ := setupTestRouter(t)

	_, created := doRequest(t, router, http.MethodPost, "/api/v1/game/sessions",
		map[string]interface{}{"balance": 20})
	sessionID := created["data"].(map[string]interface{})["session_id"].(string)

	for i := 0; i < 3; i++ {
		w, _ := doRequest(t, router, http.MethodPost,
			"/api/v1/game/sessions/"+sessionID+"/spin",
			map[string]interface{}{"bet_amount": 1})
		require.Equal(t, 200, w.Code)
	}

	w, body := doRequest(t, router, http.MethodGet,
		"/api/v1/game/sessions/"+sessionID+"/records?page=1&page_size=2", nil)

	assert.Equal(t, 200, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 3.0, data["total"])
	assert.Len(t, data["records"], 2)
}

func TestNoRoute(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/unknown", nil)

	assert.Equal(t, 404, w.Code)
	assert.Equal(t, false, body["success"])

	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, 1002.0, errObj["code"])
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "healthy", body["status"])
}

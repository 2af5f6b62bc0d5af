package slot

import (
	"crypto/rand"
	"math/big"
	"time"
)

// Symbol 游戏符号
type Symbol string

const (
	SymbolCherry     Symbol = "Cherry"     // 樱桃
	SymbolLemon      Symbol = "Lemon"      // 柠檬
	SymbolOrange     Symbol = "Orange"     // 橙子
	SymbolWatermelon Symbol = "Watermelon" // 西瓜
)

// LineKind 中奖线类型
type LineKind string

const (
	LineKindRow     LineKind = "row"     // 整行相同符号
	LineKindScatter LineKind = "scatter" // 分散符号
)

// WinLine 中奖线
type WinLine struct {
	Kind   LineKind `json:"kind"`   // 线类型
	Index  int      `json:"index"`  // 行索引 (0-based)
	Symbol Symbol   `json:"symbol"` // 中奖符号
	Count  int      `json:"count"`  // 符号个数
	Amount float64  `json:"amount"` // 中奖金额
}

// SpinOutcome 一次转动的结果
// Reels 按 [行][卷轴] 索引，每一行是一条支付线
type SpinOutcome struct {
	Reels     [][]Symbol `json:"reels"`
	BetAmount float64    `json:"bet_amount"`
	WinAmount float64    `json:"win_amount"`
	WinLines  []WinLine  `json:"win_lines"`
	Timestamp time.Time  `json:"timestamp"`
}

// IsWin 是否中奖
func (o *SpinOutcome) IsWin() bool {
	return o.WinAmount > 0
}

// ToJSON 转换为JSON map（用于落库）
func (o *SpinOutcome) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"reels":      o.Reels,
		"bet_amount": o.BetAmount,
		"win_amount": o.WinAmount,
		"win_lines":  o.WinLines,
		"timestamp":  o.Timestamp,
	}
}

// RandomGenerator 随机数生成器接口
type RandomGenerator interface {
	// NextInt 生成 [min, max) 范围内的随机整数
	NextInt(min, max int) int
}

// ScatterEvaluator 分散符号评估接口
// 当前规则集没有分散符号，默认实现不产生任何中奖线
type ScatterEvaluator interface {
	Evaluate(reels [][]Symbol, betAmount float64, cfg *PayoutConfig) []WinLine
}

// CryptoRandomGenerator 加密安全的随机数生成器
type CryptoRandomGenerator struct{}

// NewCryptoRandomGenerator 创建加密随机数生成器
func NewCryptoRandomGenerator() *CryptoRandomGenerator {
	return &CryptoRandomGenerator{}
}

// NextInt 生成 [min, max) 范围内的随机整数
func (g *CryptoRandomGenerator) NextInt(min, max int) int {
	if min >= max {
		return min
	}
	diff := big.NewInt(int64(max - min))
	n, _ := rand.Int(rand.Reader, diff)
	return min + int(n.Int64())
}

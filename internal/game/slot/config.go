package slot

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("无效的卷轴行列配置")
	ErrEmptySymbols      = errors.New("符号表不能为空")
	ErrMissingPayout     = errors.New("符号缺少赔率配置")
	ErrNegativePayout    = errors.New("赔率不能为负")
	ErrInvalidBetRange   = errors.New("无效的投注范围")
)

// PayoutConfig 赔率配置
// 符号表与赔率表在启动时一次性构建并校验，之后只读
type PayoutConfig struct {
	Reels   int                `json:"reels"`
	Rows    int                `json:"rows"`
	Symbols []Symbol           `json:"symbols"`
	Payouts map[Symbol]float64 `json:"payouts"`
	MinBet  float64            `json:"min_bet"`
	MaxBet  float64            `json:"max_bet"`
}

// NewPayoutConfig 从原始配置构建赔率配置
// 符号与赔率分别给出，缺失或非法立即报错而不是静默丢弃
func NewPayoutConfig(reels, rows int, symbols []string, payouts map[string]float64, minBet, maxBet float64) (*PayoutConfig, error) {
	cfg := &PayoutConfig{
		Reels:   reels,
		Rows:    rows,
		Symbols: make([]Symbol, 0, len(symbols)),
		Payouts: make(map[Symbol]float64, len(symbols)),
		MinBet:  minBet,
		MaxBet:  maxBet,
	}

	for _, name := range symbols {
		symbol := Symbol(name)
		payout, ok := payouts[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingPayout, name)
		}
		if payout < 0 {
			return nil, fmt.Errorf("%w: %s=%v", ErrNegativePayout, name, payout)
		}
		cfg.Symbols = append(cfg.Symbols, symbol)
		cfg.Payouts[symbol] = payout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig 默认赔率配置
func DefaultConfig() *PayoutConfig {
	return &PayoutConfig{
		Reels:   3,
		Rows:    1,
		Symbols: []Symbol{SymbolCherry, SymbolLemon, SymbolOrange, SymbolWatermelon},
		Payouts: map[Symbol]float64{
			SymbolCherry:     10,
			SymbolLemon:      20,
			SymbolOrange:     30,
			SymbolWatermelon: 40,
		},
		MinBet: 1.0,
		MaxBet: 5.0,
	}
}

// Validate 校验配置
func (c *PayoutConfig) Validate() error {
	if c.Reels < 1 || c.Rows < 1 {
		return fmt.Errorf("%w: reels=%d rows=%d", ErrInvalidDimensions, c.Reels, c.Rows)
	}
	if len(c.Symbols) == 0 {
		return ErrEmptySymbols
	}
	if c.MinBet <= 0 || c.MaxBet <= 0 || c.MinBet > c.MaxBet {
		return fmt.Errorf("%w: min=%v max=%v", ErrInvalidBetRange, c.MinBet, c.MaxBet)
	}
	for _, symbol := range c.Symbols {
		payout, ok := c.Payouts[symbol]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingPayout, symbol)
		}
		if payout < 0 {
			return fmt.Errorf("%w: %s=%v", ErrNegativePayout, symbol, payout)
		}
	}
	return nil
}

// CoefficientFor 返回符号的赔率系数
func (c *PayoutConfig) CoefficientFor(symbol Symbol) (float64, bool) {
	payout, ok := c.Payouts[symbol]
	return payout, ok
}

// ValidBet 判断投注金额是否在允许范围内（边界含）
func (c *PayoutConfig) ValidBet(amount float64) bool {
	return amount >= c.MinBet && amount <= c.MaxBet
}

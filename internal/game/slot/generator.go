package slot

import "time"

// Generator 转动结果生成器
// 每次转动独立均匀抽取每个位置的符号，整行相同即中奖
type Generator struct {
	random  RandomGenerator
	scatter ScatterEvaluator
}

// NewGenerator 创建结果生成器
func NewGenerator(random RandomGenerator, scatter ScatterEvaluator) *Generator {
	if random == nil {
		random = NewCryptoRandomGenerator()
	}
	if scatter == nil {
		scatter = NoopScatterEvaluator{}
	}
	return &Generator{
		random:  random,
		scatter: scatter,
	}
}

// Draw 生成一次转动结果并结算中奖线
func (g *Generator) Draw(cfg *PayoutConfig, betAmount float64) *SpinOutcome {
	reels := g.generateReels(cfg)

	outcome := &SpinOutcome{
		Reels:     reels,
		BetAmount: betAmount,
		Timestamp: time.Now(),
	}

	// 行线结算：整行符号一致则按符号系数赔付
	for row := 0; row < cfg.Rows; row++ {
		symbol, uniform := rowSymbol(reels[row])
		if !uniform {
			continue
		}
		coefficient, ok := cfg.CoefficientFor(symbol)
		if !ok {
			continue
		}
		outcome.WinLines = append(outcome.WinLines, WinLine{
			Kind:   LineKindRow,
			Index:  row,
			Symbol: symbol,
			Count:  cfg.Reels,
			Amount: coefficient * betAmount,
		})
	}

	// 分散符号结算
	outcome.WinLines = append(outcome.WinLines, g.scatter.Evaluate(reels, betAmount, cfg)...)

	for _, line := range outcome.WinLines {
		outcome.WinAmount += line.Amount
	}

	return outcome
}

// generateReels 生成卷轴矩阵（[行][卷轴]）
func (g *Generator) generateReels(cfg *PayoutConfig) [][]Symbol {
	reels := make([][]Symbol, cfg.Rows)
	for row := 0; row < cfg.Rows; row++ {
		reels[row] = make([]Symbol, cfg.Reels)
		for reel := 0; reel < cfg.Reels; reel++ {
			index := g.random.NextInt(0, len(cfg.Symbols))
			reels[row][reel] = cfg.Symbols[index]
		}
	}
	return reels
}

// rowSymbol 判断一行是否全部为同一符号
func rowSymbol(row []Symbol) (Symbol, bool) {
	if len(row) == 0 {
		return "", false
	}
	first := row[0]
	for _, symbol := range row[1:] {
		if symbol != first {
			return "", false
		}
	}
	return first, true
}

// NoopScatterEvaluator 默认的分散符号评估器，不产生中奖线
type NoopScatterEvaluator struct{}

// Evaluate 返回空结果
func (NoopScatterEvaluator) Evaluate(reels [][]Symbol, betAmount float64, cfg *PayoutConfig) []WinLine {
	return nil
}

package slot

import "sort"

// AdvantageTier 庄家优势档位
// 转动前余额达到 Threshold 时，以 Chance% 的概率丢弃中奖结果并重抽一次
type AdvantageTier struct {
	Threshold float64 `json:"threshold"`
	Chance    int     `json:"chance"`
}

// HouseAdvantage 庄家优势策略
// 档位按阈值从高到低匹配，只取命中的第一档；重抽结果本身仍可能中奖
type HouseAdvantage struct {
	enabled bool
	tiers   []AdvantageTier
	random  RandomGenerator
}

// NewHouseAdvantage 创建庄家优势策略
func NewHouseAdvantage(enabled bool, tiers []AdvantageTier, random RandomGenerator) *HouseAdvantage {
	if random == nil {
		random = NewCryptoRandomGenerator()
	}

	sorted := make([]AdvantageTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Threshold > sorted[j].Threshold
	})

	return &HouseAdvantage{
		enabled: enabled,
		tiers:   sorted,
		random:  random,
	}
}

// Enabled 策略是否启用
func (h *HouseAdvantage) Enabled() bool {
	return h.enabled
}

// Apply 对中奖结果应用重抽策略
// preSpinBalance 为扣除本次投注前的余额；redraw 提供一次全新的转动结果
// 返回最终结果以及是否发生了重抽
func (h *HouseAdvantage) Apply(outcome *SpinOutcome, preSpinBalance float64, redraw func() *SpinOutcome) (*SpinOutcome, bool) {
	if !h.enabled || !outcome.IsWin() {
		return outcome, false
	}

	tier, ok := h.matchTier(preSpinBalance)
	if !ok {
		return outcome, false
	}

	// 单次均匀抽取 [1,100]
	roll := h.random.NextInt(1, 101)
	if roll > tier.Chance {
		return outcome, false
	}

	return redraw(), true
}

// matchTier 按阈值从高到低匹配档位
func (h *HouseAdvantage) matchTier(balance float64) (AdvantageTier, bool) {
	for _, tier := range h.tiers {
		if balance >= tier.Threshold {
			return tier, true
		}
	}
	return AdvantageTier{}, false
}

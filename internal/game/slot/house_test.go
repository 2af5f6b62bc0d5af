package slot

import "testing"

func winOutcome(amount float64) *SpinOutcome {
	return &SpinOutcome{
		Reels:     [][]Symbol{{SymbolCherry, SymbolCherry, SymbolCherry}},
		BetAmount: 1.0,
		WinAmount: amount,
		WinLines:  []WinLine{{Kind: LineKindRow, Symbol: SymbolCherry, Count: 3, Amount: amount}},
	}
}

func loseOutcome() *SpinOutcome {
	return &SpinOutcome{
		Reels:     [][]Symbol{{SymbolCherry, SymbolLemon, SymbolOrange}},
		BetAmount: 1.0,
	}
}

func TestHouseAdvantage_Disabled(t *testing.T) {
	house := NewHouseAdvantage(false, []AdvantageTier{{Threshold: 0, Chance: 100}}, nil)

	original := winOutcome(10)
	redraws := 0
	result, rerolled := house.Apply(original, 100, func() *SpinOutcome {
		redraws++
		return loseOutcome()
	})

	if rerolled || redraws != 0 || result != original {
		t.Errorf("策略关闭时不应重抽: rerolled=%v redraws=%d", rerolled, redraws)
	}
}

func TestHouseAdvantage_LosingOutcomePassesThrough(t *testing.T) {
	house := NewHouseAdvantage(true, []AdvantageTier{{Threshold: 0, Chance: 100}}, nil)

	original := loseOutcome()
	result, rerolled := house.Apply(original, 100, func() *SpinOutcome {
		t.Fatal("未中奖结果不应触发重抽")
		return nil
	})

	if rerolled || result != original {
		t.Errorf("未中奖结果应原样返回")
	}
}

func TestHouseAdvantage_ForcedReroll(t *testing.T) {
	// 概率100必然重抽
	house := NewHouseAdvantage(true, []AdvantageTier{{Threshold: 40, Chance: 100}}, nil)

	redrawn := loseOutcome()
	result, rerolled := house.Apply(winOutcome(10), 50, func() *SpinOutcome {
		return redrawn
	})

	if !rerolled || result != redrawn {
		t.Errorf("概率100应必然重抽: rerolled=%v", rerolled)
	}
}

func TestHouseAdvantage_ZeroChanceNeverRerolls(t *testing.T) {
	house := NewHouseAdvantage(true, []AdvantageTier{{Threshold: 40, Chance: 0}}, nil)

	for i := 0; i < 100; i++ {
		original := winOutcome(10)
		result, rerolled := house.Apply(original, 50, func() *SpinOutcome {
			return loseOutcome()
		})
		if rerolled || result != original {
			t.Fatal("概率0不应重抽")
		}
	}
}

func TestHouseAdvantage_BelowThreshold(t *testing.T) {
	house := NewHouseAdvantage(true, []AdvantageTier{
		{Threshold: 40, Chance: 100},
		{Threshold: 60, Chance: 100},
	}, nil)

	original := winOutcome(10)
	result, rerolled := house.Apply(original, 39.99, func() *SpinOutcome {
		t.Fatal("余额低于所有阈值时不应重抽")
		return nil
	})

	if rerolled || result != original {
		t.Error("余额低于阈值时应原样返回")
	}
}

func TestHouseAdvantage_HighestTierFirst(t *testing.T) {
	// 高阈值档概率0，低阈值档概率100
	// 余额达到高档时只按高档判定，不落到低档
	house := NewHouseAdvantage(true, []AdvantageTier{
		{Threshold: 40, Chance: 100},
		{Threshold: 60, Chance: 0},
	}, nil)

	t.Run("命中高档", func(t *testing.T) {
		original := winOutcome(10)
		_, rerolled := house.Apply(original, 70, func() *SpinOutcome {
			return loseOutcome()
		})
		if rerolled {
			t.Error("高档概率0不应重抽")
		}
	})

	t.Run("命中低档", func(t *testing.T) {
		_, rerolled := house.Apply(winOutcome(10), 50, func() *SpinOutcome {
			return loseOutcome()
		})
		if !rerolled {
			t.Error("低档概率100应必然重抽")
		}
	})
}

func TestHouseAdvantage_RerollMayStillWin(t *testing.T) {
	house := NewHouseAdvantage(true, []AdvantageTier{{Threshold: 40, Chance: 100}}, nil)

	// 重抽结果本身中奖时按重抽结果结算
	redrawn := winOutcome(40)
	result, rerolled := house.Apply(winOutcome(10), 50, func() *SpinOutcome {
		return redrawn
	})

	if !rerolled || result.WinAmount != 40 {
		t.Errorf("重抽中奖结果应保留: rerolled=%v win=%v", rerolled, result.WinAmount)
	}
}

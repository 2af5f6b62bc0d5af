package slot

import (
	"errors"
	"testing"
)

func TestNewPayoutConfig(t *testing.T) {
	symbols := []string{"Cherry", "Lemon", "Orange", "Watermelon"}
	payouts := map[string]float64{
		"Cherry":     10,
		"Lemon":      20,
		"Orange":     30,
		"Watermelon": 40,
	}

	tests := []struct {
		name    string
		reels   int
		rows    int
		symbols []string
		payouts map[string]float64
		minBet  float64
		maxBet  float64
		wantErr error
	}{
		{
			name:    "有效配置",
			reels:   3,
			rows:    1,
			symbols: symbols,
			payouts: payouts,
			minBet:  1.0,
			maxBet:  5.0,
			wantErr: nil,
		},
		{
			name:    "无效卷轴数",
			reels:   0,
			rows:    1,
			symbols: symbols,
			payouts: payouts,
			minBet:  1.0,
			maxBet:  5.0,
			wantErr: ErrInvalidDimensions,
		},
		{
			name:    "无效行数",
			reels:   3,
			rows:    0,
			symbols: symbols,
			payouts: payouts,
			minBet:  1.0,
			maxBet:  5.0,
			wantErr: ErrInvalidDimensions,
		},
		{
			name:    "空符号表",
			reels:   3,
			rows:    1,
			symbols: nil,
			payouts: payouts,
			minBet:  1.0,
			maxBet:  5.0,
			wantErr: ErrEmptySymbols,
		},
		{
			name:    "符号缺少赔率",
			reels:   3,
			rows:    1,
			symbols: []string{"Cherry", "Diamond"},
			payouts: payouts,
			minBet:  1.0,
			maxBet:  5.0,
			wantErr: ErrMissingPayout,
		},
		{
			name:    "负赔率",
			reels:   3,
			rows:    1,
			symbols: []string{"Cherry"},
			payouts: map[string]float64{"Cherry": -1},
			minBet:  1.0,
			maxBet:  5.0,
			wantErr: ErrNegativePayout,
		},
		{
			name:    "最小投注大于最大投注",
			reels:   3,
			rows:    1,
			symbols: symbols,
			payouts: payouts,
			minBet:  5.0,
			maxBet:  1.0,
			wantErr: ErrInvalidBetRange,
		},
		{
			name:    "非正投注下限",
			reels:   3,
			rows:    1,
			symbols: symbols,
			payouts: payouts,
			minBet:  0,
			maxBet:  5.0,
			wantErr: ErrInvalidBetRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewPayoutConfig(tt.reels, tt.rows, tt.symbols, tt.payouts, tt.minBet, tt.maxBet)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewPayoutConfig() error = %v, want nil", err)
				}
				if cfg == nil {
					t.Fatal("NewPayoutConfig() returned nil config")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewPayoutConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("默认配置校验失败: %v", err)
	}

	if cfg.Reels != 3 || cfg.Rows != 1 {
		t.Errorf("默认行列 = %dx%d, want 1x3", cfg.Rows, cfg.Reels)
	}
	if len(cfg.Symbols) != 4 {
		t.Errorf("默认符号数 = %d, want 4", len(cfg.Symbols))
	}

	coefficient, ok := cfg.CoefficientFor(SymbolWatermelon)
	if !ok || coefficient != 40 {
		t.Errorf("西瓜赔率 = %v, want 40", coefficient)
	}
}

func TestPayoutConfig_ValidBet(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name   string
		amount float64
		want   bool
	}{
		{"下限边界", 1.0, true},
		{"上限边界", 5.0, true},
		{"范围内", 3.5, true},
		{"低于下限", 0.99, false},
		{"高于上限", 5.01, false},
		{"零投注", 0, false},
		{"负投注", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ValidBet(tt.amount); got != tt.want {
				t.Errorf("ValidBet(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

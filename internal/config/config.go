package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	InMemory        bool          `mapstructure:"in_memory"` // 使用进程内会话存储（不落库）
}

// GameConfig 游戏配置
type GameConfig struct {
	Slot    SlotConfig    `mapstructure:"slot"`
	House   HouseConfig   `mapstructure:"house"`
	Session SessionConfig `mapstructure:"session"`
}

// SlotConfig 老虎机配置
type SlotConfig struct {
	Reels   int                `mapstructure:"reels"`
	Rows    int                `mapstructure:"rows"`
	Symbols []string           `mapstructure:"symbols"`
	Payouts map[string]float64 `mapstructure:"payouts"`
	MinBet  float64            `mapstructure:"min_bet"`
	MaxBet  float64            `mapstructure:"max_bet"`
}

// HouseConfig 庄家优势配置
type HouseConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Tiers   []HouseTier `mapstructure:"tiers"`
}

// HouseTier 重抽档位（余额阈值 → 重抽概率百分比）
type HouseTier struct {
	Threshold float64 `mapstructure:"threshold"`
	Chance    int     `mapstructure:"chance"`
}

// SessionConfig 会话配置
type SessionConfig struct {
	InitialCredits   float64 `mapstructure:"initial_credits"`
	ReactivateClosed bool    `mapstructure:"reactivate_closed"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level   string            `mapstructure:"level"`
	Format  string            `mapstructure:"format"`
	Output  string            `mapstructure:"output"`
	File    LogFileConfig     `mapstructure:"file"`
	Modules map[string]string `mapstructure:"modules"`
}

// LogFileConfig 日志文件配置
type LogFileConfig struct {
	Path       string `mapstructure:"path"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

var (
	cfg  *Config
	once sync.Once
	mu   sync.RWMutex
	v    *viper.Viper
)

// Init 初始化配置
func Init(configPath string) error {
	var err error
	once.Do(func() {
		v = viper.New()

		// 设置配置文件路径
		if configPath != "" {
			v.SetConfigFile(configPath)
		} else {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath("./config")
			v.AddConfigPath(".")
		}

		// 设置环境变量前缀
		v.SetEnvPrefix("CASINO_JACKPOT")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		// 设置默认值
		setDefaults(v)

		// 读取配置文件
		if err = v.ReadInConfig(); err != nil {
			// 如果配置文件不存在，使用默认配置
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return
			}
			err = nil
		}

		// 解析配置到结构体
		cfg = &Config{}
		if err = v.Unmarshal(cfg); err != nil {
			return
		}

		// 启动时校验游戏配置，失败立即报错而不是静默回退
		err = validateGame(&cfg.Game)
	})

	return err
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// 服务器默认配置
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "development")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// 数据库默认配置
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./data/casino-jackpot.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.log_level", "info")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.in_memory", false)

	// 游戏默认配置
	v.SetDefault("game.slot.reels", 3)
	v.SetDefault("game.slot.rows", 1)
	v.SetDefault("game.slot.symbols", []string{"Cherry", "Lemon", "Orange", "Watermelon"})
	v.SetDefault("game.slot.payouts", map[string]float64{
		"Cherry":     10,
		"Lemon":      20,
		"Orange":     30,
		"Watermelon": 40,
	})
	v.SetDefault("game.slot.min_bet", 1.0)
	v.SetDefault("game.slot.max_bet", 5.0)

	// 庄家优势默认配置
	v.SetDefault("game.house.enabled", false)
	v.SetDefault("game.house.tiers", []map[string]interface{}{
		{"threshold": 40.0, "chance": 30},
		{"threshold": 60.0, "chance": 60},
	})

	// 会话默认配置
	v.SetDefault("game.session.initial_credits", 10.0)
	v.SetDefault("game.session.reactivate_closed", false)

	// 日志默认配置
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "both")
	v.SetDefault("log.file.path", "./logs")
	v.SetDefault("log.file.filename", "casino-jackpot.log")
	v.SetDefault("log.file.max_size", 100)
	v.SetDefault("log.file.max_age", 30)
	v.SetDefault("log.file.max_backups", 7)
	v.SetDefault("log.file.compress", true)
}

// validateGame 校验游戏配置
func validateGame(g *GameConfig) error {
	if g.Slot.Reels < 1 || g.Slot.Rows < 1 {
		return fmt.Errorf("无效的卷轴配置: reels=%d rows=%d", g.Slot.Reels, g.Slot.Rows)
	}
	if len(g.Slot.Symbols) == 0 {
		return fmt.Errorf("符号表不能为空")
	}
	if g.Slot.MinBet <= 0 || g.Slot.MaxBet <= 0 || g.Slot.MinBet > g.Slot.MaxBet {
		return fmt.Errorf("无效的投注范围: min=%v max=%v", g.Slot.MinBet, g.Slot.MaxBet)
	}
	for _, name := range g.Slot.Symbols {
		payout, ok := g.Slot.Payouts[name]
		if !ok {
			return fmt.Errorf("符号 %s 缺少赔率配置", name)
		}
		if payout < 0 {
			return fmt.Errorf("符号 %s 的赔率不能为负: %v", name, payout)
		}
	}
	for _, tier := range g.House.Tiers {
		if tier.Chance < 0 || tier.Chance > 100 {
			return fmt.Errorf("无效的重抽概率: %d", tier.Chance)
		}
	}
	if g.Session.InitialCredits <= 0 {
		return fmt.Errorf("无效的默认初始余额: %v", g.Session.InitialCredits)
	}
	return nil
}

// Get 获取配置实例
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Watch 监听配置文件变化
func Watch(callback func(*Config)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()

		newCfg := &Config{}
		if err := v.Unmarshal(newCfg); err != nil {
			fmt.Printf("配置重载失败: %v\n", err)
			return
		}

		if err := validateGame(&newCfg.Game); err != nil {
			fmt.Printf("配置重载失败: %v\n", err)
			return
		}

		cfg = newCfg

		if callback != nil {
			callback(cfg)
		}

		fmt.Println("配置已重新加载")
	})
}

// GetString 获取字符串配置
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt 获取整数配置
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool 获取布尔配置
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 获取浮点数配置
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// GetDuration 获取时间间隔配置
func GetDuration(key string) time.Duration {
	return v.GetDuration(key)
}

// IsSet 检查配置项是否存在
func IsSet(key string) bool {
	return v.IsSet(key)
}

// Set 动态设置配置值
func Set(key string, value interface{}) {
	v.Set(key, value)
}

package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger         `mapstructure:"logger"`
	DB           Database       `mapstructure:"database"`
	API          API            `mapstructure:"api"`
	Backtest     Backtest       `mapstructure:"backtest"`
	Strategy     Strategy       `mapstructure:"strategy"`
	YahooFinance YahooFinance   `mapstructure:"yahoo_finance"`
	Cache        Cache          `mapstructure:"cache"`
	Scheduler    Scheduler      `mapstructure:"scheduler"`
	Telegram     TelegramConfig `mapstructure:"telegram"`
	Gemini       GeminiConfig   `mapstructure:"gemini"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

// Backtest memuat parameter simulasi untuk execution engine dan metrics.
type Backtest struct {
	InitialCash           float64 `mapstructure:"initial_cash"`
	CommissionPct         float64 `mapstructure:"commission_pct"`
	SlippagePct           float64 `mapstructure:"slippage_pct"`
	RiskFreeRatePerPeriod float64 `mapstructure:"risk_free_rate_per_period"`
	PeriodsPerYear        int     `mapstructure:"periods_per_year"`
	ExcludeForcedClose    bool    `mapstructure:"exclude_forced_close"`
}

// Strategy memuat parameter signal generator beserta rule yang aktif.
type Strategy struct {
	RSIOversold     float64 `mapstructure:"rsi_oversold"`
	RSIOverbought   float64 `mapstructure:"rsi_overbought"`
	RSIMode         string  `mapstructure:"rsi_mode"` // "threshold" atau "crossover"
	RSIPeriod       int     `mapstructure:"rsi_period"`
	SMAShortWindow  int     `mapstructure:"sma_short_window"`
	SMALongWindow   int     `mapstructure:"sma_long_window"`
	MACDFastPeriod  int     `mapstructure:"macd_fast_period"`
	MACDSlowPeriod  int     `mapstructure:"macd_slow_period"`
	MACDSignal      int     `mapstructure:"macd_signal_period"`
	AggregationMode string  `mapstructure:"aggregation_mode"` // unanimous, any, majority
	EnableRSI       bool    `mapstructure:"enable_rsi"`
	EnableMACD      bool    `mapstructure:"enable_macd"`
	EnableSMA       bool    `mapstructure:"enable_sma"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	CandleExpiration  time.Duration `mapstructure:"candle_expiration"`
}

type Scheduler struct {
	Enabled        bool     `mapstructure:"enabled"`
	CronExpression string   `mapstructure:"cron_expression"`
	Symbols        []string `mapstructure:"symbols"`
	Range          string   `mapstructure:"range"`
	Interval       string   `mapstructure:"interval"`
	MaxConcurrency int      `mapstructure:"max_concurrency"`
}

type TelegramConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	BotToken            string        `mapstructure:"bot_token"`
	ChatID              int64         `mapstructure:"chat_id"`
	TimeoutDuration     time.Duration `mapstructure:"timeout_duration"`
	MaxRequestPerSecond int           `mapstructure:"max_request_per_second"`
}

type GeminiConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	APIKey              string        `mapstructure:"api_key"`
	BaseModel           string        `mapstructure:"base_model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")

	viper.SetDefault("api.port", 8080)

	viper.SetDefault("backtest.initial_cash", 100000.0)
	viper.SetDefault("backtest.commission_pct", 0.0)
	viper.SetDefault("backtest.slippage_pct", 0.0)
	viper.SetDefault("backtest.risk_free_rate_per_period", 0.0)
	viper.SetDefault("backtest.periods_per_year", 252)
	viper.SetDefault("backtest.exclude_forced_close", false)

	viper.SetDefault("strategy.rsi_oversold", 30.0)
	viper.SetDefault("strategy.rsi_overbought", 70.0)
	viper.SetDefault("strategy.rsi_mode", "threshold")
	viper.SetDefault("strategy.rsi_period", 14)
	viper.SetDefault("strategy.sma_short_window", 20)
	viper.SetDefault("strategy.sma_long_window", 50)
	viper.SetDefault("strategy.macd_fast_period", 12)
	viper.SetDefault("strategy.macd_slow_period", 26)
	viper.SetDefault("strategy.macd_signal_period", 9)
	viper.SetDefault("strategy.aggregation_mode", "unanimous")
	viper.SetDefault("strategy.enable_rsi", true)
	viper.SetDefault("strategy.enable_macd", true)
	viper.SetDefault("strategy.enable_sma", true)

	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.timeout", 30*time.Second)
	viper.SetDefault("yahoo_finance.max_request_per_minute", 30)

	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("cache.candle_expiration", 15*time.Minute)

	viper.SetDefault("scheduler.enabled", false)
	viper.SetDefault("scheduler.cron_expression", "0 18 * * 1-5")
	viper.SetDefault("scheduler.range", "1y")
	viper.SetDefault("scheduler.interval", "1d")
	viper.SetDefault("scheduler.max_concurrency", 3)

	viper.SetDefault("telegram.enabled", false)
	viper.SetDefault("telegram.timeout_duration", 10*time.Second)
	viper.SetDefault("telegram.max_request_per_second", 1)

	viper.SetDefault("gemini.enabled", false)
	viper.SetDefault("gemini.base_model", "gemini-2.0-flash")
	viper.SetDefault("gemini.timeout", 60*time.Second)
	viper.SetDefault("gemini.max_request_per_minute", 10)
	viper.SetDefault("gemini.max_token_per_minute", 250000)
}

func Load() (*Config, error) {
	// .env opsional, hanya untuk pengembangan lokal.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Tanpa file config aplikasi tetap jalan dengan default + env.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

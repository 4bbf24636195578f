package config

import (
	"github.com/blues/gms/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Revenue  RevenueConfig  `mapstructure:"revenue"`
	Outbox   OutboxConfig   `mapstructure:"outbox"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// PaymentConfig 支付服务商配置
type PaymentConfig struct {
	BaseURL       string `mapstructure:"base_url"`       // 服务商API地址
	APIKey        string `mapstructure:"api_key"`        // API密钥
	WebhookSecret string `mapstructure:"webhook_secret"` // webhook签名密钥
	Timeout       int    `mapstructure:"timeout"`        // 请求超时（秒）
}

// RevenueConfig 收益分配配置
type RevenueConfig struct {
	MaxLineageDepth int `mapstructure:"max_lineage_depth"` // 衍生链分成的最大层数
}

// OutboxConfig 出站事件配置
type OutboxConfig struct {
	Workers      int    `mapstructure:"workers"`       // 派发协程数
	BatchSize    int    `mapstructure:"batch_size"`    // 每轮处理条数
	MaxAttempts  int    `mapstructure:"max_attempts"`  // 最大重试次数
	AnalyticsURL string `mapstructure:"analytics_url"` // 分析事件接收地址
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/gms")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "grove")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("payment.base_url", "https://api.payment.example.com")
	viper.SetDefault("payment.timeout", 15)
	viper.SetDefault("revenue.max_lineage_depth", 1)
	viper.SetDefault("outbox.workers", 4)
	viper.SetDefault("outbox.batch_size", 50)
	viper.SetDefault("outbox.max_attempts", 8)
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}

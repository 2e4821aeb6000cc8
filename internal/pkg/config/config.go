package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Topic   TopicConfig   `mapstructure:"topic"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Version  string `mapstructure:"version"`
	LogLevel string `mapstructure:"log_level"`
	WorkerID int64  `mapstructure:"worker_id"` // 雪花 ID 节点号，多实例部署须互不相同
}

// StorageConfig 存储配置
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // sqlite 或 mysql
	DBPath string `mapstructure:"db_path"`
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig 计数存储配置；Addr 为空时退化为进程内计数
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// TopicConfig 话题相关的运营可调参数
type TopicConfig struct {
	CreateLimitIntervalSec int      `mapstructure:"create_limit_interval_sec"` // 0 关闭分钟轴
	CreateHourLimitCount   int64    `mapstructure:"create_hour_limit_count"`   // 0 关闭小时轴
	BanWordsInBody         []string `mapstructure:"ban_words_in_body"`
	ActiveFreshDays        int      `mapstructure:"active_fresh_days"` // 活跃标记新鲜窗口（天）
}

// CreateInterval 分钟轴间隔
func (c TopicConfig) CreateInterval() time.Duration {
	return time.Duration(c.CreateLimitIntervalSec) * time.Second
}

// FreshWindow 活跃标记新鲜窗口
func (c TopicConfig) FreshWindow() time.Duration {
	return time.Duration(c.ActiveFreshDays) * 24 * time.Hour
}

// Load 加载配置文件
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// 设置默认值
	setDefaults(v)

	// 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// 默认查找路径
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// 支持环境变量
	v.SetEnvPrefix("TOPICHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 读取配置文件；不存在时使用默认值启动
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			slog.Warn("配置文件未找到，使用默认配置")
		} else {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	} else {
		slog.Info("加载配置文件", "path", v.ConfigFileUsed())
	}

	// 解析配置
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	return &cfg, nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "topichub")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.worker_id", 0)

	// Storage
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.db_path", "./data/topichub.db")

	// Redis
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)

	// Topic
	v.SetDefault("topic.create_limit_interval_sec", 0)
	v.SetDefault("topic.create_hour_limit_count", 10)
	v.SetDefault("topic.ban_words_in_body", []string{})
	v.SetDefault("topic.active_fresh_days", 30)
}

// SetupLogger 根据配置设置日志级别
func SetupLogger(level string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

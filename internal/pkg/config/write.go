package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Default 默认配置
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:     "topichub",
			Version:  "0.1.0",
			LogLevel: "info",
			WorkerID: 0,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DBPath: "./data/topichub.db",
		},
		Topic: TopicConfig{
			CreateLimitIntervalSec: 0,
			CreateHourLimitCount:   10,
			BanWordsInBody:         []string{},
			ActiveFreshDays:        30,
		},
	}
}

// DefaultConfigPath 可执行文件旁的默认配置路径
func DefaultConfigPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("获取可执行文件路径失败: %w", err)
	}
	exeDir := filepath.Dir(exe)
	return filepath.Join(exeDir, "config", "config.yaml"), nil
}

// WriteFile 把配置写回文件
func WriteFile(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("cfg 不能为空")
	}
	if path == "" {
		return fmt.Errorf("path 不能为空")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	payload := map[string]any{
		"app": map[string]any{
			"name":      cfg.App.Name,
			"version":   cfg.App.Version,
			"log_level": cfg.App.LogLevel,
			"worker_id": cfg.App.WorkerID,
		},
		"storage": map[string]any{
			"driver":  cfg.Storage.Driver,
			"db_path": cfg.Storage.DBPath,
			"dsn":     cfg.Storage.DSN,
		},
		"redis": map[string]any{
			"addr":     cfg.Redis.Addr,
			"password": cfg.Redis.Password,
			"db":       cfg.Redis.DB,
		},
		"topic": map[string]any{
			"create_limit_interval_sec": cfg.Topic.CreateLimitIntervalSec,
			"create_hour_limit_count":   cfg.Topic.CreateHourLimitCount,
			"ban_words_in_body":         cfg.Topic.BanWordsInBody,
			"active_fresh_days":         cfg.Topic.ActiveFreshDays,
		},
	}

	b, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}

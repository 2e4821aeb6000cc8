package config

import (
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// WatchFile 监听配置文件，变更时重新加载并回调。
// 用于敏感词与限流参数的热更新，加载失败时保留旧配置
func WatchFile(configPath string, onChange func(*Config)) error {
	if configPath == "" {
		return fmt.Errorf("configPath 不能为空")
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := Load(configPath)
		if err != nil {
			slog.Warn("配置热更新失败，保留旧配置", "event", e.Name, "error", err)
			return
		}
		slog.Info("配置已热更新", "event", e.Name)
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/yuqie6/topichub/internal/bootstrap"
	"github.com/yuqie6/topichub/internal/eventbus"
	"github.com/yuqie6/topichub/internal/pkg/config"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath, cfgErr := config.DefaultConfigPath()
	if cfgErr == nil {
		if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
			_ = config.WriteFile(cfgPath, config.Default())
		}
	} else {
		cfgPath = ""
	}

	core, err := bootstrap.NewCore(cfgPath)
	if err != nil {
		slog.Error("启动失败", "error", err)
		os.Exit(1)
	}
	defer core.Close()

	slog.Info("topichub 启动中...", "name", core.Cfg.App.Name, "version", core.Cfg.App.Version)
	if core.DB.SafeMode {
		slog.Warn("数据库处于安全模式", "error", core.DB.MigrationError)
	}

	// 敏感词与限流参数热更新
	if cfgPath != "" {
		if err := config.WatchFile(cfgPath, core.ApplyConfig); err != nil {
			slog.Warn("配置监听未启用", "error", err)
		}
	}

	// 事件出口：通知投递与索引重建都由外部系统完成，这里只做衔接日志。
	// 接入方替换该循环即可对接真实的投递/索引服务
	go func() {
		for evt := range core.Hub.Subscribe(ctx, 64) {
			switch evt.Type {
			case eventbus.EventNotificationCreated:
				slog.Debug("通知待投递", "data", evt.Data)
			case eventbus.EventSearchReindex:
				slog.Debug("话题待重建索引", "data", evt.Data)
			case eventbus.EventTopicCreated:
				slog.Debug("新话题", "data", evt.Data)
			}
		}
	}()

	slog.Info("topichub 已启动")

	// 监听系统信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("收到系统退出信号，正在关闭...")
	cancel()
}

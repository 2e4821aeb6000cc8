package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/yuqie6/topichub/internal/counter"
	"github.com/yuqie6/topichub/internal/eventbus"
	"github.com/yuqie6/topichub/internal/pkg/config"
	"github.com/yuqie6/topichub/internal/pkg/idgen"
	"github.com/yuqie6/topichub/internal/repository"
	"github.com/yuqie6/topichub/internal/service"
)

// Core 持有全部核心依赖
type Core struct {
	Cfg   *config.Config
	DB    *repository.Database
	Redis *redis.Client // 未配置时为 nil
	Hub   *eventbus.Hub

	Repos struct {
		Topic        *repository.TopicRepository
		Reply        *repository.ReplyRepository
		User         *repository.UserRepository
		Notification *repository.NotificationRepository
	}

	Services struct {
		Filter     *service.ContentFilter
		Admission  *service.AdmissionService
		Recency    *service.RecencyService
		Linkage    *service.LinkageService
		Moderation *service.ModerationService
		Index      *service.IndexService
		Notify     *service.NotificationService
		Topics     *service.TopicService
	}
}

// NewCore 构建核心依赖
func NewCore(cfgPath string) (*Core, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	config.SetupLogger(cfg.App.LogLevel)

	if err := idgen.Init(cfg.App.WorkerID); err != nil {
		return nil, err
	}

	db, err := repository.NewDatabase(repository.Options{
		Driver: cfg.Storage.Driver,
		DBPath: cfg.Storage.DBPath,
		DSN:    cfg.Storage.DSN,
	})
	if err != nil {
		return nil, err
	}

	c := &Core{Cfg: cfg, DB: db, Hub: eventbus.NewHub()}

	// 计数存储：配置了 Redis 用 Redis，否则退化为进程内计数（单机）
	var store counter.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("连接 Redis 失败: %w", err)
		}
		c.Redis = rdb
		store = counter.NewRedisStore(rdb)
	} else {
		store = counter.NewMemoryStore()
	}

	// Repos
	c.Repos.Topic = repository.NewTopicRepository(db.DB)
	c.Repos.Reply = repository.NewReplyRepository(db.DB)
	c.Repos.User = repository.NewUserRepository(db.DB)
	c.Repos.Notification = repository.NewNotificationRepository(db.DB)

	// Services
	c.Services.Filter = service.NewContentFilter(cfg.Topic.BanWordsInBody)
	c.Services.Admission = service.NewAdmissionService(store, service.AdmissionConfig{
		CreateInterval: cfg.Topic.CreateInterval(),
		HourLimit:      cfg.Topic.CreateHourLimitCount,
	})
	c.Services.Recency = service.NewRecencyService(cfg.Topic.FreshWindow())
	c.Services.Linkage = service.NewLinkageService(c.Repos.Topic, c.Repos.Reply, c.Services.Recency)
	c.Services.Index = service.NewIndexService(c.Hub)
	c.Services.Notify = service.NewNotificationService(c.Repos.Notification, c.Hub)
	c.Services.Moderation = service.NewModerationService(c.Repos.Topic, c.Repos.Reply, c.Services.Notify)
	c.Services.Topics = service.NewTopicService(
		c.Repos.Topic,
		c.Repos.Reply,
		c.Repos.User,
		c.Services.Filter,
		c.Services.Admission,
		c.Services.Recency,
		c.Services.Linkage,
		c.Services.Index,
		c.Services.Notify,
		c.Hub,
	)

	return c, nil
}

// ApplyConfig 配置热更新：替换运营可调参数（敏感词、限流）。
// 存储、Redis 等基础设施参数不支持热切换
func (c *Core) ApplyConfig(cfg *config.Config) {
	c.Services.Filter.SetBanWords(cfg.Topic.BanWordsInBody)
	c.Services.Admission.SetConfig(service.AdmissionConfig{
		CreateInterval: cfg.Topic.CreateInterval(),
		HourLimit:      cfg.Topic.CreateHourLimitCount,
	})
}

// Close 释放资源
func (c *Core) Close() error {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

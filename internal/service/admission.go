package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yuqie6/topichub/internal/counter"
)

// AdmissionConfig 创建频率限制配置；任一限制为 0 时对应的检查整体关闭
type AdmissionConfig struct {
	CreateInterval time.Duration // 两次创建之间的最小间隔
	HourLimit      int64         // 每小时允许创建的话题数
}

// AdmissionService 话题创建准入：短窗口节流 + 小时配额。
// 两轴互相独立：分钟轴的拒绝不影响小时计数，反之亦然
type AdmissionService struct {
	store counter.Store

	mu  sync.RWMutex
	cfg AdmissionConfig
}

// NewAdmissionService 创建准入服务
func NewAdmissionService(store counter.Store, cfg AdmissionConfig) *AdmissionService {
	return &AdmissionService{store: store, cfg: cfg}
}

// SetConfig 替换限流参数（配置热更新入口）
func (s *AdmissionService) SetConfig(cfg AdmissionConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *AdmissionService) config() AdmissionConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func minuteKey(userID int64) string { return fmt.Sprintf("topics:user:%d", userID) }
func hourKey(userID int64) string   { return fmt.Sprintf("topics:user:%d:hour", userID) }

// Admit 在话题落库前调用。返回违规列表（非空表示拒绝创建）；
// 返回 error 表示计数存储不可用，本次操作按硬失败处理，不重试
func (s *AdmissionService) Admit(ctx context.Context, userID int64) ([]Violation, error) {
	cfg := s.config()

	if cfg.CreateInterval > 0 {
		_, alive, err := s.store.Get(ctx, minuteKey(userID))
		if err != nil {
			return nil, fmt.Errorf("读取创建节流计数失败: %w", err)
		}
		if alive {
			// 键存活即窗口未过，直接拒绝且不产生任何计数变化
			return []Violation{{Field: "topic", Message: "创建太频繁，请稍后再试"}}, nil
		}
		if _, err := s.store.IncrWithExpiry(ctx, minuteKey(userID), cfg.CreateInterval); err != nil {
			return nil, fmt.Errorf("写入创建节流计数失败: %w", err)
		}
	} else {
		// 间隔为 0 视为关闭该轴，同时清掉历史残留的键
		if err := s.store.Del(ctx, minuteKey(userID)); err != nil {
			return nil, fmt.Errorf("清除创建节流计数失败: %w", err)
		}
	}

	if cfg.HourLimit > 0 {
		n, err := s.store.IncrWithExpiry(ctx, hourKey(userID), time.Hour)
		if err != nil {
			return nil, fmt.Errorf("写入小时配额计数失败: %w", err)
		}
		if n >= cfg.HourLimit {
			return []Violation{{
				Field:   "topic",
				Message: fmt.Sprintf("创建数量超限，每小时只允许创建 %d 个话题", cfg.HourLimit),
			}}, nil
		}
	}

	return nil, nil
}

// Package counter 提供带过期语义的计数存储抽象。
// 创建限流是本核心唯一跨请求共享的可变资源，同步完全依赖存储侧的
// 原子自增；两次并发创建读到同一旧值的竞态是可接受的（软节流）。
package counter

import (
	"context"
	"time"
)

// Store 过期计数存储的最小接口
type Store interface {
	// IncrWithExpiry 自增并返回新值；键首次创建时设置 ttl，
	// 已存在则保留原有过期时间（不续命，避免窗口漂移）
	IncrWithExpiry(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Get 读取当前值；键不存在或已过期时 ok 为 false
	Get(ctx context.Context, key string) (value int64, ok bool, err error)
	// Del 删除键；键不存在不算错误
	Del(ctx context.Context, key string) error
}

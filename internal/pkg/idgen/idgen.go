// Package idgen 基于雪花算法生成话题/回复 ID。
// ID 随时间单调递增，主键序即时间序，楼层与"上一条回复"查询依赖这一点。
package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.Mutex
	node *snowflake.Node
)

// Init 按节点号初始化，多实例部署时各实例节点号必须不同
func Init(workerID int64) error {
	mu.Lock()
	defer mu.Unlock()

	n, err := snowflake.NewNode(workerID)
	if err != nil {
		return fmt.Errorf("初始化雪花节点失败: %w", err)
	}
	node = n
	return nil
}

// Next 生成下一个全局唯一 ID；未显式初始化时惰性使用 0 号节点
func Next() int64 {
	mu.Lock()
	defer mu.Unlock()

	if node == nil {
		// 0 在雪花默认位宽（10 位节点号）内必然合法，NewNode(0) 不会失败
		node, _ = snowflake.NewNode(0)
	}
	return node.Generate().Int64()
}

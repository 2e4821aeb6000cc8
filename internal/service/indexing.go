package service

import (
	"github.com/yuqie6/topichub/internal/eventbus"
)

// indexedColumns 参与全文索引的列；只有它们变化才需要重建索引
var indexedColumns = map[string]struct{}{
	"title": {},
	"body":  {},
}

// IndexedChanged 判断一次保存的变更列集合是否弄脏了搜索索引。
// 节点调整、冗余字段、删除标记、活跃标记、推荐时间等再多也不算脏
func IndexedChanged(changed []string) bool {
	for _, c := range changed {
		if _, ok := indexedColumns[c]; ok {
			return true
		}
	}
	return false
}

// IndexService 保存后的索引脏位判断。核心从不直接访问索引引擎，
// 只向事件总线发重建信号，订阅方负责真正的提交
type IndexService struct {
	hub *eventbus.Hub
}

// NewIndexService 创建索引脏位服务
func NewIndexService(hub *eventbus.Hub) *IndexService {
	return &IndexService{hub: hub}
}

// AfterSave 每次保存后调用；脏则发 search.reindex 事件并返回 true
func (s *IndexService) AfterSave(topicID int64, changed []string) bool {
	if !IndexedChanged(changed) {
		return false
	}
	if s.hub != nil {
		s.hub.Publish(eventbus.Event{
			Type: eventbus.EventSearchReindex,
			Data: map[string]any{"topic_id": topicID},
		})
	}
	return true
}

// Package idgen 生成全局唯一的 snowflake id
package idgen

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	mu   sync.Mutex
)

// Init 设置节点号，多实例部署时每个实例要不同
func Init(nodeId int64) error {
	n, err := snowflake.NewNode(nodeId)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

func NextId() int64 {
	mu.Lock()
	defer mu.Unlock()
	if node == nil {
		// 未初始化时使用 1 号节点
		node, _ = snowflake.NewNode(1)
	}
	return node.Generate().Int64()
}

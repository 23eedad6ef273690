package dao

import (
	"context"

	"vaultdash/internal/model/entity"
)

type VaultDao interface {
	// 写入一条快照
	SnapshotCreate(ctx context.Context, snapshot *entity.VaultSnapshot) error
	// 按时间倒序获取最近 limit 条快照
	SnapshotList(ctx context.Context, vaultAddress string, limit int) ([]*entity.VaultSnapshot, error)
	// 只保留最近 keep 条，其余软删除，返回删除条数
	SnapshotPrune(ctx context.Context, vaultAddress string, keep int) (int64, error)
}

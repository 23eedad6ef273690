package query

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"vaultdash/internal/model/entity"
)

type vaultDao struct {
	db *gorm.DB
}

// NewVaultDao 创建 DAO
func NewVaultDao(db *gorm.DB) *vaultDao {
	return &vaultDao{
		db: db,
	}
}

func (dao *vaultDao) SnapshotCreate(ctx context.Context, snapshot *entity.VaultSnapshot) error {
	if snapshot == nil {
		return gorm.ErrInvalidData
	}
	return dao.db.WithContext(ctx).Create(snapshot).Error
}

func (dao *vaultDao) SnapshotList(ctx context.Context, vaultAddress string, limit int) ([]*entity.VaultSnapshot, error) {
	if limit <= 0 {
		limit = 100
	}
	var list []*entity.VaultSnapshot
	err := dao.db.WithContext(ctx).
		Where("vault_address = ?", strings.ToLower(vaultAddress)).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (dao *vaultDao) SnapshotPrune(ctx context.Context, vaultAddress string, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	addr := strings.ToLower(vaultAddress)

	// 找到第 keep 条的 id 作为分界，之前的全部软删除
	var boundary entity.VaultSnapshot
	err := dao.db.WithContext(ctx).
		Where("vault_address = ?", addr).
		Order("created_at DESC").
		Order("id DESC").
		Offset(keep - 1).
		Limit(1).
		Take(&boundary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	result := dao.db.WithContext(ctx).
		Where("vault_address = ? AND created_at < ?", addr, boundary.CreatedAt).
		Delete(&entity.VaultSnapshot{})
	return result.RowsAffected, result.Error
}

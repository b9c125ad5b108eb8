package store

import (
	"time"
)

// Box 定义了账本箱存储在SQLite中的持久化模型。
// 整个账本采用“每属性一列”的稀疏布局：每个(命名空间, 键)组合只存放
// 一个实体的一个属性，更新某个属性永远不需要读写它的兄弟属性。
type Box struct {
	ID uint `gorm:"primarykey"`

	// Namespace 标识这个箱所属的属性列，例如 "zwc" (僵尸胜场数)
	Namespace string `gorm:"uniqueIndex:idx_box_ns_key;not null;type:varchar(8)"`

	// Key 是箱的原始字节键，由调用者身份（和可选的实体索引）派生
	Key []byte `gorm:"column:box_key;uniqueIndex:idx_box_ns_key;not null"`

	// Value 是箱的原始字节值
	Value []byte `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

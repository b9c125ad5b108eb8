package params

import "gorm.io/gorm"

// Param 定义了存储账本全局参数的键值对表结构
type Param struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// Key 是参数的唯一键，例如 "total_lessons"
	Key string `gorm:"uniqueIndex;not null;type:varchar(255)"`

	// Value 存储参数的值
	Value string `gorm:"type:varchar(255)"`
}

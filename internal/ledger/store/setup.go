package store

import (
	"fmt"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
)

// PrimeDB 负责初始化箱存储的数据库表结构
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Box{}); err != nil {
		return fmt.Errorf("无法迁移box表: %w", err)
	}
	fmt.Println("Box数据库表迁移成功。")
	return nil
}

package treasury

import (
	"errors"
	"fmt"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/config"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
	"gorm.io/gorm"
)

// PrimeDB 负责迁移金库相关的表，并在首次启动时注入初始储备金。
func PrimeDB(cfg config.LedgerConfig) error {
	if err := database.DB.AutoMigrate(&Account{}, &Transfer{}); err != nil {
		return fmt.Errorf("无法迁移treasury表: %w", err)
	}

	var account Account
	err := database.DB.First(&account).Error
	if err == nil {
		fmt.Println("Treasury数据库表迁移成功（金库已初始化）。")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("无法读取金库账户: %w", err)
	}

	account = Account{Balance: cfg.InitialReserve}
	if err := database.DB.Create(&account).Error; err != nil {
		return fmt.Errorf("无法创建金库账户: %w", err)
	}

	fmt.Printf("金库初始化成功，初始储备金: %d。\n", cfg.InitialReserve)
	return nil
}

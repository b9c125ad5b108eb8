package params

import (
	"errors"
	"fmt"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/config"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
)

// 与链上合约createApplication一致的初始值
const (
	DefaultTotalLessons    uint64 = 50
	DefaultRewardPerLesson uint64 = 100_000
)

// PrimeDB 负责迁移params表，并在首次启动时写入账本的创建参数。
// 所有者地址只在账本尚未初始化时写入一次，之后保持不可变。
func PrimeDB(cfg config.LedgerConfig) error {
	if err := database.DB.AutoMigrate(&Param{}); err != nil {
		return fmt.Errorf("无法迁移params表: %w", err)
	}

	owner, err := GetContractOwner(database.DB)
	if err != nil {
		return fmt.Errorf("无法读取合约所有者: %w", err)
	}
	if owner != "" {
		// 账本已初始化过，创建参数不再生效
		fmt.Println("Params数据库表迁移成功（账本已初始化）。")
		return nil
	}

	if cfg.Owner == "" {
		return errors.New("配置缺少账本所有者地址 (ledger.owner)，无法初始化账本")
	}

	totalLessons := cfg.TotalLessons
	if totalLessons == 0 {
		totalLessons = DefaultTotalLessons
	}
	rewardPerLesson := cfg.RewardPerLesson
	if rewardPerLesson == 0 {
		rewardPerLesson = DefaultRewardPerLesson
	}

	if err := SetValue(database.DB, ContractOwnerKey, cfg.Owner); err != nil {
		return fmt.Errorf("无法写入合约所有者: %w", err)
	}
	if err := SetUint64(database.DB, TotalUsersKey, 0); err != nil {
		return err
	}
	if err := SetUint64(database.DB, TotalZombiesKey, 0); err != nil {
		return err
	}
	if err := SetUint64(database.DB, TotalLessonsKey, totalLessons); err != nil {
		return err
	}
	if err := SetUint64(database.DB, RewardPerLessonKey, rewardPerLesson); err != nil {
		return err
	}

	fmt.Printf("账本创建参数初始化成功: 所有者=%s, 课程总数=%d, 每课奖励=%d。\n",
		cfg.Owner, totalLessons, rewardPerLesson)
	return nil
}

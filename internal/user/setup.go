package user

import (
	"encoding/json"
	"fmt"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/store"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
)

// WarmupCache 从箱存储加载所有已注册的地址，
// 预热Redis的注册集合和统计镜像。
func WarmupCache() error {
	keys, err := store.Keys(database.DB, store.NSUserRegistered)
	if err != nil {
		return fmt.Errorf("无法从箱存储读取注册用户: %w", err)
	}

	if len(keys) == 0 {
		fmt.Println("无现有用户数据，无需预热用户缓存。")
		return nil
	}

	pipe := database.RDB.Pipeline()
	// 先清空旧的缓存，确保数据一致性
	pipe.Del(database.Ctx, RegisteredUsersKey)
	pipe.Del(database.Ctx, StatsKey)

	for _, key := range keys {
		address := string(key)
		pipe.SAdd(database.Ctx, RegisteredUsersKey, address)

		stats, err := statsFromStore(database.DB, address)
		if err != nil {
			return fmt.Errorf("无法读取用户 %s 的统计数据: %w", address, err)
		}
		statsJSON, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		pipe.HSet(database.Ctx, StatsKey, address, statsJSON)
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热用户缓存到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个用户到Redis。\n", len(keys))
	return nil
}

// PrimeCachedDB 是user模块的初始化总入口。
// 用户状态全部存放在箱存储中，这里只需要预热缓存。
func PrimeCachedDB() error {
	return WarmupCache()
}

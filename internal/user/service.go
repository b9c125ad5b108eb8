package user

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/params"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/store"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/treasury"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
	"gorm.io/gorm"
)

// Stats 定义了getUserStats返回的六项计数器。
// 未注册用户的所有字段均为零。
type Stats struct {
	ZombieCount   uint64 `json:"zombieCount"`
	CurrentLesson uint64 `json:"currentLesson"`
	TotalScore    uint64 `json:"totalScore"`
	TotalRewards  uint64 `json:"totalRewards"`
	LastActive    uint64 `json:"lastActive"`
	RewardCount   uint64 `json:"rewardCount"`
}

// isRegisteredTx 在事务中检查注册标志箱。
func isRegisteredTx(tx *gorm.DB, address string) (bool, error) {
	v, ok, err := store.GetUint64(tx, store.NSUserRegistered, store.UserKey(address))
	if err != nil {
		return false, err
	}
	return ok && v == 1, nil
}

// AssertRegisteredTx 供zombie和lesson模块在各自的变更操作开头调用。
func AssertRegisteredTx(tx *gorm.DB, address string) error {
	registered, err := isRegisteredTx(tx, address)
	if err != nil {
		return err
	}
	if !registered {
		return ledger.ErrNotRegistered
	}
	return nil
}

// TouchActivityTx 将用户的最后活跃时间更新为当前时间。
// 它只被各变更操作在成功路径的末尾调用，不单独对外暴露。
func TouchActivityTx(tx *gorm.DB, address string) error {
	now := uint64(time.Now().Unix())
	return store.SetUint64(tx, store.NSUserLastActive, store.UserKey(address), now)
}

// AwardRewardTx 是唯一的奖励发放例程，被课程完成、里程碑和升级三条
// 路径共用：更新用户的奖励计数箱，并通过金库发出对外转账。
// 它运行在触发操作自己的事务里，转账失败时全部记账一并回滚。
func AwardRewardTx(tx *gorm.DB, address string, amount uint64, kind string) error {
	userKey := store.UserKey(address)

	totalRewards, _, err := store.GetUint64(tx, store.NSUserTotalRewards, userKey)
	if err != nil {
		return err
	}
	if err := store.SetUint64(tx, store.NSUserTotalRewards, userKey, totalRewards+amount); err != nil {
		return err
	}

	rewardCount, _, err := store.GetUint64(tx, store.NSUserRewardCount, userKey)
	if err != nil {
		return err
	}
	if err := store.SetUint64(tx, store.NSUserRewardCount, userKey, rewardCount+1); err != nil {
		return err
	}

	return treasury.Issue(tx, address, amount, kind)
}

// Register 注册一个新用户，初始化其全部七个属性箱并递增全局用户计数。
func Register(address string, budget uint64) error {
	err := ledger.Execute(budget, ledger.CostRegister, func(tx *gorm.DB) error {
		registered, err := isRegisteredTx(tx, address)
		if err != nil {
			return err
		}
		if registered {
			return ledger.ErrAlreadyRegistered
		}

		userKey := store.UserKey(address)
		now := uint64(time.Now().Unix())

		if err := store.SetUint64(tx, store.NSUserRegistered, userKey, 1); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSUserZombieCount, userKey, 0); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSUserLesson, userKey, 1); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSUserScore, userKey, 0); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSUserLastActive, userKey, now); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSUserTotalRewards, userKey, 0); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSUserRewardCount, userKey, 0); err != nil {
			return err
		}

		return params.IncrTotalUsers(tx)
	})
	if err != nil {
		return err
	}

	cacheRegisteredUser(address)
	RefreshStatsCache(address)
	return nil
}

// IsRegistered 检查一个地址是否已注册。
// 优先查询Redis缓存以获得最高性能，缓存不可用时回退到箱存储。
func IsRegistered(address string) (bool, error) {
	if database.RDB != nil && database.IsRedisHealthy() {
		exists, err := database.RDB.SIsMember(database.Ctx, RegisteredUsersKey, address).Result()
		if err == nil {
			return exists, nil
		}
		fmt.Printf("检查Redis用户缓存时出错，回退到数据库: %v\n", err)
	}
	return isRegisteredTx(database.DB, address)
}

// statsFromStore 从箱存储组装一个用户的统计数据。
func statsFromStore(db *gorm.DB, address string) (Stats, error) {
	registered, err := isRegisteredTx(db, address)
	if err != nil || !registered {
		return Stats{}, err
	}

	userKey := store.UserKey(address)
	var stats Stats
	fields := []struct {
		namespace string
		target    *uint64
	}{
		{store.NSUserZombieCount, &stats.ZombieCount},
		{store.NSUserLesson, &stats.CurrentLesson},
		{store.NSUserScore, &stats.TotalScore},
		{store.NSUserTotalRewards, &stats.TotalRewards},
		{store.NSUserLastActive, &stats.LastActive},
		{store.NSUserRewardCount, &stats.RewardCount},
	}
	for _, f := range fields {
		v, _, err := store.GetUint64(db, f.namespace, userKey)
		if err != nil {
			return Stats{}, err
		}
		*f.target = v
	}
	return stats, nil
}

// GetUserStats 返回一个用户的六项统计数据，未注册时全部为零。
// 优先读取Redis镜像，镜像不可用或未命中时回退到箱存储。
func GetUserStats(address string) (Stats, error) {
	if database.RDB != nil && database.IsRedisHealthy() {
		statsJSON, err := database.RDB.HGet(database.Ctx, StatsKey, address).Result()
		if err == nil {
			var stats Stats
			if err := json.Unmarshal([]byte(statsJSON), &stats); err == nil {
				return stats, nil
			}
		}
	}
	return statsFromStore(database.DB, address)
}

// cacheRegisteredUser 将新注册的地址写入Redis缓存。
// 缓存只是镜像，写入失败不影响已提交的账本状态。
func cacheRegisteredUser(address string) {
	if database.RDB == nil || !database.IsRedisHealthy() {
		return
	}
	if err := database.RDB.SAdd(database.Ctx, RegisteredUsersKey, address).Err(); err != nil {
		fmt.Printf("警告: 无法将新用户 %s 添加到Redis缓存: %v\n", address, err)
	}
}

// RefreshStatsCache 用箱存储中的最新数据刷新一个用户的统计镜像。
// 各变更操作在事务提交后调用它；失败只影响读取性能，不影响正确性。
func RefreshStatsCache(address string) {
	if database.RDB == nil || !database.IsRedisHealthy() {
		return
	}
	stats, err := statsFromStore(database.DB, address)
	if err != nil {
		fmt.Printf("警告: 无法读取用户 %s 的统计数据用于刷新缓存: %v\n", address, err)
		return
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := database.RDB.HSet(database.Ctx, StatsKey, address, statsJSON).Err(); err != nil {
		fmt.Printf("警告: 无法刷新用户 %s 的统计缓存: %v\n", address, err)
	}
}

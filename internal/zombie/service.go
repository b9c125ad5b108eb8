package zombie

import (
	"time"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/params"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/store"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/treasury"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/user"
	"gorm.io/gorm"
)

// 僵尸名字限制为1到32字节，与链上合约一致
const maxNameLength = 32

func validateName(name string) error {
	if len(name) == 0 || len(name) > maxNameLength {
		return ledger.ErrInvalidInput
	}
	return nil
}

// assertValidIndexTx 校验僵尸索引属于调用者当前拥有的范围，
// 并返回派生出的僵尸箱键。
func assertValidIndexTx(tx *gorm.DB, address string, zombieIndex uint64) ([]byte, error) {
	zombieCount, _, err := store.GetUint64(tx, store.NSUserZombieCount, store.UserKey(address))
	if err != nil {
		return nil, err
	}
	if zombieIndex >= zombieCount {
		return nil, ledger.ErrInvalidIndex
	}
	return store.ZombieKey(address, zombieIndex), nil
}

// CreateZombie 为调用者创建一个新僵尸，返回分配到的索引。
func CreateZombie(address, name string, dna uint64, budget uint64) (uint64, error) {
	var zombieIndex uint64
	err := ledger.Execute(budget, ledger.CostCreateZombie, func(tx *gorm.DB) error {
		if err := user.AssertRegisteredTx(tx, address); err != nil {
			return err
		}
		if dna == 0 {
			return ledger.ErrInvalidInput
		}
		if err := validateName(name); err != nil {
			return err
		}

		userKey := store.UserKey(address)
		zombieCount, _, err := store.GetUint64(tx, store.NSUserZombieCount, userKey)
		if err != nil {
			return err
		}
		zombieIndex = zombieCount
		zombieKey := store.ZombieKey(address, zombieIndex)
		now := uint64(time.Now().Unix())

		if err := store.Set(tx, store.NSZombieName, zombieKey, []byte(name)); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSZombieLevel, zombieKey, 1); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSZombieDna, zombieKey, dna); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSZombieWinCount, zombieKey, 0); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSZombieLossCount, zombieKey, 0); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSZombieCreatedAt, zombieKey, now); err != nil {
			return err
		}

		if err := store.SetUint64(tx, store.NSUserZombieCount, userKey, zombieIndex+1); err != nil {
			return err
		}
		if err := params.IncrTotalZombies(tx); err != nil {
			return err
		}

		return user.TouchActivityTx(tx, address)
	})
	if err != nil {
		return 0, err
	}

	user.RefreshStatsCache(address)
	return zombieIndex, nil
}

// RenameZombie 修改一个僵尸的名字，只触碰名字箱。
func RenameZombie(address string, zombieIndex uint64, newName string, budget uint64) error {
	err := ledger.Execute(budget, ledger.CostRename, func(tx *gorm.DB) error {
		if err := user.AssertRegisteredTx(tx, address); err != nil {
			return err
		}
		zombieKey, err := assertValidIndexTx(tx, address, zombieIndex)
		if err != nil {
			return err
		}
		if err := validateName(newName); err != nil {
			return err
		}

		if err := store.Set(tx, store.NSZombieName, zombieKey, []byte(newName)); err != nil {
			return err
		}
		return user.TouchActivityTx(tx, address)
	})
	if err != nil {
		return err
	}

	user.RefreshStatsCache(address)
	return nil
}

// RecordBattle 记录一场战斗的结果。获胜时，每当累计胜场数达到5的
// 正整数倍，自动向调用者发放固定的里程碑奖励。发放是达到里程碑的
// 无条件副作用，与战斗记录同属一个原子操作。
// 返回本次调用是否触发了里程碑奖励。
func RecordBattle(address string, zombieIndex uint64, result BattleResult, budget uint64) (bool, error) {
	var milestoneIssued bool
	err := ledger.Execute(budget, ledger.CostRecordBattle, func(tx *gorm.DB) error {
		if err := user.AssertRegisteredTx(tx, address); err != nil {
			return err
		}
		zombieKey, err := assertValidIndexTx(tx, address, zombieIndex)
		if err != nil {
			return err
		}

		switch result {
		case ResultWin:
			winCount, _, err := store.GetUint64(tx, store.NSZombieWinCount, zombieKey)
			if err != nil {
				return err
			}
			newWins := winCount + 1
			if err := store.SetUint64(tx, store.NSZombieWinCount, zombieKey, newWins); err != nil {
				return err
			}
			if newWins%5 == 0 {
				if err := user.AwardRewardTx(tx, address, ledger.MilestoneReward, treasury.KindMilestoneBonus); err != nil {
					return err
				}
				milestoneIssued = true
			}
		case ResultLoss:
			lossCount, _, err := store.GetUint64(tx, store.NSZombieLossCount, zombieKey)
			if err != nil {
				return err
			}
			if err := store.SetUint64(tx, store.NSZombieLossCount, zombieKey, lossCount+1); err != nil {
				return err
			}
		default:
			return ledger.ErrInvalidInput
		}

		return user.TouchActivityTx(tx, address)
	})
	if err != nil {
		return false, err
	}

	user.RefreshStatsCache(address)
	return milestoneIssued, nil
}

// LevelUpZombie 将一个僵尸升一级。升级要求累计胜场数达到当前等级的
// 3倍；成功时等级恰好加1，并发放固定的升级奖励。返回新的等级。
func LevelUpZombie(address string, zombieIndex uint64, budget uint64) (uint64, error) {
	var newLevel uint64
	err := ledger.Execute(budget, ledger.CostLevelUp, func(tx *gorm.DB) error {
		if err := user.AssertRegisteredTx(tx, address); err != nil {
			return err
		}
		zombieKey, err := assertValidIndexTx(tx, address, zombieIndex)
		if err != nil {
			return err
		}

		currentLevel, _, err := store.GetUint64(tx, store.NSZombieLevel, zombieKey)
		if err != nil {
			return err
		}
		winCount, _, err := store.GetUint64(tx, store.NSZombieWinCount, zombieKey)
		if err != nil {
			return err
		}

		winsRequired := currentLevel * 3
		if winCount < winsRequired {
			return ledger.ErrInsufficientWins
		}

		newLevel = currentLevel + 1
		if err := store.SetUint64(tx, store.NSZombieLevel, zombieKey, newLevel); err != nil {
			return err
		}
		if err := user.AwardRewardTx(tx, address, ledger.LevelUpBonus, treasury.KindLevelUpBonus); err != nil {
			return err
		}

		return user.TouchActivityTx(tx, address)
	})
	if err != nil {
		return 0, err
	}

	user.RefreshStatsCache(address)
	return newLevel, nil
}

// GetZombie 读取一个僵尸的完整视图。名字箱不存在时视为僵尸不存在。
func GetZombie(address string, zombieIndex uint64) (*Zombie, error) {
	db := database.DB
	zombieKey := store.ZombieKey(address, zombieIndex)

	nameBytes, ok, err := store.Get(db, store.NSZombieName, zombieKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ledger.ErrNotFound
	}

	z := &Zombie{Name: string(nameBytes)}
	fields := []struct {
		namespace string
		target    *uint64
	}{
		{store.NSZombieLevel, &z.Level},
		{store.NSZombieDna, &z.Dna},
		{store.NSZombieWinCount, &z.WinCount},
		{store.NSZombieLossCount, &z.LossCount},
		{store.NSZombieCreatedAt, &z.CreatedAt},
	}
	for _, f := range fields {
		v, _, err := store.GetUint64(db, f.namespace, zombieKey)
		if err != nil {
			return nil, err
		}
		*f.target = v
	}
	return z, nil
}

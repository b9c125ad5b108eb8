package admin

import (
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/params"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/treasury"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
	"gorm.io/gorm"
)

// ContractStats 是全局统计的只读视图
type ContractStats struct {
	TotalUsers      uint64 `json:"totalUsers"`
	TotalZombies    uint64 `json:"totalZombies"`
	TotalLessons    uint64 `json:"totalLessons"`
	RewardPerLesson uint64 `json:"rewardPerLesson"`
	TreasuryBalance uint64 `json:"treasuryBalance"`
}

// assertOwnerTx 校验调用者就是部署时固化的管理员地址。
// 管理员身份不可转移，这里没有也不会有ACL。
func assertOwnerTx(tx *gorm.DB, caller string) error {
	owner, err := params.GetContractOwner(tx)
	if err != nil {
		return err
	}
	if caller != owner {
		return ledger.ErrUnauthorized
	}
	return nil
}

// UpdateRewardPerLesson 修改每课基准奖励。只影响之后的课程完成，
// 已发放的奖励不受影响。
func UpdateRewardPerLesson(caller string, value uint64) error {
	return ledger.ExecuteAdmin(func(tx *gorm.DB) error {
		if err := assertOwnerTx(tx, caller); err != nil {
			return err
		}
		if value == 0 {
			return ledger.ErrInvalidInput
		}
		return params.SetRewardPerLesson(tx, value)
	})
}

// UpdateTotalLessons 修改课程总数。只允许扩充，不允许缩减，
// 否则已完成的进度可能越界。
func UpdateTotalLessons(caller string, value uint64) error {
	return ledger.ExecuteAdmin(func(tx *gorm.DB) error {
		if err := assertOwnerTx(tx, caller); err != nil {
			return err
		}
		current, err := params.GetTotalLessons(tx)
		if err != nil {
			return err
		}
		if value < current {
			return ledger.ErrInvalidInput
		}
		return params.SetTotalLessons(tx, value)
	})
}

// FundContract 向资金池注入储备
func FundContract(caller string, amount uint64) error {
	return ledger.ExecuteAdmin(func(tx *gorm.DB) error {
		if err := assertOwnerTx(tx, caller); err != nil {
			return err
		}
		if amount == 0 {
			return ledger.ErrInvalidInput
		}
		return treasury.Fund(tx, caller, amount)
	})
}

// EmergencyWithdraw 从资金池向管理员地址紧急提取指定数额
func EmergencyWithdraw(caller string, amount uint64) error {
	return ledger.ExecuteAdmin(func(tx *gorm.DB) error {
		if err := assertOwnerTx(tx, caller); err != nil {
			return err
		}
		if amount == 0 {
			return ledger.ErrInvalidInput
		}
		return treasury.Issue(tx, caller, amount, treasury.KindEmergencyWithdraw)
	})
}

// GetContractStats 返回全局统计。统计直接从持久层读取，
// 不经过Redis镜像，管理端读取量小且要求权威数据。
func GetContractStats() (*ContractStats, error) {
	db := database.DB

	totalUsers, err := params.GetTotalUsers(db)
	if err != nil {
		return nil, err
	}
	totalZombies, err := params.GetTotalZombies(db)
	if err != nil {
		return nil, err
	}
	totalLessons, err := params.GetTotalLessons(db)
	if err != nil {
		return nil, err
	}
	rewardPerLesson, err := params.GetRewardPerLesson(db)
	if err != nil {
		return nil, err
	}
	balance, err := treasury.GetBalance(db)
	if err != nil {
		return nil, err
	}

	return &ContractStats{
		TotalUsers:      totalUsers,
		TotalZombies:    totalZombies,
		TotalLessons:    totalLessons,
		RewardPerLesson: rewardPerLesson,
		TreasuryBalance: balance,
	}, nil
}

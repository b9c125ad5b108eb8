package treasury

import (
	"time"

	"gorm.io/gorm"
)

// Account 定义了金库的储备金账户。这张表中应该只有一条记录。
// 所有奖励发放和紧急提取都从这条记录的余额中扣除。
type Account struct {
	ID        uint `gorm:"primarykey"`
	Balance   uint64
	UpdatedAt time.Time
}

// TransferDirection 定义了资金流动方向的枚举类型
type TransferDirection string

const (
	// DirectionOut 表示从金库流向某个地址（奖励发放、提取）
	DirectionOut TransferDirection = "OUT"
	// DirectionIn 表示从所有者流入金库（注资）
	DirectionIn TransferDirection = "IN"
)

// 转账类别，记录每笔转账的触发来源
const (
	KindLessonReward      = "lesson_reward"
	KindMilestoneBonus    = "milestone_bonus"
	KindLevelUpBonus      = "levelup_bonus"
	KindEmergencyWithdraw = "emergency_withdraw"
	KindFunding           = "funding"
)

// Transfer 定义了单笔价值转移的持久化记录。
// 链上版本通过内部支付交易天然可审计；这里用转账流水表提供同等的审计能力。
type Transfer struct {
	gorm.Model

	// TransferID 是转账的UUID v7标识
	TransferID string `gorm:"uniqueIndex;type:varchar(36)" json:"transfer_id"`

	// Address 是对端钱包地址
	Address string `gorm:"index;type:varchar(58)" json:"address"`

	// Amount 是转账金额（奖励单位）
	Amount uint64 `json:"amount"`

	// Direction 记录资金流动方向
	Direction TransferDirection `json:"direction"`

	// Kind 记录转账的触发来源
	Kind string `json:"kind"`
}

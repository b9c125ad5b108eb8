package ledger

// 各操作的执行预算成本，沿用链上合约ensureBudget的数值。
// 写入量大的操作（注册、创建僵尸、完成课程）需要预留更大的预算；
// 预算检查是纯前置检查，发生在提交到执行器、进行任何读写之前。
const (
	CostRegister       uint64 = 10_000
	CostCreateZombie   uint64 = 10_000
	CostCompleteLesson uint64 = 10_000
	CostLevelUp        uint64 = 8_000
	CostRecordBattle   uint64 = 8_000
	CostRename         uint64 = 5_000
)

// 固定额度的自动奖励，与链上合约常量保持一致。
const (
	// MilestoneReward 是胜场数达到5的正整数倍时自动发放的里程碑奖励
	MilestoneReward uint64 = 75_000
	// LevelUpBonus 是僵尸升级时发放的固定奖励
	LevelUpBonus uint64 = 50_000
)

// ensureBudget 检查调用者预留的预算是否覆盖操作成本。
func ensureBudget(budget, cost uint64) error {
	if budget < cost {
		return ErrInsufficientBudget
	}
	return nil
}

package zombie

// BattleResult 定义了战斗结果的枚举类型
type BattleResult string

const (
	// ResultWin 表示僵尸获胜
	ResultWin BattleResult = "WIN"
	// ResultLoss 表示僵尸战败
	ResultLoss BattleResult = "LOSS"
)

// Zombie 是从六个属性箱组装出的僵尸完整视图。
// 它只在读取路径上存在；持久化状态始终是分列的。
type Zombie struct {
	Name      string `json:"name"`
	Level     uint64 `json:"level"`
	Dna       uint64 `json:"dna"`
	WinCount  uint64 `json:"winCount"`
	LossCount uint64 `json:"lossCount"`
	CreatedAt uint64 `json:"createdAt"`
}

package store

import "encoding/binary"

// 命名空间常量。名字沿用链上合约的箱前缀，便于与历史数据对照。
const (
	// --- 用户属性 ---
	NSUserRegistered   = "ureg" // 注册标志 (uint64, 1=已注册)
	NSUserZombieCount  = "uzc"  // 拥有的僵尸数量
	NSUserLesson       = "ucl"  // 当前课程编号 (从1开始)
	NSUserScore        = "uts"  // 累计得分
	NSUserLastActive   = "ula"  // 最后活跃时间戳
	NSUserTotalRewards = "utr"  // 累计获得的奖励
	NSUserRewardCount  = "urc"  // 奖励发放次数

	// --- 僵尸属性 ---
	NSZombieName      = "zn"  // 名字 (1..=32字节)
	NSZombieLevel     = "zl"  // 等级 (>=1)
	NSZombieDna       = "zd"  // DNA (>0)
	NSZombieWinCount  = "zwc" // 胜场数
	NSZombieLossCount = "zlc" // 负场数
	NSZombieCreatedAt = "zca" // 创建时间戳

	// --- 课程完成记录 ---
	NSLessonCompleted = "lc" // 完成标志 (uint64, 1=已完成)
)

// Itob 将uint64编码为8字节大端字节串，与链上合约的itob保持一致。
func Itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// Btoi 是Itob的逆操作。输入必须是8字节。
func Btoi(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// UserKey 从钱包地址派生用户属性的箱键。
func UserKey(address string) []byte {
	return []byte(address)
}

// ZombieKey 派生僵尸属性的箱键，格式: 地址 ∥ 8字节大端索引。
// 所有权完全由键派生保证：调用者只能寻址到自己地址下的僵尸，
// 因此不需要额外的所有权表。
func ZombieKey(address string, zombieIndex uint64) []byte {
	return append([]byte(address), Itob(zombieIndex)...)
}

// LessonKey 派生课程完成记录的箱键，格式: 地址 ∥ 8字节大端课程编号。
func LessonKey(address string, lessonID uint64) []byte {
	return append([]byte(address), Itob(lessonID)...)
}

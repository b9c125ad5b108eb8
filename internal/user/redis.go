package user

// 定义与用户相关的Redis键名
const (
	// RegisteredUsersKey 是一个Set，用于快速判断一个地址是否已注册。
	// Key: registered_users
	// Member: 钱包地址
	RegisteredUsersKey = "registered_users"

	// StatsKey 是一个Redis Hash，按地址镜像用户的六项统计数据。
	// Field: 钱包地址
	// Value: Stats 结构体的JSON序列化字符串
	StatsKey = "user:stats"
)

package startup

import (
	"fmt"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/params"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/store"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/treasury"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/config"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/user"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := store.PrimeDB(); err != nil {
		return err
	}
	if err := params.PrimeDB(config.Cfg.Ledger); err != nil {
		return err
	}
	if err := treasury.PrimeDB(config.Cfg.Ledger); err != nil {
		return err
	}
	if err := user.PrimeCachedDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数。
// 账本的权威状态全部在SQLite中，重建只是把镜像重新灌满。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	if err := user.WarmupCache(); err != nil {
		return err
	}

	fmt.Println("缓存热重建完成。")
	return nil
}

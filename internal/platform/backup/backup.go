package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/config"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
	"github.com/AlgoZombies/algozombies-ledger-backend/pkg/lifecycle"
)

const (
	backupInterval = 30 * time.Minute // 定时备份频率
	maxSnapshots   = 8                // 保留的快照数量
)

var backupMutex sync.Mutex // 避免意外竞态

// StartBackupScheduler 启动一个后台Goroutine来定期执行数据库快照。
// 它接收一个lifecycle.Handle来管理其生命周期。
func StartBackupScheduler(handle *lifecycle.Handle) {
	defer handle.Close() // 确保在退出时通知管理器
	fmt.Println("账本快照调度器已启动。")

	for {
		// 使用可中断的休眠来代替ticker。
		// 这使得整个循环可以在收到停机信号时立刻从休眠中唤醒并退出。
		if err := handle.Sleep(backupInterval); err != nil {
			fmt.Println("快照调度器: 休眠被中断，正在关闭...")
			return
		}

		fmt.Println("快照调度器: 正在执行定时快照...")
		if err := CreateSnapshot(handle.Ctx()); err != nil {
			if err != context.Canceled && err != context.DeadlineExceeded {
				fmt.Printf("快照调度器错误: 执行快照失败: %v\n", err)
			}
		} else {
			fmt.Println("快照调度器: 快照成功。")
		}
	}
}

// CreateSnapshot 把整个账本数据库原子地快照到备份目录。
// SQLite的VACUUM INTO会在单个语句里产生一份一致的数据库副本，
// 不会阻塞执行器正在进行的事务之外的任何东西。
func CreateSnapshot(ctx context.Context) error {
	backupMutex.Lock()
	defer backupMutex.Unlock()

	dir := config.Cfg.Database.Sqlite.BackupDir
	if dir == "" {
		dir = "backups"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("无法创建备份目录: %w", err)
	}

	filename := fmt.Sprintf("ledger-%s.db", time.Now().Format("20060102-150405"))
	target := filepath.Join(dir, filename)

	if err := database.DB.WithContext(ctx).Exec("VACUUM INTO ?", target).Error; err != nil {
		return fmt.Errorf("VACUUM INTO 失败: %w", err)
	}

	pruneOldSnapshots(dir)
	return nil
}

// pruneOldSnapshots 只保留最近的maxSnapshots份快照。
// 清理失败不影响本次快照的成功。
func pruneOldSnapshots(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Printf("警告: 无法读取备份目录进行清理: %v\n", err)
		return
	}

	var snapshots []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".db" {
			snapshots = append(snapshots, entry.Name())
		}
	}
	if len(snapshots) <= maxSnapshots {
		return
	}

	// 文件名内嵌时间戳，字典序即时间序
	sort.Strings(snapshots)
	for _, name := range snapshots[:len(snapshots)-maxSnapshots] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			fmt.Printf("警告: 无法删除过期快照 %s: %v\n", name, err)
		}
	}
}

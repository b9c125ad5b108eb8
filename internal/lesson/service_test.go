package lesson

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/params"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/store"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/treasury"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/config"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/user"
	"github.com/AlgoZombies/algozombies-ledger-backend/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var executorOnce sync.Once

func setupTestLedger(t *testing.T, reserve uint64) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ledger.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db
	database.RDB = nil

	config.Cfg = &config.Config{
		Ledger: config.LedgerConfig{
			Owner:          strings.Repeat("O", 58),
			InitialReserve: reserve,
		},
	}
	require.NoError(t, store.PrimeDB())
	require.NoError(t, params.PrimeDB(config.Cfg.Ledger))
	require.NoError(t, treasury.PrimeDB(config.Cfg.Ledger))

	executorOnce.Do(func() {
		gracefulHandle, err := lifecycle.NewManager().NewServiceHandle("ledger-executor")
		require.NoError(t, err)
		forcefulHandle, err := lifecycle.NewManager().NewServiceHandle("ledger-executor")
		require.NoError(t, err)
		ledger.StartExecutor(gracefulHandle, forcefulHandle)
	})
}

func registerTestUser(t *testing.T, address string) {
	t.Helper()
	require.NoError(t, user.Register(address, ledger.CostRegister))
}

func TestCompleteLessonRewardAndProgress(t *testing.T) {
	setupTestLedger(t, 10_000_000)
	address := strings.Repeat("A", 58)
	registerTestUser(t, address)

	reward, err := CompleteLesson(address, 1, 80, ledger.CostCompleteLesson)
	require.NoError(t, err)
	assert.Equal(t, uint64(80_000), reward)

	stats, err := user.GetUserStats(address)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), stats.CurrentLesson)
	assert.Equal(t, uint64(80), stats.TotalScore)
	assert.Equal(t, uint64(80_000), stats.TotalRewards)
	assert.Equal(t, uint64(1), stats.RewardCount)

	completed, err := IsLessonCompleted(address, 1)
	require.NoError(t, err)
	assert.True(t, completed)

	completed, err = IsLessonCompleted(address, 2)
	require.NoError(t, err)
	assert.False(t, completed)
}

func TestCompleteLessonRewardTruncation(t *testing.T) {
	setupTestLedger(t, 10_000_000)
	address := strings.Repeat("B", 58)
	registerTestUser(t, address)

	// 整数除法向下取整: 100000 * 33 / 100 = 33000
	reward, err := CompleteLesson(address, 1, 33, ledger.CostCompleteLesson)
	require.NoError(t, err)
	assert.Equal(t, uint64(33_000), reward)

	reward, err = CompleteLesson(address, 2, 99, ledger.CostCompleteLesson)
	require.NoError(t, err)
	assert.Equal(t, uint64(99_000), reward)
}

func TestCompleteLessonEnforcesSequence(t *testing.T) {
	setupTestLedger(t, 10_000_000)
	address := strings.Repeat("C", 58)
	registerTestUser(t, address)

	_, err := CompleteLesson(address, 2, 50, ledger.CostCompleteLesson)
	assert.ErrorIs(t, err, ledger.ErrOutOfOrder)

	_, err = CompleteLesson(address, 1, 50, ledger.CostCompleteLesson)
	require.NoError(t, err)

	// 已经推进到第2课，重复提交第1课同样算越序
	_, err = CompleteLesson(address, 1, 50, ledger.CostCompleteLesson)
	assert.ErrorIs(t, err, ledger.ErrOutOfOrder)

	_, err = CompleteLesson(address, 4, 50, ledger.CostCompleteLesson)
	assert.ErrorIs(t, err, ledger.ErrOutOfOrder)
}

func TestCompleteLessonScoreValidation(t *testing.T) {
	setupTestLedger(t, 10_000_000)
	address := strings.Repeat("D", 58)
	registerTestUser(t, address)

	_, err := CompleteLesson(address, 1, 0, ledger.CostCompleteLesson)
	assert.ErrorIs(t, err, ledger.ErrInvalidScore)

	_, err = CompleteLesson(address, 1, 101, ledger.CostCompleteLesson)
	assert.ErrorIs(t, err, ledger.ErrInvalidScore)

	// 失败的提交不得推进进度
	stats, err := user.GetUserStats(address)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.CurrentLesson)
}

func TestCompleteLessonBeyondTotal(t *testing.T) {
	setupTestLedger(t, 10_000_000)
	address := strings.Repeat("E", 58)
	registerTestUser(t, address)

	// 模拟用户已完成全部50课
	userKey := store.UserKey(address)
	require.NoError(t, store.SetUint64(database.DB, store.NSUserLesson, userKey, 51))

	_, err := CompleteLesson(address, 51, 80, ledger.CostCompleteLesson)
	assert.ErrorIs(t, err, ledger.ErrInvalidLessonID)
}

func TestCompleteLessonAlreadyCompleted(t *testing.T) {
	setupTestLedger(t, 10_000_000)
	address := strings.Repeat("F", 58)
	registerTestUser(t, address)

	_, err := CompleteLesson(address, 1, 50, ledger.CostCompleteLesson)
	require.NoError(t, err)

	// 把进度指针拨回第1课，完成记录本身必须仍然拦截重复发奖
	userKey := store.UserKey(address)
	require.NoError(t, store.SetUint64(database.DB, store.NSUserLesson, userKey, 1))

	_, err = CompleteLesson(address, 1, 50, ledger.CostCompleteLesson)
	assert.ErrorIs(t, err, ledger.ErrAlreadyCompleted)
}

func TestCompleteLessonRollsBackOnTransferFailure(t *testing.T) {
	// 金库储备为零，任何奖励转账都会失败
	setupTestLedger(t, 0)
	address := strings.Repeat("G", 58)
	registerTestUser(t, address)

	_, err := CompleteLesson(address, 1, 80, ledger.CostCompleteLesson)
	assert.ErrorIs(t, err, ledger.ErrTransferFailed)

	// 整个操作必须原子回滚：进度、得分、完成记录都不得残留
	stats, err := user.GetUserStats(address)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.CurrentLesson)
	assert.Equal(t, uint64(0), stats.TotalScore)
	assert.Equal(t, uint64(0), stats.TotalRewards)
	assert.Equal(t, uint64(0), stats.RewardCount)

	completed, err := IsLessonCompleted(address, 1)
	require.NoError(t, err)
	assert.False(t, completed)
}

func TestCompleteLessonRequiresRegistration(t *testing.T) {
	setupTestLedger(t, 10_000_000)

	_, err := CompleteLesson(strings.Repeat("H", 58), 1, 80, ledger.CostCompleteLesson)
	assert.ErrorIs(t, err, ledger.ErrNotRegistered)
}

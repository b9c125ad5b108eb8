package admin

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
	"github.com/AlgoZombies/algozombies-ledger-backend/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testOwner = strings.Repeat("O", 58)
	testOther = strings.Repeat("X", 58)
)

var executorOnce sync.Once

func setupTestLedger(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ledger.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db
	database.RDB = nil

	config.Cfg = &config.Config{
		Ledger: config.LedgerConfig{
			Owner:          testOwner,
			InitialReserve: 1_000_000,
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

func TestAdminOperationsRequireOwner(t *testing.T) {
	setupTestLedger(t)

	assert.ErrorIs(t, UpdateRewardPerLesson(testOther, 200_000), ledger.ErrUnauthorized)
	assert.ErrorIs(t, UpdateTotalLessons(testOther, 60), ledger.ErrUnauthorized)
	assert.ErrorIs(t, FundContract(testOther, 1_000), ledger.ErrUnauthorized)
	assert.ErrorIs(t, EmergencyWithdraw(testOther, 1_000), ledger.ErrUnauthorized)

	// 被拒绝的调用不得改变任何参数
	stats, err := GetContractStats()
	require.NoError(t, err)
	assert.Equal(t, uint64(50), stats.TotalLessons)
	assert.Equal(t, uint64(100_000), stats.RewardPerLesson)
	assert.Equal(t, uint64(1_000_000), stats.TreasuryBalance)
}

func TestUpdateRewardPerLesson(t *testing.T) {
	setupTestLedger(t)

	assert.ErrorIs(t, UpdateRewardPerLesson(testOwner, 0), ledger.ErrInvalidInput)

	require.NoError(t, UpdateRewardPerLesson(testOwner, 200_000))
	stats, err := GetContractStats()
	require.NoError(t, err)
	assert.Equal(t, uint64(200_000), stats.RewardPerLesson)
}

func TestUpdateTotalLessonsIsMonotonic(t *testing.T) {
	setupTestLedger(t)

	assert.ErrorIs(t, UpdateTotalLessons(testOwner, 40), ledger.ErrInvalidInput)

	require.NoError(t, UpdateTotalLessons(testOwner, 60))
	require.NoError(t, UpdateTotalLessons(testOwner, 60))
	stats, err := GetContractStats()
	require.NoError(t, err)
	assert.Equal(t, uint64(60), stats.TotalLessons)
}

func TestFundAndWithdraw(t *testing.T) {
	setupTestLedger(t)

	require.NoError(t, FundContract(testOwner, 500_000))
	balance, err := treasury.GetBalance(database.DB)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000), balance)

	require.NoError(t, EmergencyWithdraw(testOwner, 300_000))
	balance, err = treasury.GetBalance(database.DB)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_200_000), balance)

	// 超出储备金的提取必须失败且余额不变
	assert.ErrorIs(t, EmergencyWithdraw(testOwner, 2_000_000), ledger.ErrTransferFailed)
	balance, err = treasury.GetBalance(database.DB)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_200_000), balance)
}

func TestGetContractStatsInitialValues(t *testing.T) {
	setupTestLedger(t)

	stats, err := GetContractStats()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), stats.TotalUsers)
	assert.Equal(t, uint64(0), stats.TotalZombies)
	assert.Equal(t, uint64(50), stats.TotalLessons)
	assert.Equal(t, uint64(100_000), stats.RewardPerLesson)
	assert.Equal(t, uint64(1_000_000), stats.TreasuryBalance)
}

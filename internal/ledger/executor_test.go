package ledger

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/store"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
	"github.com/AlgoZombies/algozombies-ledger-backend/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var executorOnce sync.Once

func startTestExecutor(t *testing.T) {
	t.Helper()
	executorOnce.Do(func() {
		gracefulMgr := lifecycle.NewManager()
		forcefulMgr := lifecycle.NewManager()
		gracefulHandle, err := gracefulMgr.NewServiceHandle("ledger-executor")
		require.NoError(t, err)
		forcefulHandle, err := forcefulMgr.NewServiceHandle("ledger-executor")
		require.NoError(t, err)
		StartExecutor(gracefulHandle, forcefulHandle)
	})
}

func setupTestLedger(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ledger.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, store.PrimeDB())
	startTestExecutor(t)
}

func TestEnsureBudget(t *testing.T) {
	assert.NoError(t, ensureBudget(CostRegister, CostRegister))
	assert.ErrorIs(t, ensureBudget(CostRegister-1, CostRegister), ErrInsufficientBudget)
	assert.NoError(t, ensureBudget(CostRename+1, CostRename))
}

func TestExecuteBudgetPreflight(t *testing.T) {
	executed := false
	err := Execute(CostRegister-1, CostRegister, func(tx *gorm.DB) error {
		executed = true
		return nil
	})
	assert.ErrorIs(t, err, ErrInsufficientBudget)
	// 预算检查发生在提交之前，操作体不应该被执行
	assert.False(t, executed)
}

func TestExecuteCommitsOnSuccess(t *testing.T) {
	setupTestLedger(t)
	key := []byte(strings.Repeat("A", 58))

	err := Execute(CostRegister, CostRegister, func(tx *gorm.DB) error {
		return store.SetUint64(tx, store.NSUserScore, key, 99)
	})
	require.NoError(t, err)

	v, ok, err := store.GetUint64(database.DB, store.NSUserScore, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(99), v)
}

func TestExecuteRollsBackOnError(t *testing.T) {
	setupTestLedger(t)
	key := []byte(strings.Repeat("B", 58))
	boom := errors.New("boom")

	err := Execute(CostRegister, CostRegister, func(tx *gorm.DB) error {
		if err := store.SetUint64(tx, store.NSUserScore, key, 1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// 事务内的全部写入必须被回滚
	_, ok, err := store.GetUint64(database.DB, store.NSUserScore, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExecuteAdminSkipsBudget(t *testing.T) {
	setupTestLedger(t)
	key := []byte(strings.Repeat("C", 58))

	err := ExecuteAdmin(func(tx *gorm.DB) error {
		return store.SetUint64(tx, store.NSUserScore, key, 7)
	})
	require.NoError(t, err)

	v, _, err := store.GetUint64(database.DB, store.NSUserScore, key)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, 409, HTTPStatus(ErrAlreadyRegistered))
	assert.Equal(t, 409, HTTPStatus(ErrOutOfOrder))
	assert.Equal(t, 403, HTTPStatus(ErrNotRegistered))
	assert.Equal(t, 403, HTTPStatus(ErrUnauthorized))
	assert.Equal(t, 400, HTTPStatus(ErrInsufficientBudget))
	assert.Equal(t, 404, HTTPStatus(ErrInvalidIndex))
	assert.Equal(t, 404, HTTPStatus(ErrNotFound))
	assert.Equal(t, 503, HTTPStatus(ErrTransferFailed))
	assert.Equal(t, 500, HTTPStatus(errors.New("其他错误")))
}

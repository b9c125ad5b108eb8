package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ledger.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, PrimeDB())
	return db
}

func TestItobBtoiRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 255, 256, 1 << 32, ^uint64(0)} {
		b := Itob(v)
		assert.Len(t, b, 8)
		assert.Equal(t, v, Btoi(b))
	}
	assert.Equal(t, uint64(0), Btoi([]byte{1, 2, 3}))
}

func TestKeyDerivation(t *testing.T) {
	address := strings.Repeat("A", 58)

	assert.Equal(t, []byte(address), UserKey(address))

	zk := ZombieKey(address, 3)
	assert.Len(t, zk, 58+8)
	assert.Equal(t, []byte(address), zk[:58])
	assert.Equal(t, uint64(3), Btoi(zk[58:]))
	assert.NotEqual(t, ZombieKey(address, 3), ZombieKey(address, 4))

	lk := LessonKey(address, 7)
	assert.Len(t, lk, 58+8)
	assert.Equal(t, uint64(7), Btoi(lk[58:]))
}

func TestSetGetUpsert(t *testing.T) {
	db := setupTestDB(t)
	key := []byte(strings.Repeat("B", 58))

	_, ok, err := Get(db, NSUserScore, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SetUint64(db, NSUserScore, key, 42))
	v, ok, err := GetUint64(db, NSUserScore, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), v)

	// 覆盖写入不产生第二行
	require.NoError(t, SetUint64(db, NSUserScore, key, 43))
	v, _, err = GetUint64(db, NSUserScore, key)
	require.NoError(t, err)
	assert.Equal(t, uint64(43), v)

	var count int64
	require.NoError(t, db.Model(&Box{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNamespaceIsolation(t *testing.T) {
	db := setupTestDB(t)
	key := []byte(strings.Repeat("C", 58))

	require.NoError(t, SetUint64(db, NSUserScore, key, 10))
	require.NoError(t, SetUint64(db, NSUserLesson, key, 20))

	exists, err := Exists(db, NSUserScore, key)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = Exists(db, NSUserRegistered, key)
	require.NoError(t, err)
	assert.False(t, exists)

	v, _, err := GetUint64(db, NSUserLesson, key)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), v)
}

func TestKeysListsSingleNamespace(t *testing.T) {
	db := setupTestDB(t)
	keyA := []byte(strings.Repeat("D", 58))
	keyB := []byte(strings.Repeat("E", 58))

	require.NoError(t, SetUint64(db, NSUserRegistered, keyA, 1))
	require.NoError(t, SetUint64(db, NSUserRegistered, keyB, 1))
	require.NoError(t, SetUint64(db, NSUserScore, keyA, 5))

	keys, err := Keys(db, NSUserRegistered)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

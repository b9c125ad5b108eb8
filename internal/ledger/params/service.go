package params

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- Generic Accessors ---

// GetValue retrieves a value for a given key from the params table.
func GetValue(db *gorm.DB, key string) (string, error) {
	var param Param
	err := db.Where("key = ?", key).First(&param).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// If the key doesn't exist, return an empty string, which is a valid default.
			return "", nil
		}
		return "", err
	}
	return param.Value, nil
}

// SetValue creates or updates a value for a given key within a transaction.
func SetValue(db *gorm.DB, key, value string) error {
	// Use GORM's OnConflict clause for an efficient and atomic "upsert" operation.
	param := Param{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&param).Error
}

// GetUint64 retrieves and parses an unsigned numeric parameter.
// A missing key parses as zero.
func GetUint64(db *gorm.DB, key string) (uint64, error) {
	valueStr, err := GetValue(db, key)
	if err != nil {
		return 0, err
	}
	if valueStr == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("无法解析参数 '%s' 的值: %w", key, err)
	}
	return v, nil
}

// SetUint64 formats and sets an unsigned numeric parameter.
func SetUint64(db *gorm.DB, key string, v uint64) error {
	return SetValue(db, key, strconv.FormatUint(v, 10))
}

// --- Specific Helpers ---

// GetTotalUsers 返回已注册用户总数。
func GetTotalUsers(db *gorm.DB) (uint64, error) {
	return GetUint64(db, TotalUsersKey)
}

// IncrTotalUsers 将用户总数加一。只允许在单写入者事务中调用。
func IncrTotalUsers(db *gorm.DB) error {
	v, err := GetUint64(db, TotalUsersKey)
	if err != nil {
		return err
	}
	return SetUint64(db, TotalUsersKey, v+1)
}

// GetTotalZombies 返回全局僵尸总数。
func GetTotalZombies(db *gorm.DB) (uint64, error) {
	return GetUint64(db, TotalZombiesKey)
}

// IncrTotalZombies 将僵尸总数加一。只允许在单写入者事务中调用。
func IncrTotalZombies(db *gorm.DB) error {
	v, err := GetUint64(db, TotalZombiesKey)
	if err != nil {
		return err
	}
	return SetUint64(db, TotalZombiesKey, v+1)
}

// GetTotalLessons 返回当前课程总数。
func GetTotalLessons(db *gorm.DB) (uint64, error) {
	return GetUint64(db, TotalLessonsKey)
}

// SetTotalLessons 覆盖课程总数。单调性校验由admin模块负责。
func SetTotalLessons(db *gorm.DB, v uint64) error {
	return SetUint64(db, TotalLessonsKey, v)
}

// GetRewardPerLesson 返回每课基准奖励。
func GetRewardPerLesson(db *gorm.DB) (uint64, error) {
	return GetUint64(db, RewardPerLessonKey)
}

// SetRewardPerLesson 覆盖每课基准奖励。正值校验由admin模块负责。
func SetRewardPerLesson(db *gorm.DB, v uint64) error {
	return SetUint64(db, RewardPerLessonKey, v)
}

// GetContractOwner 返回合约所有者的钱包地址。
func GetContractOwner(db *gorm.DB) (string, error) {
	return GetValue(db, ContractOwnerKey)
}

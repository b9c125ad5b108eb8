package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 本包是纯粹的可寻址存储原语：不做任何业务校验。
// 所有函数都接受一个*gorm.DB，既可以是裸连接，也可以是进行中的事务，
// 由上层的操作引擎决定原子性边界。

// Get 读取一个箱的值。箱不存在时返回 (nil, false, nil)。
func Get(db *gorm.DB, namespace string, key []byte) ([]byte, bool, error) {
	var box Box
	err := db.Where("namespace = ? AND box_key = ?", namespace, key).First(&box).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return box.Value, true, nil
}

// Set 写入一个箱的值，箱已存在时覆盖（upsert）。
func Set(db *gorm.DB, namespace string, key []byte, value []byte) error {
	box := Box{
		Namespace: namespace,
		Key:       key,
		Value:     value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "box_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&box).Error
}

// Exists 检查一个箱是否存在。
func Exists(db *gorm.DB, namespace string, key []byte) (bool, error) {
	var count int64
	err := db.Model(&Box{}).Where("namespace = ? AND box_key = ?", namespace, key).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Keys 返回一个命名空间下的全部键，仅供缓存预热等批量场景使用。
func Keys(db *gorm.DB, namespace string) ([][]byte, error) {
	var boxes []Box
	if err := db.Select("box_key").Where("namespace = ?", namespace).Find(&boxes).Error; err != nil {
		return nil, err
	}
	keys := make([][]byte, len(boxes))
	for i, box := range boxes {
		keys[i] = box.Key
	}
	return keys, nil
}

// GetUint64 读取一个uint64箱。箱不存在时返回 (0, false, nil)。
func GetUint64(db *gorm.DB, namespace string, key []byte) (uint64, bool, error) {
	value, ok, err := Get(db, namespace, key)
	if err != nil || !ok {
		return 0, ok, err
	}
	return Btoi(value), true, nil
}

// SetUint64 以8字节大端编码写入一个uint64箱。
func SetUint64(db *gorm.DB, namespace string, key []byte, v uint64) error {
	return Set(db, namespace, key, Itob(v))
}

package treasury

import (
	"fmt"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockAccount 在事务中锁定金库账户行，防止并发修改。
func lockAccount(tx *gorm.DB) (*Account, error) {
	var account Account
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account).Error
	if err != nil {
		return nil, fmt.Errorf("无法锁定金库账户: %w", err)
	}
	return &account, nil
}

// recordTransfer 在事务中写入一条转账流水。
func recordTransfer(tx *gorm.DB, address string, amount uint64, direction TransferDirection, kind string) error {
	transferID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("无法生成转账ID: %w", err)
	}
	transfer := Transfer{
		TransferID: transferID.String(),
		Address:    address,
		Amount:     amount,
		Direction:  direction,
		Kind:       kind,
	}
	return tx.Create(&transfer).Error
}

// Issue 在事务内向指定地址发出一笔对外转账。
// 储备金不足时返回ErrTransferFailed；因为它总是运行在操作自己的
// 事务里，失败会连同操作已暂存的所有写入一起回滚。
func Issue(tx *gorm.DB, address string, amount uint64, kind string) error {
	account, err := lockAccount(tx)
	if err != nil {
		return err
	}
	if account.Balance < amount {
		return ledger.ErrTransferFailed
	}
	account.Balance -= amount
	if err := tx.Save(account).Error; err != nil {
		return err
	}
	return recordTransfer(tx, address, amount, DirectionOut, kind)
}

// Fund 在事务内接受一笔来自所有者的注资，增加储备金。
func Fund(tx *gorm.DB, ownerAddress string, amount uint64) error {
	account, err := lockAccount(tx)
	if err != nil {
		return err
	}
	account.Balance += amount
	if err := tx.Save(account).Error; err != nil {
		return err
	}
	return recordTransfer(tx, ownerAddress, amount, DirectionIn, KindFunding)
}

// GetBalance 返回金库当前的储备金余额。
func GetBalance(db *gorm.DB) (uint64, error) {
	var account Account
	if err := db.First(&account).Error; err != nil {
		return 0, fmt.Errorf("无法读取金库账户: %w", err)
	}
	return account.Balance, nil
}

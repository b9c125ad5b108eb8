package lesson

import (
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/params"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/store"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger/treasury"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/user"
	"gorm.io/gorm"
)

// CompleteLesson 记录一次课程完成并按成绩发放奖励，返回实际发放的
// 奖励数额。课程必须严格按顺序完成：只接受紧跟在当前进度之后的那一课。
// 奖励按 rewardPerLesson * score / 100 计算，整数除法向下取整。
func CompleteLesson(address string, lessonID, score, budget uint64) (uint64, error) {
	var reward uint64
	err := ledger.Execute(budget, ledger.CostCompleteLesson, func(tx *gorm.DB) error {
		if err := user.AssertRegisteredTx(tx, address); err != nil {
			return err
		}

		userKey := store.UserKey(address)
		currentLesson, _, err := store.GetUint64(tx, store.NSUserLesson, userKey)
		if err != nil {
			return err
		}
		// 检查顺序固定：先越序，再课程号范围，再成绩，最后重复完成。
		// currentLesson从1起步，指向用户下一门待完成的课程。
		if lessonID != currentLesson {
			return ledger.ErrOutOfOrder
		}
		totalLessons, err := params.GetTotalLessons(tx)
		if err != nil {
			return err
		}
		if lessonID > totalLessons {
			return ledger.ErrInvalidLessonID
		}
		if score == 0 || score > 100 {
			return ledger.ErrInvalidScore
		}
		lessonKey := store.LessonKey(address, lessonID)
		completed, err := store.Exists(tx, store.NSLessonCompleted, lessonKey)
		if err != nil {
			return err
		}
		if completed {
			return ledger.ErrAlreadyCompleted
		}

		if err := store.SetUint64(tx, store.NSLessonCompleted, lessonKey, 1); err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSUserLesson, userKey, currentLesson+1); err != nil {
			return err
		}
		totalScore, _, err := store.GetUint64(tx, store.NSUserScore, userKey)
		if err != nil {
			return err
		}
		if err := store.SetUint64(tx, store.NSUserScore, userKey, totalScore+score); err != nil {
			return err
		}

		rewardPerLesson, err := params.GetRewardPerLesson(tx)
		if err != nil {
			return err
		}
		reward = rewardPerLesson * score / 100
		if err := user.AwardRewardTx(tx, address, reward, treasury.KindLessonReward); err != nil {
			return err
		}

		return user.TouchActivityTx(tx, address)
	})
	if err != nil {
		return 0, err
	}

	user.RefreshStatsCache(address)
	return reward, nil
}

// IsLessonCompleted 查询一个用户是否已完成指定课程。
func IsLessonCompleted(address string, lessonID uint64) (bool, error) {
	return store.Exists(database.DB, store.NSLessonCompleted, store.LessonKey(address, lessonID))
}

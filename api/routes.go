package api

import (
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/admin"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/lesson"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/user"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/zombie"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由。
// 所有变更路由都经过会话中间件，只读查询直接放行。
func SetupRoutes(router *gin.Engine) {
	requireSession := user.RequireSessionMiddleware()

	api := router.Group("/api")
	{
		// 会话凭证
		api.POST("/session", user.CreateSession)

		// 用户相关的路由组 /api/users
		userRoutes := api.Group("/users")
		{
			userRoutes.POST("/register", requireSession, user.RegisterUser)
			userRoutes.GET("/:address/stats", user.GetStats)
			userRoutes.GET("/:address/registered", user.GetRegistered)
			userRoutes.GET("/:address/zombies/:index", zombie.GetZombieByIndex)
			userRoutes.GET("/:address/lessons/:id/completed", lesson.GetCompletion)
		}

		// 僵尸相关的路由组 /api/zombies
		zombieRoutes := api.Group("/zombies", requireSession)
		{
			zombieRoutes.POST("", zombie.SubmitCreateZombie)
			zombieRoutes.POST("/:index/rename", zombie.SubmitRenameZombie)
			zombieRoutes.POST("/:index/battle", zombie.SubmitBattleResult)
			zombieRoutes.POST("/:index/levelup", zombie.SubmitLevelUp)
		}

		// 课程完成上报 /api/lessons
		api.POST("/lessons/complete", requireSession, lesson.SubmitCompletion)

		// 全局统计
		api.GET("/stats", admin.GetStats)

		// 所有者管理路由组 /api/admin
		adminRoutes := api.Group("/admin", requireSession)
		{
			adminRoutes.POST("/reward-per-lesson", admin.SubmitRewardPerLesson)
			adminRoutes.POST("/total-lessons", admin.SubmitTotalLessons)
			adminRoutes.POST("/fund", admin.SubmitFunding)
			adminRoutes.POST("/withdraw", admin.SubmitWithdraw)
		}
	}
}

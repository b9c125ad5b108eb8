package lesson

import (
	"net/http"
	"strconv"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// CompleteRequestBody 定义了课程完成上报的请求体结构
type CompleteRequestBody struct {
	LessonID uint64 `json:"lessonId" binding:"required"`
	Score    uint64 `json:"score" binding:"required"`
	Budget   uint64 `json:"budget" binding:"required"`
}

// SubmitCompletion 处理课程完成上报
func SubmitCompletion(c *gin.Context) {
	var body CompleteRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	address := c.GetString(user.WalletKey)
	reward, err := CompleteLesson(address, body.LessonID, body.Score, body.Budget)
	if err != nil {
		c.JSON(ledger.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reward": reward})
}

// GetCompletion 查询一个用户是否已完成指定课程
func GetCompletion(c *gin.Context) {
	address := c.Param("address")
	if !user.IsValidAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的钱包地址"})
		return
	}
	lessonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的课程编号参数"})
		return
	}

	completed, err := IsLessonCompleted(address, lessonID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询课程完成状态失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": completed})
}

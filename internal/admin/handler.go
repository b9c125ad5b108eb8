package admin

import (
	"net/http"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// ValueRequestBody 定义了单数值管理操作的请求体结构
type ValueRequestBody struct {
	Value uint64 `json:"value" binding:"required"`
}

// AmountRequestBody 定义了资金操作的请求体结构
type AmountRequestBody struct {
	Amount uint64 `json:"amount" binding:"required"`
}

// SubmitRewardPerLesson 处理每课基准奖励的修改
func SubmitRewardPerLesson(c *gin.Context) {
	var body ValueRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	caller := c.GetString(user.WalletKey)
	if err := UpdateRewardPerLesson(caller, body.Value); err != nil {
		c.JSON(ledger.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// SubmitTotalLessons 处理课程总数的修改
func SubmitTotalLessons(c *gin.Context) {
	var body ValueRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	caller := c.GetString(user.WalletKey)
	if err := UpdateTotalLessons(caller, body.Value); err != nil {
		c.JSON(ledger.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// SubmitFunding 处理向资金池注资
func SubmitFunding(c *gin.Context) {
	var body AmountRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	caller := c.GetString(user.WalletKey)
	if err := FundContract(caller, body.Amount); err != nil {
		c.JSON(ledger.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "注资成功"})
}

// SubmitWithdraw 处理紧急提取
func SubmitWithdraw(c *gin.Context) {
	var body AmountRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	caller := c.GetString(user.WalletKey)
	if err := EmergencyWithdraw(caller, body.Amount); err != nil {
		c.JSON(ledger.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "提取成功"})
}

// GetStats 返回全局统计
func GetStats(c *gin.Context) {
	stats, err := GetContractStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取全局统计失败"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

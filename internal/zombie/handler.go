package zombie

import (
	"net/http"
	"strconv"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// CreateRequestBody 定义了创建僵尸的请求体结构
type CreateRequestBody struct {
	Name   string `json:"name" binding:"required"`
	Dna    uint64 `json:"dna" binding:"required"`
	Budget uint64 `json:"budget" binding:"required"`
}

// RenameRequestBody 定义了改名请求的请求体结构
type RenameRequestBody struct {
	NewName string `json:"newName" binding:"required"`
	Budget  uint64 `json:"budget" binding:"required"`
}

// BattleRequestBody 定义了战斗上报的请求体结构。
// 结果使用枚举字符串而不是布尔值，避免false被绑定层当作缺失字段。
type BattleRequestBody struct {
	Result BattleResult `json:"result" binding:"required"`
	Budget uint64       `json:"budget" binding:"required"`
}

// LevelUpRequestBody 定义了升级请求的请求体结构
type LevelUpRequestBody struct {
	Budget uint64 `json:"budget" binding:"required"`
}

func parseIndexParam(c *gin.Context) (uint64, bool) {
	zombieIndex, err := strconv.ParseUint(c.Param("index"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的僵尸索引参数"})
		return 0, false
	}
	return zombieIndex, true
}

// SubmitCreateZombie 处理僵尸创建
func SubmitCreateZombie(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	address := c.GetString(user.WalletKey)
	zombieIndex, err := CreateZombie(address, body.Name, body.Dna, body.Budget)
	if err != nil {
		c.JSON(ledger.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"index": zombieIndex})
}

// SubmitRenameZombie 处理僵尸改名
func SubmitRenameZombie(c *gin.Context) {
	zombieIndex, ok := parseIndexParam(c)
	if !ok {
		return
	}
	var body RenameRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	address := c.GetString(user.WalletKey)
	if err := RenameZombie(address, zombieIndex, body.NewName, body.Budget); err != nil {
		c.JSON(ledger.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "改名成功"})
}

// SubmitBattleResult 处理战斗结果上报
func SubmitBattleResult(c *gin.Context) {
	zombieIndex, ok := parseIndexParam(c)
	if !ok {
		return
	}
	var body BattleRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	address := c.GetString(user.WalletKey)
	milestoneIssued, err := RecordBattle(address, zombieIndex, body.Result, body.Budget)
	if err != nil {
		c.JSON(ledger.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"milestoneIssued": milestoneIssued})
}

// SubmitLevelUp 处理僵尸升级
func SubmitLevelUp(c *gin.Context) {
	zombieIndex, ok := parseIndexParam(c)
	if !ok {
		return
	}
	var body LevelUpRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	address := c.GetString(user.WalletKey)
	newLevel, err := LevelUpZombie(address, zombieIndex, body.Budget)
	if err != nil {
		c.JSON(ledger.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"level": newLevel})
}

// GetZombieByIndex 返回指定用户名下一个僵尸的完整视图
func GetZombieByIndex(c *gin.Context) {
	address := c.Param("address")
	if !user.IsValidAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的钱包地址"})
		return
	}
	zombieIndex, ok := parseIndexParam(c)
	if !ok {
		return
	}

	z, err := GetZombie(address, zombieIndex)
	if err != nil {
		c.JSON(ledger.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, z)
}

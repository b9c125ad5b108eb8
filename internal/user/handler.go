package user

import (
	"net/http"
	"time"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger"
	"github.com/AlgoZombies/algozombies-ledger-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

// SessionRequestBody 定义了请求会话凭证时的请求体结构
type SessionRequestBody struct {
	Address string `json:"address" binding:"required"`
}

// SessionResponse 定义了会话凭证的响应结构，
// 客户端需要在后续变更请求的请求头中原样带回这三个字段。
type SessionResponse struct {
	Address   string `json:"address"`
	IssuedAt  int64  `json:"issuedAt"`
	Signature string `json:"signature"`
}

// RegisterRequestBody 定义了注册请求的请求体结构
type RegisterRequestBody struct {
	Budget uint64 `json:"budget" binding:"required"`
}

// CreateSession 为一个格式正确的钱包地址签发会话凭证
func CreateSession(c *gin.Context) {
	var body SessionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if !IsValidAddress(body.Address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的钱包地址"})
		return
	}

	payload := token.SessionPayload{
		Address:  body.Address,
		IssuedAt: time.Now().Unix(),
	}
	signature, err := token.GenerateSessionSignature(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法签发会话凭证"})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Address:   payload.Address,
		IssuedAt:  payload.IssuedAt,
		Signature: signature,
	})
}

// RegisterUser 处理用户注册
func RegisterUser(c *gin.Context) {
	var body RegisterRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	address := c.GetString(WalletKey)
	if err := Register(address, body.Budget); err != nil {
		c.JSON(ledger.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "注册成功"})
}

// GetStats 返回一个用户的六项统计数据，未注册用户返回全零
func GetStats(c *gin.Context) {
	address := c.Param("address")
	if !IsValidAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的钱包地址"})
		return
	}

	stats, err := GetUserStats(address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取用户统计数据失败"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetRegistered 返回一个地址是否已注册
func GetRegistered(c *gin.Context) {
	address := c.Param("address")
	if !IsValidAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的钱包地址"})
		return
	}

	registered, err := IsRegistered(address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询注册状态失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": registered})
}

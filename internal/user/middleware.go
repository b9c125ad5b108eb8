package user

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/AlgoZombies/algozombies-ledger-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

const (
	// WalletHeader 携带调用者的钱包地址
	WalletHeader = "X-Wallet-Address"
	// SignatureHeader 携带 /session 签发的HMAC签名
	SignatureHeader = "X-Session-Signature"
	// IssuedAtHeader 携带签发时间戳，参与签名校验
	IssuedAtHeader = "X-Session-Issued-At"
	// WalletKey 是调用者地址在Gin上下文中的键
	WalletKey = "walletAddress"
)

// 钱包地址采用58字符的大写Base32格式（Algorand地址约定）
var addressPattern = regexp.MustCompile(`^[A-Z2-7]{58}$`)

// IsValidAddress 检查一个字符串是否是格式正确的钱包地址。
func IsValidAddress(address string) bool {
	return addressPattern.MatchString(address)
}

// RequireSessionMiddleware 验证变更请求携带的会话签名，
// 并将已认证的调用者地址放入Gin上下文。
// 签名将调用者身份与本进程的HMAC密钥绑定；账本内部的所有权
// 则完全由键派生保证，不依赖这里之外的任何检查。
func RequireSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.GetHeader(WalletHeader)
		if !IsValidAddress(address) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "无效的钱包地址"})
			return
		}

		signature := c.GetHeader(SignatureHeader)
		issuedAtStr := c.GetHeader(IssuedAtHeader)
		if signature == "" || issuedAtStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "缺少会话凭证，请先请求 /api/session"})
			return
		}
		issuedAt, err := strconv.ParseInt(issuedAtStr, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "会话凭证格式错误"})
			return
		}

		payload := token.SessionPayload{Address: address, IssuedAt: issuedAt}
		if !token.ValidateSessionSignature(payload, signature) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "会话签名无效"})
			return
		}

		c.Set(WalletKey, address)
		c.Next()
	}
}

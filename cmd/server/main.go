package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AlgoZombies/algozombies-ledger-backend/api"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/ledger"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/backup"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/config"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/health"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/shutdown"
	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/startup"
	"github.com/AlgoZombies/algozombies-ledger-backend/pkg/lifecycle"
	"github.com/AlgoZombies/algozombies-ledger-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	token.GenerateSecretKey()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置文件: %v", err))
	}

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 异步启动后台的持续健康检查器
	go health.StartRedisHealthCheck()

	// 创建两级生命周期管理器：第一级负责优雅停机，第二级负责强制停机
	gracefulManager := lifecycle.NewManager()
	forcefulManager := lifecycle.NewManager()

	executorGraceful, err := gracefulManager.NewServiceHandle("ledger-executor")
	if err != nil {
		panic(err)
	}
	executorForceful, err := forcefulManager.NewServiceHandle("ledger-executor")
	if err != nil {
		panic(err)
	}
	ledger.StartExecutor(executorGraceful, executorForceful)

	backupHandle, err := gracefulManager.NewServiceHandle("backup-scheduler")
	if err != nil {
		panic(err)
	}
	go backup.StartBackupScheduler(backupHandle)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Wallet-Address", "X-Session-Signature", "X-Session-Issued-At"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	address := cfg.Server.Address
	if address == "" {
		address = ":8080"
	}
	server := &http.Server{
		Addr:    address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("Failed to start server: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(gracefulManager, forcefulManager)
	coordinator.ListenForSignalsAndShutdown(server)
}

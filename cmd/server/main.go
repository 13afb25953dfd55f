package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/loopiify-next/internal/app"
	"github.com/loopiify-next/internal/config"
	"github.com/loopiify-next/internal/logger"
	"github.com/loopiify-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiCyan  = "\033[36m"
	ansiDim   = "\033[2m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + "██╗      ██████╗  ██████╗ ██████╗ ██╗██╗███████╗██╗   ██╗" + ansiReset)
	fmt.Println(ansiCyan + "██║     ██╔═══██╗██╔═══██╗██╔══██╗██║██║██╔════╝╚██╗ ██╔╝" + ansiReset)
	fmt.Println(ansiCyan + "██║     ██║   ██║██║   ██║██████╔╝██║██║█████╗   ╚████╔╝ " + ansiReset)
	fmt.Println(ansiCyan + "██║     ██║   ██║██║   ██║██╔═══╝ ██║██║██╔══╝    ╚██╔╝  " + ansiReset)
	fmt.Println(ansiCyan + "███████╗╚██████╔╝╚██████╔╝██║     ██║██║██║        ██║   " + ansiReset)
	fmt.Println(ansiCyan + "╚══════╝ ╚═════╝  ╚═════╝ ╚═╝     ╚═╝╚═╝╚═╝        ╚═╝   " + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

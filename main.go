package main

import (
	"flag"
	"log"
	"strings"

	"financials/config"
	"financials/database"
	"financials/logger"
	"financials/router"
	"financials/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// @title 历史财务 API
// @version 1.0
// @description 物业费用录入、批量上传以及 T12/T3/Monthly 汇总报表
// @host localhost:8080
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("历史财务 v1.0.0")
		return
	}

	// .env 不存在时忽略，环境变量仍可直接设置
	if err := godotenv.Load(); err != nil {
		log.Printf("未加载 .env: %v", err)
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖 + FINANCIALS_ 环境变量）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	zl := logger.Must(logger.New(cfg.Log))
	defer zl.Sync()

	config.PrintConfig()

	if err := database.Init(cfg, zl); err != nil {
		zl.Fatal("数据库初始化失败", zap.Error(err))
	}

	deps := router.NewDeps(store.NewGormStore(database.GetDB()), zl)
	r := router.SetupRouter(cfg, deps)

	zl.Info("服务已启动",
		zap.String("port", cfg.Server.Port),
		zap.String("swagger", "http://localhost"+cfg.Server.Port+"/swagger/index.html"),
		zap.String("api", "http://localhost"+cfg.Server.Port+"/api/"))

	if err := r.Run(cfg.Server.Port); err != nil {
		zl.Fatal("服务器启动失败", zap.Error(err))
	}
}

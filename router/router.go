package router

import (
	"financials/api"
	"financials/config"
	_ "financials/docs"
	"financials/logger"
	"financials/middleware"
	"financials/report"
	"financials/store"
	"financials/upload"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Deps 路由依赖的服务
type Deps struct {
	Store    store.RecordStore
	Reports  *report.Service
	Importer *upload.Importer
	Logger   *zap.Logger
}

// NewDeps 基于同一个存储构造报表服务和导入器
func NewDeps(s store.RecordStore, log *zap.Logger) Deps {
	return Deps{
		Store:    s,
		Reports:  report.NewService(s, logger.Named(log, "report")),
		Importer: upload.NewImporter(s, logger.Named(log, "upload")),
		Logger:   logger.Named(log, "http"),
	}
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(deps.Logger))

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	propertyHandler := api.NewPropertyHandler(deps.Store)
	expenseHandler := api.NewExpenseHandler(deps.Store)
	unitHandler := api.NewUnitHandler(deps.Store)
	reportHandler := api.NewReportHandler(deps.Reports)
	uploadHandler := api.NewUploadHandler(deps.Store, deps.Importer, cfg.Upload.MaxFileMB)
	templateHandler := api.NewTemplateHandler(deps.Store)

	g := r.Group("/api")
	{
		properties := g.Group("/properties")
		{
			properties.GET("", propertyHandler.List)
			properties.POST("", propertyHandler.Create)
			properties.GET("/:id", propertyHandler.Get)
		}

		g.GET("/expenses", expenseHandler.List)
		g.POST("/expenses", expenseHandler.Create)

		g.GET("/units", unitHandler.List)
		g.POST("/units", unitHandler.Create)

		// 报表
		reports := g.Group("/reports")
		{
			reports.GET("/filters", reportHandler.Filters)
			reports.GET("/summary", reportHandler.Summary)
			reports.GET("/summary/export", reportHandler.ExportExcel)
			reports.GET("/boxplot", reportHandler.BoxPlot)
		}

		// 批量上传（限流）
		uploads := g.Group("/uploads")
		uploads.Use(middleware.UploadRateLimit(cfg.Upload.RateLimit, cfg.Upload.RateWindow))
		{
			uploads.POST("/expenses", uploadHandler.Expenses)
			uploads.POST("/units", uploadHandler.Units)
		}

		templates := g.Group("/templates")
		{
			templates.GET("/expenses", templateHandler.Expenses)
			templates.GET("/units", templateHandler.Units)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

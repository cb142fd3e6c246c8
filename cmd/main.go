package main

import (
	"context"
	"log"

	"paper-cloud/config"
	"paper-cloud/internal/component/embedding"
	"paper-cloud/internal/component/ocr"
	"paper-cloud/internal/controller"
	"paper-cloud/internal/dao"
	"paper-cloud/internal/database"
	"paper-cloud/internal/middleware"
	"paper-cloud/internal/router"
	"paper-cloud/internal/service"
	"paper-cloud/internal/storage"
	"paper-cloud/job"

	"github.com/gin-gonic/gin"
)

func main() {
	config.InitConfig()
	cfg := config.GetConfig()

	ctx := context.Background()

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	milvusClient, err := database.InitMilvus(ctx)
	if err != nil {
		log.Fatalf("初始化Milvus失败: %v", err)
	}

	storageDriver, err := storage.NewDriver(cfg.Storage)
	if err != nil {
		log.Fatalf("初始化存储驱动失败: %v", err)
	}

	ocrEngine, err := ocr.NewEngine(&cfg.OCR)
	if err != nil {
		log.Fatalf("初始化OCR引擎失败: %v", err)
	}

	ocrCache, err := ocr.NewCache(&cfg.Cache)
	if err != nil {
		log.Fatalf("初始化OCR缓存失败: %v", err)
	}

	embedder, err := embedding.NewEmbeddingService(ctx, &cfg.Embedding)
	if err != nil {
		log.Fatalf("初始化嵌入服务失败: %v", err)
	}

	userDao := dao.NewUserDao(db)
	userService := service.NewUserService(userDao)
	userController := controller.NewUserController(userService)

	paperDao := dao.NewPaperDao(db)
	milvusDao := dao.NewMilvusDao(milvusClient, &cfg.Milvus)
	paperService := service.NewPaperService(paperDao, milvusDao, storageDriver, ocrEngine, ocrCache, embedder)
	paperController := controller.NewPaperController(paperService)

	// 定时清理过期OCR缓存
	job.StartCronJob(ocrCache, &cfg.Cache)

	r := gin.Default()
	// 配置跨域
	r.Use(middleware.SetupCORS())
	// 配置路由
	router.SetUpRouters(r, userController, paperController)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("服务启动失败: %v", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory-admin/internal/core/config"
	"inventory-admin/internal/core/database"
	"inventory-admin/internal/core/logger"
	"inventory-admin/internal/core/server"
	"inventory-admin/internal/core/storage"
	"inventory-admin/internal/domain"
	"inventory-admin/internal/repo"
	"inventory-admin/internal/service"
	"inventory-admin/internal/transport/http/handler"
	"inventory-admin/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Post{},
			&domain.Comment{},
			&domain.Category{},
			&domain.Supplier{},
			&domain.Product{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 对象存储（产品图片）
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := storage.New(ctx, storage.Options{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Bucket:          cfg.Storage.Bucket,
		UseSSL:          cfg.Storage.UseSSL,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	})
	cancel()
	if err != nil {
		log.Fatal("storage init failed", zap.Error(err))
	}
	log.Info("object storage ready", zap.String("bucket", cfg.Storage.Bucket))

	// 组装：repo -> service -> handler
	users := service.NewUserService(repo.NewUserRepo(db), log)
	posts := service.NewPostService(repo.NewPostRepo(db), log)
	categories := service.NewCategoryService(repo.NewCategoryRepo(db), log)
	suppliers := service.NewSupplierService(repo.NewSupplierRepo(db), log)
	products := service.NewProductService(repo.NewProductRepo(db), store, log)

	r := router.New(log, router.Handlers{
		Users:      handler.NewUserHandler(users),
		Posts:      handler.NewPostHandler(posts),
		Categories: handler.NewCategoryHandler(categories),
		Suppliers:  handler.NewSupplierHandler(suppliers),
		Products:   handler.NewProductHandler(products),
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()
	log.Info("admin api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("admin api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

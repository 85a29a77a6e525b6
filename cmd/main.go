package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/fyx-storefront/internal/api/grpc/context"
	"github.com/dtroode/fyx-storefront/internal/api/grpc/router"
	grpcServer "github.com/dtroode/fyx-storefront/internal/api/grpc/server"
	"github.com/dtroode/fyx-storefront/internal/assistant"
	"github.com/dtroode/fyx-storefront/internal/config"
	"github.com/dtroode/fyx-storefront/internal/logger"
	"github.com/dtroode/fyx-storefront/internal/model"
	"github.com/dtroode/fyx-storefront/internal/repository/memory"
	"github.com/dtroode/fyx-storefront/internal/repository/postgres"
	"github.com/dtroode/fyx-storefront/internal/repository/redis"
	"github.com/dtroode/fyx-storefront/internal/server"
	"github.com/dtroode/fyx-storefront/internal/service"
	storagememory "github.com/dtroode/fyx-storefront/internal/storage/memory"
	storage "github.com/dtroode/fyx-storefront/internal/storage/minio"
	"github.com/dtroode/fyx-storefront/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	store, closeStore := openStore(ctx, cfg, logger)
	defer func() {
		if err := closeStore.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	images := openStorage(ctx, cfg, logger)

	var ai model.Assistant = assistant.NewOffline()
	if cfg.Assistant.APIKey != "" {
		gemini, err := assistant.NewGemini(ctx, cfg.Assistant.APIKey, cfg.Assistant.TextModel, cfg.Assistant.ImageModel)
		if err != nil {
			logger.Fatal("failed to create generative client", "error", err)
		}
		ai = gemini
	} else {
		logger.Info("no GENAI_API_KEY set, generative features use canned text")
	}

	sf := service.New(service.Options{
		Store:          store,
		Storage:        images,
		Assistant:      ai,
		Logger:         logger,
		Hooks:          service.Hooks{service.LogHook(logger)},
		OTPCode:        cfg.Identity.OTPCode,
		AdminEmail:     cfg.Identity.AdminEmail,
		AdminName:      cfg.Identity.AdminName,
		LoginDelay:     cfg.Identity.LoginDelay,
		FederatedDelay: cfg.Identity.FederatedDelay,
		MerchantUPIID:  cfg.Checkout.MerchantUPIID,
		MerchantName:   cfg.Checkout.MerchantName,
	})
	if err := sf.Load(ctx); err != nil {
		logger.Fatal("failed to load storefront", "error", err)
	}
	defer sf.Close()

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.SessionTTL)
	grpcServer := registerGRPCServer(sf, tokenManager, grpcctx.NewManager(), logger, fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "store", cfg.Store.Backend)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(grpcServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := grpcServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStore(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.Store, io.Closer) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("failed to initialize store", "error", err)
		}
		return postgres.NewKVRepository(conn), conn
	case config.BackendRedis:
		client, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("failed to initialize store", "error", err)
		}
		return redis.NewStore(client, cfg.Redis.KeyPrefix), client
	default:
		return memory.NewStore(), closerFunc(func() error { return nil })
	}
}

func openStorage(ctx context.Context, cfg *config.Config, logger *logger.Logger) model.Storage {
	if cfg.Storage.Endpoint == "" {
		logger.Info("no MINIO_ENDPOINT set, images are kept in memory")
		return storagememory.NewStorage()
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	client, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}
	return client
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerGRPCServer(
	sf *service.Storefront,
	tokenManager model.TokenManager,
	ctxMgr model.ContextManager,
	logger *logger.Logger,
	addr string,
) *grpcServer.GRPCServer {
	r := router.New(sf, tokenManager, ctxMgr, logger)
	s := r.Register()

	reflection.Register(s)

	return grpcServer.NewGRPCServer(s, addr)
}

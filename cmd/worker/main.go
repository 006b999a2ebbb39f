package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kdheeru12/ad-generator/internal/adjobs/repository"
	"github.com/Kdheeru12/ad-generator/internal/config"
	"github.com/Kdheeru12/ad-generator/internal/render"
	"github.com/Kdheeru12/ad-generator/internal/worker"
	"github.com/Kdheeru12/ad-generator/pkg/db/aws"
	"github.com/Kdheeru12/ad-generator/pkg/db/postgres"
	clientRedis "github.com/Kdheeru12/ad-generator/pkg/db/redis"
	"github.com/Kdheeru12/ad-generator/pkg/logger"
)

func main() {
	log.Println("Starting render worker")
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}
	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := clientRedis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	defer redisClient.Close()
	appLogger.Infof("redis connected")

	s3Client, err := aws.NewAWSClient(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Infof("could not connect to s3: %s", err)
	}

	jobRepo := repository.NewAdJobsRepo(psqlDB)
	redisRepo := repository.NewAdJobsRedisRepo(redisClient, cfg.Redis.StatusTTL)
	awsRepo := repository.NewAwsRepository(s3Client)

	assembler := render.NewAssembler(
		render.NewGoogleSynthesizer(cfg),
		render.NewFFmpegComposer(cfg, appLogger),
		render.NewFFmpegConcatenator(),
		appLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Shutting down workers")
		cancel()
	}()

	w := worker.NewWorker(cfg, appLogger, jobRepo, redisRepo, awsRepo, assembler)
	w.Start(ctx)
	w.Wait()
}

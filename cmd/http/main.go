package main

import (
	"carecapture-service/internal/app/config"
	"carecapture-service/internal/app/delivery/http/middlewares"
	"carecapture-service/internal/app/delivery/http/routers"
	"carecapture-service/internal/app/drivers/database"
	"carecapture-service/internal/app/drivers/logger"
	"carecapture-service/internal/app/drivers/messaging"
	"carecapture-service/internal/app/drivers/storage"
	backendBatch "carecapture-service/internal/app/services/backend/batch"
	backendQuestionnaires "carecapture-service/internal/app/services/backend/questionnaires"
	formDrafts "carecapture-service/internal/app/services/core/form_drafts"
	"carecapture-service/internal/app/services/core/questionnaires"
	requestCompiler "carecapture-service/internal/app/services/core/request_compiler"
	"carecapture-service/internal/app/services/core/submissions"
	"carecapture-service/internal/app/services/shared/eventqueue"
	"carecapture-service/internal/app/services/shared/locker"
	"carecapture-service/internal/app/services/shared/redis"
	sharedStorage "carecapture-service/internal/app/services/shared/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	accessLog := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig, internalConfig)
	redisClient := database.NewRedisClient(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		Logger:         log,
		AccessLogger:   accessLog,
		RabbitMQ:       rabbitMQ,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              ":" + internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to close drivers", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger
	ctx := context.Background()

	backendTimeout := time.Duration(internalConfig.Backend.RequestTimeoutInSeconds) * time.Second
	requestTimeout := time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second

	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	minioStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)
	storage.EnsureBucket(ctx, bootstrap.Minio, internalConfig.Minio.BucketName)

	eventPublisher, err := eventqueue.NewSubmissionEventPublisher(bootstrap.RabbitMQ, internalConfig.RabbitMQ.SubmissionEventQueue, log)
	if err != nil {
		return err
	}

	// Backend clients
	batchClient := backendBatch.NewBatchBackendClient(internalConfig.Backend.BaseUrl, internalConfig.Backend.AuthToken, backendTimeout, log)
	questionnaireClient := backendQuestionnaires.NewQuestionnaireBackendClient(internalConfig.Backend.BaseUrl, internalConfig.Backend.AuthToken, backendTimeout, log)

	// Questionnaire
	questionnaireUsecase := questionnaires.NewQuestionnaireUsecase(questionnaireClient, redisRepository, internalConfig, log)
	questionnaireController := questionnaires.NewQuestionnaireController(log, questionnaireUsecase, requestTimeout)

	// Submission
	fileEncoder := requestCompiler.NewFileEncoder(minioStorage, internalConfig.Minio.BucketName, log)
	compiler := requestCompiler.NewCompiler(fileEncoder)
	submissionUsecase := submissions.NewSubmissionUsecase(batchClient, compiler, log)

	// Form draft
	formDraftRepository := formDrafts.NewFormDraftMongoRepository(bootstrap.MongoDB.Client(), internalConfig.MongoDB.DBName)
	err = formDraftRepository.EnsureIndexes(ctx)
	if err != nil {
		return err
	}
	formDraftUsecase := formDrafts.NewFormDraftUsecase(
		formDraftRepository,
		questionnaireUsecase,
		submissionUsecase,
		lockerService,
		eventPublisher,
		internalConfig,
		log,
	)
	formDraftController := formDrafts.NewFormDraftController(log, formDraftUsecase, requestTimeout)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares.NewMiddlewares(log, internalConfig),
		bootstrap.AccessLogger,
		questionnaireController,
		formDraftController,
	)
	return nil
}

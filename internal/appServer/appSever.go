// launching the server, storage, kafka, workers
package appServer

import (
	"context"
	"crypto/tls"
	"log"

	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/file-tools/config"
	"github.com/ds124wfegd/file-tools/internal/database"
	"github.com/ds124wfegd/file-tools/internal/pkg/kafka"
	"github.com/ds124wfegd/file-tools/internal/pkg/office"
	"github.com/ds124wfegd/file-tools/internal/pkg/processor"
	"github.com/ds124wfegd/file-tools/internal/pkg/storage"
	"github.com/ds124wfegd/file-tools/internal/service"
	"github.com/ds124wfegd/file-tools/internal/transport"
	"github.com/ds124wfegd/file-tools/internal/worker"
	"github.com/gin-gonic/gin"

	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	fileStorage := storage.NewFileStorage(cfg.Storage.BasePath)
	resultRepo := database.NewResultRepository(fileStorage)
	kafkaProducer := kafka.NewProducer(config.GetEnv("KAFKA_BROKERS", cfg.Kafka.Brokers), cfg.Kafka.Topic)
	officeClient := office.NewConverter(config.GetEnv("OFFICE_SERVER_URL", cfg.Office.ServerURL))
	engine := processor.NewEngine(officeClient)
	toolService := service.NewToolService(resultRepo, engine, kafkaProducer, cfg.Kafka.Topic,
		cfg.App.BaseURL, cfg.App.MaxUploadSizeMB, cfg.App.MaxBatchFiles)
	toolHandler := transport.NewToolHandler(toolService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	cleanupWorker := worker.NewResultCleanupWorker(toolService,
		time.Duration(cfg.Worker.CleanupInterval)*time.Minute,
		time.Duration(cfg.Worker.RetentionTime)*time.Minute)
	go cleanupWorker.Start(workerCtx)

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(toolHandler)); err != nil {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	stopWorker()
	if err := kafkaProducer.Close(); err != nil {
		logrus.Errorf("error occured on kafka producer close: %s", err.Error())
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

}

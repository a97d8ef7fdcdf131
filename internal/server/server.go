package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/config"
	"github.com/courseforge/courseforge/internal/handlers"
	"github.com/courseforge/courseforge/internal/job"
	"github.com/courseforge/courseforge/internal/jobs"
	"github.com/courseforge/courseforge/internal/service"
	"github.com/courseforge/courseforge/internal/session"
	"github.com/courseforge/courseforge/internal/store"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Server represents the HTTP server.
type Server struct {
	httpPort string
}

// NewServer creates a new server.
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server.
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start wires the whole application and serves it until interrupted.
func Start(httpPort string) error {
	httpPort = ":" + httpPort

	cnf := config.LoadConfig()
	db := config.GetDB(cnf)

	listener, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	courseStore := store.NewGormStore(db)
	if err := courseStore.Migrate(); err != nil {
		return err
	}

	redis := config.GetRedis(cnf)
	if redis != nil {
		if err := redis.Ping(context.Background()); err != nil {
			logrus.Warnf("redis unreachable, running without cache: %v", err)
			redis = nil
		}
	}
	courseCache := cache.NewCourseCache(redis)

	codec, err := service.NewCodec(cnf.Compression)
	if err != nil {
		return err
	}

	courses := service.NewCourseService(courseStore, courseCache)
	curriculums := service.NewCurriculumService(courseStore, courseCache)
	pages := service.NewPageService(courseStore, courseCache, codec)
	versions := service.NewVersionService(courseStore, codec)
	viewer := service.NewViewerService(courseStore)
	comments := service.NewCommentService(courseStore)
	auth := service.NewAuthService(courseStore)
	export := service.NewExportService(courseStore)

	sessionStore := session.NewStore(cnf.SessionKey, cnf.SecureCookies)

	router := NewRouter(RouterConfig{
		AuthHandler:       handlers.NewAuthHandler(auth, sessionStore),
		CourseHandler:     handlers.NewCourseHandler(courses),
		CurriculumHandler: handlers.NewCurriculumHandler(curriculums),
		PageHandler:       handlers.NewPageHandler(pages),
		VersionHandler:    handlers.NewVersionHandler(versions),
		ViewerHandler:     handlers.NewViewerHandler(viewer, cnf.SecureCookies),
		CommentHandler:    handlers.NewCommentHandler(comments),
		ExportHandler:     handlers.NewExportHandler(export),
		ExternalHandler:   handlers.NewExternalHandler(courses, pages, courseStore, cnf.ExternalAPIKey),
		AllowOrigins:      allowOrigins(cnf),
	})

	httpServer := &http.Server{
		Addr:    httpPort,
		Handler: router,
	}

	cleaner := job.NewVersionCleaner(courseStore)
	go cleaner.Run()

	executor := jobs.NewTaskExecutor(nil, []jobs.CronJob{
		jobs.NewCourseCacheWarmTask("@every 30m", courses, courseCache),
	})
	executor.Run()

	go func() {
		logrus.Info("starting http server on: ", httpPort)
		if err := httpServer.Serve(listener); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting http server: %v", err)
			}
		}
		logrus.Infof("http server stopped")
	}()

	logrus.Infof("Press Ctrl+C to stop the server")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	cleaner.Stop()
	executor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logrus.Errorf("error stopping http server: %v", err)
	}

	if redis != nil {
		if err := redis.Close(); err != nil {
			logrus.Errorf("error closing redis: %v", err)
		}
	}

	return nil
}

func allowOrigins(cnf *config.Config) []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return strings.Split(origins, ",")
	}
	if cnf.Env == "production" {
		return []string{}
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}

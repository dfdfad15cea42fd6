package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"projectboard/internal/config"
	"projectboard/internal/handler"
	"projectboard/internal/middleware"
	"projectboard/internal/repository"
	"projectboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Info("✅ Connected to database")

	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	labelRepo := repository.NewLabelRepository(db)

	// Initialize services
	authorizer := service.NewAuthorizer(membershipRepo)
	resolver := service.NewResolver(boardRepo, columnRepo, taskRepo, commentRepo)
	projectSvc := service.NewProjectService(projectRepo, membershipRepo, userRepo, authorizer)
	boardSvc := service.NewBoardService(boardRepo, projectRepo, authorizer)
	columnSvc := service.NewColumnService(columnRepo, boardRepo, resolver, authorizer)
	taskSvc := service.NewTaskService(taskRepo, labelRepo, userRepo, membershipRepo, resolver, authorizer)
	commentSvc := service.NewCommentService(commentRepo, resolver, authorizer)
	labelSvc := service.NewLabelService(labelRepo, projectRepo, authorizer)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret)
	projectHandler := handler.NewProjectHandler(projectSvc)
	memberHandler := handler.NewMemberHandler(projectSvc)
	boardHandler := handler.NewBoardHandler(boardSvc)
	columnHandler := handler.NewColumnHandler(columnSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	commentHandler := handler.NewCommentHandler(commentSvc)
	labelHandler := handler.NewLabelHandler(labelSvc)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		authorized.GET("/me", userHandler.Me)

		// Project routes
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects", projectHandler.GetAll)
		authorized.GET("/projects/:id", projectHandler.GetByID)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)

		// Membership routes
		authorized.GET("/projects/:id/members", memberHandler.GetMembers)
		authorized.POST("/projects/:id/members", memberHandler.AddMember)
		authorized.PUT("/projects/:id/members/:user_id", memberHandler.ChangeRole)
		authorized.DELETE("/projects/:id/members/:user_id", memberHandler.RemoveMember)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/projects/:id/boards", boardHandler.GetByProject)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Column routes
		authorized.POST("/columns", columnHandler.Create)
		authorized.GET("/boards/:id/columns", columnHandler.GetByBoard)
		authorized.GET("/columns/:id", columnHandler.GetByID)
		authorized.PUT("/columns/:id", columnHandler.Update)
		authorized.DELETE("/columns/:id", columnHandler.Delete)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/columns/:id/tasks", taskHandler.GetByColumn)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/:id/move", taskHandler.Move)
		authorized.POST("/tasks/:id/assign", taskHandler.Assign)
		authorized.DELETE("/tasks/:id/assign", taskHandler.Unassign)
		authorized.POST("/tasks/:id/labels/:label_id", taskHandler.AddLabel)
		authorized.DELETE("/tasks/:id/labels/:label_id", taskHandler.RemoveLabel)
		authorized.GET("/tasks/:id/labels", taskHandler.GetLabels)

		// Comment routes
		authorized.POST("/comments", commentHandler.Create)
		authorized.GET("/tasks/:id/comments", commentHandler.GetByTask)
		authorized.PUT("/comments/:id", commentHandler.Update)
		authorized.DELETE("/comments/:id", commentHandler.Delete)

		// Label routes
		authorized.POST("/labels", labelHandler.Create)
		authorized.GET("/projects/:id/labels", labelHandler.GetByProject)
		authorized.GET("/labels/:id", labelHandler.GetByID)
		authorized.PUT("/labels/:id", labelHandler.Update)
		authorized.DELETE("/labels/:id", labelHandler.Delete)
		authorized.GET("/labels/:id/tasks", labelHandler.GetTasks)
	}
	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func runMigrations(cfg *config.Config) error {
	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	log.Info("✅ Migrations applied")
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Info("✅ Server exited properly")
}

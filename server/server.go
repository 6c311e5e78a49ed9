package server

import (
	"context"
	"net/http"

	"github.com/existflow/taskapi/internal/db"
	"github.com/existflow/taskapi/internal/model"
	"github.com/existflow/taskapi/internal/validate"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Store is the persistence gateway the handlers call
type Store interface {
	Ping(ctx context.Context) error

	ListProjects(ctx context.Context, page, pageSize int) (db.Page[model.Project], error)
	GetProject(ctx context.Context, id int64) (*model.Project, error)
	CreateProject(ctx context.Context, in db.ProjectInput) (*model.Project, error)
	UpdateProject(ctx context.Context, id int64, in db.ProjectInput) error
	DeleteProject(ctx context.Context, id int64) error

	ListTasks(ctx context.Context, f db.TaskFilter) (db.Page[model.Task], error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	CreateTask(ctx context.Context, in db.TaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, in db.TaskInput) error
	DeleteTask(ctx context.Context, id int64) error
}

// Options tunes server behavior
type Options struct {
	// ExposeErrors includes the error text in 500 responses
	ExposeErrors bool
}

// Server is the project/task HTTP API
type Server struct {
	store Store
	opts  Options
	echo  *echo.Echo
}

// New creates a new server on top of store
func New(store Store, opts Options) *Server {
	s := &Server{
		store: store,
		opts:  opts,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/health")
	})
	e.GET("/health", s.handleHealth)

	projects := e.Group("/api/projects")
	projects.GET("", s.handleListProjects)
	projects.GET("/:id", s.handleGetProject)
	projects.POST("", s.handleCreateProject)
	projects.PUT("/:id", s.handleUpdateProject)
	projects.DELETE("/:id", s.handleDeleteProject)

	tasks := e.Group("/api/tasks")
	tasks.GET("", s.handleListTasks)
	tasks.GET("/:id", s.handleGetTask)
	tasks.POST("", s.handleCreateTask)
	tasks.PUT("/:id", s.handleUpdateTask)
	tasks.DELETE("/:id", s.handleDeleteTask)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.store.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

package server

import (
	"fmt"
	"net/http"

	"github.com/existflow/taskapi/internal/db"
	"github.com/existflow/taskapi/internal/logger"
	"github.com/labstack/echo/v4"
)

// projectRequest is the body of project create and update
type projectRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (r projectRequest) input() db.ProjectInput {
	return db.ProjectInput{Name: r.Name, Description: r.Description}
}

func (s *Server) handleListProjects(c echo.Context) error {
	var page, pageSize int
	if err := pageParams(echo.QueryParamsBinder(c), &page, &pageSize).BindError(); err != nil {
		return err
	}

	result, err := s.store.ListProjects(c.Request().Context(), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	project, err := s.store.GetProject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := s.store.CreateProject(c.Request().Context(), req.input())
	if err != nil {
		return err
	}

	logger.Info("Project created", logger.F("project_id", project.ID))

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/projects/%d", project.ID))
	return c.JSON(http.StatusCreated, project)
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := s.store.UpdateProject(c.Request().Context(), id, req.input()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.store.DeleteProject(c.Request().Context(), id); err != nil {
		return err
	}

	logger.Info("Project deleted", logger.F("project_id", id))
	return c.NoContent(http.StatusNoContent)
}

// bindAndValidate decodes the JSON body into req and runs its validate tags
// before anything reaches the store
func bindAndValidate(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return err
	}
	return c.Validate(req)
}

package server

import (
	"fmt"
	"net/http"

	"github.com/existflow/taskapi/internal/db"
	"github.com/existflow/taskapi/internal/logger"
	"github.com/existflow/taskapi/internal/model"
	"github.com/labstack/echo/v4"
)

// taskRequest is the body of task create and update
type taskRequest struct {
	Title     string       `json:"title" validate:"required,notblank,max=160"`
	Notes     *string      `json:"notes"`
	DueDate   *dueDate     `json:"dueDate"`
	Status    model.Status `json:"status"`
	ProjectID int64        `json:"projectId" validate:"required"`
}

func (r taskRequest) input() db.TaskInput {
	return db.TaskInput{
		Title:     r.Title,
		Notes:     r.Notes,
		DueDate:   r.DueDate.ptr(),
		Status:    r.Status,
		ProjectID: r.ProjectID,
	}
}

func (s *Server) handleListTasks(c echo.Context) error {
	var (
		f         db.TaskFilter
		projectID int64
		status    model.Status
	)

	b := pageParams(echo.QueryParamsBinder(c), &f.Page, &f.PageSize).
		Int64("projectId", &projectID).
		BindUnmarshaler("status", &status).
		String("search", &f.Search).
		String("orderBy", &f.OrderBy)
	if err := b.BindError(); err != nil {
		return err
	}

	if c.QueryParam("projectId") != "" {
		f.ProjectID = &projectID
	}
	if c.QueryParam("status") != "" {
		f.Status = &status
	}

	result, err := s.store.ListTasks(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	task, err := s.store.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req taskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := s.store.CreateTask(c.Request().Context(), req.input())
	if err != nil {
		return err
	}

	logger.Info("Task created",
		logger.F("task_id", task.ID),
		logger.F("project_id", task.ProjectID))

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/tasks/%d", task.ID))
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := s.store.UpdateTask(c.Request().Context(), id, req.input()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}

	logger.Info("Task soft-deleted", logger.F("task_id", id))
	return c.NoContent(http.StatusNoContent)
}

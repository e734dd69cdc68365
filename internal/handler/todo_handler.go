package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todoapi/internal/service"
)

// TodoHandler handles the todo list endpoints.
type TodoHandler struct {
	todoService service.TodoService
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(todoService service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// ListTodosRequest represents the get_list query.
type ListTodosRequest struct {
	UserID string `query:"userId" validate:"notblank"`
}

// AddTodoRequest documents the add_list body. It is decoded by hand so that
// key presence and JSON types can be checked in order.
type AddTodoRequest struct {
	Value      string `json:"value" example:"buy milk"`
	IsComplete bool   `json:"isComplete" example:"false"`
	UserID     string `json:"userId" example:"665f1c2e8b3e4a0012345678"`
}

// TodoRefRequest addresses one todo of one user.
type TodoRefRequest struct {
	ID     string `json:"id" validate:"notblank" example:"665f1c2e8b3e4a0087654321"`
	UserID string `json:"userId" validate:"notblank" example:"665f1c2e8b3e4a0012345678"`
}

// ListTodos godoc
// @Summary List a user's todos
// @Tags todos
// @Produce json
// @Param userId query string true "Owner id"
// @Success 200 {object} TodoListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /get_list [get]
func (h *TodoHandler) ListTodos(c echo.Context) error {
	var req ListTodosRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	todos, err := h.todoService.List(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TodoListResponse{
		Response: success(http.StatusOK, "Todos fetched successfully"),
		List:     todos,
	})
}

// AddTodo godoc
// @Summary Add a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param request body AddTodoRequest true "New todo"
// @Success 201 {object} TodoIDResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /add_list [post]
func (h *TodoHandler) AddTodo(c echo.Context) error {
	in, err := decodeAddTodo(c.Request().Body)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Add(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, TodoIDResponse{
		Response: success(http.StatusCreated, "Todo added successfully"),
		ID:       todo.ID,
	})
}

// ToggleTodo godoc
// @Summary Toggle a todo's completion
// @Description Flips isComplete. Unknown ids and ids owned by another user both return 404.
// @Tags todos
// @Accept json
// @Produce json
// @Param request body TodoRefRequest true "Todo and owner"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /update_list [post]
func (h *TodoHandler) ToggleTodo(c echo.Context) error {
	var req TodoRefRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.todoService.Toggle(c.Request().Context(), req.ID, req.UserID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, success(http.StatusOK, "Todo updated successfully"))
}

// RemoveTodo godoc
// @Summary Delete a todo
// @Description Unknown ids and ids owned by another user both return 404.
// @Tags todos
// @Accept json
// @Produce json
// @Param request body TodoRefRequest true "Todo and owner"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /del_list [post]
func (h *TodoHandler) RemoveTodo(c echo.Context) error {
	var req TodoRefRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.todoService.Remove(c.Request().Context(), req.ID, req.UserID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, success(http.StatusOK, "Todo deleted successfully"))
}

package handler

import (
	"github.com/labstack/echo/v4"

	"todoapi/internal/model"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Code    int    `json:"code" example:"200"`
	Message string `json:"message" example:"Todo updated successfully"`
}

// UserIDResponse is returned by register and login.
type UserIDResponse struct {
	Response
	UserID string `json:"userId" example:"665f1c2e8b3e4a0012345678"`
}

// TodoListResponse is returned by get_list.
type TodoListResponse struct {
	Response
	List []model.Todo `json:"list"`
}

// TodoIDResponse is returned by add_list.
type TodoIDResponse struct {
	Response
	ID string `json:"id" example:"665f1c2e8b3e4a0087654321"`
}

func success(code int, message string) Response {
	return Response{Success: true, Code: code, Message: message}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

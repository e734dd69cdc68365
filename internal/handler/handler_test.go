package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/service"
)

// memoryUsers and memoryTodos are in-process stand-ins for the store.

type memoryUsers struct {
	mu    sync.Mutex
	users []model.User
}

func (m *memoryUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = fmt.Sprintf("u%d", len(m.users)+1)
	m.users = append(m.users, *user)
	return nil
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Username == username {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memoryTodos struct {
	mu     sync.Mutex
	nextID int
	todos  []model.Todo
}

func (m *memoryTodos) Create(_ context.Context, todo *model.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	todo.ID = fmt.Sprintf("t%d", m.nextID)
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	m.todos = append(m.todos, *todo)
	return nil
}

func (m *memoryTodos) ListByUser(_ context.Context, userID string) ([]model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Todo{}
	for _, t := range m.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryTodos) Toggle(_ context.Context, id, userID string) (*model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.todos {
		if m.todos[i].ID == id && m.todos[i].UserID == userID {
			m.todos[i].IsComplete = !m.todos[i].IsComplete
			m.todos[i].UpdatedAt = time.Now()
			t := m.todos[i]
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryTodos) Delete(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.todos {
		if m.todos[i].ID == id && m.todos[i].UserID == userID {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type testServer struct {
	e     *echo.Echo
	users *memoryUsers
	todos *memoryTodos
}

func newTestServer() *testServer {
	users := &memoryUsers{}
	todos := &memoryTodos{}

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = NewValidator()

	accountHandler := NewAccountHandler(service.NewAccountService(users))
	todoHandler := NewTodoHandler(service.NewTodoService(todos, nil, time.Minute))

	e.POST("/register", accountHandler.Register)
	e.POST("/login", accountHandler.Login)
	e.GET("/get_list", todoHandler.ListTodos)
	e.POST("/add_list", todoHandler.AddTodo)
	e.POST("/update_list", todoHandler.ToggleTodo)
	e.POST("/del_list", todoHandler.RemoveTodo)

	return &testServer{e: e, users: users, todos: todos}
}

type envelope struct {
	Success bool         `json:"success"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	UserID  string       `json:"userId"`
	ID      string       `json:"id"`
	List    []model.Todo `json:"list"`
}

func (s *testServer) postRaw(t *testing.T, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return s.do(t, req)
}

func (s *testServer) post(t *testing.T, path string, body interface{}) (int, envelope) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	return s.postRaw(t, path, string(payload))
}

func (s *testServer) list(t *testing.T, userID string) (int, envelope) {
	t.Helper()
	target := "/get_list"
	if userID != "" {
		target += "?userId=" + url.QueryEscape(userID)
	}
	return s.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	require.Equal(t, rec.Code, out.Code, "envelope code mirrors HTTP status")
	require.Equal(t, rec.Code < 300, out.Success)
	return rec.Code, out
}

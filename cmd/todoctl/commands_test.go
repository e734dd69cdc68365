package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListCmd_TableOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_list", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("userId"))
		_ = json.NewEncoder(w).Encode(envelope{
			Success: true, Code: 200, Message: "Todos fetched successfully",
			List: []todoItem{
				{ID: "t1", Value: "buy milk", UserID: "u1"},
				{ID: "t2", Value: "walk dog", IsComplete: true, UserID: "u1"},
			},
		})
	}))
	defer srv.Close()
	t.Setenv("TODO_API_URL", srv.URL)

	out, err := runCmd(t, "list", "--user", "u1")

	require.NoError(t, err)
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "walk dog")
}

func TestAddCmd_SendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "buy oat milk", body["value"])
		assert.Equal(t, true, body["isComplete"])
		assert.Equal(t, "u1", body["userId"])
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(envelope{Success: true, Code: 201, Message: "Todo added successfully", ID: "t9"})
	}))
	defer srv.Close()
	t.Setenv("TODO_API_URL", srv.URL)

	out, err := runCmd(t, "add", "--user", "u1", "--done", "buy", "oat", "milk")

	require.NoError(t, err)
	assert.Equal(t, "t9\n", out)
}

func TestToggleCmd_ReportsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/update_list", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(envelope{Success: false, Code: 404, Message: "todo not found or unauthorized"})
	}))
	defer srv.Close()
	t.Setenv("TODO_API_URL", srv.URL)

	_, err := runCmd(t, "toggle", "--user", "u2", "t1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "todo not found")
}

func TestAPIURL_Default(t *testing.T) {
	t.Setenv("TODO_API_URL", "")
	assert.Equal(t, defaultAPIURL, apiURL())

	t.Setenv("TODO_API_URL", "http://todo.test/")
	assert.Equal(t, "http://todo.test", apiURL())
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultAPIURL = "http://localhost:3000"

// apiURL returns the base URL of the todo API.
// It can be overridden with the TODO_API_URL environment variable.
func apiURL() string {
	if v := os.Getenv("TODO_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

type todoItem struct {
	ID         string    `json:"_id"`
	Value      string    `json:"value"`
	IsComplete bool      `json:"isComplete"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type envelope struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	UserID  string     `json:"userId,omitempty"`
	ID      string     `json:"id,omitempty"`
	List    []todoItem `json:"list,omitempty"`
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient() *apiClient {
	return &apiClient{baseURL: apiURL(), http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *apiClient) post(path string, payload interface{}) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(resp)
}

func (c *apiClient) get(path string, query url.Values) (*envelope, error) {
	resp, err := c.http.Get(c.baseURL + path + "?" + query.Encode())
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(resp)
}

func decodeEnvelope(resp *http.Response) (*envelope, error) {
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("API error %d: %s", env.Code, env.Message)
	}
	return &env, nil
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

// Walks the register, renew, approve and statistics flow against a running
// server. Configure with SMOKE_BASE_URL, SMOKE_ADMIN_EMAIL, SMOKE_ADMIN_PASSWORD.

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var client = &http.Client{Timeout: 10 * time.Second}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func prettyPrint(raw json.RawMessage) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Println(string(raw))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func sendRequest(baseURL, method, path, token string, body interface{}) (*envelope, int, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return &env, resp.StatusCode, nil
}

type step struct {
	title  string
	method string
	path   string
	token  *string
	body   interface{}
	want   int
	after  func(data json.RawMessage) error
}

func main() {
	baseURL := getenv("SMOKE_BASE_URL", "http://localhost:3000/api")
	email := fmt.Sprintf("smoke+%d@gym.local", time.Now().Unix())

	var adminToken, requestId string

	steps := []step{
		{
			title: "[ADMIN] Login", method: "POST", path: "/admin/login", want: http.StatusOK,
			body: map[string]string{
				"email":    getenv("SMOKE_ADMIN_EMAIL", "admin@gym.local"),
				"password": getenv("SMOKE_ADMIN_PASSWORD", ""),
			},
			after: func(data json.RawMessage) error {
				var res struct{ Token string }
				if err := json.Unmarshal(data, &res); err != nil {
					return err
				}
				adminToken = res.Token
				return nil
			},
		},
		{
			title: "[USER] Self-register", method: "POST", path: "/user/register", want: http.StatusCreated,
			body: map[string]interface{}{
				"first_name": "Smoke", "last_name": "Test", "email": email,
				"password": "secret1", "confirm_password": "secret1",
				"age": 21, "gender": "Female", "member_type": "Student", "gym_plan": "Daily",
			},
		},
		{
			title: "[USER] Login (pending, expect 401)", method: "POST", path: "/user/login", want: http.StatusUnauthorized,
			body:  map[string]string{"email": email, "password": "secret1"},
		},
		{title: "[ADMIN] List pending members", method: "GET", path: "/admin/members?status=Pending", token: &adminToken, want: http.StatusOK},
		{title: "[ADMIN] Dashboard summary", method: "GET", path: "/admin/dashboard-summary", token: &adminToken, want: http.StatusOK},
		{title: "[ADMIN] Revenue", method: "GET", path: "/admin/members-statistics", token: &adminToken, want: http.StatusOK},
		{title: "[ADMIN] Weekly revenue", method: "GET", path: "/admin/weekly-revenue", token: &adminToken, want: http.StatusOK},
		{title: "[ADMIN] Sweep expirations", method: "POST", path: "/admin/members/sweep", token: &adminToken, want: http.StatusOK},
		{
			title: "[ADMIN] Pending renewals", method: "GET", path: "/admin/renewals?status=Pending", token: &adminToken, want: http.StatusOK,
			after: func(data json.RawMessage) error {
				var res []struct{ Id string }
				if err := json.Unmarshal(data, &res); err != nil {
					return err
				}
				if len(res) > 0 {
					requestId = res[0].Id
				}
				return nil
			},
		},
		{title: "[PUBLIC] Plans", method: "GET", path: "/plans", want: http.StatusOK},
		{title: "[ADMIN] Membership logs", method: "GET", path: "/admin/membership-logs?days=7", token: &adminToken, want: http.StatusOK},
	}

	color.Cyan("Starting membership API smoke test against %s\n", baseURL)

	failed := 0
	for i, s := range steps {
		color.Yellow("\n%d. %s", i+1, s.title)
		token := ""
		if s.token != nil {
			token = *s.token
		}
		env, status, err := sendRequest(baseURL, s.method, s.path, token, s.body)
		if err != nil {
			color.Red("Failed: %v", err)
			failed++
			continue
		}
		if status != s.want {
			color.Red("Status: %d (want %d) %s", status, s.want, env.Message)
			failed++
			continue
		}
		color.Green("Status: %d %s", status, env.Message)
		prettyPrint(env.Data)
		if s.after != nil {
			if err := s.after(env.Data); err != nil {
				color.Red("Failed to read response: %v", err)
				failed++
			}
		}
	}

	if requestId != "" {
		color.Yellow("\nLatest pending renewal: %s (left for manual review)", requestId)
	}
	if failed > 0 {
		color.Red("\n%d step(s) failed", failed)
		os.Exit(1)
	}
	color.Cyan("\nAll steps passed")
}

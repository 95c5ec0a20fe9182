package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hrms/internal/app/server"
	"hrms/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		FrontendDir:        "frontend/dist",
		Environment:        "test",
		SeedAdminName:      "Test Admin",
		SeedAdminUsername:  "admin",
		SeedAdminPassword:  "ChangeMe123!",
		SeedSampleData:     false,
		RunMigrations:      true,
		MigrationsDir:      "../../../../migrations",
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     false,
	}
}

func startApp(t *testing.T) (*server.App, *httptest.Server, config.Config) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return app, ts, cfg
}

func TestFineAppealJourney(t *testing.T) {
	app, ts, cfg := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)

	username := fmt.Sprintf("journey-%d", time.Now().UnixNano())
	employeeID := createEmployee(t, client, ts.URL, adminToken, username, 26000)
	employeeToken := login(t, client, ts.URL, username, "Employee123!")

	// Admin charges a fine; the employee appeals it.
	fineID := createFine(t, client, ts.URL, adminToken, employeeID, 500)

	resp := postJSON(t, client, ts.URL+"/api/v1/appeals", employeeToken, map[string]any{
		"type":      "Fine",
		"reason":    "fine was charged in error",
		"relatedId": fineID,
	})
	appealID := extractID(t, resp)

	// Approval waives the fine and flips the appeal in one step.
	resolved := postJSON(t, client, ts.URL+"/api/v1/appeals/"+appealID+"/resolve", adminToken, map[string]any{
		"status": "Approved",
	})
	var appealPayload map[string]any
	if err := json.Unmarshal(resolved.Data, &appealPayload); err != nil {
		t.Fatalf("failed to decode appeal response: %v", err)
	}
	if status := appealPayload["status"]; status != "Approved" {
		t.Fatalf("appeal status = %v, want Approved", status)
	}

	var fineCount int
	if err := app.Pool.QueryRow(context.Background(),
		"SELECT COUNT(1) FROM fines WHERE id = $1", fineID).Scan(&fineCount); err != nil {
		t.Fatalf("failed to count fines: %v", err)
	}
	if fineCount != 0 {
		t.Fatal("approved fine appeal should delete the fine")
	}

	// A second decision on the same appeal must be refused.
	postJSONStatus(t, client, ts.URL+"/api/v1/appeals/"+appealID+"/resolve", adminToken, map[string]any{
		"status": "Rejected",
	}, http.StatusConflict)
}

func TestFineAppealWithoutLinkedFineResolves(t *testing.T) {
	app, ts, cfg := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)

	username := fmt.Sprintf("unlinked-%d", time.Now().UnixNano())
	employeeID := createEmployee(t, client, ts.URL, adminToken, username, 26000)

	// The API requires a linked fine, but older rows may carry none.
	var appealID string
	err := app.Pool.QueryRow(context.Background(), `
    INSERT INTO appeals (employee_id, employee_name, type, reason, status)
    VALUES ($1, 'Journey Tester', 'Fine', 'fine already reversed', 'Pending')
    RETURNING id`, employeeID).Scan(&appealID)
	if err != nil {
		t.Fatalf("failed to seed appeal: %v", err)
	}

	resolved := postJSON(t, client, ts.URL+"/api/v1/appeals/"+appealID+"/resolve", adminToken, map[string]any{
		"status": "Approved",
	})
	var payload map[string]any
	if err := json.Unmarshal(resolved.Data, &payload); err != nil {
		t.Fatalf("failed to decode appeal response: %v", err)
	}
	if status := payload["status"]; status != "Approved" {
		t.Fatalf("appeal status = %v, want Approved", status)
	}
}

func TestAbsentAppealBackfillsAttendance(t *testing.T) {
	app, ts, cfg := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)

	username := fmt.Sprintf("absent-%d", time.Now().UnixNano())
	employeeID := createEmployee(t, client, ts.URL, adminToken, username, 26000)
	employeeToken := login(t, client, ts.URL, username, "Employee123!")

	day := "2025-09-10"
	resp := postJSON(t, client, ts.URL+"/api/v1/appeals", employeeToken, map[string]any{
		"type":   "Absent",
		"reason": "was on site at a client visit",
		"date":   day,
	})
	appealID := extractID(t, resp)

	postJSON(t, client, ts.URL+"/api/v1/appeals/"+appealID+"/resolve", adminToken, map[string]any{
		"status": "Approved",
	})

	var status, method string
	var checkIn *string
	err := app.Pool.QueryRow(context.Background(), `
    SELECT status, method, check_in FROM attendance
    WHERE employee_id = $1 AND date = $2::date`, employeeID, day).Scan(&status, &method, &checkIn)
	if err != nil {
		t.Fatalf("expected an attendance row for the appealed day: %v", err)
	}
	if status != "Present" || method != "Manual" {
		t.Fatalf("attendance = %s/%s, want Present/Manual", status, method)
	}
	if checkIn == nil || *checkIn != "09:00" {
		t.Fatalf("check_in = %v, want 09:00", checkIn)
	}
}

func TestPayrollProcessIsIdempotent(t *testing.T) {
	app, ts, cfg := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)

	username := fmt.Sprintf("payroll-%d", time.Now().UnixNano())
	employeeID := createEmployee(t, client, ts.URL, adminToken, username, 26000)

	url := ts.URL + "/api/v1/payroll/process?month=September&year=2025"
	first := postJSON(t, client, url, adminToken, nil)
	second := postJSON(t, client, url, adminToken, nil)

	var firstResult, secondResult map[string]any
	if err := json.Unmarshal(first.Data, &firstResult); err != nil {
		t.Fatalf("failed to decode process response: %v", err)
	}
	if err := json.Unmarshal(second.Data, &secondResult); err != nil {
		t.Fatalf("failed to decode process response: %v", err)
	}
	if firstResult["processed"].(float64) < 1 {
		t.Fatal("expected at least one processed employee")
	}

	var rows int
	err := app.Pool.QueryRow(context.Background(), `
    SELECT COUNT(1) FROM payroll_status
    WHERE employee_id = $1 AND month = 'September' AND year = '2025'`, employeeID).Scan(&rows)
	if err != nil {
		t.Fatalf("failed to count payroll rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("payroll rows = %d, want 1 after reprocessing", rows)
	}

	var status string
	err = app.Pool.QueryRow(context.Background(), `
    SELECT status FROM payroll_status
    WHERE employee_id = $1 AND month = 'September' AND year = '2025'`, employeeID).Scan(&status)
	if err != nil {
		t.Fatalf("failed to load payroll status: %v", err)
	}
	if status != "Paid" {
		t.Fatalf("payroll status = %s, want Paid", status)
	}
}

func TestEmployeeCannotResolveAppeals(t *testing.T) {
	_, ts, cfg := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminUsername, cfg.SeedAdminPassword)

	username := fmt.Sprintf("rbac-%d", time.Now().UnixNano())
	createEmployee(t, client, ts.URL, adminToken, username, 26000)
	employeeToken := login(t, client, ts.URL, username, "Employee123!")

	resp := postJSON(t, client, ts.URL+"/api/v1/appeals", employeeToken, map[string]any{
		"type":   "Other",
		"reason": "general grievance",
	})
	appealID := extractID(t, resp)

	postJSONStatus(t, client, ts.URL+"/api/v1/appeals/"+appealID+"/resolve", employeeToken, map[string]any{
		"status": "Approved",
	}, http.StatusForbidden)
}

func login(t *testing.T, client *http.Client, baseURL, username, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"username": username,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, username string, salary int64) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/employees", token, map[string]any{
		"name":        "Journey Tester",
		"username":    username,
		"password":    "Employee123!",
		"designation": "Digital Commerce Trainee",
		"salary":      salary,
		"role":        "EMPLOYEE",
	})
	return extractID(t, resp)
}

func createFine(t *testing.T, client *http.Client, baseURL, token, employeeID string, amount int64) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/fines", token, map[string]any{
		"employeeId": employeeID,
		"type":       "Late",
		"amount":     amount,
		"reason":     "late arrival",
		"date":       "2025-09-01",
	})
	return extractID(t, resp)
}

func extractID(t *testing.T, resp envelope) string {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected id in response")
	}
	return id
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	resp, raw := doJSON(t, client, http.MethodPost, url, token, body)
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) {
	t.Helper()
	resp, raw := doJSON(t, client, http.MethodPost, url, token, body)
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(raw))
	}
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp, raw
}

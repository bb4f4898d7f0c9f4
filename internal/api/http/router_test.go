package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/gridwatch/outage-service/internal/api/http"
	"github.com/gridwatch/outage-service/internal/api/http/handlers"
	"github.com/gridwatch/outage-service/internal/auth"
	"github.com/gridwatch/outage-service/internal/config"
	"github.com/gridwatch/outage-service/internal/domain"
	"github.com/gridwatch/outage-service/internal/events"
	"github.com/gridwatch/outage-service/internal/repository/repositorytest"
	"github.com/gridwatch/outage-service/internal/service"
)

type testDeps struct {
	app   *fiber.App
	users *repositorytest.UserRepo
}

func newTestApp(t *testing.T) *testDeps {
	t.Helper()

	logger := zap.NewNop()
	users := repositorytest.NewUserRepo()
	areas := repositorytest.NewAreaRepo()
	outages := repositorytest.NewOutageRepo()
	notifications := repositorytest.NewNotificationRepo()
	dispatcher := events.NewInMemoryDispatcher()

	authCfg := config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, BcryptCost: 4}
	authService := service.NewAuthService(authCfg, users)
	areaService := service.NewAreaService(areas, outages)
	outageService := service.NewOutageService(service.OutageDependencies{
		OutageRepo: outages,
		UserRepo:   users,
		AreaRepo:   areas,
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(notifications, outages, dispatcher)
	reportService := service.NewReportService(outages, areas, users, nil, time.Minute, logger)

	app := fiber.New()
	httpapi.RegisterMiddlewares(app, logger, nil, 0)
	httpapi.RegisterRoutes(app, httpapi.RouteConfig{
		Health:         handlers.NewHealthHandler("outage-service", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Areas:          handlers.NewAreasHandler(areaService),
		Outages:        handlers.NewOutagesHandler(outageService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users),
	})

	return &testDeps{app: app, users: users}
}

func (d *testDeps) request(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := d.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func (d *testDeps) requestList(t *testing.T, path, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := d.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded []map[string]any
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}
	return resp.StatusCode, decoded
}

// seedAdmin registers a user then promotes them through the repository, since
// registration always produces regular users.
func (d *testDeps) seedAdmin(t *testing.T) string {
	t.Helper()

	status, body := d.request(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "admin",
		"email":    "admin@example.com",
		"password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, status)

	admin, err := d.users.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	admin.Role = domain.UserRoleAdmin
	d.users.Put(admin)

	// re-login so the token carries the admin role
	status, body = d.request(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "admin",
		"password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, status)
	return body["token"].(string)
}

func TestOutageLifecycleOverHTTP(t *testing.T) {
	deps := newTestApp(t)
	adminToken := deps.seedAdmin(t)

	status, body := deps.request(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "User registered successfully", body["message"])
	userID := body["userId"].(float64)
	require.NotZero(t, userID)

	status, body = deps.request(t, http.MethodPost, "/api/areas/create", adminToken, map[string]any{
		"areaName":   "Downtown",
		"region":     "Central",
		"totalUsers": 1500,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Area created successfully", body["message"])
	areaID := body["areaId"].(float64)

	status, body = deps.request(t, http.MethodPost, "/api/outages/report", "", map[string]any{
		"userId":      userID,
		"areaId":      areaID,
		"location":    "Main St",
		"description": "line down",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Outage reported successfully", body["message"])
	outageID := body["outageId"].(float64)

	status, body = deps.request(t, http.MethodGet, "/api/outages/1", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "REPORTED", body["status"])
	require.Equal(t, "MEDIUM", body["priority"])
	require.Nil(t, body["restorationTime"])

	status, body = deps.request(t, http.MethodPut, "/api/outages/1/status", "", map[string]any{
		"status": "RESOLVED",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Outage status updated", body["message"])
	updated := body["outage"].(map[string]any)
	require.Equal(t, "RESOLVED", updated["status"])
	require.NotNil(t, updated["restorationTime"])

	status, resolved := deps.requestList(t, "/api/outages/status/RESOLVED", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resolved, 1)

	status, reported := deps.requestList(t, "/api/outages/status/REPORTED", "")
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, reported)

	status, body = deps.request(t, http.MethodPost, "/api/notifications/send", "", map[string]any{
		"outageId": outageID,
		"message":  "power restored",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Notification sent", body["message"])

	status, notifications := deps.requestList(t, "/api/notifications/outage/1", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, notifications, 1)
	require.Equal(t, "power restored", notifications[0]["message"])

	status, body = deps.request(t, http.MethodGet, "/api/reports/stats", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 1, body["total_outages"])
	require.EqualValues(t, 1, body["resolved_outages"])
	require.EqualValues(t, 0, body["active_outages"])
}

func TestLoginPayload(t *testing.T) {
	deps := newTestApp(t)

	status, _ := deps.request(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusOK, status)

	status, body := deps.request(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Login successful", body["message"])
	require.Equal(t, "alice", body["username"])
	require.Equal(t, "USER", body["userType"])
	require.NotEmpty(t, body["token"])
	require.NotEmpty(t, body["expiresAt"])

	status, body = deps.request(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid credentials", body["error"])
}

func TestAdminGatingOnAreas(t *testing.T) {
	deps := newTestApp(t)

	status, body := deps.request(t, http.MethodPost, "/api/areas/create", "", map[string]any{
		"areaName": "Downtown",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.NotEmpty(t, body["error"])

	status, body = deps.request(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusOK, status)
	userToken := body["token"].(string)

	status, body = deps.request(t, http.MethodPost, "/api/areas/create", userToken, map[string]any{
		"areaName": "Downtown",
	})
	require.Equal(t, http.StatusForbidden, status)
	require.NotEmpty(t, body["error"])
}

func TestErrorWireFormat(t *testing.T) {
	deps := newTestApp(t)

	status, body := deps.request(t, http.MethodGet, "/api/outages/999", "", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.NotEmpty(t, body["error"])

	status, body = deps.request(t, http.MethodPost, "/api/outages/report", "", map[string]any{
		"userId":      999,
		"areaId":      999,
		"location":    "Main St",
		"description": "line down",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Invalid user or area", body["error"])

	status, body = deps.request(t, http.MethodGet, "/api/outages/not-a-number", "", nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, body["error"])
}

func TestHealthLive(t *testing.T) {
	deps := newTestApp(t)

	status, body := deps.request(t, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "alive", body["status"])
	require.Equal(t, "outage-service", body["service"])
}

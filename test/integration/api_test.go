// Package integration provides end-to-end tests for the generated password API.
// SQLite always runs; PostgreSQL and MySQL run when their test servers are reachable.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/onetimepassgen/internal/app"
	"github.com/allisson/onetimepassgen/internal/config"
	"github.com/allisson/onetimepassgen/internal/database"
	"github.com/allisson/onetimepassgen/internal/httputil"
	identityDomain "github.com/allisson/onetimepassgen/internal/identity/domain"
	identityDTO "github.com/allisson/onetimepassgen/internal/identity/http/dto"
	passwordsDTO "github.com/allisson/onetimepassgen/internal/passwords/http/dto"
	"github.com/allisson/onetimepassgen/internal/testutil"
)

const userPassword = "Str0ng!Passw0rd"

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	server    *httptest.Server
}

// makeRequest performs an HTTP request and returns the response and body. An empty
// token sends the request anonymously.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body any,
	token string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// createUser registers a user directly through the use case.
func (ctx *integrationTestContext) createUser(t *testing.T, userName string, roles []string, active bool) {
	t.Helper()

	userUseCase, err := ctx.container.UserUseCase()
	require.NoError(t, err)

	_, err = userUseCase.Create(context.Background(), &identityDomain.CreateUserInput{
		UserName: userName,
		Password: userPassword,
		Roles:    roles,
		IsActive: active,
	})
	require.NoError(t, err)
}

// issueToken exchanges credentials for a bearer token over HTTP.
func (ctx *integrationTestContext) issueToken(t *testing.T, userName string) string {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodPost, "/api/token", identityDTO.IssueTokenRequest{
		UserName: userName,
		Password: userPassword,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var tokenResp identityDTO.IssueTokenResponse
	require.NoError(t, json.Unmarshal(body, &tokenResp))
	require.NotEmpty(t, tokenResp.Token)

	return tokenResp.Token
}

func testConfig(driver, dsn string, ttlSeconds int) *config.Config {
	return &config.Config{
		ServerHost:                          "127.0.0.1",
		ServerPort:                          0,
		DBDriver:                            driver,
		DBConnectionString:                  dsn,
		DBMaxOpenConnections:                5,
		DBMaxIdleConnections:                5,
		LogLevel:                            "error",
		GeneratedPasswordExpirationSeconds:  ttlSeconds,
		GeneratedPasswordFormat:             "uuid",
		GeneratedPasswordLength:             20,
		LongRunningRequestLimitMilliseconds: 500,
		AuthTokenSigningKey:                 "0123456789abcdef0123456789abcdef",
		AuthTokenIssuer:                     "onetimepassgen",
		AuthTokenExpiration:                 time.Hour,
		AuthPolicies:                        `{"AdminPolicy":["Admin"]}`,
	}
}

// setupIntegrationTest builds the full application for driver on a clean, migrated database.
func setupIntegrationTest(t *testing.T, driver string, ttlSeconds int) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var dsn string
	switch driver {
	case config.DriverPostgres:
		testutil.TeardownDB(t, testutil.SetupPostgresDB(t))
		dsn = testutil.GetPostgresTestDSN()
	case config.DriverMySQL:
		testutil.TeardownDB(t, testutil.SetupMySQLDB(t))
		dsn = testutil.GetMySQLTestDSN()
	default:
		dsn = testutil.SQLiteMemoryDSN(t.Name() + "_" + uuid.NewString())
	}

	cfg := testConfig(driver, dsn, ttlSeconds)
	require.NoError(t, cfg.Validate())

	container := app.NewContainer(cfg)

	db, err := container.DB()
	require.NoError(t, err)
	if driver == config.DriverSQLite {
		require.NoError(t, database.Migrate(db, driver))
	}

	server, err := container.HTTPServer(t.Context())
	require.NoError(t, err)

	ctx := &integrationTestContext{
		container: container,
		server:    httptest.NewServer(server.GetHandler()),
	}

	t.Cleanup(func() {
		ctx.server.Close()
		_ = container.Shutdown(context.Background())
	})

	return ctx
}

var drivers = []string{config.DriverSQLite, config.DriverPostgres, config.DriverMySQL}

func TestIntegration_GeneratedPasswords(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, driver, 3600)
			ctx.createUser(t, "alice", []string{"Admin"}, true)
			ctx.createUser(t, "bob", nil, true)

			aliceToken := ctx.issueToken(t, "alice")
			bobToken := ctx.issueToken(t, "bob")

			var created passwordsDTO.GeneratedPasswordResponse

			t.Run("Error_AnonymousCreate", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/user-generated-passwords", nil, "")

				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, string(body))
			})

			t.Run("Error_AnonymousList", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/api/user-generated-passwords", nil, "")

				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("Error_InvalidToken", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/api/user-generated-passwords", nil, "not-a-token")

				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			t.Run("Success_Create", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/user-generated-passwords", nil, aliceToken)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				require.NoError(t, json.Unmarshal(body, &created))
				_, err := uuid.Parse(created.ID)
				require.NoError(t, err)
				_, err = uuid.Parse(created.Password)
				require.NoError(t, err)
				assert.Equal(t, "/api/user-generated-passwords/"+created.ID, resp.Header.Get("Location"))
				assert.Equal(t, time.Hour, created.ExpiresAt.Sub(created.CreatedAt))
			})

			t.Run("Success_GetOwnEntry", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/user-generated-passwords/"+created.ID, nil, aliceToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var got passwordsDTO.GeneratedPasswordResponse
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, created.ID, got.ID)
				assert.Equal(t, created.Password, got.Password)
				assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
			})

			t.Run("Error_OtherOwnerGetsNotFound", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/api/user-generated-passwords/"+created.ID, nil, bobToken)

				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})

			t.Run("Success_ListIsScopedToOwnerAndNewestFirst", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/user-generated-passwords", nil, aliceToken)
				require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

				var second passwordsDTO.GeneratedPasswordResponse
				require.NoError(t, json.Unmarshal(body, &second))

				resp, body = ctx.makeRequest(t, http.MethodGet, "/api/user-generated-passwords", nil, aliceToken)
				require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

				var list []passwordsDTO.GeneratedPasswordResponse
				require.NoError(t, json.Unmarshal(body, &list))
				require.Len(t, list, 2)
				assert.Equal(t, second.ID, list[0].ID)
				assert.Equal(t, created.ID, list[1].ID)

				resp, body = ctx.makeRequest(t, http.MethodGet, "/api/user-generated-passwords", nil, bobToken)
				require.Equal(t, http.StatusOK, resp.StatusCode)
				assert.JSONEq(t, `[]`, string(body))
			})

			t.Run("Error_InvalidIncludeExpiredFlag", func(t *testing.T) {
				resp, body := ctx.makeRequest(
					t,
					http.MethodGet,
					"/api/user-generated-passwords?includeExpiredPasswords=maybe",
					nil,
					aliceToken,
				)

				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

				var errResp httputil.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &errResp))
				assert.Equal(t, "bad_request", errResp.Error)
			})

			t.Run("Error_MalformedID", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/user-generated-passwords/not-a-uuid", nil, aliceToken)

				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

				var errResp httputil.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &errResp))
				assert.Equal(t, "validation_error", errResp.Error)
				assert.NotEmpty(t, errResp.Errors["id"])
			})

			t.Run("Error_UnknownID", func(t *testing.T) {
				resp, _ := ctx.makeRequest(
					t,
					http.MethodGet,
					"/api/user-generated-passwords/"+uuid.NewString(),
					nil,
					aliceToken,
				)

				assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			})
		})
	}
}

func TestIntegration_ExpiredPasswords(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, driver, 1)
			ctx.createUser(t, "alice", nil, true)
			token := ctx.issueToken(t, "alice")

			resp, body := ctx.makeRequest(t, http.MethodPost, "/api/user-generated-passwords", nil, token)
			require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

			var created passwordsDTO.GeneratedPasswordResponse
			require.NoError(t, json.Unmarshal(body, &created))

			time.Sleep(1500 * time.Millisecond)

			path := "/api/user-generated-passwords/" + created.ID

			resp, _ = ctx.makeRequest(t, http.MethodGet, path, nil, token)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, http.MethodGet, path+"?includeExpiredPasswords=true", nil, token)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			resp, body = ctx.makeRequest(t, http.MethodGet, "/api/user-generated-passwords", nil, token)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, `[]`, string(body))

			resp, body = ctx.makeRequest(
				t,
				http.MethodGet,
				"/api/user-generated-passwords?includeExpiredPasswords=true",
				nil,
				token,
			)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var list []passwordsDTO.GeneratedPasswordResponse
			require.NoError(t, json.Unmarshal(body, &list))
			require.Len(t, list, 1)
			assert.Equal(t, created.ID, list[0].ID)
		})
	}
}

func TestIntegration_InactiveUserCannotIssueToken(t *testing.T) {
	ctx := setupIntegrationTest(t, config.DriverSQLite, 60)
	ctx.createUser(t, "carol", nil, false)

	resp, _ := ctx.makeRequest(t, http.MethodPost, "/api/token", identityDTO.IssueTokenRequest{
		UserName: "carol",
		Password: userPassword,
	}, "")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

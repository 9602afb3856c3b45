// Package integration provides end-to-end tests for the HTTP API, driving
// the full stack (router, signature auth, use cases, envelope encryption,
// repositories) against both PostgreSQL and MySQL.
package integration

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locksetdev/vault/internal/app"
	"github.com/locksetdev/vault/internal/auth"
	"github.com/locksetdev/vault/internal/config"
	connectionsDTO "github.com/locksetdev/vault/internal/connections/http/dto"
	secretsDTO "github.com/locksetdev/vault/internal/secrets/http/dto"
	"github.com/locksetdev/vault/internal/testutil"
)

// integrationTestContext holds all dependencies and state for one run.
type integrationTestContext struct {
	container  *app.Container
	db         *sql.DB
	server     *httptest.Server
	signingKey *ecdsa.PrivateKey
	dbDriver   string
}

// newSigningKey generates an ephemeral P-256 key pair and returns the
// private key plus the hex SEC1 public key the server verifies against.
func newSigningKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err, "failed to generate signing key")

	publicKeyHex := hex.EncodeToString(
		elliptic.MarshalCompressed(elliptic.P256(), key.PublicKey.X, key.PublicKey.Y),
	)
	return key, publicKeyHex
}

// newLocalKMSKey returns a base64key keeper URI holding an ephemeral
// 32-byte master key, so tests never reach an external KMS.
func newLocalKMSKey(t *testing.T) string {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err, "failed to generate master key")

	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

// signFor produces the X-Timestamp and X-Signature header values for a
// request with the given path and body.
func (ctx *integrationTestContext) signFor(t *testing.T, path string, body []byte) (timestamp, signature string) {
	t.Helper()

	timestamp = strconv.FormatInt(time.Now().UnixMilli(), 10)
	digest := auth.SignedDigest(timestamp, path, body)

	r, s, err := ecdsa.Sign(rand.Reader, ctx.signingKey, digest)
	require.NoError(t, err, "failed to sign request")

	sig := make([]byte, 64)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:])
	return timestamp, hex.EncodeToString(sig)
}

// makeRequest performs a signed HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	signed bool,
) (*http.Response, []byte) {
	t.Helper()

	var bodyBytes []byte
	var bodyReader io.Reader
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if signed {
		// GET and DELETE sign an empty body regardless of payload.
		signedBody := bodyBytes
		if method == http.MethodGet || method == http.MethodDelete {
			signedBody = nil
		}
		timestamp, signature := ctx.signFor(t, req.URL.Path, signedBody)
		req.Header.Set("X-Timestamp", timestamp)
		req.Header.Set("X-Signature", signature)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NoError(t, resp.Body.Close())

	return resp, respBody
}

// setupIntegrationTest initializes the full stack for one database driver.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		testutil.SkipIfNoPostgres(t)
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		testutil.SkipIfNoMySQL(t)
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	signingKey, publicKeyHex := newSigningKey(t)

	cfg := &config.Config{
		ServerHost:           "localhost",
		ServerPort:           8080,
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		LogLevel:             "error",
		AuthPublicKey:        publicKeyHex,
		AuthTimestampWindow:  5 * time.Second,
		DekAlgorithm:         "aes-gcm",
		DekCacheTTL:          5 * time.Minute,
		KMSTimeout:           10 * time.Second,
	}

	container := app.NewContainer(cfg)

	kekUseCase, err := container.KekUseCase()
	require.NoError(t, err, "failed to get kek use case")

	_, err = kekUseCase.Register(context.Background(), newLocalKMSKey(t))
	require.NoError(t, err, "failed to register initial KEK")

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	return &integrationTestContext{
		container:  container,
		db:         db,
		server:     httptest.NewServer(handler),
		signingKey: signingKey,
		dbDriver:   dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}
	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("container shutdown error: %v", err)
		}
	}
	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

// driverCases lists the database drivers the suite runs against.
var driverCases = []struct {
	name     string
	dbDriver string
}{
	{"PostgreSQL", "postgres"},
	{"MySQL", "mysql"},
}

func TestIntegration_HealthAndReadiness(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	for _, tc := range driverCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, false)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), "healthy")

			resp, body = ctx.makeRequest(t, http.MethodGet, "/ready", nil, false)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), `"database":"ok"`)
		})
	}
}

func TestIntegration_SecretLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	for _, tc := range driverCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			plaintext := []byte(`{"username":"svc","password":"hunter2"}`)
			createReq := map[string]interface{}{
				"name":  "db-credentials",
				"value": base64.StdEncoding.EncodeToString(plaintext),
			}

			// Create with default tag.
			resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/secrets", createReq, true)
			require.Equal(t, http.StatusCreated, resp.StatusCode, "create: %s", body)

			var created secretsDTO.CreateSecretResponse
			require.NoError(t, json.Unmarshal(body, &created))
			assert.Equal(t, "db-credentials", created.Secret.Name)
			assert.Equal(t, "v1", created.Version.VersionTag)
			assert.NotContains(t, string(body), "hunter2", "plaintext must never appear in responses")

			// Read back the current version.
			resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/secrets/db-credentials", nil, true)
			require.Equal(t, http.StatusOK, resp.StatusCode, "get: %s", body)

			var got secretsDTO.GetSecretResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, "v1", got.VersionTag)
			decoded, err := base64.StdEncoding.DecodeString(got.Value)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decoded)

			// Duplicate name conflicts.
			resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/secrets", createReq, true)
			assert.Equal(t, http.StatusConflict, resp.StatusCode)

			// Add a second version; the pointer moves to it.
			v2Plain := []byte(`{"username":"svc","password":"rotated"}`)
			versionReq := map[string]interface{}{
				"version_tag": "v2",
				"value":       base64.StdEncoding.EncodeToString(v2Plain),
			}
			resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/secrets/db-credentials/versions", versionReq, true)
			require.Equal(t, http.StatusCreated, resp.StatusCode, "create version: %s", body)

			resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/secrets/db-credentials", nil, true)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, "v2", got.VersionTag)

			// The old version is still addressable by tag.
			resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/secrets/db-credentials/versions/v1", nil, true)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.NoError(t, json.Unmarshal(body, &got))
			decoded, err = base64.StdEncoding.DecodeString(got.Value)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decoded)

			// List returns metadata only.
			resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/secrets", nil, true)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var list secretsDTO.ListSecretsResponse
			require.NoError(t, json.Unmarshal(body, &list))
			require.Len(t, list.Data, 1)
			assert.NotContains(t, string(body), got.Value)

			// Tombstone v1: gone afterwards, current version unaffected.
			resp, _ = ctx.makeRequest(t, http.MethodDelete, "/v1/secrets/db-credentials/versions/v1", nil, true)
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/secrets/db-credentials/versions/v1", nil, true)
			assert.Equal(t, http.StatusGone, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/secrets/db-credentials", nil, true)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			// Hard delete removes the secret and all versions.
			resp, _ = ctx.makeRequest(t, http.MethodDelete, "/v1/secrets/db-credentials", nil, true)
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/secrets/db-credentials", nil, true)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestIntegration_VaultConnectionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	for _, tc := range driverCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			connConfig := json.RawMessage(`{"address":"https://vault.internal:8200","token":"s.abc123"}`)
			createReq := map[string]interface{}{
				"public_id": "team-a-vault",
				"name":      "Team A Vault",
				"provider":  "hashicorp-vault",
				"config":    connConfig,
				"ttl":       3600,
			}

			resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/vault-connections", createReq, true)
			require.Equal(t, http.StatusCreated, resp.StatusCode, "create: %s", body)
			assert.NotContains(t, string(body), "s.abc123", "config must not appear in create responses")

			// Read back decrypts the stored config.
			resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/vault-connections/team-a-vault", nil, true)
			require.Equal(t, http.StatusOK, resp.StatusCode, "get: %s", body)

			var got connectionsDTO.GetConnectionResponse
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Equal(t, "team-a-vault", got.PublicID)
			assert.JSONEq(t, string(connConfig), string(got.Config))

			// Update re-seals the config.
			updatedConfig := json.RawMessage(`{"address":"https://vault.internal:8200","token":"s.def456"}`)
			updateReq := map[string]interface{}{
				"name":     "Team A Vault",
				"provider": "hashicorp-vault",
				"config":   updatedConfig,
				"ttl":      7200,
			}
			resp, body = ctx.makeRequest(t, http.MethodPut, "/v1/vault-connections/team-a-vault", updateReq, true)
			require.Equal(t, http.StatusOK, resp.StatusCode, "update: %s", body)

			resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/vault-connections/team-a-vault", nil, true)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.NoError(t, json.Unmarshal(body, &got))
			assert.JSONEq(t, string(updatedConfig), string(got.Config))

			// Duplicate public_id conflicts.
			resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/vault-connections", createReq, true)
			assert.Equal(t, http.StatusConflict, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, http.MethodDelete, "/v1/vault-connections/team-a-vault", nil, true)
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/vault-connections/team-a-vault", nil, true)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestIntegration_RequestAuthentication(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	// Auth behavior is driver-independent; one database is enough.
	ctx := setupIntegrationTest(t, "postgres")
	defer teardownIntegrationTest(t, ctx)

	t.Run("rejects unsigned requests", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/secrets", nil, false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects signatures from a different key", func(t *testing.T) {
		otherKey, _ := newSigningKey(t)
		impostor := &integrationTestContext{
			server:     ctx.server,
			signingKey: otherKey,
		}

		resp, _ := impostor.makeRequest(t, http.MethodGet, "/v1/secrets", nil, true)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects stale timestamps", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, ctx.server.URL+"/v1/secrets", nil)
		require.NoError(t, err)

		stale := strconv.FormatInt(time.Now().Add(-time.Minute).UnixMilli(), 10)
		digest := auth.SignedDigest(stale, "/v1/secrets", nil)
		r, s, err := ecdsa.Sign(rand.Reader, ctx.signingKey, digest)
		require.NoError(t, err)
		sig := make([]byte, 64)
		r.FillBytes(sig[:32])
		s.FillBytes(sig[32:])

		req.Header.Set("X-Timestamp", stale)
		req.Header.Set("X-Signature", hex.EncodeToString(sig))

		resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
		require.NoError(t, err)
		defer func() { require.NoError(t, resp.Body.Close()) }()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("health stays unauthenticated", func(t *testing.T) {
		resp, _ := ctx.makeRequest(t, http.MethodGet, "/health", nil, false)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestIntegration_ValidationErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := setupIntegrationTest(t, "postgres")
	defer teardownIntegrationTest(t, ctx)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{
			"invalid secret name",
			map[string]interface{}{
				"name":  "bad name!",
				"value": base64.StdEncoding.EncodeToString([]byte("x")),
			},
		},
		{
			"value not base64",
			map[string]interface{}{
				"name":  "valid-name",
				"value": "not base64!!!",
			},
		},
		{
			"missing value",
			map[string]interface{}{
				"name": "valid-name",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/secrets", tc.body, true)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "body: %s", body)
		})
	}
}

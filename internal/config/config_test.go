package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxRequestBodySize)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "usd", cfg.CheckoutCurrency)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("FRONTEND_URL", "https://shop.example.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, BackendMongo, cfg.StoreBackend)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "https://shop.example.com", cfg.FrontendURL)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_BACKEND=firestore\nFIRESTORE_PROJECT_ID=shop-dev\n"), 0o600))
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("FIRESTORE_PROJECT_ID", "")
	// t.Setenv registers cleanup; godotenv only fills keys that are unset
	require.NoError(t, os.Unsetenv("STORE_BACKEND"))
	require.NoError(t, os.Unsetenv("FIRESTORE_PROJECT_ID"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendFirestore, cfg.StoreBackend)
	assert.Equal(t, "shop-dev", cfg.FirestoreProjectID)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "unknown STORE_BACKEND")
}

func TestValidate_FirestoreNeedsProject(t *testing.T) {
	cfg := &Config{StoreBackend: BackendFirestore, RequestTimeout: time.Second, MaxRequestBodySize: 1}
	assert.Error(t, cfg.Validate())

	cfg.FirestoreProjectID = "p"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Timeouts(t *testing.T) {
	cfg := &Config{StoreBackend: BackendMemory, MaxRequestBodySize: 1}
	assert.ErrorContains(t, cfg.Validate(), "REQUEST_TIMEOUT")
}

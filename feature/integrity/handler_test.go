package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"model-sync/core/database"
	"model-sync/core/storage/mocks"
	"model-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(new(mocks.Client), "scripts", zap.NewNop(), nil)

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}

func TestHandleIntegrityCheck(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, sync.NewHistory(db).Migrate())

	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "scripts").Return(false, nil)

	app := fiber.New()
	require.NoError(t, NewFeature(mockClient, "scripts", zap.NewNop(), db).Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report map[string]map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, false, report["storage"]["exists"])
	assert.Equal(t, "ok", report["history"]["status"])
	assert.Equal(t, "sync_passes", report["history"]["table"])
}

func TestHandleChecks_Disabled(t *testing.T) {
	app := fiber.New()
	require.NoError(t, NewFeature(nil, "scripts", zap.NewNop(), nil).Load(app))

	for _, path := range []string{"/integrity/storage", "/integrity/history"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode, path)
	}
}

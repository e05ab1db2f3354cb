package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_Missing(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvCacheDB, "")

	c, err := LoadConfigFrom(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)

	assert.Equal(t, 5, c.PageSize)
	assert.Equal(t, 500*time.Millisecond, c.Debounce())
	assert.Equal(t, "./ecadmin.db", c.CacheDBPath)
	assert.Equal(t, "counted", c.BusyMode)
	day, err := c.WeekStartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)
	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
	assert.Equal(t, c, GetConfig())
}

func TestLoadConfigFrom_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecadmin_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"apiBaseUrl":"http://file","pageSize":10,"weekStart":"Sunday"}`), 0644))
	t.Setenv(EnvAPIURL, "http://env")
	t.Setenv(EnvAPIToken, "secret")
	t.Setenv(EnvCacheDB, "")

	c, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env", c.APIBaseURL)
	assert.Equal(t, "secret", c.APIToken)
	assert.Equal(t, 10, c.PageSize)
	day, err := c.WeekStartDay()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)
}

func TestLoadConfigFrom_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := LoadConfigFrom(path)
	assert.Error(t, err)
}

func TestSaveConfigTo_OmitsToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, SaveConfigTo(path, Config{APIBaseURL: "http://x", APIToken: "secret"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), `"pageSize": 5`)
	assert.Equal(t, "secret", GetConfig().APIToken)
}

func TestWeekStartDay_Unknown(t *testing.T) {
	_, err := Config{WeekStart: "someday"}.WeekStartDay()
	assert.Error(t, err)
}

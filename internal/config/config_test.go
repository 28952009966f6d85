package config

import (
	"os"
	"path/filepath"
	"testing"

	"restaurant-pos-store/internal/repositories"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POS_DATA_DIR", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "restaurant.db", cfg.Database.FileName)
	assert.Equal(t, ".backup", cfg.Database.BackupSuffix)
	assert.Equal(t, 5000, cfg.Database.BusyTimeout)
	assert.Empty(t, cfg.Database.Path)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POS_DB_PATH", filepath.Join(dir, "till.db"))
	t.Setenv("POS_BACKUP_SUFFIX", ".bak")
	t.Setenv("POS_BUSY_TIMEOUT_MS", "250")
	t.Setenv("POS_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "till.db"), cfg.Database.Path)
	assert.Equal(t, ".bak", cfg.Database.BackupSuffix)
	assert.Equal(t, 250, cfg.Database.BusyTimeout)
	assert.Equal(t, logrus.DebugLevel, cfg.NewLogger().GetLevel())

	repoCfg := cfg.RepositoryConfig(cfg.Database.Path)
	assert.Equal(t, 250, repoCfg.Database.BusyTimeout)
	assert.NoError(t, repoCfg.Validate())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "posctl.yaml")
	require.NoError(t, os.WriteFile(file, []byte("db_file: shop.db\ndata_dir: "+dir+"\n"), 0644))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "shop.db", cfg.Database.FileName)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, repositories.IsConfiguration(err))
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("POS_DATA_DIR", t.TempDir())
	t.Setenv("POS_BUSY_TIMEOUT_MS", "0")

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, repositories.IsConfiguration(err))
}

func TestResolveDatabasePath(t *testing.T) {
	dir := t.TempDir()

	db := DatabaseConfig{DataDir: filepath.Join(dir, "nested", "app"), FileName: "restaurant.db"}
	path, err := db.ResolveDatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested", "app", "restaurant.db"), path)
	assert.DirExists(t, filepath.Join(dir, "nested", "app"))

	explicit := DatabaseConfig{Path: filepath.Join(dir, "other", "pos.db"), DataDir: "ignored", FileName: "ignored.db"}
	path, err = explicit.ResolveDatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "other", "pos.db"), path)
}

func TestResolveDatabasePath_Unusable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	db := DatabaseConfig{Path: filepath.Join(blocker, "restaurant.db")}
	_, err := db.ResolveDatabasePath()
	require.Error(t, err)
	assert.True(t, repositories.IsConfiguration(err))

	asDir := DatabaseConfig{Path: dir}
	_, err = asDir.ResolveDatabasePath()
	require.Error(t, err)
	assert.True(t, repositories.IsConfiguration(err))
}

package main

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/spacetimes/internal/mastery"
	"github.com/at-ishikawa/spacetimes/internal/testutil"
)

var createdIDPattern = regexp.MustCompile(`with ID (\S+)`)

func TestLearnerCommands(t *testing.T) {
	tests := []struct {
		name   string
		config func(t *testing.T, tmpDir string) string
	}{
		{
			name:   "yaml storage",
			config: testutil.SetupTestConfig,
		},
		{
			name:   "sqlite storage",
			config: setupSQLiteConfigFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPACETIMES_LEARNER", "")
			tmpDir := t.TempDir()
			setConfigFile(t, tt.config(t, tmpDir))

			output, err := executeCommand(t, newLearnerListCommand(), "")
			require.NoError(t, err)
			assert.Contains(t, output, "No learner yet")

			output, err = executeCommand(t, newLearnerAddCommand(), "", "Zoe", "--sound=false")
			require.NoError(t, err)
			assert.Contains(t, output, "Created learner Zoe")
			matches := createdIDPattern.FindStringSubmatch(output)
			require.Len(t, matches, 2)
			zoeID := matches[1]
			_, err = uuid.Parse(zoeID)
			assert.NoError(t, err)

			_, err = executeCommand(t, newLearnerAddCommand(), "", "Leo")
			require.NoError(t, err)

			t.Setenv("SPACETIMES_LEARNER", zoeID)
			output, err = executeCommand(t, newLearnerListCommand(), "")
			require.NoError(t, err)
			assert.Regexp(t, `(?s)NAME.*Leo.*\* +`+zoeID+` +Zoe`, output)

			cfg, err := loadConfig()
			require.NoError(t, err)
			store, closeStore, err := openStore(context.Background(), cfg)
			require.NoError(t, err)
			defer func() {
				_ = closeStore()
			}()
			record, err := store.Get(context.Background(), zoeID)
			require.NoError(t, err)
			assert.Equal(t, "Zoe", record.Name)
			assert.False(t, record.Settings.SoundOn)
		})
	}
}

func TestNewLearnerAddCommand_RequiresName(t *testing.T) {
	setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir()))

	_, err := executeCommand(t, newLearnerAddCommand(), "")
	assert.Error(t, err)
}

func TestNewLearnerListCommand_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	_, err := executeCommand(t, newLearnerListCommand(), "")
	assert.ErrorContains(t, err, "configuration")
}

func TestOpenStore(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		tmpDir := t.TempDir()
		setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))
		cfg, err := loadConfig()
		require.NoError(t, err)

		store, closeStore, err := openStore(context.Background(), cfg)
		require.NoError(t, err)
		assert.IsType(t, &mastery.YAMLStore{}, store)
		assert.NoError(t, closeStore())
	})

	t.Run("sqlite", func(t *testing.T) {
		tmpDir := t.TempDir()
		setConfigFile(t, setupSQLiteConfigFile(t, tmpDir))
		cfg, err := loadConfig()
		require.NoError(t, err)

		store, closeStore, err := openStore(context.Background(), cfg)
		require.NoError(t, err)
		assert.IsType(t, &mastery.DBStore{}, store)
		assert.NoError(t, closeStore())
		assert.FileExists(t, filepath.Join(tmpDir, "db", "spacetimes.db"))
	})
}

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaCommand_PrintsDDL(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"schema"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "CREATE TABLE IF NOT EXISTS tasks")
}

func TestSchemaApply_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	rootCmd.SetArgs([]string{"schema", "--apply", "--config", t.TempDir() + "/none.yaml"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		applySchema = false
		configPath = ""
	})

	err := rootCmd.Execute()
	assert.ErrorContains(t, err, "database url is not configured")
}

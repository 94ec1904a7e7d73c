package cmd

import (
	"testing"

	"github.com/gnames/gutendb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCmd(t *testing.T) {
	cmd := getLoadCmd()
	assert.Equal(t, "load [SNAPSHOT]", cmd.Use)
	require.NotNil(t, cmd.Flags().Lookup("clear"))

	assert.NoError(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"books.sqlite3"}))
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))

	require.NoError(t, cmd.ParseFlags([]string{"--clear"}))
	var loadOpts []config.Option
	c := config.New()
	c.Update(boolOpt(cmd, "clear", config.OptDatabaseClear, loadOpts))
	assert.True(t, c.Database.Clear)
}

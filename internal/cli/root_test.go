package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "stackpr", cmd.Use)
	assert.Contains(t, cmd.Long, "trailers")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{
		"status", "validate", "group", "ungroup", "title", "merge-group",
		"reset-groups", "apply", "resolve", "migrate", "repair", "assign-ids", "prs",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dirFlag := cmd.PersistentFlags().Lookup("chdir")
	require.NotNil(t, dirFlag)
	assert.Equal(t, "C", dirFlag.Shorthand)
}

func TestGroupCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	groupCmd, _, err := cmd.Find([]string{"group"})
	require.NoError(t, err)

	nameFlag := groupCmd.Flags().Lookup("name")
	require.NotNil(t, nameFlag)
	assert.Equal(t, "n", nameFlag.Shorthand)

	extendFlag := groupCmd.Flags().Lookup("extend")
	require.NotNil(t, extendFlag)
	assert.Equal(t, "", extendFlag.DefValue)
}

func TestRepairCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	repairCmd, _, err := cmd.Find([]string{"repair"})
	require.NoError(t, err)

	abortFlag := repairCmd.Flags().Lookup("abort")
	require.NotNil(t, abortFlag)
	assert.Equal(t, "false", abortFlag.DefValue)
}

func TestPRsCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	prsCmd, _, err := cmd.Find([]string{"prs"})
	require.NoError(t, err)

	createFlag := prsCmd.Flags().Lookup("create")
	require.NotNil(t, createFlag)
	assert.Equal(t, "false", createFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "status"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

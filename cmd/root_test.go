package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holmes89/quizbank/lib/quiz"
)

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(append([]string{"--driver", driverMemory}, args...))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	err := execute(context.Background())
	return out.String(), err
}

func sqliteArgs(t *testing.T) []string {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "bank.db")
	return []string{"--driver", "sqlite", "--dsn", dsn}
}

func TestRootCommands(t *testing.T) {
	out, err := runRoot(t, "", "--seed", "show", "2")
	require.NoError(t, err)
	assert.Equal(t, "   [2]: Capital of France => Paris\n", out)

	_, err = runRoot(t, "", "--seed", "delete")
	assert.ErrorIs(t, err, quiz.ErrMissingParameter)

	_, err = runRoot(t, "", "--seed", "test", "9")
	assert.ErrorIs(t, err, quiz.ErrNotFound)

	out, err = runRoot(t, "", "--seed", "export", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "question: Capital of Portugal")

	out, err = runRoot(t, "questions:\n  - question: a\n    answer: b\n", "--seed=false", "import", "-")
	require.NoError(t, err)
	assert.Equal(t, "imported 1 questions\n", out)
}

func TestFailedCommandReleasesStore(t *testing.T) {
	db := sqliteArgs(t)
	_, err := runRoot(t, "", append(db, "--seed", "delete", "99")...)
	assert.ErrorIs(t, err, quiz.ErrNotFound)
	assert.Nil(t, app.conn)
	assert.Nil(t, app.redis)
}

func TestSeedOnlyOnNewDatabase(t *testing.T) {
	db := sqliteArgs(t)

	out, err := runRoot(t, "", append(db, "--seed", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "   [4]: Capital of Portugal\n")

	for _, id := range []string{"1", "2", "3", "4"} {
		_, err := runRoot(t, "", append(db, "--seed", "delete", id)...)
		require.NoError(t, err)
	}

	out, err = runRoot(t, "", append(db, "--seed", "list")...)
	require.NoError(t, err)
	assert.Contains(t, out, "There are no questions yet")
}

func TestImportNeverSeeds(t *testing.T) {
	db := sqliteArgs(t)

	out, err := runRoot(t, "questions:\n  - question: a\n    answer: b\n", append(db, "--seed", "import", "-")...)
	require.NoError(t, err)
	assert.Equal(t, "imported 1 questions\n", out)

	out, err = runRoot(t, "", append(db, "--seed", "list")...)
	require.NoError(t, err)
	assert.Equal(t, "   [1]: a\n", out)
}

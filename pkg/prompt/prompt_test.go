package prompt

import (
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/X-Seti/Deepsearch/pkg/errors"
)

// withSeams swaps the exec seams for one test
func withSeams(t *testing.T, look func(string) (string, error), run func(string, ...string) ([]byte, error)) {
	t.Helper()
	origLook, origRun := lookPath, runDialog
	lookPath = look
	runDialog = run
	t.Cleanup(func() {
		lookPath = origLook
		runDialog = origRun
	})
}

func available(names ...string) func(string) (string, error) {
	return func(file string) (string, error) {
		for _, n := range names {
			if n == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestAskPrefersZenity(t *testing.T) {
	var gotName string
	var gotArgs []string
	withSeams(t, available("zenity", "kdialog"), func(name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return []byte("needle\n"), nil
	})

	result, err := Ask("deepsearch", "Search for:")
	require.NoError(t, err)

	assert.Equal(t, "needle", result)
	assert.Equal(t, "zenity", gotName)
	assert.Equal(t, []string{"--entry", "--title", "deepsearch", "--text", "Search for:"}, gotArgs)
}

func TestAskFallsBackToKdialog(t *testing.T) {
	var gotName string
	var gotArgs []string
	withSeams(t, available("kdialog"), func(name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return []byte("needle\n"), nil
	})

	result, err := Ask("deepsearch", "Search for:")
	require.NoError(t, err)

	assert.Equal(t, "needle", result)
	assert.Equal(t, "kdialog", gotName)
	assert.Equal(t, []string{"--title", "deepsearch", "--inputbox", "Search for:"}, gotArgs)
}

func TestAskNoDialogTool(t *testing.T) {
	withSeams(t, available(), nil)

	_, err := Ask("deepsearch", "Search for:")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPromptFailed))
}

func TestAskCancelledDialog(t *testing.T) {
	withSeams(t, available("zenity"), func(string, ...string) ([]byte, error) {
		return nil, fmt.Errorf("exit status 1")
	})

	_, err := Ask("deepsearch", "Search for:")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPromptFailed))
}

func TestAskKeepsInnerWhitespace(t *testing.T) {
	withSeams(t, available("zenity"), func(string, ...string) ([]byte, error) {
		return []byte("two words\n"), nil
	})

	result, err := Ask("deepsearch", "Search for:")
	require.NoError(t, err)
	assert.Equal(t, "two words", result)
}

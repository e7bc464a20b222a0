package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		// Only section headers survive uncommented
		assert.True(t, strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"),
			"unexpected uncommented line: %q", line)
	}

	assert.Contains(t, content, "[search]")
	assert.Contains(t, content, "[replace]")
	assert.Contains(t, content, `# backup-suffix = ".bak"`)
}

func TestCommentOutConfigValues(t *testing.T) {
	in := "# header\n\n[section]\nkey = 1\n# already commented\n"
	out := commentOutConfigValues(in)

	assert.Contains(t, out, "# header")
	assert.Contains(t, out, "[section]")
	assert.Contains(t, out, "# key = 1")
	assert.NotContains(t, out, "\nkey = 1")
}

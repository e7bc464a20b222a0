package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/X-Seti/Deepsearch/pkg/errors"
)

// GenerateConfigContent generates the starter user configuration: the
// built-in defaults with every value commented out.
func GenerateConfigContent() string {
	return commentOutConfigValues(string(defaultConfig))
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [search], [output]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		// Comment out configuration value lines
		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}

// WriteUserConfig writes the starter configuration to the user config
// path and returns that path. An existing file is never overwritten.
func WriteUserConfig() (string, error) {
	path := UserConfigPath()
	if _, err := os.Stat(path); err == nil {
		return "", errors.Newf(errors.ErrConfigWrite, "config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigWrite,
			"cannot create config directory %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(GenerateConfigContent()), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigWrite, "cannot write %s", path)
	}
	return path, nil
}

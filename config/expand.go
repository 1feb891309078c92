package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandPath resolves a leading "~" to the user's home directory and
// expands `$VAR` / `${VAR}` environment references. A `${VAR}` reference to
// a missing variable is an error; `$$` emits a literal `$`.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	const dollarSentinel = "\x00MINIM_CONFIG_DOLLAR\x00"
	path = strings.ReplaceAll(path, "$$", dollarSentinel)

	missing := make(map[string]struct{})
	for _, match := range envVarPattern.FindAllStringSubmatch(path, -1) {
		key := match[1]
		if _, ok := os.LookupEnv(key); !ok {
			missing[key] = struct{}{}
		}
	}
	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", fmt.Errorf("config: missing required environment variables: %s", strings.Join(keys, ", "))
	}

	path = os.ExpandEnv(path)
	path = strings.ReplaceAll(path, dollarSentinel, "$")
	return path, nil
}

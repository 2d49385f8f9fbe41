package builder

import "github.com/joeydtaylor/sdrhunter/pkg/internal/utils"

// EnvOr returns the trimmed env value or def when empty.
func EnvOr(key, def string) string {
	return utils.EnvOr(key, def)
}

// EnvIntOr returns the parsed int env value or def on empty/parse failure.
func EnvIntOr(key string, def int) int {
	return utils.EnvIntOr(key, def)
}

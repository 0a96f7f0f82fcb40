package detect

import "github.com/bmatcuk/doublestar/v4"

// matchesExclude checks a directory name against user-supplied glob
// patterns. Patterns apply to single path components, not full paths;
// doublestar keeps the syntax consistent with other glob settings.
func matchesExclude(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// Package files reads caller-named files for prompt attachment, applying
// safety checks first: sensitive path patterns are blocked, only known
// text-based extensions and basenames are allowed, symlinks are resolved
// before matching, and only regular files are read. Rejections are reported
// back as note strings, never as fatal errors.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"multireasoner/internal/logging"
)

// blockedPatterns are matched as substrings of the resolved, lower-cased
// path. Anything credential-shaped is refused.
var blockedPatterns = []string{
	".ssh", ".gnupg", ".aws", ".env", ".netrc",
	"credentials", "secrets", ".git/config",
	"id_rsa", "id_ed25519", "id_ecdsa",
	".claude/settings.json",
}

var allowedExtensions = map[string]bool{
	".md": true, ".txt": true, ".py": true, ".js": true, ".ts": true,
	".jsx": true, ".tsx": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true,
	".cfg": true, ".ini": true,
	".html": true, ".css": true, ".csv": true, ".xml": true,
	".rst": true, ".org": true,
	".sh": true, ".bash": true, ".zsh": true, ".fish": true,
	".go": true, ".rs": true, ".rb": true, ".php": true, ".java": true,
	".kt": true, ".swift": true,
	".c": true, ".h": true, ".cpp": true, ".hpp": true,
	".sql": true, ".graphql": true, ".proto": true,
	".tf": true, ".hcl": true,
}

var allowedBasenames = map[string]bool{
	"README": true, "LICENSE": true, "LICENCE": true,
	"Makefile": true, "Dockerfile": true,
	"Vagrantfile": true, "Gemfile": true, "Rakefile": true, "Procfile": true,
	"CHANGELOG": true, "CONTRIBUTING": true, "AUTHORS": true,
}

// CheckPath validates one path and returns the resolved location to read.
func CheckPath(path string) (string, error) {
	resolved := resolve(path)

	lower := strings.ToLower(resolved)
	for _, pattern := range blockedPatterns {
		if strings.Contains(lower, pattern) {
			return "", fmt.Errorf("blocked: path matches sensitive pattern %q", pattern)
		}
	}

	base := filepath.Base(resolved)
	ext := strings.ToLower(filepath.Ext(resolved))
	if !allowedExtensions[ext] && !allowedBasenames[base] {
		return "", fmt.Errorf("blocked: %q not in allowed extensions or filenames", base)
	}

	return resolved, nil
}

// Read reads every path that passes the safety checks. It returns one
// attachment block per readable file, in input order, plus one human-readable
// error string per rejected or unreadable path.
func Read(paths []string) (blocks, errs []string) {
	logger := logging.New("files")
	for _, path := range paths {
		resolved, err := CheckPath(path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", path, err))
			logger.Warn("blocked file read", "path", path, "reason", err)
			continue
		}

		info, err := os.Stat(resolved)
		if err != nil {
			switch {
			case os.IsNotExist(err):
				errs = append(errs, "File not found: "+path)
			case os.IsPermission(err):
				errs = append(errs, "Permission denied: "+path)
			default:
				errs = append(errs, fmt.Sprintf("Error reading %s: %v", path, err))
			}
			continue
		}
		if !info.Mode().IsRegular() {
			errs = append(errs, path+": Not a regular file")
			continue
		}

		data, err := os.ReadFile(resolved)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Error reading %s: %v", path, err))
			continue
		}

		blocks = append(blocks, fmt.Sprintf("=== FILE: %s ===\n%s\n=== END FILE ===", path, data))
		logger.Info("read file", "path", path, "bytes", len(data))
	}
	return blocks, errs
}

// resolve expands a leading ~ and follows symlinks so the safety checks see
// the real target, not an innocent-looking alias.
func resolve(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AlternatesPath returns the alternates file inside a .git directory. Each
// line of that file is an extra object directory the repository may borrow
// objects from.
func AlternatesPath(gitDir string) string {
	return filepath.Join(gitDir, "objects", "info", "alternates")
}

// HasAlternate reports whether the alternates file contains a live line for
// objectsDir.
func HasAlternate(gitDir, objectsDir string) (bool, error) {
	data, err := os.ReadFile(AlternatesPath(gitDir))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read alternates: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == objectsDir {
			return true, nil
		}
	}
	return false, nil
}

// AppendAlternate adds a line for objectsDir to the alternates file, creating
// the file as needed. At most one live line per object directory: if the
// line is already present nothing is written.
func AppendAlternate(gitDir, objectsDir string) error {
	present, err := HasAlternate(gitDir, objectsDir)
	if err != nil {
		return err
	}
	if present {
		return nil
	}

	path := AlternatesPath(gitDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create objects/info: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open alternates: %w", err)
	}
	if _, err := fmt.Fprintln(f, objectsDir); err != nil {
		f.Close()
		return fmt.Errorf("append alternates line: %w", err)
	}
	return f.Close()
}

// BlankAlternate nulls the line for objectsDir in place, keeping file
// positions intact, and leaves a timestamped backup of the original file
// alongside. Returns the backup path, or "" when no line matched.
func BlankAlternate(gitDir, objectsDir string) (string, error) {
	path := AlternatesPath(gitDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read alternates: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	matched := false
	for i, line := range lines {
		if strings.TrimSpace(line) == objectsDir {
			lines[i] = ""
			matched = true
		}
	}
	if !matched {
		return "", nil
	}

	backup := fmt.Sprintf("%s.bak.%d", path, time.Now().Unix())
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return "", fmt.Errorf("write alternates backup: %w", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return "", fmt.Errorf("write alternates: %w", err)
	}
	return backup, nil
}

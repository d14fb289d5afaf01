package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ChangeType represents the type of change in a diff.
type ChangeType int

const (
	ChangeTypeModified ChangeType = iota
	ChangeTypeAdded
	ChangeTypeDeleted
	ChangeTypeRenamed
)

// String returns the string representation of ChangeType.
func (c ChangeType) String() string {
	switch c {
	case ChangeTypeAdded:
		return "added"
	case ChangeTypeModified:
		return "modified"
	case ChangeTypeDeleted:
		return "deleted"
	case ChangeTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileChange describes one file section of a unified diff.
type FileChange struct {
	Path       string
	OldPath    string // For renames, the original file path
	ChangeType ChangeType
	Additions  int
	Deletions  int
	IsBinary   bool
	IsLockFile bool
}

// String describes the change for the debug log, e.g.
// "b.go (renamed from a.go, +0 -0)" or "logo.png (added, binary)".
func (fc FileChange) String() string {
	detail := fc.ChangeType.String()
	if fc.ChangeType == ChangeTypeRenamed && fc.OldPath != "" {
		detail += " from " + fc.OldPath
	}
	if fc.IsBinary {
		detail += ", binary"
	} else {
		detail += fmt.Sprintf(", +%d -%d", fc.Additions, fc.Deletions)
	}
	if fc.IsLockFile {
		detail += ", lock file"
	}
	return fmt.Sprintf("%s (%s)", fc.Path, detail)
}

// DiffStats summarises a diff. It is informational only and never alters
// the diff text sent for generation.
type DiffStats struct {
	TotalFiles     int
	TotalAdditions int
	TotalDeletions int
	Files          []FileChange
}

// Summary returns a one-line description such as "3 files, +10 -2".
func (s *DiffStats) Summary() string {
	noun := "files"
	if s.TotalFiles == 1 {
		noun = "file"
	}
	return fmt.Sprintf("%d %s, +%d -%d", s.TotalFiles, noun, s.TotalAdditions, s.TotalDeletions)
}

// lockFilePatterns contains dependency lock files.
var lockFilePatterns = []string{
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"go.sum",
	"Cargo.lock",
	"Gemfile.lock",
	"composer.lock",
	"poetry.lock",
	"Pipfile.lock",
}

// isLockFile checks if a file path matches any lock file pattern.
func isLockFile(filePath string) bool {
	baseName := filepath.Base(filePath)
	for _, pattern := range lockFilePatterns {
		if baseName == pattern {
			return true
		}
	}
	return strings.HasSuffix(baseName, ".lock")
}

// ParseDiff computes per-file statistics from git diff output.
func ParseDiff(diff string) *DiffStats {
	stats := &DiffStats{}

	for _, fileDiff := range splitByFileDiff(diff) {
		fc := parseFileDiff(fileDiff)
		stats.Files = append(stats.Files, fc)
		stats.TotalAdditions += fc.Additions
		stats.TotalDeletions += fc.Deletions
	}
	stats.TotalFiles = len(stats.Files)

	return stats
}

// splitByFileDiff splits the diff output by file boundaries.
func splitByFileDiff(diff string) []string {
	var result []string
	var current strings.Builder

	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "diff --git ") && current.Len() > 0 {
			result = append(result, current.String())
			current.Reset()
		}
		if current.Len() == 0 && !strings.HasPrefix(line, "diff --git ") {
			// Text before the first header is not part of any file
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

// parseFileDiff parses a single file's diff.
func parseFileDiff(fileDiff string) FileChange {
	fc := FileChange{ChangeType: ChangeTypeModified}
	inHunk := false

	for _, line := range strings.Split(fileDiff, "\n") {
		if inHunk {
			switch {
			case strings.HasPrefix(line, "+"):
				fc.Additions++
			case strings.HasPrefix(line, "-"):
				fc.Deletions++
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "diff --git "):
			fc.Path = extractFilePath(line)
		case strings.HasPrefix(line, "new file mode"):
			fc.ChangeType = ChangeTypeAdded
		case strings.HasPrefix(line, "deleted file mode"):
			fc.ChangeType = ChangeTypeDeleted
		case strings.HasPrefix(line, "rename from "):
			fc.OldPath = strings.TrimPrefix(line, "rename from ")
			fc.ChangeType = ChangeTypeRenamed
		case strings.HasPrefix(line, "rename to "):
			fc.Path = strings.TrimPrefix(line, "rename to ")
		case strings.HasPrefix(line, "Binary files"):
			fc.IsBinary = true
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		}
	}

	fc.IsLockFile = isLockFile(fc.Path)
	return fc
}

// extractFilePath extracts the file path from a diff header line.
// Format: "diff --git a/path/to/file b/path/to/file"
func extractFilePath(line string) string {
	line = strings.TrimPrefix(line, "diff --git ")

	// Unrenamed files repeat the same path on both sides
	if n := len(line); n > 5 && (n-5)%2 == 0 {
		path := line[2 : 2+(n-5)/2]
		if line == "a/"+path+" b/"+path {
			return path
		}
	}

	if idx := strings.LastIndex(line, " b/"); idx >= 0 {
		return line[idx+len(" b/"):]
	}

	if strings.HasPrefix(line, "a/") {
		return strings.TrimPrefix(strings.SplitN(line, " ", 2)[0], "a/")
	}

	return line
}

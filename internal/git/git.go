package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// SourceStatus describes how git sees one plaintext source file
type SourceStatus struct {
	Path    string
	IsRepo  bool
	Tracked bool // committed or staged: the plaintext is already in history
	Ignored bool // matched by a .gitignore rule
}

// IsGitRepo checks if the working directory is inside a git repository
func IsGitRepo(workDir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	return cmd.Run() == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(workDir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(workDir, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir
	// exit code 0 means ignored
	return cmd.Run() == nil
}

// CheckSource reports the git status of a plaintext source
func CheckSource(workDir, path string) *SourceStatus {
	status := &SourceStatus{Path: path}
	if !IsGitRepo(workDir) {
		return status
	}
	status.IsRepo = true
	status.Tracked = IsTracked(workDir, path)
	status.Ignored = IsIgnored(workDir, path)
	return status
}

// Warning returns a message for the author, or "" when the source is safe
func (s *SourceStatus) Warning() string {
	switch {
	case !s.IsRepo:
		return ""
	case s.Tracked:
		return fmt.Sprintf("%s is tracked by git, its plaintext is in your history (run: git rm --cached %s)", s.Path, s.Path)
	case !s.Ignored:
		return fmt.Sprintf("%s is not in .gitignore (add it before committing)", s.Path)
	}
	return ""
}

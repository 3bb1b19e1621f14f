package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ImportIssue is a single misplaced use statement.
type ImportIssue struct {
	Line      int
	Statement string
}

// FileImportIssues collects the misplaced imports of one file.
type FileImportIssues struct {
	Path   string
	Issues []ImportIssue
}

// CheckImports verifies that every Rust source file under the component's
// src directory declares its use statements before any non-import code.
// Files under tests/ directories are skipped.
func CheckImports(componentPath string) ([]FileImportIssues, error) {
	srcPath := filepath.Join(componentPath, "src")
	if _, err := os.Stat(srcPath); err != nil {
		return nil, fmt.Errorf("%s does not exist", srcPath)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(srcPath, "**", "*.rs"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", srcPath, err)
	}
	sort.Strings(matches)

	var violations []FileImportIssues
	for _, path := range matches {
		if inTestsDir(path) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		issues := checkImportPlacement(strings.Split(string(data), "\n"))
		if len(issues) == 0 {
			continue
		}

		rel, err := filepath.Rel(componentPath, path)
		if err != nil {
			rel = path
		}
		violations = append(violations, FileImportIssues{Path: rel, Issues: issues})
	}

	return violations, nil
}

// checkImportPlacement runs the placement state machine over one file.
//
// Allowed before code: comments, attributes, use statements (including
// multi-line "use {...};" blocks) and "use super::*;" directly after an
// inline module declaration. Any use statement appearing after the first
// line of non-import code is an issue.
func checkImportPlacement(lines []string) []ImportIssue {
	var issues []ImportIssue

	inImports := true
	inMultilineImport := false
	sawModuleDecl := false
	firstCodeLine := 0

	for i, line := range lines {
		stripped := strings.TrimSpace(line)

		if isSkippable(stripped) {
			continue
		}

		if inMultilineImport {
			if endsMultilineImport(stripped) {
				inMultilineImport = false
			}
			continue
		}

		if isInlineModuleDecl(stripped) {
			sawModuleDecl = true
			continue
		}

		if strings.HasPrefix(stripped, "use ") {
			if sawModuleDecl && stripped == "use super::*;" {
				sawModuleDecl = false
				continue
			}
			if !strings.HasSuffix(stripped, ";") {
				inMultilineImport = true
			}
			if !inImports && firstCodeLine > 0 && !sawModuleDecl {
				issues = append(issues, ImportIssue{Line: i + 1, Statement: stripped})
			}
			sawModuleDecl = false
			continue
		}

		if inImports {
			inImports = false
			firstCodeLine = i + 1
			continue
		}
		sawModuleDecl = false
	}

	return issues
}

func isSkippable(stripped string) bool {
	return stripped == "" ||
		strings.HasPrefix(stripped, "//") ||
		strings.HasPrefix(stripped, "#[") ||
		strings.HasPrefix(stripped, "#![")
}

// isInlineModuleDecl matches "mod x {" style declarations, which may be
// followed by a "use super::*;" re-export.
func isInlineModuleDecl(stripped string) bool {
	return (strings.HasPrefix(stripped, "pub mod ") || strings.HasPrefix(stripped, "mod ")) &&
		strings.Contains(stripped, "{")
}

func endsMultilineImport(stripped string) bool {
	return strings.HasSuffix(stripped, ";") || stripped == "}"
}

func inTestsDir(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "tests" {
			return true
		}
	}
	return false
}

package validate

import (
	"html"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	sqlInjectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(union\s+(all\s+)?select|insert\s+into|delete\s+from|drop\s+(table|database)|truncate\s+table|alter\s+table|exec(ute)?\s*\()`),
		regexp.MustCompile(`(?i)\bupdate\s+\w+\s+set\b`),
		regexp.MustCompile(`(?i)'\s*(or|and)\s+('?\d+'?\s*=\s*'?\d+|'[^']*'\s*=\s*')`),
		regexp.MustCompile(`(?i)(;|'|")\s*(--|#|/\*)`),
		regexp.MustCompile(`(?i)\b(sleep|benchmark|pg_sleep)\s*\(`),
		regexp.MustCompile(`(?i);\s*(select|insert|update|delete|drop|create|alter)\b`),
	}

	xssPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<\s*/?\s*(script|iframe|object|embed|svg|meta|link|style)\b`),
		regexp.MustCompile(`(?i)\bon(load|error|click|dblclick|mouse[a-z]*|focus|blur|key[a-z]*|submit|change|input|toggle|animation[a-z]*)\s*=`),
		regexp.MustCompile(`(?i)(javascript|vbscript)\s*:`),
		regexp.MustCompile(`(?i)data\s*:\s*text/html`),
		regexp.MustCompile(`(?i)expression\s*\(`),
	}

	// encoded forms of "../" and "..\"
	encodedTraversal = []string{
		"..%2f", "..%5c",
		"%2e%2e%2f", "%2e%2e%5c",
		"%2e%2e/", `%2e%2e\`,
		"..%c0%af", "..%c1%9c",
	}
)

// ContainsSQLInjection reports whether s looks like an SQL injection attempt.
func ContainsSQLInjection(s string) bool {
	for _, p := range sqlInjectionPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// ContainsXSS reports whether s carries markup or script that could execute in a browser.
func ContainsXSS(s string) bool {
	for _, p := range xssPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// ContainsPathTraversal reports whether p tries to leave its root through
// "..", in plain or URL-encoded form, with either separator.
func ContainsPathTraversal(p string) bool {
	lower := strings.ToLower(p)
	for _, variant := range encodedTraversal {
		if strings.Contains(lower, variant) {
			return true
		}
	}

	normalized := strings.ReplaceAll(p, `\`, "/")
	for _, part := range strings.Split(normalized, "/") {
		if part == ".." {
			return true
		}
	}
	cleaned := filepath.ToSlash(filepath.Clean(normalized))
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}

// IsSafePath accepts non-empty relative paths free of traversal and control characters.
func IsSafePath(p string) bool {
	if strings.TrimSpace(p) == "" {
		return false
	}
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) || filepath.IsAbs(p) || hasDrivePrefix(p) {
		return false
	}
	if ContainsPathTraversal(p) {
		return false
	}
	for _, r := range p {
		if r < 32 || r == 127 {
			return false
		}
	}
	return true
}

// ValidCron accepts five-field cron expressions (minute, hour, day of
// month, month, day of week) with values in range. Descriptors such as
// @daily are rejected.
func ValidCron(expr string) bool {
	_, err := cronParser.Parse(strings.TrimSpace(expr))
	return err == nil
}

// SanitizeHTML escapes markup so s renders as text.
func SanitizeHTML(s string) string {
	return html.EscapeString(s)
}

func hasDrivePrefix(p string) bool {
	return len(p) >= 2 && p[1] == ':' &&
		(('a' <= p[0] && p[0] <= 'z') || ('A' <= p[0] && p[0] <= 'Z'))
}

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsSQLInjection(t *testing.T) {
	malicious := []string{
		"admin' OR '1'='1",
		"1; DROP TABLE users",
		"1 UNION SELECT password FROM users",
		"x'; --",
		"name\" /* comment",
		"1 AND sleep(5)",
		"DELETE FROM jobs",
		"update jobs set state='done'",
	}
	for _, s := range malicious {
		assert.Truef(t, ContainsSQLInjection(s), "expected detection: %q", s)
	}

	benign := []string{
		"customer selection",
		"Drop-off location",
		"O'Reilly",
		"daily_orders_load",
		"update the docs",
	}
	for _, s := range benign {
		assert.Falsef(t, ContainsSQLInjection(s), "unexpected detection: %q", s)
	}
}

func TestContainsXSS(t *testing.T) {
	malicious := []string{
		"<script>alert(1)</script>",
		"<img src=x onerror=alert(1)>",
		"javascript:alert(1)",
		"< SVG onload=alert(1)>",
		"data:text/html;base64,PHNjcmlwdD4=",
	}
	for _, s := range malicious {
		assert.Truef(t, ContainsXSS(s), "expected detection: %q", s)
	}

	benign := []string{"one=1", "a < b", "scripted load", "online"}
	for _, s := range benign {
		assert.Falsef(t, ContainsXSS(s), "unexpected detection: %q", s)
	}
}

func TestContainsPathTraversal(t *testing.T) {
	for _, p := range []string{"../etc/passwd", `..\windows`, "a/../../b", "..%2fetc", "%2E%2E%2Fetc", ".."} {
		assert.Truef(t, ContainsPathTraversal(p), "expected detection: %q", p)
	}
	for _, p := range []string{"a/b/c.csv", "a..b/file", "...", "dir/.hidden"} {
		assert.Falsef(t, ContainsPathTraversal(p), "unexpected detection: %q", p)
	}
}

func TestIsSafePath(t *testing.T) {
	assert.True(t, IsSafePath("landing/orders.csv"))
	assert.False(t, IsSafePath(""))
	assert.False(t, IsSafePath("   "))
	assert.False(t, IsSafePath("/etc/passwd"))
	assert.False(t, IsSafePath(`\\server\share`))
	assert.False(t, IsSafePath(`C:\data`))
	assert.False(t, IsSafePath("a/../b"))
	assert.False(t, IsSafePath("a\x00b"))
}

func TestValidCron(t *testing.T) {
	for _, expr := range []string{"* * * * *", "*/5 * * * *", "0 2 * * 1-5", "0,30 8-18 * * *", "0 6 * JAN MON-FRI"} {
		assert.Truef(t, ValidCron(expr), expr)
	}
	for _, expr := range []string{"", "* * * *", "every day", "0 2 * * MON;", "* * * * * *", "61 * * * *", "0 25 * * *", "@daily"} {
		assert.Falsef(t, ValidCron(expr), expr)
	}
}

func TestSanitizeHTML(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;&#34;hi&#34;&lt;/b&gt;", SanitizeHTML(`<b>"hi"</b>`))
}

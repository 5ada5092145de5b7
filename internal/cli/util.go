package cli

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	wsRegexp    = regexp.MustCompile(`\s+`)
	stripPolicy = bluemonday.StrictPolicy()
)

func parseOutputFormat(raw string) (OutputFormat, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch OutputFormat(s) {
	case OutputText, OutputTable, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("invalid output format %q (expected text|table|json)", raw)
	}
}

// plainText strips markup some feeds leave in titles and collapses
// whitespace for console display.
func plainText(v string) string {
	if strings.ContainsAny(v, "<&") {
		v = html.UnescapeString(stripPolicy.Sanitize(v))
	}
	return strings.TrimSpace(wsRegexp.ReplaceAllString(v, " "))
}

func compactText(v string, max int) string {
	v = strings.TrimSpace(wsRegexp.ReplaceAllString(v, " "))
	runes := []rune(v)
	if max <= 0 || len(runes) <= max {
		return v
	}
	return string(runes[:max-1]) + "..."
}

func fallback(v, fb string) string {
	if strings.TrimSpace(v) == "" {
		return fb
	}
	return v
}

func isYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func isNo(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "n")
}

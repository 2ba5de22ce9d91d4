package sanitize

import (
	"regexp"
	"strings"
)

// Filename removes problematic characters from entry and chapter names
func Filename(name string) string {
	// Compile the regex pattern
	r := regexp.MustCompile(`[<>:"/\\|?*]`)

	// Trim spaces & dots
	name = strings.Trim(name, " .")

	// Remove illegal chars
	name = r.ReplaceAllString(name, "")
	return name
}

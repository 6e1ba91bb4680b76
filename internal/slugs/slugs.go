// Package slugs provides filename slugification for extract artifacts.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Component converts a string to a safe file/path component.
func Component(s string) string {
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(s, " ", "-"))
	}
	return slugged
}

package core

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	tempPlaceholder = "XXXXXX"
	tempAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// TempTemplate returns the template with ".XXXXXX" appended unless it
// already ends in six placeholder characters.
func TempTemplate(p Path) Path {
	if strings.HasSuffix(p.Path, tempPlaceholder) {
		return p
	}
	return p.WithPath(p.Path + "." + tempPlaceholder)
}

// RandomizeTemplate replaces the trailing run of X characters in the last
// element of template with random alphanumeric characters. A template
// without trailing X characters is returned unchanged.
func RandomizeTemplate(template Path) (Path, error) {
	s := template.Path
	n := len(s) - len(strings.TrimRight(s, "X"))
	if n == 0 {
		return template, nil
	}

	suffix, err := gonanoid.Generate(tempAlphabet, n)
	if err != nil {
		return Path{}, err
	}
	return template.WithPath(s[:len(s)-n] + suffix), nil
}

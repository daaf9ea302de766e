package core

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempTemplate(t *testing.T) {
	assert.Equal(t, "/tmp/foo.XXXXXX", TempTemplate(Local("/tmp/foo.XXXXXX")).Path)
	assert.Equal(t, "/tmp/foo.XXXXXX", TempTemplate(Local("/tmp/foo")).Path)
	assert.Equal(t, "/tmp/fooXXX.XXXXXX", TempTemplate(Local("/tmp/fooXXX")).Path)
}

func TestRandomizeTemplate(t *testing.T) {
	re := regexp.MustCompile(`^/tmp/foo\.[0-9A-Za-z]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		p, err := RandomizeTemplate(Local("/tmp/foo.XXXXXX"))
		require.NoError(t, err)
		assert.Regexp(t, re, p.Path)
		seen[p.Path] = true
	}
	assert.Greater(t, len(seen), 1)

	p, err := RandomizeTemplate(Local("/tmp/plain"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/plain", p.Path)
}

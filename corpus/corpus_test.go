package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	writeFile(t, path, "東家人死。\n西家人助哀。\n")

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Name)
	assert.Equal(t, []string{"東家人死。", "西家人助哀。"}, doc.Lines)
}

func TestIgnorePatterns(t *testing.T) {
	patterns := IgnorePatterns{"copyright", "all rights reserved"}

	tests := []struct {
		line string
		want bool
	}{
		{"東家人死。", false},
		{"Copyright 2024", true},
		{"COPYRIGHT notice", true},
		{"...All Rights Reserved...", true},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, patterns.Ignore(tt.line), "line %q", tt.line)
	}

	var empty IgnorePatterns
	assert.False(t, empty.Ignore("Copyright 2024"))
}

func TestIgnorePatternsFilter(t *testing.T) {
	patterns := IgnorePatterns{"copyright"}
	doc := Document{Name: "doc", Lines: []string{
		"東家人死。",
		"Copyright 2024",
		"西家人助哀。",
	}}
	filtered := patterns.Filter(doc)
	assert.Equal(t, "doc", filtered.Name)
	assert.Equal(t, []string{"東家人死。", "西家人助哀。"}, filtered.Lines)
}

func TestLoadIgnorePatterns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignore.txt")
	writeFile(t, path, "Copyright\n\nAll Rights Reserved\n")

	patterns, err := LoadIgnorePatterns(path)
	require.NoError(t, err)
	// Patterns are lowered at load time.
	assert.Equal(t, IgnorePatterns{"copyright", "all rights reserved"}, patterns)
}

func TestLoadIndex(t *testing.T) {
	dir := t.TempDir()
	top := filepath.Join(dir, "collections.csv")
	indexDir := filepath.Join(dir, "index")
	docDir := filepath.Join(dir, "corpus")

	writeFile(t, top, "# collection\ttitle\nlunyu.csv\t論語\nmengzi.csv\t孟子\n")
	writeFile(t, filepath.Join(indexDir, "lunyu.csv"), "lunyu01.txt\t學而\nlunyu02.txt\t為政\n")
	writeFile(t, filepath.Join(indexDir, "mengzi.csv"), "# header\nmengzi01.txt\t梁惠王上\n")

	docs, err := LoadIndex(top, indexDir, docDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(docDir, "lunyu01.txt"),
		filepath.Join(docDir, "lunyu02.txt"),
		filepath.Join(docDir, "mengzi01.txt"),
	}, docs)
}

func TestLoadIndexMissingCollection(t *testing.T) {
	dir := t.TempDir()
	top := filepath.Join(dir, "collections.csv")
	writeFile(t, top, "missing.csv\n")

	_, err := LoadIndex(top, dir, dir)
	assert.Error(t, err)
}

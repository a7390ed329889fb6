package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Engineering", "engineering"},
		{"Human Resources", "human-resources"},
		{"  R&D / Labs  ", "r-d-labs"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"Ünïcode Name", "n-code-name"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"go", "mongo", "gin"}, SplitAndTrim("go, mongo , gin", ","))
	assert.Equal(t, []string{"one"}, SplitAndTrim(" one ,, ,", ","))
	assert.Empty(t, SplitAndTrim("", ","))
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "go", "GO", "Mongo", ""})
	assert.Equal(t, []string{"go", "mongo"}, got)
}

func TestNormalizeContributors(t *testing.T) {
	got := NormalizeContributors([]string{" Ada Lovelace ", "", "Grace Hopper"})
	assert.Equal(t, []string{"Ada Lovelace", "Grace Hopper"}, got)
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com/doc.pdf"))
	assert.True(t, IsValidURL("http://example.com"))
	assert.False(t, IsValidURL("ftp://example.com"))
	assert.False(t, IsValidURL("https://"))
	assert.False(t, IsValidURL("not a url"))
	assert.False(t, IsValidURL(""))
}

func TestFileFormat(t *testing.T) {
	assert.Equal(t, "pdf", FileFormat("report.PDF"))
	assert.Equal(t, "gz", FileFormat("archive.tar.gz"))
	assert.Equal(t, "", FileFormat("Makefile"))
}

func TestDetectResourceType(t *testing.T) {
	assert.Equal(t, "image", DetectResourceType("photo.JPG"))
	assert.Equal(t, "video", DetectResourceType("demo.mp4"))
	assert.Equal(t, "raw", DetectResourceType("notes.txt"))
	assert.Equal(t, "raw", DetectResourceType("Makefile"))
}

func TestIsValidObjectID(t *testing.T) {
	assert.True(t, IsValidObjectID("507f1f77bcf86cd799439011"))
	assert.False(t, IsValidObjectID("not-an-id"))
	assert.False(t, IsValidObjectID(""))
}

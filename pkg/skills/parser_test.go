package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeSkill(t *testing.T, root, name, content string) string {
	t.Helper()

	dir := filepath.Join(root, name)
	assert.NoError(t, os.MkdirAll(dir, 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, SkillFileName), []byte(content), 0644))

	return dir
}

const validSkill = `---
name: web-search
description: Search the web and summarize results.
license: MIT
allowed-tools: browser fetch
metadata:
  author: someone
---
# Web Search

Use the browser tool to search.
`

func TestParseSkillDir(t *testing.T) {
	dir := writeSkill(t, t.TempDir(), "web-search", validSkill)

	skill, err := ParseSkillDir(dir)
	assert.NoError(t, err)
	assert.Equal(t, "web-search", skill.Name)
	assert.Equal(t, "Search the web and summarize results.", skill.Description)
	assert.Equal(t, "MIT", skill.License)
	assert.Equal(t, []string{"browser", "fetch"}, skill.AllowedToolList())
	assert.Contains(t, skill.Body, "# Web Search")
	assert.Equal(t, dir, skill.Dir)
}

func TestParseSkillDirMissingFile(t *testing.T) {
	_, err := ParseSkillDir(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestParseSkillDirValidation(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		content string
		wantErr error
	}{
		{
			name:    "no frontmatter",
			dir:     "plain",
			content: "# Just markdown\n",
			wantErr: ErrNoFrontmatterDelimiter,
		},
		{
			name:    "unterminated frontmatter",
			dir:     "open",
			content: "---\nname: open\ndescription: d\n",
			wantErr: ErrNoFrontmatterDelimiter,
		},
		{
			name:    "invalid yaml",
			dir:     "bad-yaml",
			content: "---\nname: [unclosed\n---\nbody\n",
			wantErr: ErrInvalidFrontmatterYAML,
		},
		{
			name:    "missing name",
			dir:     "anon",
			content: "---\ndescription: d\n---\nbody\n",
			wantErr: ErrMissingRequiredField,
		},
		{
			name:    "missing description",
			dir:     "silent",
			content: "---\nname: silent\n---\nbody\n",
			wantErr: ErrMissingRequiredField,
		},
		{
			name:    "uppercase name",
			dir:     "shouty",
			content: "---\nname: SHOUTY\ndescription: d\n---\nbody\n",
			wantErr: ErrInvalidName,
		},
		{
			name:    "consecutive hyphens",
			dir:     "a--b",
			content: "---\nname: a--b\ndescription: d\n---\nbody\n",
			wantErr: ErrInvalidName,
		},
		{
			name:    "name mismatch",
			dir:     "actual-dir",
			content: "---\nname: other-name\ndescription: d\n---\nbody\n",
			wantErr: ErrNameMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSkill(t, t.TempDir(), tt.dir, tt.content)

			_, err := ParseSkillDir(dir)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseSkillDirLongDescriptionWarnsOnly(t *testing.T) {
	long := make([]byte, descriptionWarnLength+1)
	for i := range long {
		long[i] = 'd'
	}

	content := "---\nname: verbose\ndescription: " + string(long) + "\n---\nbody\n"
	dir := writeSkill(t, t.TempDir(), "verbose", content)

	skill, err := ParseSkillDir(dir)
	assert.NoError(t, err)
	assert.Len(t, skill.Description, descriptionWarnLength+1)
}

func TestSplitFrontmatterBodyPreserved(t *testing.T) {
	content := "---\nname: n\n---\nline one\n\nline two\n"

	frontmatter, body, err := splitFrontmatter(content)
	assert.NoError(t, err)
	assert.Equal(t, "name: n", frontmatter)
	assert.Equal(t, "line one\n\nline two\n", body)
}

func TestResolvePath(t *testing.T) {
	dir := writeSkill(t, t.TempDir(), "web-search", validSkill)

	skill, err := ParseSkillDir(dir)
	assert.NoError(t, err)

	resolved, err := skill.ResolvePath("scripts/run.sh")
	assert.NoError(t, err)
	assert.Contains(t, resolved, filepath.Join("web-search", "scripts", "run.sh"))

	_, err = skill.ResolvePath("../../etc/passwd")
	assert.ErrorIs(t, err, ErrPathEscapesSkill)

	self, err := skill.ResolvePath(".")
	assert.NoError(t, err)
	assert.Contains(t, self, "web-search")
}

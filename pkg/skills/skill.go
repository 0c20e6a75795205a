package skills

import (
	"errors"
	"path/filepath"
	"strings"
)

// SkillFileName is the required file at the root of every skill directory.
const SkillFileName = "SKILL.md"

// Typed errors surfaced by the skill subsystem.
var (
	ErrFileNotFound           = errors.New("skill file not found")
	ErrNoFrontmatterDelimiter = errors.New("skill file has no frontmatter delimiter")
	ErrInvalidFrontmatterYAML = errors.New("skill frontmatter is not valid YAML")
	ErrMissingRequiredField   = errors.New("skill frontmatter missing required field")
	ErrInvalidName            = errors.New("invalid skill name")
	ErrNameMismatch           = errors.New("skill name does not match its directory")
	ErrSkillNotFound          = errors.New("skill not found")
	ErrPathEscapesSkill       = errors.New("path escapes the skill directory")
)

/*
Frontmatter is the YAML document at the top of a SKILL.md file.
*/
type Frontmatter struct {
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description"`
	License       string         `yaml:"license,omitempty"`
	Compatibility string         `yaml:"compatibility,omitempty"`
	Metadata      map[string]any `yaml:"metadata,omitempty"`
	AllowedTools  string         `yaml:"allowed-tools,omitempty"`
}

/*
AllowedToolList splits the whitespace-delimited allowed-tools value.
*/
func (fm Frontmatter) AllowedToolList() []string {
	return strings.Fields(fm.AllowedTools)
}

/*
Skill is a filesystem-backed bundle of agent instructions: parsed
frontmatter plus the Markdown body, anchored to its directory.
*/
type Skill struct {
	Frontmatter
	Body string
	Dir  string
	File string
}

/*
ResolvePath resolves a relative path against the skill directory. Any
resolved path that escapes the directory root is rejected.
*/
func (skill *Skill) ResolvePath(relative string) (string, error) {
	root, err := filepath.Abs(skill.Dir)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.Abs(filepath.Join(root, relative))
	if err != nil {
		return "", err
	}

	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", ErrPathEscapesSkill
	}

	return resolved, nil
}

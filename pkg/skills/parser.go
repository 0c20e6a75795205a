package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spindlework/a2a-runtime/pkg/logging"
	"gopkg.in/yaml.v3"
)

// Skill names are lowercase alphanumerics and single hyphens, no leading,
// trailing or consecutive hyphens, at most 64 characters.
const maxNameLength = 64

var namePattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Soft limits that warn without failing the parse.
const (
	descriptionWarnLength   = 1024
	compatibilityWarnLength = 500
)

const frontmatterDelimiter = "---"

/*
ParseSkillDir reads and validates the SKILL.md anchored to the given
directory. The file must open with a "---" line, followed by a YAML
document, a closing "---" line, and the Markdown body.
*/
func ParseSkillDir(dir string) (*Skill, error) {
	file := filepath.Join(dir, SkillFileName)

	raw, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, file)
		}
		return nil, err
	}

	frontmatter, body, err := splitFrontmatter(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, file)
	}

	var fm Frontmatter

	if err := yaml.Unmarshal([]byte(frontmatter), &fm); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFrontmatterYAML, file, err)
	}

	if err := validate(fm, dir); err != nil {
		return nil, err
	}

	return &Skill{
		Frontmatter: fm,
		Body:        body,
		Dir:         dir,
		File:        file,
	}, nil
}

/*
splitFrontmatter separates the YAML document from the Markdown body. The
file MUST begin with the literal delimiter line.
*/
func splitFrontmatter(content string) (string, string, error) {
	if !strings.HasPrefix(content, frontmatterDelimiter+"\n") {
		return "", "", ErrNoFrontmatterDelimiter
	}

	rest := content[len(frontmatterDelimiter)+1:]

	end := strings.Index(rest, "\n"+frontmatterDelimiter)
	if end < 0 {
		return "", "", ErrNoFrontmatterDelimiter
	}

	frontmatter := rest[:end]
	body := rest[end+1+len(frontmatterDelimiter):]
	body = strings.TrimPrefix(body, "\n")

	return frontmatter, body, nil
}

func validate(fm Frontmatter, dir string) error {
	if fm.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingRequiredField)
	}

	if fm.Description == "" {
		return fmt.Errorf("%w: description", ErrMissingRequiredField)
	}

	if len(fm.Name) > maxNameLength || !namePattern.MatchString(fm.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, fm.Name)
	}

	if fm.Name != filepath.Base(dir) {
		return fmt.Errorf("%w: %q in %s", ErrNameMismatch, fm.Name, dir)
	}

	if len(fm.Description) > descriptionWarnLength {
		logging.Warn("skill description exceeds recommended length", "skill", fm.Name, "length", len(fm.Description))
	}

	if len(fm.Compatibility) > compatibilityWarnLength {
		logging.Warn("skill compatibility exceeds recommended length", "skill", fm.Name, "length", len(fm.Compatibility))
	}

	return nil
}

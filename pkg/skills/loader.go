package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spindlework/a2a-runtime/pkg/logging"
)

/*
Metadata is the lightweight, progressive-disclosure view of a skill: just
enough to decide whether to activate it.
*/
type Metadata struct {
	Name        string
	Description string
	Dir         string
	File        string
}

/*
Loader indexes the skill directories under a root and tracks which skills
are active. The activation set is an in-memory set of names; deactivating
an absent member is a no-op at this level.
*/
type Loader struct {
	root string

	mu     sync.Mutex
	active map[string]struct{}
}

func NewLoader(root string) *Loader {
	return &Loader{
		root:   root,
		active: make(map[string]struct{}),
	}
}

/*
Discover lists the subdirectories that contain a SKILL.md, sorted
lexicographically by directory name.
*/
func (loader *Loader) Discover() ([]string, error) {
	entries, err := os.ReadDir(loader.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill root %s: %w", loader.root, err)
	}

	dirs := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(loader.root, entry.Name())

		if _, err := os.Stat(filepath.Join(dir, SkillFileName)); err != nil {
			continue
		}

		dirs = append(dirs, dir)
	}

	sort.Strings(dirs)
	return dirs, nil
}

/*
LoadMetadata parses every discovered skill down to its metadata. Parse
failures are skipped with a warning so one broken skill does not hide the
rest.
*/
func (loader *Loader) LoadMetadata() ([]Metadata, error) {
	dirs, err := loader.Discover()
	if err != nil {
		return nil, err
	}

	metadata := make([]Metadata, 0, len(dirs))

	for _, dir := range dirs {
		skill, err := ParseSkillDir(dir)
		if err != nil {
			logging.Warn("skipping unparsable skill", "dir", dir, "error", err)
			continue
		}

		metadata = append(metadata, Metadata{
			Name:        skill.Name,
			Description: skill.Description,
			Dir:         skill.Dir,
			File:        skill.File,
		})
	}

	return metadata, nil
}

/*
LoadSkills fully parses every discoverable skill.
*/
func (loader *Loader) LoadSkills() ([]Skill, error) {
	dirs, err := loader.Discover()
	if err != nil {
		return nil, err
	}

	loaded := make([]Skill, 0, len(dirs))

	for _, dir := range dirs {
		skill, err := ParseSkillDir(dir)
		if err != nil {
			logging.Warn("skipping unparsable skill", "dir", dir, "error", err)
			continue
		}

		loaded = append(loaded, *skill)
	}

	return loaded, nil
}

/*
LoadSkill parses the skill with the given name, or reports
ErrSkillNotFound.
*/
func (loader *Loader) LoadSkill(name string) (*Skill, error) {
	dir := filepath.Join(loader.root, name)

	if _, err := os.Stat(filepath.Join(dir, SkillFileName)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSkillNotFound, name)
	}

	return ParseSkillDir(dir)
}

/*
Activate adds the skill to the activation set.
*/
func (loader *Loader) Activate(skill *Skill) {
	loader.mu.Lock()
	defer loader.mu.Unlock()

	loader.active[skill.Name] = struct{}{}
}

/*
ActivateByName loads and activates the named skill.
*/
func (loader *Loader) ActivateByName(name string) (*Skill, error) {
	skill, err := loader.LoadSkill(name)
	if err != nil {
		return nil, err
	}

	loader.Activate(skill)
	return skill, nil
}

/*
Deactivate removes the name from the activation set; absent members are a
no-op.
*/
func (loader *Loader) Deactivate(name string) {
	loader.mu.Lock()
	defer loader.mu.Unlock()

	delete(loader.active, name)
}

func (loader *Loader) DeactivateAll() {
	loader.mu.Lock()
	defer loader.mu.Unlock()

	loader.active = make(map[string]struct{})
}

func (loader *Loader) IsActivated(name string) bool {
	loader.mu.Lock()
	defer loader.mu.Unlock()

	_, ok := loader.active[name]
	return ok
}

/*
ActivatedNames lists the active skills, sorted lexicographically.
*/
func (loader *Loader) ActivatedNames() []string {
	loader.mu.Lock()
	defer loader.mu.Unlock()

	names := make([]string, 0, len(loader.active))

	for name := range loader.active {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

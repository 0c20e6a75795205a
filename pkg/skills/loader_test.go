package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func skillContent(name, description string) string {
	return "---\nname: " + name + "\ndescription: " + description + "\n---\nBody of " + name + ".\n"
}

func populatedRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeSkill(t, root, "alpha", skillContent("alpha", "First skill."))
	writeSkill(t, root, "beta", skillContent("beta", "Second skill."))
	writeSkill(t, root, "broken", "no frontmatter here\n")

	// A directory without SKILL.md and a stray file are both ignored.
	assert.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-skill"), 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("readme"), 0644))

	return root
}

func TestLoaderDiscover(t *testing.T) {
	loader := NewLoader(populatedRoot(t))

	dirs, err := loader.Discover()
	assert.NoError(t, err)
	assert.Len(t, dirs, 3)
	assert.Equal(t, "alpha", filepath.Base(dirs[0]))
	assert.Equal(t, "beta", filepath.Base(dirs[1]))
	assert.Equal(t, "broken", filepath.Base(dirs[2]))
}

func TestLoaderDiscoverMissingRoot(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent"))

	_, err := loader.Discover()
	assert.Error(t, err)
}

func TestLoaderLoadMetadataSkipsBroken(t *testing.T) {
	loader := NewLoader(populatedRoot(t))

	metadata, err := loader.LoadMetadata()
	assert.NoError(t, err)
	assert.Len(t, metadata, 2)
	assert.Equal(t, "alpha", metadata[0].Name)
	assert.Equal(t, "First skill.", metadata[0].Description)
	assert.Equal(t, "beta", metadata[1].Name)
}

func TestLoaderLoadSkills(t *testing.T) {
	loader := NewLoader(populatedRoot(t))

	loaded, err := loader.LoadSkills()
	assert.NoError(t, err)
	assert.Len(t, loaded, 2)
	assert.Contains(t, loaded[0].Body, "Body of alpha")
}

func TestLoaderLoadSkill(t *testing.T) {
	loader := NewLoader(populatedRoot(t))

	skill, err := loader.LoadSkill("beta")
	assert.NoError(t, err)
	assert.Equal(t, "beta", skill.Name)

	_, err = loader.LoadSkill("gamma")
	assert.ErrorIs(t, err, ErrSkillNotFound)
}

func TestLoaderActivation(t *testing.T) {
	loader := NewLoader(populatedRoot(t))

	assert.False(t, loader.IsActivated("alpha"))

	skill, err := loader.ActivateByName("alpha")
	assert.NoError(t, err)
	assert.Equal(t, "alpha", skill.Name)
	assert.True(t, loader.IsActivated("alpha"))

	_, err = loader.ActivateByName("beta")
	assert.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, loader.ActivatedNames())

	loader.Deactivate("alpha")
	assert.False(t, loader.IsActivated("alpha"))
	assert.Equal(t, []string{"beta"}, loader.ActivatedNames())

	// Deactivating an absent member is a no-op at the loader level.
	loader.Deactivate("alpha")

	loader.DeactivateAll()
	assert.Empty(t, loader.ActivatedNames())
}

func TestLoaderActivateUnknown(t *testing.T) {
	loader := NewLoader(populatedRoot(t))

	_, err := loader.ActivateByName("gamma")
	assert.ErrorIs(t, err, ErrSkillNotFound)
}

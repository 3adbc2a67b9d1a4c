package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCmd_CrossFlags(t *testing.T) {
	cmd := BuildCmd()
	for _, name := range []string{"os", "arch", "cross-os", "cross-arch", "version", "no-cache"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestChangelogCmd_Flags(t *testing.T) {
	cmd := ChangelogCmd()
	assert.Equal(t, "changelog", cmd.Use)
	out := cmd.Flags().Lookup("output")
	require.NotNil(t, out)
	assert.Equal(t, "CHANGELOG.md", out.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("next"))
	assert.NotNil(t, cmd.Flags().Lookup("tag"))
}

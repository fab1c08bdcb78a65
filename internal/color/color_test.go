package color

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		isDarkMode bool
	}{
		{"set dark mode", true},
		{"set light mode", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Initialize(tt.isDarkMode)
			assert.Equal(t, tt.isDarkMode, lipgloss.HasDarkBackground())
		})
	}
}

func TestResolveTheme(t *testing.T) {
	dark, err := ResolveTheme("dark")
	require.NoError(t, err)
	assert.True(t, dark)

	dark, err = ResolveTheme(" Light ")
	require.NoError(t, err)
	assert.False(t, dark)

	Initialize(true)
	dark, err = ResolveTheme("")
	require.NoError(t, err)
	assert.True(t, dark, "auto follows the current background")

	_, err = ResolveTheme("sepia")
	assert.Error(t, err)
}

func TestToggle(t *testing.T) {
	Initialize(false)
	assert.True(t, Toggle())
	assert.True(t, lipgloss.HasDarkBackground())
	assert.Contains(t, Describe(), "dark")
	assert.False(t, Toggle())
	assert.Contains(t, Describe(), "light")
}

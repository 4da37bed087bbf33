package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/treasurehunt/internal/hunt"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	require.Len(t, c.Locations, 5)
	assert.Equal(t, "home123", c.Locations[0].Passcode)
	assert.Equal(t, hunt.Marker{X: 1, Y: 5, Landmark: "house"}, c.Locations[0].Map)
	assert.Equal(t, hunt.Marker{X: 4, Y: 3, Landmark: "cafe"}, c.Locations[1].Map)
	assert.Nil(t, c.Locations[4].FinalRiddle)
	assert.NotEmpty(t, c.Locations[4].FinalMessage)
	assert.Equal(t, hunt.ChallengeCompletion, c.Locations[4].Challenges[0].Type)
	assert.Len(t, c.Version, 12)
	assert.NotEmpty(t, c.Introduction.Story)
}

const tiny = `
title: tiny
locations:
  - id: start
    passcode: go
    challenges: []
    finalRiddle: {prompt: p, answer: end}
    map: {x: 2, y: 2, landmark: tent}
  - id: end
    passcode: stop
    challenges: []
    finalMessage: done
    map: {x: 6, y: 6, landmark: flag}
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(tiny))
	require.NoError(t, err)
	assert.Equal(t, "tiny", c.Title)

	again, err := Parse([]byte(tiny))
	require.NoError(t, err)
	assert.Equal(t, c.Version, again.Version)

	other, err := Parse([]byte(tiny + "\n# edited\n"))
	require.NoError(t, err)
	assert.NotEqual(t, c.Version, other.Version)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"empty", "", "empty"},
		{"unknown field", "title: x\nsurprise: 1\n", "surprise"},
		{"invalid table", "title: x\nlocations: []\n", "no locations"},
		{"bad yaml", "title: [", "decoding content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hunt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tiny), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "start", c.Locations[0].ID)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLibrary(t *testing.T) {
	first, err := Default()
	require.NoError(t, err)
	second, err := Parse([]byte(tiny))
	require.NoError(t, err)

	lib := NewLibrary(first)
	assert.Same(t, first, lib.Current())

	lib.Publish(second)
	assert.Same(t, second, lib.Current())

	got, err := lib.Get(first.Version)
	require.NoError(t, err)
	assert.Same(t, first, got)

	_, err = lib.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

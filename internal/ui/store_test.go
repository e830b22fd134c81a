package ui

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeThemes struct {
	theme string
	err   error
}

func (f *fakeThemes) Theme() string { return f.theme }

func (f *fakeThemes) SetTheme(theme string) error {
	if f.err != nil {
		return f.err
	}
	f.theme = theme
	return nil
}

func newTestStore(t *testing.T, themes *fakeThemes) *Store {
	t.Helper()
	return NewStore(themes, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewStoreRestoresTheme(t *testing.T) {
	s := newTestStore(t, &fakeThemes{theme: ThemeDark})
	assert.Equal(t, ThemeDark, s.Snapshot().Theme)

	// Anything unrecognized falls back to light.
	s = newTestStore(t, &fakeThemes{theme: "mauve"})
	assert.Equal(t, ThemeLight, s.Snapshot().Theme)

	s = newTestStore(t, &fakeThemes{})
	assert.Equal(t, ThemeLight, s.Snapshot().Theme)
	assert.True(t, s.Snapshot().SidebarOpen)
}

func TestToggleThemePersists(t *testing.T) {
	themes := &fakeThemes{theme: ThemeLight}
	s := newTestStore(t, themes)

	s.ToggleTheme()
	assert.Equal(t, ThemeDark, s.Snapshot().Theme)
	assert.Equal(t, ThemeDark, themes.theme)

	s.ToggleTheme()
	assert.Equal(t, ThemeLight, s.Snapshot().Theme)
	assert.Equal(t, ThemeLight, themes.theme)
}

func TestSidebar(t *testing.T) {
	s := newTestStore(t, &fakeThemes{})

	s.ToggleSidebar()
	assert.False(t, s.Snapshot().SidebarOpen)

	s.SetSidebarOpen(true)
	assert.True(t, s.Snapshot().SidebarOpen)
}

func TestCreatePostModal(t *testing.T) {
	s := newTestStore(t, &fakeThemes{})

	s.OpenCreatePostModal()
	assert.True(t, s.Snapshot().CreatePostModalOpen)

	s.CloseCreatePostModal()
	assert.False(t, s.Snapshot().CreatePostModalOpen)
}

func TestImageViewer(t *testing.T) {
	s := newTestStore(t, &fakeThemes{})
	images := []string{"a.jpg", "b.jpg"}

	s.OpenImageViewer(images, 1)

	state := s.Snapshot()
	assert.True(t, state.ImageViewerOpen)
	assert.Equal(t, images, state.ImageViewerImages)
	assert.Equal(t, 1, state.ImageViewerIndex)

	// The viewer keeps its own copy of the image set.
	images[0] = "mutated.jpg"
	assert.Equal(t, "a.jpg", s.Snapshot().ImageViewerImages[0])

	s.SetImageViewerIndex(0)
	assert.Equal(t, 0, s.Snapshot().ImageViewerIndex)

	s.CloseImageViewer()
	state = s.Snapshot()
	assert.False(t, state.ImageViewerOpen)
	assert.Empty(t, state.ImageViewerImages)
	assert.Equal(t, 0, state.ImageViewerIndex)
}

func TestSetIsMobile(t *testing.T) {
	s := newTestStore(t, &fakeThemes{})

	s.SetIsMobile(true)
	assert.True(t, s.Snapshot().IsMobile)
}

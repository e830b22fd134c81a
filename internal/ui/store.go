// internal/ui/store.go
// UI store: view-chrome state (theme, sidebar, modals, image viewer). The
// theme preference is the only persisted field.

package ui

import (
	"log/slog"

	"github.com/imadgeboyega/kiekky-client/internal/store"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeStore persists the theme preference between runs.
type ThemeStore interface {
	Theme() string
	SetTheme(theme string) error
}

// State is the UI store snapshot.
type State struct {
	Theme               string   `json:"theme"`
	SidebarOpen         bool     `json:"sidebarOpen"`
	CreatePostModalOpen bool     `json:"createPostModalOpen"`
	ImageViewerOpen     bool     `json:"imageViewerOpen"`
	ImageViewerImages   []string `json:"imageViewerImages,omitempty"`
	ImageViewerIndex    int      `json:"imageViewerIndex"`
	IsMobile            bool     `json:"isMobile"`
}

// Store owns the UI state.
type Store struct {
	*store.Container[State]

	themes ThemeStore
	logger *slog.Logger
}

// NewStore creates a UI store, restoring the persisted theme when one is
// set.
func NewStore(themes ThemeStore, logger *slog.Logger) *Store {
	theme := themes.Theme()
	if theme != ThemeDark {
		theme = ThemeLight
	}

	return &Store{
		Container: store.New(State{Theme: theme, SidebarOpen: true}),
		themes:    themes,
		logger:    logger.With("store", "ui"),
	}
}

// SetTheme switches the theme and persists the choice.
func (s *Store) SetTheme(theme string) {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	if err := s.themes.SetTheme(theme); err != nil {
		s.logger.Warn("persisting theme failed", "error", err)
	}
	s.Update(func(state State) State {
		state.Theme = theme
		return state
	})
}

// ToggleTheme flips between light and dark.
func (s *Store) ToggleTheme() {
	next := ThemeLight
	if s.Snapshot().Theme == ThemeLight {
		next = ThemeDark
	}
	s.SetTheme(next)
}

// ToggleSidebar flips the sidebar.
func (s *Store) ToggleSidebar() {
	s.Update(func(state State) State {
		state.SidebarOpen = !state.SidebarOpen
		return state
	})
}

// SetSidebarOpen sets the sidebar state explicitly.
func (s *Store) SetSidebarOpen(open bool) {
	s.Update(func(state State) State {
		state.SidebarOpen = open
		return state
	})
}

// OpenCreatePostModal shows the create-post modal.
func (s *Store) OpenCreatePostModal() {
	s.setCreatePostModal(true)
}

// CloseCreatePostModal hides the create-post modal.
func (s *Store) CloseCreatePostModal() {
	s.setCreatePostModal(false)
}

func (s *Store) setCreatePostModal(open bool) {
	s.Update(func(state State) State {
		state.CreatePostModalOpen = open
		return state
	})
}

// OpenImageViewer shows the image viewer on the given image set and index.
func (s *Store) OpenImageViewer(images []string, index int) {
	s.Update(func(state State) State {
		state.ImageViewerOpen = true
		state.ImageViewerImages = append([]string(nil), images...)
		state.ImageViewerIndex = index
		return state
	})
}

// CloseImageViewer hides and resets the image viewer.
func (s *Store) CloseImageViewer() {
	s.Update(func(state State) State {
		state.ImageViewerOpen = false
		state.ImageViewerImages = nil
		state.ImageViewerIndex = 0
		return state
	})
}

// SetImageViewerIndex moves the image viewer to another image.
func (s *Store) SetImageViewerIndex(index int) {
	s.Update(func(state State) State {
		state.ImageViewerIndex = index
		return state
	})
}

// SetIsMobile records the viewport class.
func (s *Store) SetIsMobile(isMobile bool) {
	s.Update(func(state State) State {
		state.IsMobile = isMobile
		return state
	})
}

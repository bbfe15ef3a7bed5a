// Package session manages persisted browser profiles, one per platform.
//
// A profile directory holds the cookies and local storage Chrome saves
// between runs, so the user only has to log in to each platform once. The
// contents are opaque to this program; we only hand the path to the browser.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/claimsift/claimsift/internal/config"
	"github.com/claimsift/claimsift/internal/types"
)

// Store hands out per-platform profile directories under a single root.
type Store struct {
	root string
}

// NewStore creates a store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// DefaultRoot returns the default sessions root under the config directory.
func DefaultRoot() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions"), nil
}

// Root returns the sessions root directory.
func (s *Store) Root() string { return s.root }

// ProfileDir returns the profile directory for a platform, creating it on
// first use.
func (s *Store) ProfileDir(p types.Platform) (string, error) {
	if !p.BrowserBacked() {
		return "", fmt.Errorf("platform %s does not use browser sessions", p)
	}

	dir := filepath.Join(s.root, string(p))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create profile dir for %s: %w", p, err)
	}
	return dir, nil
}

// HasSession reports whether a profile with saved state exists for the
// platform. A freshly created empty directory does not count.
func (s *Store) HasSession(p types.Platform) bool {
	entries, err := os.ReadDir(filepath.Join(s.root, string(p)))
	return err == nil && len(entries) > 0
}

// Clear deletes the platform's saved profile, forcing a fresh login on the
// next browser-backed scrape.
func (s *Store) Clear(p types.Platform) error {
	if !p.BrowserBacked() {
		return fmt.Errorf("platform %s does not use browser sessions", p)
	}
	return os.RemoveAll(filepath.Join(s.root, string(p)))
}

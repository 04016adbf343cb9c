package httpinfra

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	cookiejar "github.com/juju/persistent-cookiejar"
	"golang.org/x/net/publicsuffix"
)

// CookieFileName is the file inside the state directory holding the
// persisted session cookies.
const CookieFileName = "cookies.json"

// ErrCookieStoreDetached is returned by Save before Load attached the store
// to its file.
var ErrCookieStoreDetached = errors.New("cookie store is not attached to a file")

// CookieStore keeps the backend's session cookie across CLI invocations, the
// way a browser keeps it across page loads. Cookie attributes survive the
// round trip; session cookies and access tokens are never written.
type CookieStore struct {
	mu       sync.RWMutex
	jar      *cookiejar.Jar
	path     string
	attached bool
}

func NewCookieStore(path string) (*CookieStore, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
		NoPersist:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &CookieStore{jar: jar, path: path}, nil
}

// Jar returns the jar to install on the HTTP client. It stays valid across
// Load.
func (s *CookieStore) Jar() http.CookieJar {
	return s
}

// Path returns the backing file.
func (s *CookieStore) Path() string {
	return s.path
}

func (s *CookieStore) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.jar.SetCookies(u, cookies)
}

func (s *CookieStore) Cookies(u *url.URL) []*http.Cookie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jar.Cookies(u)
}

// Load attaches the store to its file and restores unexpired cookies. A
// missing file is not an error. An unreadable file is discarded so the next
// Save starts clean, and the read error is returned.
func (s *CookieStore) Load() error {
	jar, loadErr := s.open()
	if loadErr != nil {
		if err := s.removeFiles(); err != nil {
			return err
		}
		var err error
		if jar, err = s.open(); err != nil {
			return fmt.Errorf("failed to open cookie file: %w", err)
		}
	}

	s.mu.Lock()
	s.jar = jar
	s.attached = true
	s.mu.Unlock()

	if loadErr != nil {
		return fmt.Errorf("failed to read cookie file %s: %w", s.path, loadErr)
	}
	return nil
}

// Save merges the current cookies into the file with 0600 permissions and
// removes the file once no cookie is left.
func (s *CookieStore) Save() error {
	s.mu.RLock()
	jar, attached := s.jar, s.attached
	s.mu.RUnlock()
	if !attached {
		return ErrCookieStoreDetached
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := jar.Save(); err != nil {
		return fmt.Errorf("failed to write cookie file: %w", err)
	}
	if len(jar.AllCookies()) == 0 {
		return s.removeFiles()
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict cookie file: %w", err)
	}
	return nil
}

func (s *CookieStore) open() (*cookiejar.Jar, error) {
	return cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
		Filename:         s.path,
	})
}

func (s *CookieStore) removeFiles() error {
	for _, p := range []string{s.path, s.path + ".lock"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove cookie file: %w", err)
		}
	}
	return nil
}

var _ http.CookieJar = (*CookieStore)(nil)

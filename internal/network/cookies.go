package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
)

type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CookieStore persists the API session cookies as a JSON array.
type CookieStore struct {
	path string
}

func NewCookieStore(path string) *CookieStore {
	return &CookieStore{path: path}
}

func (s *CookieStore) Path() string {
	return s.path
}

// Load returns no cookies when the file is missing or empty.
func (s *CookieStore) Load() ([]*fhttp.Cookie, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var saved []savedCookie
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	cookies := make([]*fhttp.Cookie, 0, len(saved))
	for _, item := range saved {
		if item.Name == "" {
			continue
		}
		cookies = append(cookies, &fhttp.Cookie{Name: item.Name, Value: item.Value, Path: "/"})
	}
	return cookies, nil
}

func (s *CookieStore) Save(cookies []*fhttp.Cookie) error {
	saved := make([]savedCookie, 0, len(cookies))
	for _, cookie := range cookies {
		saved = append(saved, savedCookie{Name: cookie.Name, Value: cookie.Value})
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, append(data, '\n'), 0o600)
}

func (s *CookieStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

package storage

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Config tells the backend where to keep its data. Two schemes are
// supported, `memory://` and `file://<directory>`.
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}

	return NewConfigFromURL(u)
}

func NewConfigFromURL(u *url.URL) (*Config, error) {
	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "memory":
		return &Config{Scheme: scheme}, nil
	case "file":
		path := u.Path
		if len(u.Host) > 0 {
			// `file://db/path` is taken as a relative path
			path = filepath.Join(u.Host, u.Path)
		}
		if len(path) < 1 {
			return nil, fmt.Errorf("directory path is missing")
		}
		return &Config{Scheme: scheme, Path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported storage scheme, '%s'", u.Scheme)
	}
}

func (c *Config) String() string {
	u := url.URL{Scheme: c.Scheme, Path: c.Path}
	return u.String()
}

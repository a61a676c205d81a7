// Package giturl extracts structural fields from git repository URLs.
//
// Two shapes are recognized:
//
//	scheme://[user@]host[:port]/path/project.git
//	[user@]host:path/project.git  (scp style)
//
// Scheme, user, port and path are each independently optional. Domain and
// project are required; a URL without both is not recognized.
package giturl

import (
	"fmt"
	"strings"
)

// URL is a parsed repository URL.
type URL struct {
	Address  string // full clonable address as matched
	Protocol string // scheme without "://", empty for scp-style URLs
	User     string
	Domain   string
	Port     string
	Path     string // directory part between host and project, no slashes at either end
	Project  string // filename stem before .git
}

// Key returns the cache key addressing the URL's hosting domain.
func (u URL) Key() string {
	return "@" + u.Domain
}

// Parse extracts the repository URL from the end of s. Callers may pass a
// whole command line; the last token that parses as a repository URL wins.
// It fails when no token yields both a domain and a project name, since
// nothing downstream can proceed without them.
func Parse(s string) (URL, error) {
	fields := strings.Fields(s)
	for i := len(fields) - 1; i >= 0; i-- {
		if u, ok := parseToken(fields[i]); ok {
			return u, nil
		}
	}
	return URL{}, fmt.Errorf("no repository URL with a domain and project found in %q", s)
}

// parseToken parses a single candidate token. A token is recognized only if
// it ends in .git and yields a non-empty domain and project.
func parseToken(tok string) (URL, bool) {
	if !strings.HasSuffix(tok, ".git") {
		return URL{}, false
	}

	u := URL{Address: tok}
	rest := tok

	// Optional scheme
	if idx := strings.Index(rest, "://"); idx >= 0 {
		u.Protocol = rest[:idx]
		rest = rest[idx+len("://"):]
		return parseSchemeForm(u, rest)
	}

	// scp style: [user@]host:path/project.git
	colon := strings.Index(rest, ":")
	if colon < 0 {
		return URL{}, false
	}
	authority, path := rest[:colon], rest[colon+1:]
	u.User, u.Domain = splitUser(authority)
	if !fillPath(&u, path) {
		return URL{}, false
	}
	return u, u.Domain != "" && u.Project != ""
}

func parseSchemeForm(u URL, rest string) (URL, bool) {
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return URL{}, false
	}
	authority, path := rest[:slash], rest[slash+1:]

	u.User, authority = splitUser(authority)

	// Optional port
	if colon := strings.Index(authority, ":"); colon >= 0 {
		port := authority[colon+1:]
		if !isDigits(port) {
			return URL{}, false
		}
		u.Port = port
		authority = authority[:colon]
	}
	u.Domain = authority

	if !fillPath(&u, path) {
		return URL{}, false
	}
	return u, u.Domain != "" && u.Project != ""
}

// fillPath splits "group/sub/project.git" into Path and Project.
func fillPath(u *URL, path string) bool {
	path = strings.Trim(path, "/")
	project := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		u.Path = path[:idx]
		project = path[idx+1:]
	}
	project = strings.TrimSuffix(project, ".git")
	if project == "" {
		return false
	}
	u.Project = project
	return true
}

// splitUser splits an optional "user@" prefix off an authority.
func splitUser(authority string) (user, rest string) {
	if idx := strings.Index(authority, "@"); idx >= 0 {
		return authority[:idx], authority[idx+1:]
	}
	return "", authority
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package fetch

import (
	"fmt"
	"strings"
)

// Providers understood by ParseRef.
const (
	ProviderGitHub    = "github"
	ProviderGitLab    = "gitlab"
	ProviderBitbucket = "bitbucket"
	ProviderDirect    = "direct"
)

// DefaultRef is the branch fetched when a locator does not name one.
const DefaultRef = "master"

// Ref is a parsed repository locator.
type Ref struct {
	Provider string
	Origin   string // custom host for hosted providers, e.g. "gitlab.example.com"
	Owner    string
	Name     string
	Ref      string
	URL      string // direct locators only
	Clone    bool   // fetch with git instead of an archive download
}

// String renders the locator back in its canonical form.
func (r Ref) String() string {
	if r.Provider == ProviderDirect {
		if r.Ref != "" {
			return fmt.Sprintf("%s:%s#%s", r.Provider, r.URL, r.Ref)
		}
		return r.Provider + ":" + r.URL
	}
	origin := ""
	if r.Origin != "" {
		origin = r.Origin + ":"
	}
	return fmt.Sprintf("%s:%s%s/%s#%s", r.Provider, origin, r.Owner, r.Name, r.Ref)
}

// ParseRef parses "provider:[origin:]owner/name[#ref]" or "direct:url[#ref]".
// A locator without a provider is treated as GitHub.
func ParseRef(s string) (Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}, fmt.Errorf("empty repository locator")
	}

	if rest, ok := strings.CutPrefix(s, ProviderDirect+":"); ok {
		url, ref, _ := strings.Cut(rest, "#")
		if url == "" {
			return Ref{}, fmt.Errorf("repository locator %q: missing URL", s)
		}
		return Ref{
			Provider: ProviderDirect,
			URL:      url,
			Ref:      ref,
			Clone:    strings.HasSuffix(url, ".git"),
		}, nil
	}

	r := Ref{Provider: ProviderGitHub, Ref: DefaultRef}
	body := s
	if provider, rest, ok := strings.Cut(s, ":"); ok {
		switch provider {
		case ProviderGitHub, ProviderGitLab, ProviderBitbucket:
		default:
			return Ref{}, fmt.Errorf("repository locator %q: unknown provider %q", s, provider)
		}
		r.Provider = provider
		body = rest
		if origin, rest, ok := strings.Cut(body, ":"); ok {
			r.Origin = origin
			body = rest
		}
	}

	if path, ref, ok := strings.Cut(body, "#"); ok {
		if ref == "" {
			return Ref{}, fmt.Errorf("repository locator %q: empty ref after '#'", s)
		}
		r.Ref = ref
		body = path
	}

	owner, name, ok := strings.Cut(body, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Ref{}, fmt.Errorf("repository locator %q: expected owner/name", s)
	}
	r.Owner = owner
	r.Name = name
	return r, nil
}

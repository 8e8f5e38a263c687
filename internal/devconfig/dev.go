package devconfig

import (
	"fmt"
	"strings"
	"time"
)

// Section and key names of the persisted dev settings.
const (
	SectionDev = "DEV"

	KeyBaseURL  = "confluenceBaseUrl"
	KeyUsername = "username"
	KeyPassword = "password"
)

// Defaults used when the user accepts the suggested values, and by templates
// when no DEV section has been written yet.
const (
	DefaultBaseURL  = "http://localhost:1990/confluence"
	DefaultUsername = "admin"
	DefaultPassword = "admin"
)

// backupLayout is ISO-8601 truncated to whole seconds.
const backupLayout = "2006-01-02T15:04:05Z"

// Dev holds the Confluence development connection settings.
type Dev struct {
	BaseURL  string
	Username string
	Password string
}

// DefaultDev returns the documented placeholder settings.
func DefaultDev() Dev {
	return Dev{BaseURL: DefaultBaseURL, Username: DefaultUsername, Password: DefaultPassword}
}

var escaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `#`, `\#`)

// Escape makes a value safe to store as an INI value. Backslashes and the
// comment characters ; and # are prefixed with a backslash. A leading quote
// or space is escaped too, and trailing whitespace is closed with a lone
// backslash, so the INI reader neither strips quotes nor trims the value.
func Escape(v string) string {
	e := escaper.Replace(v)
	if e == "" {
		return e
	}
	if strings.ContainsRune(`"' `+"\t", rune(e[0])) {
		e = `\` + e
	}
	if last := e[len(e)-1]; last == ' ' || last == '\t' {
		e += `\`
	}
	return e
}

// Unescape reverses Escape: a backslash takes the next byte literally and a
// lone trailing backslash is dropped.
func Unescape(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' {
			i++
			if i == len(v) {
				break
			}
		}
		b.WriteByte(v[i])
	}
	return b.String()
}

// ReadDev returns the DEV section, or nil when the store has none.
func ReadDev(s Store) (*Dev, error) {
	entries, ok := s.Section(SectionDev)
	if !ok {
		return nil, nil
	}

	var d Dev
	for _, e := range entries {
		switch e.Key {
		case KeyBaseURL:
			d.BaseURL = Unescape(e.Value)
		case KeyUsername:
			d.Username = Unescape(e.Value)
		case KeyPassword:
			d.Password = Unescape(e.Value)
		}
	}
	return &d, nil
}

// BackupName returns the section name a DEV section displaced at now is
// stored under, skipping names already taken.
func BackupName(s Store, now time.Time) string {
	base := SectionDev + "_" + now.UTC().Format(backupLayout)
	name := base
	for i := 2; s.HasSection(name); i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	return name
}

// WriteDev stores d as the DEV section. An existing DEV section is first
// copied verbatim to a timestamped backup section whose name is returned
// (empty when there was nothing to back up). The store is not saved.
func WriteDev(s Store, d Dev, now time.Time) (string, error) {
	var backup string
	if prev, ok := s.Section(SectionDev); ok {
		backup = BackupName(s, now)
		if err := s.WriteSection(backup, prev); err != nil {
			return "", fmt.Errorf("backing up %s: %w", SectionDev, err)
		}
	}

	entries := []Entry{
		{Key: KeyBaseURL, Value: Escape(d.BaseURL)},
		{Key: KeyUsername, Value: Escape(d.Username)},
		{Key: KeyPassword, Value: Escape(d.Password)},
	}
	if err := s.WriteSection(SectionDev, entries); err != nil {
		return "", err
	}
	return backup, nil
}

package devconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spark-tools/viewport/internal/platform"
	"gopkg.in/ini.v1"
)

// FilePerm is the mode of the store file. It holds a password.
const FilePerm os.FileMode = 0600

// Entry is one key/value pair of a section, in file order.
type Entry struct {
	Key   string
	Value string
}

// Store is a sectioned key/value configuration file.
type Store interface {
	HasSection(name string) bool
	Section(name string) ([]Entry, bool)
	WriteSection(name string, entries []Entry) error
	Save() error
}

// File is a Store backed by an INI file on disk.
type File struct {
	path string
	cfg  *ini.File
}

var loadOptions = ini.LoadOptions{
	// Missing file means an empty store.
	Loose: true,
	// Values are escaped by this package; go-ini must not strip or quote
	// comment characters on its own.
	IgnoreInlineComment: true,
	// An escaped value may end in a backslash.
	IgnoreContinuation: true,
}

// Open loads the INI file at path. A missing file yields an empty store that
// is created on Save.
func Open(path string) (*File, error) {
	cfg, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return &File{path: path, cfg: cfg}, nil
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// HasSection reports whether a section exists.
func (f *File) HasSection(name string) bool {
	return f.cfg.HasSection(name)
}

// Section returns the raw entries of a section.
func (f *File) Section(name string) ([]Entry, bool) {
	if !f.cfg.HasSection(name) {
		return nil, false
	}
	keys := f.cfg.Section(name).Keys()
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: k.Name(), Value: k.Value()})
	}
	return entries, true
}

// WriteSection replaces a section with the given entries.
func (f *File) WriteSection(name string, entries []Entry) error {
	f.cfg.DeleteSection(name)
	sec, err := f.cfg.NewSection(name)
	if err != nil {
		return fmt.Errorf("creating section %s: %w", name, err)
	}
	for _, e := range entries {
		if _, err := sec.NewKey(e.Key, e.Value); err != nil {
			return fmt.Errorf("writing %s.%s: %w", name, e.Key, err)
		}
	}
	return nil
}

// Sections lists the named sections in file order.
func (f *File) Sections() []string {
	var names []string
	for _, name := range f.cfg.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Save writes the store to disk with owner-only permissions.
func (f *File) Save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.path, err)
	}

	out, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePerm)
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.path, err)
	}
	if _, err := f.cfg.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", f.path, err)
	}

	// An existing file keeps its old mode through O_TRUNC.
	if err := platform.Restrict(f.path, FilePerm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", f.path, err)
	}
	return nil
}

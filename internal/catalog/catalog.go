package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/initt-labs/initt/internal/errs"
	"github.com/initt-labs/initt/internal/manifest"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Source is one place templates are looked up, rooted at the directory
// that contains the template directories.
type Source struct {
	Name string
	FS   fs.FS
}

// DirSource returns a Source reading templates from dir on disk. A
// directory that does not exist simply contributes no templates.
func DirSource(name, dir string) Source {
	return Source{Name: name, FS: os.DirFS(dir)}
}

// Template is a loaded, validated template.
type Template struct {
	ID       string
	Source   string
	Manifest *manifest.TemplateManifest
	// Files is rooted at the template's files/ directory, or nil when the
	// template only creates directories.
	Files fs.FS
}

// DisplayName returns the manifest display name, or the title-cased id.
func (t *Template) DisplayName() string {
	if t.Manifest.DisplayName != "" {
		return t.Manifest.DisplayName
	}
	return cases.Title(language.English).String(t.ID)
}

// Summary is the listing view of a template.
type Summary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Source      string `json:"source"`
	Variables   int    `json:"variables"`
}

// Catalog resolves template ids against its sources.
type Catalog struct {
	sources []Source
	logger  zerolog.Logger
}

// New returns a Catalog over sources, highest precedence first.
func New(logger zerolog.Logger, sources ...Source) *Catalog {
	return &Catalog{sources: sources, logger: logger}
}

// IDs returns every available template id, sorted.
func (c *Catalog) IDs() ([]string, error) {
	seen := make(map[string]bool)
	var ids []string

	for _, src := range c.sources {
		entries, err := fs.ReadDir(src.FS, ".")
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				c.logger.Debug().Str("source", src.Name).Msg("template source not found, skipping")
				continue
			}
			return nil, errs.Wrap(errs.KindFilesystem, "catalog", src.Name, err)
		}

		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			id := e.Name()
			if _, err := fs.Stat(src.FS, path.Join(id, manifest.FileName)); err != nil {
				c.logger.Debug().Str("source", src.Name).Str("dir", id).Msg("no template.yaml, skipping")
				continue
			}
			if seen[id] {
				c.logger.Debug().Str("source", src.Name).Str("template", id).Msg("shadowed by an earlier source")
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}

	sort.Strings(ids)
	return ids, nil
}

// List loads every available template and returns their summaries sorted
// by id. A malformed manifest fails the whole listing.
func (c *Catalog) List() ([]Summary, error) {
	ids, err := c.IDs()
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(ids))
	for _, id := range ids {
		t, err := c.Get(id)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, Summary{
			ID:          t.ID,
			DisplayName: t.DisplayName(),
			Description: t.Manifest.Description,
			Version:     t.Manifest.Version,
			Source:      t.Source,
			Variables:   len(t.Manifest.Variables),
		})
	}
	return summaries, nil
}

// Get returns the template with the given id from the first source that
// has it. It fails with TemplateNotFound when no source does.
func (c *Catalog) Get(id string) (*Template, error) {
	if id == "" || id == "." || !fs.ValidPath(id) || path.Base(id) != id {
		return nil, errs.New(errs.KindTemplateNotFound, "catalog", "template %q not found", id)
	}

	for _, src := range c.sources {
		if _, err := fs.Stat(src.FS, path.Join(id, manifest.FileName)); err != nil {
			continue
		}
		sub, err := fs.Sub(src.FS, id)
		if err != nil {
			return nil, errs.Wrap(errs.KindFilesystem, "catalog", id, err)
		}
		t, err := Load(sub, id, src.Name)
		if err != nil {
			return nil, err
		}
		c.logger.Debug().Str("template", id).Str("source", src.Name).Msg("template resolved")
		return t, nil
	}

	return nil, errs.New(errs.KindTemplateNotFound, "catalog", "template %q not found", id)
}

// Load reads and validates the template whose directory is the root of tfs.
func Load(tfs fs.FS, id, source string) (*Template, error) {
	where := fmt.Sprintf("%s:%s/%s", source, id, manifest.FileName)

	result, err := manifest.ValidateFS(tfs, manifest.FileName)
	if err != nil {
		return nil, errs.Wrap(errs.KindValidation, "catalog", where, err)
	}
	if !result.Valid {
		return nil, errs.New(errs.KindValidation, "catalog", "invalid manifest %s: %s", where, result.Summary())
	}

	m, err := manifest.ParseFS(tfs, manifest.FileName)
	if err != nil {
		return nil, errs.Wrap(errs.KindValidation, "catalog", where, err)
	}
	if m.Name != id {
		return nil, errs.New(errs.KindValidation, "catalog",
			"manifest %s declares name %q, expected %q", where, m.Name, id)
	}

	t := &Template{ID: id, Source: source, Manifest: m}
	if info, err := fs.Stat(tfs, manifest.FilesDir); err == nil && info.IsDir() {
		files, err := fs.Sub(tfs, manifest.FilesDir)
		if err != nil {
			return nil, errs.Wrap(errs.KindFilesystem, "catalog", where, err)
		}
		t.Files = files
	}
	return t, nil
}

// LoadDir loads a single template directory from disk, e.g. for linting.
// The directory name is the template id.
func LoadDir(dir string) (*Template, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.New(errs.KindTemplateNotFound, "catalog", "template directory %s not found", dir)
		}
		return nil, errs.Wrap(errs.KindFilesystem, "catalog", dir, err)
	}
	if !info.IsDir() {
		return nil, errs.New(errs.KindValidation, "catalog", "%s is not a directory", dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errs.Wrap(errs.KindFilesystem, "catalog", dir, err)
	}
	return Load(os.DirFS(abs), filepath.Base(abs), "dir")
}

package mail

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
)

// ErrDraftNotFound is returned when no draft's subject matches. Callers
// treat it as fatal to the batch: with no template there is nothing to
// render.
var ErrDraftNotFound = errors.New("draft not found")

// DraftSource locates the message template whose subject exactly matches.
type DraftSource interface {
	FindBySubject(ctx context.Context, subject string) (models.Template, []Attachment, error)
}

// draftFile is the on-disk yaml form of a draft.
type draftFile struct {
	Subject     string   `yaml:"subject"`
	Text        string   `yaml:"text"`
	HTML        string   `yaml:"html"`
	Attachments []string `yaml:"attachments"`
}

// FileDrafts reads drafts from a directory of yaml files.
type FileDrafts struct {
	Dir string
}

// FindBySubject scans every yaml draft in the directory for an exact subject
// match and loads the matching draft's attachments from disk.
func (d *FileDrafts) FindBySubject(_ context.Context, subject string) (models.Template, []Attachment, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return models.Template{}, nil, fmt.Errorf("reading drafts dir %s: %w", d.Dir, err)
	}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(d.Dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return models.Template{}, nil, fmt.Errorf("reading draft %s: %w", path, err)
		}
		var df draftFile
		if err := yaml.Unmarshal(data, &df); err != nil {
			return models.Template{}, nil, fmt.Errorf("parsing draft %s: %w", path, err)
		}
		if df.Subject != subject {
			continue
		}
		atts, err := d.loadAttachments(df.Attachments)
		if err != nil {
			return models.Template{}, nil, err
		}
		return models.Template{Subject: df.Subject, Text: df.Text, HTML: df.HTML}, atts, nil
	}
	return models.Template{}, nil, fmt.Errorf("%w: no draft with subject %q in %s", ErrDraftNotFound, subject, d.Dir)
}

// loadAttachments reads each attachment file, resolving relative paths
// against the drafts directory.
func (d *FileDrafts) loadAttachments(paths []string) ([]Attachment, error) {
	var atts []Attachment
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(d.Dir, p)
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading attachment %s: %w", p, err)
		}
		ct := mime.TypeByExtension(filepath.Ext(p))
		if ct == "" {
			ct = "application/octet-stream"
		}
		atts = append(atts, Attachment{
			Filename:    filepath.Base(p),
			ContentType: ct,
			Content:     content,
		})
	}
	return atts, nil
}

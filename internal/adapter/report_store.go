package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

// ReportStore persists and retrieves analysis reports.
type ReportStore interface {
	// Save writes env as a text report and a YAML document below dir and
	// returns both paths.
	Save(dir m.Path, env m.Envelope) ([]m.Path, error)
	// Load reads every YAML report below dir, oldest first.
	Load(dir m.Path) ([]m.Envelope, error)
}

type reportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) Save(dir m.Path, env m.Envelope) ([]m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	base := reportBaseName(env)

	var text bytes.Buffer
	if err := WriteText(&text, env); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	data, err := yaml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	textPath := filepath.Join(string(dir), base+".txt")
	yamlPath := filepath.Join(string(dir), base+".yaml")

	if err := os.WriteFile(textPath, text.Bytes(), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	if err := os.WriteFile(yamlPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return []m.Path{m.Path(textPath), m.Path(yamlPath)}, nil
}

func (rs *reportStore) Load(dir m.Path) ([]m.Envelope, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []m.Envelope{}, nil
		}

		return nil, fmt.Errorf("failed to read reports directory: %w", err)
	}

	envelopes := []m.Envelope{}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		path := filepath.Join(string(dir), entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read report %s: %w", path, err)
		}

		var env m.Envelope
		if err := yaml.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("failed to decode report %s: %w", path, err)
		}

		envelopes = append(envelopes, env)
	}

	slices.SortStableFunc(envelopes, func(a, b m.Envelope) int {
		return a.GeneratedAt.Compare(b.GeneratedAt)
	})

	return envelopes, nil
}

func reportBaseName(env m.Envelope) string {
	id := env.ID
	if i := strings.IndexByte(id, '-'); i > 0 {
		id = id[:i]
	}

	name := fmt.Sprintf("%s-%s", env.Analyzer, env.GeneratedAt.Format("20060102-150405"))
	if id != "" {
		name += "-" + id
	}

	return name
}

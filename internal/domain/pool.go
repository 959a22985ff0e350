package domain

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/codeaudit/internal/adapter"
	m "github.com/mouse-blink/codeaudit/internal/model"
	"github.com/mouse-blink/codeaudit/internal/scanner"
)

// sourceResult holds the outcome of processing a single source file.
type sourceResult struct {
	file ScannedFile
	ok   bool
}

// scanSources reads and scans sources with up to threads workers. Files that
// cannot be read are skipped and reported, the rest keep their input order.
func (w *workflow) scanSources(
	ctx context.Context,
	sources []m.SourceFile,
	threads int,
	settings Settings,
) ([]ScannedFile, []m.SkippedFile, error) {
	if threads <= 0 {
		threads = 1
	}

	opts, variant := settings.scanOptions()
	results := make([]sourceResult, len(sources))

	var (
		mu      sync.Mutex
		skipped []m.SkippedFile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, src := range sources {
		i, src := i, src
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			content, err := w.fs.ReadFile(src.Path)
			if err != nil {
				err = fmt.Errorf("%w: %s: %w", m.ErrUnreadableFile, src.Rel, err)
				w.log.Warn().Err(err).Msg("skipping file")

				mu.Lock()
				skipped = append(skipped, m.SkippedFile{Path: src.Rel, Reason: err.Error()})
				mu.Unlock()

				return nil
			}

			src.Hash = adapter.HashBytes(content)
			file := NewScannedFile(src, w.scan(content, src.Kind, variant, opts))
			file.text = string(content)
			results[i] = sourceResult{file: file, ok: true}

			w.log.Debug().Str("file", string(src.Rel)).Int("lines", len(file.Result.Lines)).Msg("scanned")

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	files := make([]ScannedFile, 0, len(sources))

	for _, r := range results {
		if r.ok {
			files = append(files, r.file)
		}
	}

	w.log.Debug().Int("scanned", len(files)).Int("skipped", len(skipped)).Msg("scan finished")

	return files, sortSkipped(skipped), nil
}

func (w *workflow) scan(content []byte, kind m.FileKind, variant string, opts []scanner.Option) *scanner.Result {
	if w.cache != nil {
		return w.cache.Scan(content, kind, variant, opts...)
	}

	return scanner.Scan(string(content), kind, opts...)
}

func sortSkipped(skipped []m.SkippedFile) []m.SkippedFile {
	slices.SortFunc(skipped, func(a, b m.SkippedFile) int {
		return cmp.Compare(a.Path, b.Path)
	})

	return skipped
}

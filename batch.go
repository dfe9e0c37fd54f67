package chapterize

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/chapterize/model"
)

// Result is the outcome of parsing one file in a batch.
type Result struct {
	Path     string
	Document *model.Document
	Err      error
}

// Batch configures ParseMany. The zero value parses with runtime.NumCPU()
// workers, no logging and no lexicon application.
type Batch struct {
	// Logger receives parse events. Nil means silent.
	Logger *zap.Logger
	// ApplyLexicons applies each book's pronunciation lexicons.
	ApplyLexicons bool
	// Concurrency caps the number of files parsed at once. Values below one
	// mean runtime.NumCPU().
	Concurrency int
}

// ParseMany parses multiple EPUB files concurrently with the default Batch.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
//	defer cancel()
//
//	results, err := chapterize.ParseMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range results {
//		if r.Err != nil {
//			fmt.Printf("%s: %v\n", r.Path, r.Err)
//			continue
//		}
//		fmt.Printf("%s: %d chapters\n", r.Path, r.Document.ChapterCount())
//	}
func ParseMany(ctx context.Context, paths ...string) ([]Result, error) {
	return Batch{}.ParseMany(ctx, paths...)
}

// ParseMany parses multiple EPUB files concurrently.
//
// Results are returned in the same order as the input paths. A file that
// fails to parse records its error in its Result and does not stop the
// others. Cancellation is checked before each file starts; files that never
// started carry the context error, which is also returned.
func (b Batch) ParseMany(ctx context.Context, paths ...string) ([]Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	limit := b.Concurrency
	if limit < 1 {
		limit = runtime.NumCPU()
	}

	var g errgroup.Group
	g.SetLimit(limit) // Limit concurrent operations

	results := make([]Result, len(paths))

	for i, path := range paths {
		results[i].Path = path
		g.Go(func() error {
			// Check for cancellation
			select {
			case <-ctx.Done():
				results[i].Err = ctx.Err()
				return ctx.Err()
			default:
			}

			results[i].Document, results[i].Err = b.extractor(path).Document()
			return nil
		})
	}

	// Only cancellation is reported here; parse failures live in results.
	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, nil
}

func (b Batch) extractor(path string) *Extractor {
	e := Open(path)
	if b.Logger != nil {
		e = e.WithLogger(b.Logger)
	}
	if b.ApplyLexicons {
		e = e.ApplyLexicons()
	}
	return e
}

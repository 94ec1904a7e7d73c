// Package ioingest implements lifecycle.Ingester. It walks the corpus,
// parses metadata files concurrently and applies records to the store
// from a single writer, in corpus order.
package ioingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/gnames/gutendb/pkg/config"
	"github.com/gnames/gutendb/pkg/errcode"
	"github.com/gnames/gutendb/pkg/lifecycle"
	"golang.org/x/sync/errgroup"
)

type ingester struct {
	cfg   *config.Config
	cache lifecycle.Cache
	store lifecycle.Store
}

// item is one sub-directory of the corpus.
type item struct {
	idx  int
	name string
	id   int
	dir  string
	err  error
}

// parsed is an item after the cache or parser handled it.
type parsed struct {
	item
	rec catalog.Record
}

// New creates an Ingester.
func New(
	cfg *config.Config,
	cache lifecycle.Cache,
	st lifecycle.Store,
) lifecycle.Ingester {
	return &ingester{cfg: cfg, cache: cache, store: st}
}

// Ingest processes all items of the corpus. Only an unreadable corpus
// root, a failure to clear the store or cache, or cancellation stop the
// run. The report is returned in every case except the first.
func (in *ingester) Ingest(ctx context.Context) (*catalog.Report, error) {
	startTime := time.Now()
	root := in.cfg.Ingest.CorpusDir

	items, err := listItems(root)
	if err != nil {
		return nil, err
	}
	slog.Info("Starting ingestion", "corpus", root, "items", len(items))
	gn.Info("Found <em>%s</em> items in %s",
		humanize.Comma(int64(len(items))), root)

	if err = in.prepare(ctx); err != nil {
		return nil, err
	}

	hits := in.cache.Hits()
	report := &catalog.Report{}
	err = in.run(ctx, items, report)
	report.CacheHits = in.cache.Hits() - hits
	slices.SortFunc(report.Failures, compareFailures)

	dur := time.Since(startTime)
	slog.Info("Ingestion complete",
		"processed", report.Processed,
		"succeeded", report.Succeeded,
		"failed", len(report.Failures),
		"cache_hits", report.CacheHits,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)

	if err != nil {
		if errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return report, CancelledError(err)
		}
		return report, err
	}

	gn.Info(`Ingestion complete
Books succeeded: %s, failed %s, processed %s.
Records from cache: %s.
Elapsed time: <em>%s</em>`,
		humanize.Comma(int64(report.Succeeded)),
		humanize.Comma(int64(len(report.Failures))),
		humanize.Comma(int64(report.Processed)),
		humanize.Comma(int64(report.CacheHits)),
		gnfmt.TimeString(dur.Seconds()),
	)
	return report, nil
}

func (in *ingester) prepare(ctx context.Context) error {
	if in.cfg.Ingest.ClearCache {
		slog.Info("Removing cached records")
		if err := in.cache.Clear(); err != nil {
			return err
		}
	}
	if in.cfg.Ingest.Clear {
		slog.Info("Removing all data from the store")
		if err := in.store.Clear(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (in *ingester) run(
	ctx context.Context,
	items []item,
	report *catalog.Report,
) error {
	chIn := make(chan item)
	chOut := make(chan parsed)

	g, gctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range max(in.cfg.JobsNumber, 1) {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return in.parseWorker(gctx, chIn, chOut)
		})
	}

	go func() {
		wg.Wait()
		close(chOut)
	}()

	g.Go(func() error {
		defer close(chIn)
		for _, v := range items {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case chIn <- v:
			}
		}
		return nil
	})

	g.Go(func() error {
		return in.write(gctx, len(items), chOut, report)
	})

	return g.Wait()
}

func (in *ingester) parseWorker(
	ctx context.Context,
	chIn <-chan item,
	chOut chan<- parsed,
) error {
	for it := range chIn {
		res := parsed{item: it}
		if it.err == nil {
			res.rec, res.err = in.parse(it)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- res:
		}
	}
	return nil
}

func (in *ingester) parse(it item) (catalog.Record, error) {
	path, err := graphFile(it.dir, it.id)
	if err != nil {
		return catalog.Record{}, err
	}
	return in.cache.GetOrParse(it.id, path)
}

// write applies parsed items in corpus order. Results that arrive
// early wait in pending until their turn.
func (in *ingester) write(
	ctx context.Context,
	total int,
	chOut <-chan parsed,
	report *catalog.Report,
) error {
	bar := pb.Full.Start(total)
	bar.Set("prefix", "Ingesting books: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	pending := make(map[int]parsed)
	var next int
	for res := range chOut {
		pending[res.idx] = res
		for {
			cur, ok := pending[next]
			if !ok {
				break
			}
			// cancellation is checked between items
			if err := ctx.Err(); err != nil {
				return err
			}
			delete(pending, next)
			next++

			in.apply(ctx, cur, report)
			bar.Increment()
		}
	}
	return nil
}

func (in *ingester) apply(ctx context.Context, res parsed, report *catalog.Report) {
	report.Processed++

	err := res.err
	if err == nil {
		err = in.store.Apply(ctx, res.rec)
	}
	if err == nil {
		report.Succeeded++
		return
	}

	f := catalog.Failure{
		Item:   res.name,
		ID:     res.id,
		Kind:   failureKind(err),
		Reason: err.Error(),
	}
	slog.Warn("Cannot ingest item",
		"item", f.Item, "kind", f.Kind, "error", err)
	report.Failures = append(report.Failures, f)
}

// listItems returns sub-directories of the corpus root. Items with
// integer names come first in numeric order, the rest follow by name.
func listItems(root string) ([]item, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, CorpusError(root, err)
	}

	var res []item
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		it := item{name: e.Name(), dir: filepath.Join(root, e.Name())}
		it.id, it.err = parseID(e.Name())
		res = append(res, it)
	}

	slices.SortFunc(res, func(a, b item) int {
		switch {
		case a.err == nil && b.err == nil:
			return a.id - b.id
		case a.err == nil:
			return -1
		case b.err == nil:
			return 1
		}
		return strings.Compare(a.name, b.name)
	})
	for i := range res {
		res[i].idx = i
	}
	return res, nil
}

func parseID(name string) (int, error) {
	id, err := strconv.Atoi(name)
	if err != nil {
		return 0, IdentifierError(name, err)
	}
	if id < 0 {
		return 0, IdentifierError(name, fmt.Errorf("negative number"))
	}
	return id, nil
}

// graphFile finds the metadata file of an item: pg{id}.rdf, or the only
// RDF file in the directory.
func graphFile(dir string, id int) (string, error) {
	path := filepath.Join(dir, "pg"+strconv.Itoa(id)+".rdf")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.rdf"))
	if err != nil {
		return "", GraphFileError(dir, len(files))
	}
	if len(files) != 1 {
		return "", GraphFileError(dir, len(files))
	}
	return files[0], nil
}

func failureKind(err error) catalog.FailureKind {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return catalog.StoreFailure
	}

	switch gnErr.Code {
	case errcode.IngestIdentifierError:
		return catalog.IdentifierFailure
	case errcode.IngestParseError:
		return catalog.ParseFailure
	case errcode.IngestCacheError:
		return catalog.CacheFailure
	case errcode.StoreConstraintError:
		return catalog.ConstraintFailure
	default:
		return catalog.StoreFailure
	}
}

func compareFailures(a, b catalog.Failure) int {
	if a.ID != b.ID {
		return a.ID - b.ID
	}
	return strings.Compare(a.Item, b.Item)
}

package export

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/frostline-io/logvault/internal/archive"
	"github.com/frostline-io/logvault/internal/query"
	"github.com/frostline-io/logvault/internal/upload"
	"github.com/frostline-io/logvault/internal/window"
)

// Querier executes one SQL query against the log store and returns the raw
// newline-delimited JSON body.
type Querier interface {
	Query(ctx context.Context, sql string) ([]byte, error)
}

type Runner struct {
	log     *logrus.Logger
	querier Querier
	sink    upload.Sink
	builder query.Builder

	prefix    string
	tmpDir    string
	skipEmpty bool
}

type Options struct {
	Prefix    string
	TmpDir    string
	SkipEmpty bool
}

type Result struct {
	Window   window.Window
	Skipped  bool
	Archive  string
	RemoteID string
}

func NewRunner(log *logrus.Logger, querier Querier, sink upload.Sink, builder query.Builder, opts Options) *Runner {
	return &Runner{
		log:       log,
		querier:   querier,
		sink:      sink,
		builder:   builder,
		prefix:    opts.Prefix,
		tmpDir:    opts.TmpDir,
		skipEmpty: opts.SkipEmpty,
	}
}

// Run executes the full pipeline for one day window: query, compress, upload,
// delete the local archive. Errors are returned as-is for the caller to treat
// as fatal; the local archive is only guaranteed to be removed on the success
// path.
func (r *Runner) Run(ctx context.Context, w window.Window) (Result, error) {
	res := Result{Window: w}
	date := w.Date()

	sql := r.builder.Build(w)
	r.log.WithFields(logrus.Fields{
		"date":  date,
		"table": r.builder.Table,
	}).Info("querying log store")

	body, err := r.querier.Query(ctx, sql)
	if err != nil {
		return res, fmt.Errorf("query stage: %w", err)
	}

	if r.skipEmpty && len(bytes.TrimSpace(body)) == 0 {
		r.log.WithField("date", date).Info("no rows for window, skipping upload")
		res.Skipped = true
		return res, nil
	}

	path, err := archive.Write(r.tmpDir, r.prefix, date, body)
	if err != nil {
		return res, fmt.Errorf("compress stage: %w", err)
	}
	res.Archive = path

	remoteID, err := r.uploadArchive(ctx, path)
	if err != nil {
		return res, fmt.Errorf("upload stage: %w", err)
	}
	res.RemoteID = remoteID

	if err := archive.Remove(path); err != nil {
		return res, fmt.Errorf("cleanup stage: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"date":      date,
		"remote_id": remoteID,
		"bytes_raw": len(body),
	}).Info("export complete")

	return res, nil
}

func (r *Runner) uploadArchive(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open archive %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat archive %s: %w", path, err)
	}

	return r.sink.Upload(ctx, info.Name(), f, info.Size())
}

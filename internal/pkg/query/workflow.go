package query

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/log"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

// State of the workflow execution.
type State int

const (
	StateStart State = iota
	StateSchemaFetched
	StateQuerySubmitted
	StateDirectoryReady
	StateFilesDownloaded
	StateFilesRenamed
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateSchemaFetched:
		return "schema fetched"
	case StateQuerySubmitted:
		return "query submitted"
	case StateDirectoryReady:
		return "directory ready"
	case StateFilesDownloaded:
		return "files downloaded"
	case StateFilesRenamed:
		return "files renamed"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome of the workflow execution.
type Outcome struct {
	State State
	// FailedFrom is the last state reached before the failure, it is set only if State is StateFailed.
	FailedFrom    State
	JobID         JobID
	SchemaVersion int
	Directory     string
	Files         []string
	Duration      time.Duration
	Err           error
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

type dependencies interface {
	Logger() log.Logger
	Fs() filesystem.Fs
	QueryClient() Client
}

// Workflow turns the parameters into a renamed set of downloaded files.
// One execution runs at a time, each external call is awaited before the next one.
type Workflow struct {
	logger log.Logger
	fs     filesystem.Fs
	client Client
	now    func() time.Time
}

func NewWorkflow(d dependencies) *Workflow {
	return &Workflow{
		logger: d.Logger().WithComponent("query"),
		fs:     d.Fs(),
		client: d.QueryClient(),
		now:    time.Now,
	}
}

// Execute runs the query workflow, the first error aborts it.
// No retry and no rollback is made, already downloaded or renamed files are kept.
func (w *Workflow) Execute(ctx context.Context, params Parameters) (out Outcome) {
	startTime := w.now()
	out.State = StateStart
	ctx = log.ContextWith(ctx, zap.String("table", params.Table), zap.String("namespace", params.Namespace))

	fail := func(err error) Outcome {
		out.FailedFrom = out.State
		out.State = StateFailed
		out.Err = err
		out.Duration = w.now().Sub(startTime)
		return out
	}

	if err := params.Validate(ctx); err != nil {
		return fail(err)
	}

	// Get schema, the version is only reported
	schema, err := w.client.GetSchema(ctx, params.Namespace, params.Table)
	if err != nil {
		return fail(err)
	}
	out.SchemaVersion = schema.Version
	out.State = StateSchemaFetched
	w.logger.Debugf(ctx, `Table "%s" schema version: %d`, params.Table, schema.Version)

	// Build descriptor and submit the query
	descriptor, err := params.Descriptor()
	if err != nil {
		return fail(err)
	}
	jobID, err := w.client.SubmitQuery(ctx, params.Namespace, params.Table, descriptor)
	if err != nil {
		return fail(err)
	}
	out.JobID = jobID
	out.State = StateQuerySubmitted
	w.logger.Infof(ctx, `Query "%s" submitted, job ID: %s`, descriptor, jobID)

	// Prepare output directory
	dir := filesystem.Join(params.OutputDirectory, params.Kind.DirName())
	if err := w.fs.MkdirAll(dir); err != nil {
		return fail(NewFilesystemError(err))
	}
	out.Directory = dir
	out.State = StateDirectoryReady

	// Download and decompress files
	result, err := w.client.Download(ctx, params.Namespace, params.Table, descriptor, dir, true)
	if err != nil {
		return fail(err)
	}
	out.State = StateFilesDownloaded

	// Prefix each file with the table name
	files, err := w.renameFiles(ctx, params.Table, result.Files)
	out.Files = files
	if err != nil {
		return fail(err)
	}
	out.State = StateFilesRenamed

	out.State = StateDone
	out.Duration = w.now().Sub(startTime)
	w.logger.Infof(ctx, `Downloaded %d file(s) to "%s".`, len(files), dir)
	return out
}

// renameFiles renames each file in place to "<table>_<name>", the order is preserved.
// Already renamed files are returned together with the error.
func (w *Workflow) renameFiles(ctx context.Context, table string, paths []string) ([]string, error) {
	renamed := make([]string, 0, len(paths))
	for _, oldPath := range paths {
		newPath := PrefixedPath(table, oldPath)
		if err := w.fs.Rename(oldPath, newPath); err != nil {
			return renamed, NewFilesystemError(err)
		}
		w.logger.Debugf(ctx, `Renamed file "%s" to "%s".`, oldPath, newPath)
		renamed = append(renamed, newPath)
	}
	return renamed, nil
}

// PrefixedPath returns the path with the file name prefixed by "<table>_", the directory is preserved.
func PrefixedPath(table, path string) string {
	dir, file := filesystem.Split(path)
	if dir == "" {
		return table + "_" + file
	}
	return filesystem.Join(dir, table+"_"+file)
}

// ErrorOf returns the first error of the outcome kind, or the error itself.
func ErrorOf(o Outcome) error {
	if o.Err == nil {
		return nil
	}
	return errors.PrefixErrorf(o.Err, `query failed at the "%s" step`, nextStep(o.FailedFrom))
}

func nextStep(s State) string {
	switch s {
	case StateStart:
		return "validation or schema"
	case StateSchemaFetched:
		return "submit"
	case StateQuerySubmitted:
		return "output directory"
	case StateDirectoryReady:
		return "download"
	case StateFilesDownloaded:
		return "rename"
	default:
		return s.String()
	}
}

package query

import (
	"context"
	"time"
)

type JobID string

// Schema of a table, only the version is used by the workflow.
type Schema struct {
	Version int `json:"version"`
}

// Descriptor describes the requested dataset.
// A snapshot descriptor carries only the format, an incremental descriptor carries the format and Since.
// Until is never set, the incremental query is open-ended.
type Descriptor struct {
	Kind   Kind
	Format Format
	Since  *time.Time
	Until  *time.Time
}

// DownloadResult contains paths of the downloaded files, in the order they were produced.
type DownloadResult struct {
	Files []string
}

// Client is the external collaborator which talks to the platform.
// Authentication, transport, job polling and decompression are its responsibility.
type Client interface {
	GetSchema(ctx context.Context, namespace, table string) (Schema, error)
	SubmitQuery(ctx context.Context, namespace, table string, descriptor Descriptor) (JobID, error)
	Download(ctx context.Context, namespace, table string, descriptor Descriptor, dir string, decompress bool) (DownloadResult, error)
}

func SnapshotDescriptor(format Format) Descriptor {
	return Descriptor{Kind: KindSnapshot, Format: format}
}

func IncrementalDescriptor(format Format, since time.Time) Descriptor {
	since = since.UTC()
	return Descriptor{Kind: KindIncremental, Format: format, Since: &since}
}

func (d Descriptor) String() string {
	if d.Since == nil {
		return d.Kind.String() + "/" + d.Format.String()
	}
	return d.Kind.String() + "/" + d.Format.String() + " since " + FormatSince(*d.Since)
}

package cli

import (
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/log"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
)

// queryDependencies are dependencies of the query workflow.
type queryDependencies struct {
	logger log.Logger
	fs     filesystem.Fs
	client query.Client
}

func (root *RootCommand) newQueryDependencies() *queryDependencies {
	return &queryDependencies{
		logger: root.logger,
		fs:     root.fs,
		client: root.newClient(),
	}
}

func (d *queryDependencies) Logger() log.Logger {
	return d.logger
}

func (d *queryDependencies) Fs() filesystem.Fs {
	return d.fs
}

func (d *queryDependencies) QueryClient() query.Client {
	return d.client
}

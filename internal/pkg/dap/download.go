package dap

import (
	"context"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/klauspost/pgzip"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

const gzipSuffix = ".gz"

type objectURL struct {
	URL string `json:"url"`
}

type objectURLsResponse struct {
	URLs map[string]objectURL `json:"urls"`
}

// Download submits the query, waits for the job and downloads all result objects to the directory.
// If decompress is set, gzipped objects are decompressed and the ".gz" suffix is removed.
// The paths are returned in the order of the job objects.
func (c *Client) Download(ctx context.Context, namespace, table string, descriptor query.Descriptor, dir string, decompress bool) (query.DownloadResult, error) {
	j, err := c.submit(ctx, namespace, table, descriptor)
	if err != nil {
		return query.DownloadResult{}, err
	}

	j, err = c.waitForJob(ctx, j)
	if err != nil {
		return query.DownloadResult{}, err
	}

	if len(j.Objects) == 0 {
		c.logger.Warnf(ctx, `Job "%s" produced no objects.`, j.ID)
		return query.DownloadResult{}, nil
	}

	urls, err := c.objectURLs(ctx, j.Objects)
	if err != nil {
		return query.DownloadResult{}, err
	}

	if err := c.fs.MkdirAll(dir); err != nil {
		return query.DownloadResult{}, query.NewFilesystemError(err)
	}

	bar := c.newProgressBar(len(j.Objects))
	defer func() { _ = bar.Close() }()

	files := make([]string, len(j.Objects))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(c.config.Concurrency)
	for i, obj := range j.Objects {
		i, obj := i, obj
		grp.Go(func() error {
			file, err := c.downloadObject(grpCtx, urls[obj.ID], obj.ID, dir, decompress, bar)
			if err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return query.DownloadResult{}, err
	}

	_ = bar.Finish()
	return query.DownloadResult{Files: files}, nil
}

func (c *Client) objectURLs(ctx context.Context, objects []object) (map[string]string, error) {
	result := &objectURLsResponse{}
	if err := c.authorizedRequest(ctx, http.MethodPost, "dap/object/url", result, objects); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(objects))
	for _, obj := range objects {
		v, found := result.URLs[obj.ID]
		if !found || v.URL == "" {
			return nil, query.NewServerError(errors.Errorf(`URL of the object "%s" is missing in the response`, obj.ID))
		}
		out[obj.ID] = v.URL
	}
	return out, nil
}

// downloadObject streams the object to the file, the presigned URL is requested without the access token.
func (c *Client) downloadObject(ctx context.Context, url, objectID, dir string, decompress bool, bar *progressbar.ProgressBar) (string, error) {
	name := path.Base(objectID)
	gzipped := decompress && strings.HasSuffix(name, gzipSuffix)
	if gzipped {
		name = strings.TrimSuffix(name, gzipSuffix)
	}
	filePath := filesystem.Join(dir, name)

	req := c.http.R().SetContext(ctx).SetDoNotParseResponse(true)
	res, err := c.send(ctx, req, http.MethodGet, url)
	if err != nil {
		if res != nil && res.RawBody() != nil {
			_ = res.RawBody().Close()
		}
		return "", err
	}
	body := res.RawBody()
	defer func() { _ = body.Close() }()

	var reader io.Reader = io.TeeReader(body, bar)
	if gzipped {
		gzipReader, err := pgzip.NewReader(reader)
		if err != nil {
			return "", query.NewServerError(errors.Errorf(`cannot decompress object "%s": %w`, objectID, err))
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	file, err := c.fs.Create(filePath)
	if err != nil {
		return "", query.NewFilesystemError(errors.Errorf(`cannot create file "%s": %w`, filePath, err))
	}

	written, copyErr := io.Copy(file, reader)
	closeErr := file.Close()
	switch {
	case copyErr != nil && ctx.Err() != nil:
		return "", ctx.Err()
	case copyErr != nil:
		return "", query.NewTransportError(errors.Errorf(`cannot download object "%s": %w`, objectID, copyErr))
	case closeErr != nil:
		return "", query.NewFilesystemError(errors.Errorf(`cannot write file "%s": %w`, filePath, closeErr))
	}

	c.logger.Debugf(ctx, `Downloaded "%s" (%s).`, filePath, datasize.ByteSize(written).HumanReadable())
	return filePath, nil
}

func (c *Client) newProgressBar(objects int) *progressbar.ProgressBar {
	if c.progress == nil {
		return progressbar.DefaultBytesSilent(-1)
	}
	return progressbar.NewOptions64(
		-1,
		progressbar.OptionSetWriter(c.progress),
		progressbar.OptionSetDescription("Downloading "+strconv.Itoa(objects)+" object(s)"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(20),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

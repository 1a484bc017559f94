package dap

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hako/durafmt"
	"go.uber.org/zap"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/log"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

const (
	JobStatusWaiting  = "waiting"
	JobStatusRunning  = "running"
	JobStatusComplete = "complete"
	JobStatusFailed   = "failed"
)

type schemaResponse struct {
	Version int `json:"version"`
}

type object struct {
	ID string `json:"id"`
}

type job struct {
	ID      string   `json:"id"`
	Status  string   `json:"status"`
	Objects []object `json:"objects"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func tablePath(namespace, table string) string {
	return "dap/query/" + url.PathEscape(namespace) + "/table/" + url.PathEscape(table)
}

func (c *Client) GetSchema(ctx context.Context, namespace, table string) (query.Schema, error) {
	result := &schemaResponse{}
	if err := c.authorizedRequest(ctx, http.MethodGet, tablePath(namespace, table)+"/schema", result, nil); err != nil {
		return query.Schema{}, err
	}
	return query.Schema{Version: result.Version}, nil
}

func (c *Client) SubmitQuery(ctx context.Context, namespace, table string, descriptor query.Descriptor) (query.JobID, error) {
	j, err := c.submit(ctx, namespace, table, descriptor)
	if err != nil {
		return "", err
	}
	return query.JobID(j.ID), nil
}

func (c *Client) submit(ctx context.Context, namespace, table string, descriptor query.Descriptor) (*job, error) {
	body, err := queryBody(descriptor)
	if err != nil {
		return nil, err
	}

	result := &job{}
	if err := c.authorizedRequest(ctx, http.MethodPost, tablePath(namespace, table)+"/data", result, body); err != nil {
		return nil, err
	}
	if result.ID == "" {
		return nil, query.NewServerError(errors.New("job ID is missing in the query response"))
	}
	return result, nil
}

// queryBody returns the request body, "mode" is always null, an incremental query has open "until".
func queryBody(d query.Descriptor) (map[string]any, error) {
	body := map[string]any{
		"format": d.Format.String(),
		"mode":   nil,
	}
	switch d.Kind {
	case query.KindSnapshot:
	case query.KindIncremental:
		if d.Since == nil {
			return nil, query.NewParameterError(errors.New("since timestamp is required for an incremental query"))
		}
		body["since"] = d.Since.UTC().Format(time.RFC3339)
		body["until"] = nil
	default:
		return nil, query.NewParameterError(errors.Errorf(`unexpected query kind "%s"`, d.Kind))
	}
	return body, nil
}

func (c *Client) getJob(ctx context.Context, id string) (*job, error) {
	result := &job{}
	if err := c.authorizedRequest(ctx, http.MethodGet, "dap/job/"+url.PathEscape(id), result, nil); err != nil {
		return nil, err
	}
	return result, nil
}

// waitForJob polls the job status until it completes or fails.
// The polling has no time limit, it can be stopped by the context.
func (c *Client) waitForJob(ctx context.Context, j *job) (*job, error) {
	ctx = log.ContextWith(ctx, zap.String("job.id", j.ID))
	startTime := c.clock.Now()
	b := newPollBackoff(c.clock)

	for {
		switch j.Status {
		case JobStatusComplete:
			duration := c.clock.Since(startTime).Round(time.Second)
			c.logger.Infof(ctx, `Job "%s" completed in %s, objects: %d.`, j.ID, durafmt.Parse(duration).String(), len(j.Objects))
			return j, nil
		case JobStatusFailed:
			msg := "unknown error"
			if j.Error != nil && j.Error.Message != "" {
				msg = j.Error.Message
			}
			return nil, query.NewServerError(errors.Errorf(`job "%s" failed: %s`, j.ID, msg))
		}

		delay := b.NextBackOff()
		c.logger.Debugf(ctx, `Job "%s" status "%s", next check in %s.`, j.ID, j.Status, delay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.clock.After(delay):
		}

		next, err := c.getJob(ctx, j.ID)
		if err != nil {
			return nil, err
		}
		j = next
	}
}

func newPollBackoff(clock backoff.Clock) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0 // don't stop
	b.Clock = clock
	b.Reset()
	return b
}

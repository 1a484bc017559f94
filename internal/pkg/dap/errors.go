package dap

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
	urlutil "github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/url"
)

// apiError is the error body returned by the DAP API.
type apiError struct {
	Details *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (e *apiError) message() string {
	switch {
	case e == nil:
		return ""
	case e.Details != nil && e.Details.Message != "":
		if e.Details.Type != "" {
			return fmt.Sprintf("%s (%s)", e.Details.Message, e.Details.Type)
		}
		return e.Details.Message
	case e.Message != "":
		return e.Message
	default:
		return e.Detail
	}
}

// send executes the request and maps the failures to the query error kinds.
func (c *Client) send(ctx context.Context, req *resty.Request, method, url string) (*resty.Response, error) {
	if req.Error == nil {
		req.SetError(&apiError{})
	}

	res, err := req.Execute(method, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		// Response arrived, but its body is not a valid JSON
		if res != nil && res.RawResponse != nil {
			if res.IsError() {
				return res, responseError(res)
			}
			return res, query.NewServerError(errors.Errorf(`%s "%s" returned an invalid response: %w`, method, urlutil.SanitizeURLString(url), err))
		}
		return res, query.NewTransportError(errors.Errorf(`%s "%s": %w`, method, urlutil.SanitizeURLString(url), err))
	}

	if !res.IsError() {
		return res, nil
	}

	return res, responseError(res)
}

func responseError(res *resty.Response) error {
	msg := ""
	if apiErr, ok := res.Error().(*apiError); ok {
		msg = apiErr.message()
	}
	if msg == "" {
		msg = strings.TrimSpace(string(res.Body()))
	}
	if msg == "" {
		msg = http.StatusText(res.StatusCode())
	}

	req := res.Request
	err := errors.Errorf(`%s "%s" returned HTTP %d: %s`, req.Method, urlutil.SanitizeURLString(req.URL), res.StatusCode(), msg)
	switch res.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return query.NewAuthenticationError(err)
	default:
		return query.NewServerError(err)
	}
}

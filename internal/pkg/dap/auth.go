package dap

import (
	"context"
	"net/http"
	"time"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

const (
	authPath = "ids/auth/login"
	// The token is refreshed a bit earlier than it expires.
	tokenExpirationGap = 1 * time.Minute
	// Used if the response contains no expiration.
	defaultTokenLifetime = 1 * time.Hour
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	ExpiresIn   int64  `json:"expires_in"`
}

type accessToken struct {
	value     string
	expiresAt time.Time
}

// token returns a valid access token, a new one is requested if there is none or it is expiring.
func (c *Client) token(ctx context.Context) (string, error) {
	c.tokenLock.Lock()
	defer c.tokenLock.Unlock()

	now := c.clock.Now()
	if c.accessToken != nil && now.Add(tokenExpirationGap).Before(c.accessToken.expiresAt) {
		return c.accessToken.value, nil
	}

	if c.config.ClientID == "" || c.config.ClientSecret == "" {
		return "", query.NewAuthenticationError(errors.New("client ID and client secret must be set"))
	}

	result := &tokenResponse{}
	req := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.config.ClientID, c.config.ClientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		SetResult(result).
		ForceContentType(jsonContentType)

	if _, err := c.send(ctx, req, http.MethodPost, authPath); err != nil {
		return "", err
	}

	if result.AccessToken == "" {
		return "", query.NewAuthenticationError(errors.New("access token is missing in the response"))
	}

	token := &accessToken{value: result.AccessToken}
	switch {
	case result.ExpiresAt > 0:
		token.expiresAt = time.Unix(result.ExpiresAt, 0)
	case result.ExpiresIn > 0:
		token.expiresAt = now.Add(time.Duration(result.ExpiresIn) * time.Second)
	default:
		token.expiresAt = now.Add(defaultTokenLifetime)
	}

	c.accessToken = token
	c.logger.Debugf(ctx, "Authenticated, the access token expires at %s.", token.expiresAt.UTC().Format(time.RFC3339))
	return token.value, nil
}

// authorizedRequest sends the request with the access token header.
func (c *Client) authorizedRequest(ctx context.Context, method, url string, result any, body any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	req := c.http.R().SetContext(ctx).SetHeader(TokenHeader, token).ForceContentType(jsonContentType)
	if result != nil {
		req.SetResult(result)
	}
	if body != nil {
		req.SetBody(body)
	}

	_, err = c.send(ctx, req, method, url)
	return err
}

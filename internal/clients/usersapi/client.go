package usersapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"usermgmt/internal/domain/common"
	dom "usermgmt/internal/domain/user"
	"usermgmt/internal/httpclient"
	"usermgmt/internal/logging"
)

// Client talks to the users collection resource:
//
//	GET    {base}        list
//	POST   {base}        create
//	PUT    {base}/{id}   update
//	DELETE {base}/{id}   delete
type Client struct {
	http   *httpclient.Client
	logger logging.Logger
}

func New(baseURL string, timeout time.Duration, logger logging.Logger) (*Client, error) {
	httpCli, err := httpclient.New(baseURL, timeout, logger.With("component", "users_http"))
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   httpCli,
		logger: logger.With("component", "users_api_client"),
	}, nil
}

func (c *Client) List(ctx context.Context) ([]dom.User, error) {
	var res []userResponse
	if err := c.http.GetJSON(ctx, "", nil, &res); err != nil {
		return nil, networkError("list users", err)
	}
	if res == nil {
		return nil, networkError("list users", errors.New("response is not a user list"))
	}
	return toDomainUsers(res), nil
}

// Create posts u without its id and returns the record the server stored.
func (c *Client) Create(ctx context.Context, u dom.User) (dom.User, error) {
	var res userResponse
	if err := c.http.PostJSON(ctx, "", toRequest(u), &res); err != nil {
		return dom.User{}, networkError("create user", err)
	}
	if res.ID == "" {
		return dom.User{}, networkError("create user", errMissingID)
	}
	return res.toDomain(), nil
}

// Update replaces the record with the given id. A 404 is reported as NotFound.
func (c *Client) Update(ctx context.Context, id string, u dom.User) (dom.User, error) {
	var res userResponse
	if err := c.http.PutJSON(ctx, url.PathEscape(id), toUpdateRequest(id, u), &res); err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && he.StatusCode == http.StatusNotFound {
			return dom.User{}, fmt.Errorf("update user: %w", common.NewNotFound("user", id))
		}
		return dom.User{}, networkError("update user", err)
	}
	if res.ID == "" {
		return dom.User{}, networkError("update user", errMissingID)
	}
	return res.toDomain(), nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.http.Delete(ctx, url.PathEscape(id)); err != nil {
		return networkError("delete user", err)
	}
	return nil
}

// errMissingID marks a 2xx answer that did not carry the stored record's id.
var errMissingID = errors.New("response has no user id")

func networkError(op string, err error) error {
	ne := &common.NetworkError{Op: op, Err: err}
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		ne.StatusCode = he.StatusCode
	}
	return ne
}

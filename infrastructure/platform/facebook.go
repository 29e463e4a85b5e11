// Package platform implements clients for the social platforms moderation
// actions are applied to.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pagepulse/pagepulse/domain/moderation"
)

// defaultGraphURL is the Facebook Graph API base used when no override is
// configured.
const defaultGraphURL = "https://graph.facebook.com/v23.0"

// Facebook applies moderation actions to comments through the Graph API.
type Facebook struct {
	accessToken string
	baseURL     string
	client      *resty.Client
}

// FacebookOption is a functional option for Facebook.
type FacebookOption func(*Facebook)

// WithBaseURL overrides the Graph API base URL, used for tests and proxies.
func WithBaseURL(url string) FacebookOption {
	return func(f *Facebook) {
		if url != "" {
			f.baseURL = url
		}
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) FacebookOption {
	return func(f *Facebook) {
		if d > 0 {
			f.client.SetTimeout(d)
		}
	}
}

// NewFacebook creates a Graph API client.
func NewFacebook(accessToken string, opts ...FacebookOption) *Facebook {
	f := &Facebook{
		accessToken: accessToken,
		baseURL:     defaultGraphURL,
		client:      resty.New().SetTimeout(30 * time.Second),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ moderation.Platform = (*Facebook)(nil)

// graphError is the error envelope the Graph API wraps failures in.
type graphError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Hide hides a comment from everyone except its author.
func (f *Facebook) Hide(ctx context.Context, commentID string) error {
	return f.setHidden(ctx, commentID, true)
}

// Unhide makes a previously hidden comment visible again.
func (f *Facebook) Unhide(ctx context.Context, commentID string) error {
	return f.setHidden(ctx, commentID, false)
}

// Delete permanently removes a comment.
func (f *Facebook) Delete(ctx context.Context, commentID string) error {
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParam("access_token", f.accessToken).
		Delete(f.baseURL + "/" + commentID)
	if err != nil {
		return fmt.Errorf("delete comment %s: %w", commentID, err)
	}
	return checkGraphResponse("delete", commentID, resp)
}

func (f *Facebook) setHidden(ctx context.Context, commentID string, hidden bool) error {
	op := "hide"
	if !hidden {
		op = "unhide"
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"is_hidden":    fmt.Sprintf("%t", hidden),
			"access_token": f.accessToken,
		}).
		Post(f.baseURL + "/" + commentID)
	if err != nil {
		return fmt.Errorf("%s comment %s: %w", op, commentID, err)
	}
	return checkGraphResponse(op, commentID, resp)
}

func checkGraphResponse(op, commentID string, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	var ge graphError
	if err := json.Unmarshal(resp.Body(), &ge); err == nil && ge.Error.Message != "" {
		return fmt.Errorf("%s comment %s: graph api error %d (%s): %s",
			op, commentID, ge.Error.Code, ge.Error.Type, ge.Error.Message)
	}
	return fmt.Errorf("%s comment %s: unexpected status %d", op, commentID, resp.StatusCode())
}

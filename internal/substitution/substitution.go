// Package substitution получает HTML со списком замен на день.
package substitution

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/portal"
)

const viewerPath = "/substitution/server/viewer.js?__func=getSubstViewerDayDataHtml"

type Session interface {
	SecurityToken() (string, error)
	Request(ctx context.Context, method, target string, header map[string]string, body []byte) (*portal.Response, error)
}

type Client struct {
	s Session
}

func New(s Session) *Client { return &Client{s: s} }

type viewerArgs struct {
	Date string `json:"date"`
	Mode string `json:"mode"`
}

type viewerRequest struct {
	Args []any  `json:"__args"`
	GSH  string `json:"__gsh"`
}

// HTML: фрагмент страницы замен по классам на дату.
func (c *Client) HTML(ctx context.Context, date time.Time) (string, error) {
	token, err := c.s.SecurityToken()
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(viewerRequest{
		Args: []any{nil, viewerArgs{Date: date.Format(codec.DateLayout), Mode: "classes"}},
		GSH:  token,
	})
	if err != nil {
		return "", portal.NewError(portal.KindSerialization, "substitution request", err)
	}
	resp, err := c.s.Request(ctx, http.MethodPost, viewerPath, map[string]string{"Content-Type": "application/json"}, body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", portal.Errorf(portal.KindHTTP, "substitution: status %d", resp.StatusCode)
	}

	var out struct {
		R *string `json:"r"`
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", portal.NewError(portal.KindSerialization, "substitution response", err)
	}
	if out.R == nil {
		return "", portal.NewError(portal.KindSerialization, "substitution response has no r", nil)
	}
	return *out.R, nil
}

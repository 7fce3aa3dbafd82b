package timetable

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Spok95/edupage-school-bot/internal/codec"
	"github.com/Spok95/edupage-school-bot/internal/portal"
)

const signInPath = "/dashboard/server/onlinelesson.js?__func=getOnlineLessonOpenUrl"

type signInArgs struct {
	Click     bool   `json:"click"`
	Date      string `json:"date"`
	Link      string `json:"ol_url"`
	SubjectID string `json:"subjectid"`
}

type signInRequest struct {
	Args []any  `json:"__args"`
	GSH  string `json:"__gsh"`
}

// SignIn отмечает присутствие на онлайн-уроке. Ответ с полем reload означает,
// что портал не принял отметку.
func (r *Resolver) SignIn(ctx context.Context, l Lesson) error {
	if !l.IsOnline() {
		return portal.Errorf(portal.KindOther, "lesson %q has no online link", l.Name)
	}
	token, err := r.s.SecurityToken()
	if err != nil {
		return err
	}
	body, err := json.Marshal(signInRequest{
		Args: []any{nil, signInArgs{
			Click:     true,
			Date:      codec.Now().Format(codec.DateLayout),
			Link:      l.OnlineLink,
			SubjectID: strconv.FormatInt(l.SubjectID, 10),
		}},
		GSH: token,
	})
	if err != nil {
		return portal.NewError(portal.KindSerialization, "sign-in request", err)
	}

	resp, err := r.s.Request(ctx, http.MethodPost, signInPath, map[string]string{"Content-Type": "application/json"}, body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return portal.Errorf(portal.KindHTTP, "sign-in: status %d", resp.StatusCode)
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return portal.NewError(portal.KindParse, "sign-in response", err)
	}
	if raw, ok := out["reload"]; ok && string(raw) != "null" {
		return portal.NewError(portal.KindInvalidResponse, "sign-in rejected", nil)
	}
	return nil
}

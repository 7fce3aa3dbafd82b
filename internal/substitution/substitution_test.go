package substitution_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Spok95/edupage-school-bot/internal/portal"
	"github.com/Spok95/edupage-school-bot/internal/substitution"
	"github.com/Spok95/edupage-school-bot/internal/testutil/fixture"
)

func TestHTML(t *testing.T) {
	s, p := fixture.LoggedIn(t, "")
	var (
		reply  string
		status = http.StatusOK
		sent   struct {
			Args []json.RawMessage `json:"__args"`
			GSH  string            `json:"__gsh"`
		}
	)
	p.Handlers["/substitution/server/viewer.js"] = func(req *portal.Request) (*portal.Response, error) {
		if req.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", req.Header.Get("Content-Type"))
		}
		if err := json.Unmarshal(req.Body, &sent); err != nil {
			t.Errorf("тело: %v", err)
		}
		return &portal.Response{StatusCode: status, Body: []byte(reply)}, nil
	}
	c := substitution.New(s)
	date := time.Date(2024, 1, 11, 0, 0, 0, 0, time.Local)

	reply = `{"r": "<div class=\"section\">1.A</div>"}`
	got, err := c.HTML(context.Background(), date)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if got != `<div class="section">1.A</div>` {
		t.Fatalf("HTML = %q", got)
	}
	if sent.GSH != fixture.DefaultHash || len(sent.Args) != 2 || string(sent.Args[0]) != "null" {
		t.Fatalf("запрос: %+v", sent)
	}
	if string(sent.Args[1]) != `{"date":"2024-01-11","mode":"classes"}` {
		t.Fatalf("аргументы: %s", sent.Args[1])
	}

	for _, bad := range []string{`{"x": 1}`, `not json`} {
		reply = bad
		if _, err := c.HTML(context.Background(), date); !errors.Is(err, portal.ErrSerialization) {
			t.Fatalf("%q: ждали SerializationError, получили %v", bad, err)
		}
	}

	status = http.StatusBadGateway
	if _, err := c.HTML(context.Background(), date); !errors.Is(err, portal.ErrHTTP) {
		t.Fatalf("502: ждали HTTPError, получили %v", err)
	}
}

func TestHTML_NotLoggedIn(t *testing.T) {
	c := substitution.New(portal.New(fixture.NewPortal()))
	if _, err := c.HTML(context.Background(), time.Now()); !errors.Is(err, portal.ErrNotLoggedIn) {
		t.Fatalf("ждали NotLoggedIn, получили %v", err)
	}
}

func TestText(t *testing.T) {
	in := `<div class="section"><div class="header">1.A</div>
<table><tr><td>2</td><td>Matematika</td><td>(Novakova) ➔ Horvath</td></tr>
<tr><td>3</td><td>Fyzika</td><td>odpadá</td></tr></table></div>
<script>var x = 1;</script><p>  </p>`
	want := "1.A\n2 Matematika (Novakova) ➔ Horvath\n3 Fyzika odpadá"
	if got := substitution.Text(in); got != want {
		t.Fatalf("Text:\n%q\nждали\n%q", got, want)
	}
}

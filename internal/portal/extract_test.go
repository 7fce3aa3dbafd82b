package portal

import (
	"errors"
	"testing"
)

func TestExtractCSRF(t *testing.T) {
	got, err := ExtractCSRF([]byte(`<input type="hidden" name="csrfauth" value="tok123">`))
	if err != nil || got != "tok123" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := ExtractCSRF([]byte(`<form></form>`)); !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("без поля: %v", err)
	}
	// поле упомянуто, но не в виде скрытого input
	if _, err := ExtractCSRF([]byte(`var csrfauth = 1;`)); !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("упоминание без поля: %v", err)
	}
	// поле есть, значение не закрыто
	if _, err := ExtractCSRF([]byte(`<input name="csrfauth" value="tok`)); !errors.Is(err, ErrParse) {
		t.Fatalf("незакрытое значение: %v", err)
	}
}

func TestExtractSnapshot_TrailingScript(t *testing.T) {
	html := []byte("<script>$j(document).ready(function() {userhome({\"userid\":\n\t\"Student5\",\r\n\"meninyDnes\":\"Jan\"}, [1,2], {x:1});</script><script>other()</script>")
	snap, err := ExtractSnapshot(html)
	if err != nil {
		t.Fatalf("ExtractSnapshot: %v", err)
	}
	if snap.UserID.String() != "Student5" || snap.NamedayToday != "Jan" {
		t.Fatalf("snapshot: %+v", snap)
	}
}

func TestExtractSnapshot_ReadyBlock(t *testing.T) {
	html := []byte(`<a onclick="userhome(this)">Domov</a>
<script>function userhome(d, a, b) { render(d); }</script>
<script>$j(document).ready(function() {
	userhome({"userid": "Ucitel7"}, [], {});
});</script>`)
	snap, err := ExtractSnapshot(html)
	if err != nil {
		t.Fatalf("ExtractSnapshot: %v", err)
	}
	if snap.UserID.String() != "Ucitel7" {
		t.Fatalf("userid = %s", snap.UserID)
	}

	// userhome( есть, но блока ready нет
	if _, err := ExtractSnapshot([]byte(`<script>userhome({"userid": "Ucitel7"});</script>`)); !errors.Is(err, ErrParse) {
		t.Fatalf("без блока ready: %v", err)
	}
}

func TestExtractSecurityToken(t *testing.T) {
	if tok, err := ExtractSecurityToken([]byte(`ASC.gsechash="abc";`)); err != nil || tok != "abc" {
		t.Fatalf("got %q, %v", tok, err)
	}
	if _, err := ExtractSecurityToken([]byte(`ASC.gsechash="";`)); !errors.Is(err, ErrParse) {
		t.Fatalf("пустой токен: %v", err)
	}
}

package codec

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type rec struct {
	ID   OptInt `json:"id"`
	Name string `json:"name"`
}

func TestCollection_MapOrList(t *testing.T) {
	t.Run("map", func(t *testing.T) {
		var c Collection[rec]
		in := `{"10":{"id":"10","name":"b"},"2":{"id":"2","name":"a"},"-5":{"name":"x"}}`
		if err := json.Unmarshal([]byte(in), &c); err != nil {
			t.Fatal(err)
		}
		want := Collection[rec]{{Name: "x"}, {ID: Int(2), Name: "a"}, {ID: Int(10), Name: "b"}}
		if diff := cmp.Diff(want, c); diff != "" {
			t.Fatalf("коллекция (-want +got):\n%s", diff)
		}
	})
	t.Run("empty_list", func(t *testing.T) {
		var c Collection[rec]
		if err := json.Unmarshal([]byte(`[]`), &c); err != nil {
			t.Fatal(err)
		}
		if c == nil || len(c) != 0 {
			t.Fatalf("ожидали пустой список, получили %#v", c)
		}
	})
	t.Run("scalar", func(t *testing.T) {
		var c Collection[rec]
		if err := json.Unmarshal([]byte(`"nope"`), &c); err == nil {
			t.Fatal("ожидали ошибку формы")
		}
	})
}

func TestKeyed_KeepsKeys(t *testing.T) {
	var k Keyed[rec]
	if err := json.Unmarshal([]byte(`{"2024-01-10":{"name":"wed"}}`), &k); err != nil {
		t.Fatal(err)
	}
	if k["2024-01-10"].Name != "wed" {
		t.Fatalf("ожидали ключ даты, получили %#v", k)
	}
	var empty Keyed[rec]
	if err := json.Unmarshal([]byte(`[]`), &empty); err != nil || len(empty) != 0 {
		t.Fatalf("[] должен дать пустую карту: %#v (%v)", empty, err)
	}
}

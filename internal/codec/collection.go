package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type entry[T any] struct {
	key string
	val T
}

// decodeEntries: явный промежуточный шаг для полей «то объект, то массив».
// Пустую коллекцию портал отдаёт как [], непустую — как объект {id: запись}.
func decodeEntries[T any](data []byte) ([]entry[T], error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	switch data[0] {
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, compareKeys)
		out := make([]entry[T], 0, len(keys))
		for _, k := range keys {
			var v T
			if err := json.Unmarshal(m[k], &v); err != nil {
				return nil, fmt.Errorf("codec: entry %q: %w", k, err)
			}
			out = append(out, entry[T]{key: k, val: v})
		}
		return out, nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		out := make([]entry[T], 0, len(raw))
		for i, r := range raw {
			var v T
			if err := json.Unmarshal(r, &v); err != nil {
				return nil, fmt.Errorf("codec: element %d: %w", i, err)
			}
			out = append(out, entry[T]{key: strconv.Itoa(i), val: v})
		}
		return out, nil
	}
	return nil, parseErr("collection", data, ErrShape)
}

// числовые ключи — по значению, остальные — лексикографически
func compareKeys(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// Collection: записи справочника, нормализованные в список.
type Collection[T any] []T

func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	entries, err := decodeEntries[T](data)
	if err != nil {
		return err
	}
	out := make(Collection[T], 0, len(entries))
	for _, e := range entries {
		out = append(out, e.val)
	}
	*c = out
	return nil
}

// Keyed: то же, но с сохранением ключей (например, даты дневных планов).
type Keyed[T any] map[string]T

func (k *Keyed[T]) UnmarshalJSON(data []byte) error {
	entries, err := decodeEntries[T](data)
	if err != nil {
		return err
	}
	out := make(Keyed[T], len(entries))
	for _, e := range entries {
		out[e.key] = e.val
	}
	*k = out
	return nil
}

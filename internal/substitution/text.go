package substitution

import (
	"strings"

	"golang.org/x/net/html"
)

// блочные элементы, после которых начинается новая строка
var blockTags = map[string]bool{
	"div": true, "p": true, "br": true, "tr": true, "li": true,
	"h1": true, "h2": true, "h3": true, "table": true,
}

// Text: текст фрагмента замен для сообщения: теги выброшены, строки по блокам,
// пустые строки и повторные пробелы схлопнуты.
func Text(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var (
		lines []string
		cur   strings.Builder
		skip  int
	)
	flush := func() {
		if s := strings.Join(strings.Fields(cur.String()), " "); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}
	for {
		switch z.Next() {
		case html.ErrorToken:
			flush()
			return strings.Join(lines, "\n")
		case html.TextToken:
			if skip == 0 {
				cur.Write(z.Text())
				cur.WriteByte(' ')
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				skip++
			} else if blockTags[tag] {
				flush()
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				if skip > 0 {
					skip--
				}
			} else if blockTags[tag] {
				flush()
			}
		}
	}
}

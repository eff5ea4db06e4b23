package scanner

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// docMeta is the metadata pulled from a parsed YAML document. The nested
// metadata map takes precedence over top-level keys.
type docMeta struct {
	Title       string
	Description string
	Categories  []string
	Author      string
	MSAuthor    string
	MSDate      string
}

func extractMeta(data map[string]any) docMeta {
	meta, _ := data["metadata"].(map[string]any)
	pick := func(key string) string {
		if v := asString(meta[key]); v != "" {
			return v
		}
		return asString(data[key])
	}
	categories := meta["azureCategories"]
	if categories == nil {
		categories = data["azureCategories"]
	}
	return docMeta{
		Title:       pick("title"),
		Description: pick("description"),
		Categories:  asStringList(categories),
		Author:      pick("author"),
		MSAuthor:    pick("ms.author"),
		MSDate:      pick("ms.date"),
	}
}

// frontMatter parses the leading "---" block of a markdown file. Returns nil
// for missing or malformed front matter; a bad block never fails a document.
func frontMatter(text string) map[string]any {
	if !strings.HasPrefix(text, "---") {
		return nil
	}
	end := strings.Index(text[3:], "\n---")
	if end == -1 {
		return nil
	}
	var m map[string]any
	if err := yaml.Unmarshal([]byte(text[3:3+end]), &m); err != nil {
		return nil
	}
	return m
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}

// asStringList coerces a scalar or sequence value to a list of strings.
func asStringList(v any) []string {
	switch vv := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			out = append(out, asString(item))
		}
		return out
	default:
		return []string{asString(v)}
	}
}

package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// Transform post-processes an extracted value.
type Transform func(string) string

// Rule extracts one field from an item container.
type Rule struct {
	Field string
	// Selector is resolved relative to the container; empty means the container itself.
	// Only the first match is used.
	Selector string
	// Attr names the attribute to read; empty reads the node's text.
	Attr       string
	Transforms []Transform
	Required   bool
}

// Fields holds the extracted values of one item, keyed by Rule.Field.
type Fields map[string]string

// Int returns the field parsed as an integer, or 0.
func (f Fields) Int(name string) int {
	n, err := strconv.Atoi(f[name])
	if err != nil {
		return 0
	}
	return n
}

// RuleSet describes how to pull items out of one kind of page.
type RuleSet struct {
	Name string
	// Root must match at least once or the page is treated as changed upstream.
	Root string
	// Item selects the repeating containers under Root.
	Item  string
	Rules []Rule
	// Build composes an Item from the extracted fields.
	Build func(Fields) Item
}

// Replace substitutes every occurrence of old with new.
func Replace(old, new string) Transform {
	return func(s string) string {
		return strings.ReplaceAll(s, old, new)
	}
}

// TrimSpace collapses and trims whitespace.
func TrimSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ResolveURL makes relative references absolute against base.
func ResolveURL(base string) Transform {
	return func(href string) string {
		href = strings.TrimSpace(href)
		if href == "" {
			return ""
		}
		if strings.HasPrefix(href, "//") {
			return "https:" + href
		}
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			return href
		}
		bu, err := url.Parse(base)
		if err != nil {
			return href
		}
		ru, err := url.Parse(href)
		if err != nil {
			return href
		}
		return bu.ResolveReference(ru).String()
	}
}

// FirstNumber keeps the first run of digits, e.g. "Series 4" -> "4".
func FirstNumber(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}

package listing

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Outcome is the result of building one item container.
// Exactly one of Item or Err is meaningful.
type Outcome struct {
	Index int
	Item  Item
	Err   error
}

// Extraction holds the item containers found on a parsed page.
type Extraction struct {
	rules RuleSet
	nodes *goquery.Selection
}

// Extract parses an HTML page and locates the containers described by rs.
// It returns ErrPageStructureChanged when the root selector matches nothing.
// Containers are collected under every matching root in document order.
// A root that matches but holds no containers yields an empty extraction.
func Extract(r io.Reader, rs RuleSet) (*Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s page: %w", rs.Name, err)
	}

	root := doc.Find(rs.Root)
	if root.Length() == 0 {
		return nil, fmt.Errorf("%s: root %q not found: %w", rs.Name, rs.Root, ErrPageStructureChanged)
	}

	return &Extraction{rules: rs, nodes: root.Find(rs.Item)}, nil
}

// Len returns the number of containers, including ones that will fail to build.
func (e *Extraction) Len() int {
	return e.nodes.Length()
}

// Outcomes yields one outcome per container in document order.
// The sequence can be ranged over more than once and always yields the same values.
func (e *Extraction) Outcomes() iter.Seq[Outcome] {
	return func(yield func(Outcome) bool) {
		for i := range e.nodes.Length() {
			item, err := e.build(i, e.nodes.Eq(i))
			if !yield(Outcome{Index: i, Item: item, Err: err}) {
				return
			}
		}
	}
}

// Items collects the successfully built items, logging and counting the rest.
func (e *Extraction) Items(log *slog.Logger) ([]Item, int) {
	items := make([]Item, 0, e.Len())
	skipped := 0
	for o := range e.Outcomes() {
		if o.Err != nil {
			skipped++
			if log != nil {
				log.Warn("skipping listing item", "ruleset", e.rules.Name, "index", o.Index, "error", o.Err)
			}
			continue
		}
		items = append(items, o.Item)
	}
	return items, skipped
}

func (e *Extraction) build(index int, node *goquery.Selection) (Item, error) {
	fields := make(Fields, len(e.rules.Rules))
	for _, rule := range e.rules.Rules {
		value, ok := apply(node, rule)
		if !ok && rule.Required {
			return Item{}, &FieldMissingError{
				RuleSet:  e.rules.Name,
				Index:    index,
				Field:    rule.Field,
				Selector: rule.Selector,
			}
		}
		fields[rule.Field] = value
	}
	if e.rules.Build == nil {
		return Item{Name: fields["title"], ID: fields["url"]}, nil
	}
	return e.rules.Build(fields), nil
}

// apply resolves a rule against a container. The bool reports whether a
// non-empty value was found.
func apply(node *goquery.Selection, rule Rule) (string, bool) {
	sel := node
	if rule.Selector != "" {
		sel = node.Find(rule.Selector).First()
	}
	if sel.Length() == 0 {
		return "", false
	}

	var value string
	if rule.Attr != "" {
		v, ok := sel.Attr(rule.Attr)
		if !ok {
			return "", false
		}
		value = v
	} else {
		value = sel.Text()
	}

	for _, t := range rule.Transforms {
		value = t(value)
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

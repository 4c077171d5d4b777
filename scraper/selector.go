// Package scraper holds the vendor-neutral pieces of extraction: selector
// strategies evaluated in priority order, and the capability interfaces the
// vendor packages render and fetch pages through.
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"listing-monitor/models"
)

// Kind tags how a Strategy's value is turned into a CSS selector.
type Kind int

const (
	// KindCSS uses Value verbatim.
	KindCSS Kind = iota
	// KindTestID matches [data-testid="Value"].
	KindTestID
	// KindClass matches .Value.
	KindClass
)

// Strategy is one way of locating a value in a document.
type Strategy struct {
	Kind  Kind
	Value string
}

func ByCSS(sel string) Strategy { return Strategy{Kind: KindCSS, Value: sel} }
func ByTestID(id string) Strategy { return Strategy{Kind: KindTestID, Value: id} }
func ByClass(name string) Strategy { return Strategy{Kind: KindClass, Value: name} }

// Selector renders s as a CSS selector string.
func (s Strategy) Selector() string {
	switch s.Kind {
	case KindTestID:
		return `[data-testid="` + s.Value + `"]`
	case KindClass:
		return "." + s.Value
	default:
		return s.Value
	}
}

// Chain is an ordered list of strategies; earlier entries win.
type Chain []Strategy

// FirstText evaluates chain against scope in order and returns the trimmed
// text of the first match that is not blank.
func FirstText(scope *goquery.Selection, chain Chain) (string, bool) {
	for _, s := range chain {
		text := strings.TrimSpace(scope.Find(s.Selector()).First().Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}

// ExtractFirst is FirstText with models.Unknown for a miss.
func ExtractFirst(scope *goquery.Selection, chain Chain) string {
	if text, ok := FirstText(scope, chain); ok {
		return text
	}
	return models.Unknown
}

// Pairs reads a definition list: each dt child paired with the sibling
// right after it when that sibling is a dd. Pairs with a blank key or value
// are dropped.
func Pairs(container *goquery.Selection) []models.KeyValue {
	pairs := []models.KeyValue{}
	container.Children().Each(func(_ int, el *goquery.Selection) {
		if !el.Is("dt") {
			return
		}
		if kv, ok := pair(el, el.Next().Filter("dd")); ok {
			pairs = append(pairs, kv)
		}
	})
	return pairs
}

// PairsBy pairs every term matched by termSel in scope with the sibling
// right after it when that sibling matches descSel.
func PairsBy(scope *goquery.Selection, termSel, descSel string) []models.KeyValue {
	pairs := []models.KeyValue{}
	scope.Find(termSel).Each(func(_ int, term *goquery.Selection) {
		if kv, ok := pair(term, term.Next().Filter(descSel)); ok {
			pairs = append(pairs, kv)
		}
	})
	return pairs
}

func pair(term, desc *goquery.Selection) (models.KeyValue, bool) {
	key := strings.TrimSpace(term.Text())
	value := strings.TrimSpace(desc.Text())
	if key == "" || value == "" {
		return models.KeyValue{}, false
	}
	return models.KeyValue{Key: key, Value: value}, true
}

// Texts returns the trimmed, non-blank text of every element matching sel.
func Texts(scope *goquery.Selection, sel string) []string {
	out := []string{}
	scope.Find(sel).Each(func(_ int, el *goquery.Selection) {
		if text := strings.TrimSpace(el.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}

// Package htmltext готовит HTML страниц для LLM и загрузчиков документов:
// чистит разметку от мусора и извлекает видимый текст.
package htmltext

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

var ErrNoBody = errors.New("no <body> in document")

const truncationNotice = "\n<!-- HTML truncated to fit token limit -->"

type CleanConfig struct {
	TagsToRemove  []string
	AttrsToRemove []string
	// AttrPrefixesToRemove: например data-, aria-, on* обработчики.
	AttrPrefixesToRemove []string
	// MaxOutputSize в байтах, 0: без ограничения.
	MaxOutputSize int
}

func DefaultCleanConfig() CleanConfig {
	return CleanConfig{
		TagsToRemove: []string{
			"script", "style", "noscript", "svg", "iframe",
			"link", "meta", "head", "title", "template",
		},
		AttrsToRemove: []string{
			"style", "srcset", "sizes", "loading", "decoding", "fetchpriority", "tabindex",
		},
		AttrPrefixesToRemove: []string{"data-", "aria-", "on"},
		MaxOutputSize:        130_000,
	}
}

// Clean возвращает очищенный <body>.
func Clean(rawHTML string, cfg CleanConfig) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	body := findElement(doc, "body")
	if body == nil {
		return "", ErrNoBody
	}

	cleanNode(body, cfg)

	var sb strings.Builder
	if err := html.Render(&sb, body); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}

	out := sb.String()
	if cfg.MaxOutputSize > 0 && len(out) > cfg.MaxOutputSize {
		out = out[:cfg.MaxOutputSize] + truncationNotice
	}
	return out, nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func cleanNode(n *html.Node, cfg CleanConfig) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.CommentNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && slices.Contains(cfg.TagsToRemove, c.Data):
			n.RemoveChild(c)
		case c.Type == html.ElementNode:
			c.Attr = filterAttributes(c.Attr, cfg)
			cleanNode(c, cfg)
		}
		c = next
	}
}

func filterAttributes(attrs []html.Attribute, cfg CleanConfig) []html.Attribute {
	kept := attrs[:0]
	for _, attr := range attrs {
		if slices.Contains(cfg.AttrsToRemove, attr.Key) || hasAnyPrefix(attr.Key, cfg.AttrPrefixesToRemove) {
			continue
		}
		kept = append(kept, attr)
	}
	return kept
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

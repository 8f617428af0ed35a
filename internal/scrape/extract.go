package scrape

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// paragraphSelectors are tried in order when pulling article text out of
// a page. Site-specific containers first, bare paragraphs last.
var paragraphSelectors = []string{
	"article p", ".article-body p", ".news-detail p",
	".content-text p", ".post-content p", "main p", "#content p",
	".article p", ".news p", ".detail p", "p",
}

// containerSelectors are the whole-block fallback when no selector
// yields enough paragraph text.
var containerSelectors = []string{"article", "main", ".content", "#content"}

const (
	minParagraphLen = 20  // paragraphs shorter than this are boilerplate
	minContainerLen = 100 // minimum text before a selector is accepted
	maxParagraphs   = 15
)

var (
	newlinePattern    = regexp.MustCompile(`\n+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	markdownConverter = md.NewConverter("", true, nil)
)

// ExtractReadable pulls the readable article text out of an HTML
// document. It walks the paragraph selectors first, falls back to whole
// content containers, and finally to a markdown conversion of the body.
// Returns "" when nothing usable is found.
func ExtractReadable(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, selector := range paragraphSelectors {
		var paragraphs []string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if len(text) > minParagraphLen {
				paragraphs = append(paragraphs, text)
			}
			return len(paragraphs) < maxParagraphs
		})

		if content := strings.Join(paragraphs, " "); len(content) >= minContainerLen {
			return collapseWhitespace(content)
		}
	}

	// Whole-container fallback: take the longest candidate.
	best := ""
	for _, selector := range containerSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if len(text) > len(best) {
			best = text
		}
	}
	if len(best) >= minContainerLen {
		return collapseWhitespace(best)
	}

	// Last resort: markdown conversion of the whole body, stripped back
	// to text. Catches pages whose content lives outside the usual
	// containers.
	if body := doc.Find("body").First(); body.Length() > 0 {
		if bodyHTML, err := body.Html(); err == nil {
			if converted, err := markdownConverter.ConvertString(bodyHTML); err == nil {
				return collapseWhitespace(stripMarkdown(converted))
			}
		}
	}

	return ""
}

func collapseWhitespace(s string) string {
	s = newlinePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

var markdownSyntaxPattern = regexp.MustCompile(`[#*_>\x60]|\[|\]\([^)]*\)`)

func stripMarkdown(s string) string {
	return markdownSyntaxPattern.ReplaceAllString(s, "")
}

// Truncate shortens content to limit runes, appending an ellipsis when
// anything was cut.
func Truncate(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}

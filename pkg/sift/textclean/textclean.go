package textclean

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Journal entries arrive as markdown, sometimes with HTML pasted in from web
// pages. The analyzers want plain prose, so markup is stripped before any
// scoring happens. The sentiment and keyword paths strip in different orders
// (symbols-first vs links-first); both orders are kept as-is because they
// produce different residue on bracketed text and downstream scores depend on
// their respective behavior.

var (
	imageLinkRe   = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	linkRe        = regexp.MustCompile(`\[.*?\]\(.*?\)`)
	mdBracketedRe = regexp.MustCompile("[#*_`~\\[\\]()]")
	mdSymbolRe    = regexp.MustCompile("[#*_`~]")
	urlRe         = regexp.MustCompile(`https?://\S+`)
)

// ForSentiment strips markup ahead of sentiment scoring: HTML tags first,
// then formatting symbols and brackets, then any image/link patterns that
// survive. Returns trimmed text.
func ForSentiment(text string) string {
	clean := mdBracketedRe.ReplaceAllString(StripHTML(text), "")
	clean = imageLinkRe.ReplaceAllString(clean, "")
	clean = linkRe.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}

// ForKeywords strips markup ahead of keyword extraction: HTML tags first,
// then image links and links whole so their bracket syntax is removed, then
// formatting symbols, then bare URLs.
func ForKeywords(text string) string {
	clean := imageLinkRe.ReplaceAllString(StripHTML(text), "")
	clean = linkRe.ReplaceAllString(clean, "")
	clean = mdSymbolRe.ReplaceAllString(clean, "")
	return urlRe.ReplaceAllString(clean, "")
}

// StripHTML extracts the text content from any HTML markup in the input.
// Script and style bodies are discarded. Input without markup passes through
// unchanged.
func StripHTML(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}

	tokenizer := html.NewTokenizer(strings.NewReader(text))
	var buf strings.Builder
	skipDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return strings.TrimSpace(buf.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				buf.Write(tokenizer.Text())
			}
		}
	}
}

func skippedTag(name string) bool {
	return name == "script" || name == "style"
}

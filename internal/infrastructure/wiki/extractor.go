package wiki

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"LeadersScraper/internal/ports"
)

// Paragraphs at or below this length are boilerplate: empty elements,
// coordinate fragments, disambiguation notices preceding the introduction.
const minParagraphLength = 80

var citationExpr = regexp.MustCompile(`\[\d+\]`)

// Extractor pulls the first introductory paragraph out of a Wikipedia
// article page.
type Extractor struct {
	http   *resty.Client
	logger *slog.Logger
}

var _ ports.BiographyExtractor = (*Extractor)(nil)

// NewExtractor wires a resty client; a nil client gets a 20s timeout default.
func NewExtractor(client *resty.Client, logger *slog.Logger) *Extractor {
	if client == nil {
		client = resty.New().SetTimeout(20 * time.Second)
	}
	return &Extractor{http: client, logger: logger}
}

// FirstParagraph fetches the article and returns the cleaned first paragraph
// of prose, or "" when the page has no qualifying paragraph. Network and
// parse failures surface as errors; callers degrade them to "".
func (e *Extractor) FirstParagraph(ctx context.Context, pageURL string) (string, error) {
	res, err := e.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("article returned status %d", res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", fmt.Errorf("parse article: %w", err)
	}

	paragraph := extractFirstParagraph(doc)
	if paragraph == "" {
		e.warn("no suitable paragraph found", "url", pageURL)
	}
	return paragraph, nil
}

func extractFirstParagraph(doc *goquery.Document) string {
	paragraphs := doc.Find("#mw-content-text p")
	if paragraphs.Length() == 0 {
		paragraphs = doc.Find("p")
	}

	var result string
	paragraphs.EachWithBreak(func(_ int, p *goquery.Selection) bool {
		// Footnote anchors would otherwise leak "[note 1]"-style text.
		p.Find("sup").Remove()

		text := strings.TrimSpace(p.Text())
		if len([]rune(text)) <= minParagraphLength {
			return true
		}

		result = cleanParagraph(text)
		return false
	})
	return result
}

func cleanParagraph(text string) string {
	text = citationExpr.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

func (e *Extractor) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

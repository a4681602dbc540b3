package wiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const articleFixture = `<!DOCTYPE html>
<html><body>
<div id="mw-content-text">
  <p class="mw-empty-elt"></p>
  <p><span class="geo">Coordinates: 50°51′N 4°21′E</span></p>
  <p>For other uses, see Philippe (disambiguation).</p>
  <p>Philippe (born 15 April 1960) is <b>King of the Belgians</b>. He is the eldest
child of King Albert II and Queen Paola.<sup id="cite_ref-1" class="reference">[1]</sup> He
ascended the throne on 21 July 2013 following his father's abdication.[2]</p>
  <p>A later paragraph that must not be returned even though it is long enough to qualify on its own.</p>
</div>
</body></html>`

const wantParagraph = "Philippe (born 15 April 1960) is King of the Belgians. He is the eldest child of King Albert II and Queen Paola. He ascended the throne on 21 July 2013 following his father's abdication."

const noParagraphFixture = `<!DOCTYPE html>
<html><body>
<div id="mw-content-text">
  <p class="mw-empty-elt"></p>
  <p><span class="geo">Coordinates: 50°51′N 4°21′E</span></p>
  <table class="infobox"><tr><td>Born 1960</td></tr></table>
</div>
</body></html>`

func serveFixture(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFirstParagraphCleaned(t *testing.T) {
	t.Parallel()

	server := serveFixture(t, articleFixture, http.StatusOK)
	e := NewExtractor(nil, nil)

	got, err := e.FirstParagraph(context.Background(), server.URL+"/wiki/Philippe_of_Belgium")
	require.NoError(t, err)
	require.Equal(t, wantParagraph, got)
}

func TestFirstParagraphNoQualifyingParagraph(t *testing.T) {
	t.Parallel()

	server := serveFixture(t, noParagraphFixture, http.StatusOK)
	e := NewExtractor(nil, nil)

	got, err := e.FirstParagraph(context.Background(), server.URL+"/wiki/Empty")
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestFirstParagraphFallsBackWithoutContentDiv(t *testing.T) {
	t.Parallel()

	body := `<html><body><p>` + strings.Repeat("Long enough prose. ", 10) + `</p></body></html>`
	server := serveFixture(t, body, http.StatusOK)
	e := NewExtractor(nil, nil)

	got, err := e.FirstParagraph(context.Background(), server.URL)
	require.NoError(t, err)
	require.NotEmpty(t, got)
}

func TestFirstParagraphErrorStatus(t *testing.T) {
	t.Parallel()

	server := serveFixture(t, "boom", http.StatusInternalServerError)
	e := NewExtractor(nil, nil)

	got, err := e.FirstParagraph(context.Background(), server.URL)
	require.Error(t, err)
	require.Equal(t, "", got)
}

func TestFirstParagraphNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	e := NewExtractor(nil, nil)
	got, err := e.FirstParagraph(context.Background(), url)
	require.Error(t, err)
	require.Equal(t, "", got)
}

func TestExtractFirstParagraphSkipsShortFragments(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(articleFixture))
	require.NoError(t, err)
	require.Equal(t, wantParagraph, extractFirstParagraph(doc))
}

func TestCleanParagraph(t *testing.T) {
	t.Parallel()

	in := "A  sentence[1] with	citations[23]\nand   odd\t\twhitespace.[4]"
	require.Equal(t, "A sentence with citations and odd whitespace.", cleanParagraph(in))
}

package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"

	"github.com/mcoot/badancup/internal/factory"
	"github.com/mcoot/badancup/internal/testutil"
	"github.com/mcoot/badancup/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

// newWebTestServer creates a new test server backed by an in-memory store
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	router := web.NewRouter(web.RouterConfig{
		Logger:       testutil.NopLogger(),
		Registration: app.Registration,
		Roster:       app.Roster,
		Gate:         app.Gate,
		StaticDir:    "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values, header http.Header) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range header {
		req.Header[k] = v
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, nil)
}

// register submits the registration form
func (ts *webTestServer) register(name, village string) *httptest.ResponseRecorder {
	return ts.post("/register", url.Values{"name": {name}, "village": {village}})
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// assertContainsText checks that the selection contains the given text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	assert.Contains(t, doc.Find(selector).Text(), text, "selector %q", selector)
}

func TestHomeShowsVillageCount(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	doc := parseHTML(rr.Body)
	assert.Equal(t, "8", doc.Find("#villages-count").Text())
	assert.Equal(t, 1, doc.Find(`a[href="/register"]`).Length())
}

func TestSecurityHeadersSet(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))
}

func TestThankYouPage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/thankyou")
	assert.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), "h1", "شكراً")
}

func TestUnknownMethodNotRouted(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.request(http.MethodDelete, "/register", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"

	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
	"browserbase-agent/internal/infrastructure/browser/browsertest"
	"browserbase-agent/internal/infrastructure/logger"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://quotes.toscrape.com"

func newServer(t *testing.T, browser *browsertest.Browser, opened *int) *httptest.Server {
	t.Helper()
	h := NewHandler(browser.Factory(opened), logger.NewNop())
	srv := httptest.NewServer(NewRouter(h, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func quotesBrowser() *browsertest.Browser {
	return browsertest.New(map[string]browsertest.Page{
		pageURL: {
			Title: "Quotes to Scrape",
			HTML:  `<html><head><script>x()</script></head><body><div class="quote" style="color:red">Be yourself.</div></body></html>`,
			Text:  "Be yourself.",
		},
	})
}

func TestMissingURL(t *testing.T) {
	var opened int
	srv := newServer(t, quotesBrowser(), &opened)

	for _, path := range []string{"/api/html", "/api/text", "/api/screenshot"} {
		resp := get(t, srv, path)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.Equal(t, map[string]any{"error": "URL is required"}, decode(t, resp), path)
	}
	assert.Zero(t, opened)
}

func TestInvalidURL(t *testing.T) {
	srv := newServer(t, quotesBrowser(), nil)

	resp := get(t, srv, "/api/text?url=file:///etc/passwd")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid URL", decode(t, resp)["error"])
}

func TestHTML(t *testing.T) {
	browser := quotesBrowser()
	srv := newServer(t, browser, nil)

	resp := get(t, srv, "/api/html?url="+pageURL)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	html := decode(t, resp)["html"].(string)
	assert.Contains(t, html, `<div class="quote">Be yourself.</div>`)
	assert.NotContains(t, html, "x()")
	assert.Equal(t, []string{pageURL}, browser.Navigated)
	assert.Equal(t, 1, browser.CloseCalls)
}

func TestText(t *testing.T) {
	browser := quotesBrowser()
	srv := newServer(t, browser, nil)

	resp := get(t, srv, "/api/text?url="+pageURL)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"text": "Be yourself."}, decode(t, resp))
}

func TestScreenshot(t *testing.T) {
	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, imaging.New(32, 16, color.White), nil))

	browser := quotesBrowser()
	browser.ScreenshotData = jpg.Bytes()
	srv := newServer(t, browser, nil)

	resp := get(t, srv, "/api/screenshot?url="+pageURL)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := imaging.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 1, browser.CloseCalls)
}

func TestScreenshot_WideImageIsResized(t *testing.T) {
	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, imaging.New(2048, 1000, color.White), nil))

	browser := quotesBrowser()
	browser.ScreenshotData = jpg.Bytes()
	srv := newServer(t, browser, nil)

	resp := get(t, srv, "/api/screenshot?url="+pageURL)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	img, err := imaging.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
}

func TestFailureReleasesSession(t *testing.T) {
	browser := quotesBrowser()
	browser.Errors["GetPageText"] = errors.New("target closed")
	srv := newServer(t, browser, nil)

	resp := get(t, srv, "/api/text?url="+pageURL)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, map[string]any{
		"error":   "Failed to extract text",
		"details": "target closed",
	}, decode(t, resp))
	assert.Equal(t, 1, browser.CloseCalls)
}

func TestOpenFailure(t *testing.T) {
	factory := output.BrowserFactoryFunc(func(ctx context.Context) (output.BrowserPort, error) {
		return nil, errors.New("402 Payment Required")
	})
	srv := httptest.NewServer(NewRouter(NewHandler(factory, logger.NewNop()), zerolog.Nop()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/html?url=" + pageURL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, decode(t, resp)["details"], "402 Payment Required")
}

func TestForm(t *testing.T) {
	browser := browsertest.New(nil)
	browser.Elements = []entity.UIElement{
		{Type: "input", AriaLabel: "Your age", Selector: "#age"},
		{Type: "input", AriaLabel: "E-mail address", Selector: "#email"},
		{Type: "input", AriaLabel: "Favourite colour", Selector: "#colour"},
		{Type: "button", Text: "Submit", Selector: "#submit"},
	}
	srv := newServer(t, browser, nil)

	resp := get(t, srv, "/api/form")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body formResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, defaultFormURL, body.URL)
	assert.Equal(t, 3, body.Count)
	require.Len(t, body.Fields, 3)
	require.NotNil(t, body.Fields[0].Value)
	assert.Equal(t, "26", *body.Fields[0].Value)
	require.NotNil(t, body.Fields[1].Value)
	assert.Equal(t, "john.doe@example.com", *body.Fields[1].Value)
	assert.Nil(t, body.Fields[2].Value)

	assert.Equal(t, []string{defaultFormURL}, browser.Navigated)
	assert.Equal(t, 1, browser.CloseCalls)
}

func TestForm_MatchesLabelPlaceholderAndName(t *testing.T) {
	browser := browsertest.New(nil)
	browser.Elements = []entity.UIElement{
		{Type: "input", Label: "Postal code", Selector: "body > form > input:nth-of-type(1)"},
		{Type: "input", Name: "email", Placeholder: "Email", Selector: "body > form > input:nth-of-type(2)"},
		{Type: "input", Name: "homepageUrl", Selector: "#homepage-email"},
		{Type: "input", Selector: "#page-age"},
	}
	srv := newServer(t, browser, nil)

	resp := get(t, srv, "/api/form")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body formResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Fields, 4)

	assert.Equal(t, "Postal code", body.Fields[0].Name)
	require.NotNil(t, body.Fields[0].Value)
	assert.Equal(t, "12345", *body.Fields[0].Value)

	require.NotNil(t, body.Fields[1].Value)
	assert.Equal(t, "john.doe@example.com", *body.Fields[1].Value)

	// селектор не участвует в сопоставлении
	assert.Nil(t, body.Fields[2].Value)
	assert.Equal(t, "#page-age", body.Fields[3].Name)
	assert.Nil(t, body.Fields[3].Value)

	assert.Equal(t, map[string]string{
		"body > form > input:nth-of-type(1)": "12345",
		"body > form > input:nth-of-type(2)": "john.doe@example.com",
	}, browser.Filled)
}

func TestMapFormField(t *testing.T) {
	tests := map[string]string{
		"How old are you?":            "age",
		"Salary (W-2 Box 1)":          "wages",
		"Federal tax withheld, Box 2": "federalTax",
		"ZIP code":                    "zip",
		"Mobile phone":                "phone",
		"Wages":                       "wages",
		"homepageEmail":               "email",
		"zip_code":                    "zip",
	}
	for description, want := range tests {
		got, ok := mapFormField(description)
		assert.True(t, ok, description)
		assert.Equal(t, want, got, description)
	}

	for _, description := range []string{"Favourite colour", "Homepage", "", "Message"} {
		_, ok := mapFormField(description)
		assert.False(t, ok, description)
	}
}

func TestHealthz(t *testing.T) {
	srv := newServer(t, quotesBrowser(), nil)
	resp := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingPage = `<!DOCTYPE html>
<html>
<head><title>Job</title><style>.x{}</style></head>
<body>
<nav>Home | Jobs | About</nav>
<div class="job-description">
  <h1>Case Manager</h1>
  <p>Anchor Services is hiring a case manager to coordinate client intake.</p>
  <p>Requirements: Cert IV in Community Services.</p>
</div>
<footer>Copyright</footer>
</body>
</html>`

func TestExtractPostingTextPrefersJobContainer(t *testing.T) {
	text, err := ExtractPostingText(postingPage)

	require.NoError(t, err)
	assert.Contains(t, text, "Case Manager")
	assert.Contains(t, text, "coordinate client intake")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Copyright")
}

func TestExtractPostingTextBodyFallback(t *testing.T) {
	html := `<html><body><p>Plain posting text with no containers.</p></body></html>`

	text, err := ExtractPostingText(html)

	require.NoError(t, err)
	assert.Contains(t, text, "Plain posting text")
}

func TestJobDescriptionFetch(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(postingPage))
	}))
	defer srv.Close()

	text, err := JobDescription(context.Background(), srv.URL, nil)

	require.NoError(t, err)
	assert.Contains(t, text, "Case Manager")
	assert.Equal(t, DefaultUserAgent, gotUserAgent)
}

func TestJobDescriptionHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := JobDescription(context.Background(), srv.URL, nil)

	var ingestErr *Error
	require.ErrorAs(t, err, &ingestErr)
	assert.Contains(t, ingestErr.Message, "404")
}

func TestJobDescriptionInvalidURL(t *testing.T) {
	_, err := JobDescription(context.Background(), "not a url", nil)

	var ingestErr *Error
	require.ErrorAs(t, err, &ingestErr)
}

func TestJobDescriptionEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><nav>only nav</nav></body></html>`))
	}))
	defer srv.Close()

	_, err := JobDescription(context.Background(), srv.URL, nil)

	var ingestErr *Error
	require.ErrorAs(t, err, &ingestErr)
	assert.Contains(t, ingestErr.Message, "no readable job description")
}

func TestCleanWhitespace(t *testing.T) {
	in := "  line one  \n\n\n   line two\n   \n"
	assert.Equal(t, "line one\nline two", cleanWhitespace(in))
}

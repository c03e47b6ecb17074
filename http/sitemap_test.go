package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/docdex"
	dochttp "github.com/fwojciec/docdex/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sitemapXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://docs.example.com/aws/en/compute/clusters</loc></url>
  <url><loc>https://docs.example.com/archive/aws/en/old</loc></url>
  <url><loc>https://docs.example.com/aws/en/sql/queries</loc></url>
  <url><loc>  https://docs.example.com/aws/en/delta/tables  </loc></url>
  <url></url>
</urlset>`

func TestSitemapService_FetchURLs(t *testing.T) {
	t.Parallel()

	t.Run("returns filtered URLs in document order", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sitemapXML)
		}))
		defer srv.Close()

		svc := dochttp.NewSitemapService(srv.Client(), srv.URL+"/sitemap.xml")

		urls, err := svc.FetchURLs(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://docs.example.com/aws/en/compute/clusters",
			"https://docs.example.com/aws/en/sql/queries",
			"https://docs.example.com/aws/en/delta/tables",
		}, urls)
	})

	t.Run("custom disallowed patterns", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, sitemapXML)
		}))
		defer srv.Close()

		svc := dochttp.NewSitemapService(srv.Client(), srv.URL+"/sitemap.xml",
			dochttp.WithDisallowedPatterns([]string{"/sql/"}))

		urls, err := svc.FetchURLs(context.Background())

		require.NoError(t, err)
		assert.NotContains(t, urls, "https://docs.example.com/aws/en/sql/queries")
		assert.Contains(t, urls, "https://docs.example.com/archive/aws/en/old")
	})

	t.Run("non-200 response returns EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		svc := dochttp.NewSitemapService(srv.Client(), srv.URL+"/sitemap.xml")

		_, err := svc.FetchURLs(context.Background())

		require.Error(t, err)
		assert.Equal(t, docdex.EUNAVAILABLE, docdex.ErrorCode(err))
	})

	t.Run("unreachable server returns EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		svc := dochttp.NewSitemapService(nil, "http://127.0.0.1:0/sitemap.xml")

		_, err := svc.FetchURLs(context.Background())

		require.Error(t, err)
		assert.Equal(t, docdex.EUNAVAILABLE, docdex.ErrorCode(err))
	})

	t.Run("malformed XML returns EINVALID", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<urlset><url>")
		}))
		defer srv.Close()

		svc := dochttp.NewSitemapService(srv.Client(), srv.URL+"/sitemap.xml")

		_, err := svc.FetchURLs(context.Background())

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("empty urlset returns no URLs", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"></urlset>`)
		}))
		defer srv.Close()

		svc := dochttp.NewSitemapService(srv.Client(), srv.URL+"/sitemap.xml")

		urls, err := svc.FetchURLs(context.Background())

		require.NoError(t, err)
		assert.Empty(t, urls)
	})
}

package mux

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		stripped string
		format   Format
		ok       bool
	}{
		{name: "no extension", path: "/widgets", stripped: "/widgets", format: FormatJSON},
		{name: "xml extension", path: "/widgets.xml", stripped: "/widgets", format: FormatXML, ok: true},
		{name: "json extension", path: "/widgets.json", stripped: "/widgets", format: FormatJSON, ok: true},
		{name: "jsonp extension", path: "/widgets.jsonp", stripped: "/widgets", format: FormatJSONP, ok: true},
		{name: "html alias", path: "/page.xhtml", stripped: "/page", format: FormatHTML, ok: true},
		{name: "php alias", path: "/data.phtml", stripped: "/data", format: FormatPHPSerialized, ok: true},
		{name: "text alias", path: "/notes.txt", stripped: "/notes", format: FormatText, ok: true},
		{name: "javascript", path: "/app.js", stripped: "/app", format: FormatJavaScript, ok: true},
		{name: "css", path: "/site.css", stripped: "/site", format: FormatCSS, ok: true},
		{name: "pdf", path: "/invoice.pdf", stripped: "/invoice", format: FormatPDF, ok: true},
		{name: "upper case extension", path: "/widgets.XML", stripped: "/widgets", format: FormatXML, ok: true},
		{name: "slash form", path: "/widgets/xml", stripped: "/widgets", format: FormatXML, ok: true},
		{name: "unknown extension", path: "/archive.zip", stripped: "/archive.zip", format: FormatJSON},
		{name: "root with extension", path: "/.xml", stripped: "/", format: FormatXML, ok: true},
		{name: "extension only in middle", path: "/a.xml/b", stripped: "/a.xml/b", format: FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stripped, format, ok := ResolveFormat(tt.path)
			assert.Equal(t, tt.stripped, stripped)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestResolveRequestFormat(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		query    url.Values
		param    string
		stripped string
		format   Format
	}{
		{
			name:     "json with callback becomes jsonp",
			path:     "/widgets",
			query:    url.Values{"callback": {"cb"}},
			param:    "callback",
			stripped: "/widgets",
			format:   FormatJSONP,
		},
		{
			name:     "explicit json with callback becomes jsonp",
			path:     "/widgets.json",
			query:    url.Values{"callback": {"cb"}},
			param:    "callback",
			stripped: "/widgets",
			format:   FormatJSONP,
		},
		{
			name:     "xml with callback stays xml",
			path:     "/widgets.xml",
			query:    url.Values{"callback": {"cb"}},
			param:    "callback",
			stripped: "/widgets",
			format:   FormatXML,
		},
		{
			name:     "json without callback stays json",
			path:     "/widgets",
			query:    url.Values{},
			param:    "callback",
			stripped: "/widgets",
			format:   FormatJSON,
		},
		{
			name:     "empty callback value stays json",
			path:     "/widgets",
			query:    url.Values{"callback": {""}},
			param:    "callback",
			stripped: "/widgets",
			format:   FormatJSON,
		},
		{
			name:     "custom callback parameter",
			path:     "/widgets",
			query:    url.Values{"jsonp": {"cb"}},
			param:    "jsonp",
			stripped: "/widgets",
			format:   FormatJSONP,
		},
		{
			name:     "empty parameter disables upgrade",
			path:     "/widgets",
			query:    url.Values{"callback": {"cb"}},
			param:    "",
			stripped: "/widgets",
			format:   FormatJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stripped, format := ResolveRequestFormat(tt.path, tt.query, tt.param)
			assert.Equal(t, tt.stripped, stripped)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestFormat(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "json", FormatJSON.String())
		assert.Equal(t, "php", FormatPHPSerialized.String())
		assert.Equal(t, "unknown", Format(99).String())
	})

	t.Run("mime type", func(t *testing.T) {
		assert.Equal(t, "application/xml", FormatXML.MIMEType())
		assert.Equal(t, "application/javascript", FormatJSONP.MIMEType())
		assert.Equal(t, "application/json", Format(99).MIMEType())
	})

	t.Run("parse by name and extension", func(t *testing.T) {
		f, ok := ParseFormat("javascript")
		assert.True(t, ok)
		assert.Equal(t, FormatJavaScript, f)

		f, ok = ParseFormat("HTM")
		assert.True(t, ok)
		assert.Equal(t, FormatHTML, f)

		f, ok = ParseFormat("docx")
		assert.False(t, ok)
		assert.Equal(t, DefaultFormat, f)
	})

	t.Run("extensions returns a copy", func(t *testing.T) {
		exts := Extensions()
		exts["docx"] = FormatText
		_, ok := extensionFormats["docx"]
		assert.False(t, ok)
	})
}

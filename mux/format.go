package mux

import (
	"net/url"
	"strings"

	"github.com/grafana/regexp"
)

// Format is the serialization format of a response.
type Format int

const (
	FormatJSON Format = iota
	FormatCSS
	FormatHTML
	FormatJavaScript
	FormatJSONP
	FormatPDF
	FormatPHPSerialized
	FormatText
	FormatXML
)

// DefaultFormat is used when a path carries no recognized extension.
const DefaultFormat = FormatJSON

var formatNames = map[Format]string{
	FormatCSS:           "css",
	FormatHTML:          "html",
	FormatJavaScript:    "javascript",
	FormatJSON:          "json",
	FormatJSONP:         "jsonp",
	FormatPDF:           "pdf",
	FormatPHPSerialized: "php",
	FormatText:          "text",
	FormatXML:           "xml",
}

var formatMIMETypes = map[Format]string{
	FormatCSS:           "text/css",
	FormatHTML:          "text/html",
	FormatJavaScript:    "application/javascript",
	FormatJSON:          "application/json",
	FormatJSONP:         "application/javascript",
	FormatPDF:           "application/pdf",
	FormatPHPSerialized: "application/vnd.php.serialized",
	FormatText:          "text/plain",
	FormatXML:           "application/xml",
}

// extensionFormats maps path extensions to formats.
var extensionFormats = map[string]Format{
	"css":   FormatCSS,
	"htm":   FormatHTML,
	"html":  FormatHTML,
	"xhtml": FormatHTML,
	"dhtml": FormatHTML,
	"js":    FormatJavaScript,
	"json":  FormatJSON,
	"jsonp": FormatJSONP,
	"pdf":   FormatPDF,
	"php":   FormatPHPSerialized,
	"phtm":  FormatPHPSerialized,
	"phtml": FormatPHPSerialized,
	"text":  FormatText,
	"txt":   FormatText,
	"xml":   FormatXML,
}

// trailingExtension captures a trailing ".ext" or "/ext" component.
var trailingExtension = regexp.MustCompile(`(?:\.|/)([A-Za-z]+)$`)

// String returns the short name of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// MIMEType returns the Content-Type value for the format.
func (f Format) MIMEType() string {
	if mt, ok := formatMIMETypes[f]; ok {
		return mt
	}
	return formatMIMETypes[DefaultFormat]
}

// ParseFormat returns the format for a short name or extension.
func ParseFormat(name string) (Format, bool) {
	name = strings.ToLower(name)
	if f, ok := extensionFormats[name]; ok {
		return f, true
	}
	for f, n := range formatNames {
		if n == name {
			return f, true
		}
	}
	return DefaultFormat, false
}

// Extensions returns a copy of the extension to format table.
func Extensions() map[string]Format {
	out := make(map[string]Format, len(extensionFormats))
	for ext, f := range extensionFormats {
		out[ext] = f
	}
	return out
}

// ResolveFormat selects a response format from the trailing extension of
// path and returns the path with that extension removed. When the path has
// no recognized extension, the path is returned unchanged with the
// default format and ok set to false.
func ResolveFormat(path string) (string, Format, bool) {
	loc := trailingExtension.FindStringSubmatchIndex(path)
	if loc == nil {
		return path, DefaultFormat, false
	}

	ext := strings.ToLower(path[loc[2]:loc[3]])
	f, ok := extensionFormats[ext]
	if !ok {
		return path, DefaultFormat, false
	}

	stripped := path[:loc[0]]
	if stripped == "" {
		stripped = "/"
	}

	return stripped, f, true
}

// ResolveRequestFormat runs ResolveFormat and then upgrades JSON to JSONP
// when the query carries a non-empty callbackParam value. No other format is
// ever changed by the callback parameter. An empty callbackParam disables
// the upgrade.
func ResolveRequestFormat(path string, query url.Values, callbackParam string) (string, Format) {
	stripped, f, _ := ResolveFormat(path)

	if f == FormatJSON && callbackParam != "" && query.Get(callbackParam) != "" {
		f = FormatJSONP
	}

	return stripped, f
}

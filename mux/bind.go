package mux

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoBody is returned by the Bind functions when the request has no body.
	ErrNoBody = errors.New("mux: request has no body")

	// ErrTrailingData is returned when the body holds more than one value.
	ErrTrailingData = errors.New("mux: unexpected trailing data after body value")
)

// Bind decodes the request body into v, choosing the decoder from the
// Content-Type header. A request without Content-Type is decoded as JSON.
// Unsupported media types are returned as a 415 *HTTPError and decode
// failures as a 400 *HTTPError, so an action can return the error as is:
//
//	func (n *Notes) Add(_ *mux.Args) error {
//	    var note Note
//	    if err := mux.Bind(n.Request, &note); err != nil {
//	        return err
//	    }
//	    ...
//	}
func Bind(req *Request, v any) error {
	decode, err := bodyDecoder(req.Header.Get("Content-Type"))
	if err != nil {
		return err
	}

	if err := decode(req, v); err != nil {
		return NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

func bodyDecoder(contentType string) (func(*Request, any) error, error) {
	if contentType == "" {
		return BindJSON, nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, NewHTTPError(http.StatusUnsupportedMediaType, "")
	}

	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return BindJSON, nil
	case mediaType == "application/xml", mediaType == "text/xml", strings.HasSuffix(mediaType, "+xml"):
		return BindXML, nil
	case mediaType == "application/yaml", mediaType == "application/x-yaml", mediaType == "text/yaml":
		return BindYAML, nil
	}

	return nil, NewHTTPError(http.StatusUnsupportedMediaType, "unsupported media type "+mediaType)
}

// BindJSON decodes the request body as JSON into v. Fields that do not map
// to exported struct fields are rejected, and exactly one JSON value must
// be present.
func BindJSON(req *Request, v any) error {
	if req.Body == nil {
		return ErrNoBody
	}

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}

	return nil
}

// BindXML decodes the request body as XML into v. Exactly one element
// must be present.
func BindXML(req *Request, v any) error {
	if req.Body == nil {
		return ErrNoBody
	}

	dec := xml.NewDecoder(req.Body)

	if err := dec.Decode(v); err != nil {
		return err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}

	return nil
}

// BindYAML decodes the request body as a single YAML document into v.
// Unknown fields are rejected.
func BindYAML(req *Request, v any) error {
	if req.Body == nil {
		return ErrNoBody
	}

	dec := yaml.NewDecoder(req.Body)
	dec.KnownFields(true)

	if err := dec.Decode(v); err != nil {
		return err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}

	return nil
}

// BindParams copies the named route parameters into the struct pointed to
// by v, matching parameter names against json tags. Values keep their
// coerced types, so an int64 parameter fills an int field.
func BindParams(args *Args, v any) error {
	if args == nil || len(args.Named) == 0 {
		return nil
	}

	data, err := json.Marshal(args.Named)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, v)
}

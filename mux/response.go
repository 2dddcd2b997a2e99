package mux

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/grafana/regexp"
)

// DefaultXMLRoot is the root element name used for XML responses.
const DefaultXMLRoot = "response"

// jsonpCallback restricts JSONP callback names to dotted identifiers.
var jsonpCallback = regexp.MustCompile(`^[A-Za-z_$][0-9A-Za-z_$]*(?:\.[A-Za-z_$][0-9A-Za-z_$]*)*$`)

// xmlName accepts element names that need no escaping.
var xmlName = regexp.MustCompile(`^[A-Za-z_][0-9A-Za-z_.-]*$`)

// ErrInvalidCallback is returned when a JSONP callback name is not a
// dotted identifier.
var ErrInvalidCallback = errors.New("invalid jsonp callback")

// Response is the response shared by hooks and the endpoint. Endpoints set
// Data; the router serializes it in Format.
type Response struct {
	Status   int
	Header   http.Header
	Format   Format
	Data     any
	XMLRoot  string
	Callback string
}

// NewResponse returns a 200 response in the default format.
func NewResponse() *Response {
	return &Response{
		Status:  http.StatusOK,
		Header:  make(http.Header),
		Format:  DefaultFormat,
		XMLRoot: DefaultXMLRoot,
	}
}

// Set stores data as the response payload.
func (r *Response) Set(data any) {
	r.Data = data
}

// SetStatus sets the response status code.
func (r *Response) SetStatus(code int) {
	r.Status = code
}

// ContentType returns the Content-Type header value for the response.
func (r *Response) ContentType() string {
	mt := r.Format.MIMEType()
	switch r.Format {
	case FormatPDF, FormatPHPSerialized:
		return mt
	}
	return mt + "; charset=utf-8"
}

// Serialize encodes Data in the response format.
func (r *Response) Serialize() ([]byte, error) {
	switch r.Format {
	case FormatJSON:
		return encodeJSON(r.Data)
	case FormatJSONP:
		return encodeJSONP(r.Callback, r.Data)
	case FormatXML:
		root := r.XMLRoot
		if root == "" {
			root = DefaultXMLRoot
		}
		return encodeXML(root, r.Data)
	case FormatPHPSerialized:
		return encodePHP(r.Data)
	case FormatPDF:
		switch v := r.Data.(type) {
		case []byte:
			return v, nil
		case string:
			return []byte(v), nil
		case nil:
			return nil, nil
		}
		return nil, fmt.Errorf("mux: cannot serialize %T as pdf", r.Data)
	default:
		return encodeText(r.Data), nil
	}
}

// WriteTo writes status, headers and body to w.
func (r *Response) WriteTo(w http.ResponseWriter, body []byte) {
	for k, vs := range r.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", r.ContentType())

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}

	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func encodeJSONP(callback string, v any) ([]byte, error) {
	if !jsonpCallback.MatchString(callback) {
		return nil, fmt.Errorf("mux: %w %q", ErrInvalidCallback, callback)
	}

	data, err := encodeJSON(v)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(callback)+len(data)+3)
	out = append(out, callback...)
	out = append(out, '(')
	out = append(out, data...)
	out = append(out, ')', ';')
	return out, nil
}

func encodeText(v any) []byte {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		return t
	case string:
		return []byte(t)
	case fmt.Stringer:
		return []byte(t.String())
	}
	return []byte(fmt.Sprint(v))
}

// normalize converts arbitrary values into the JSON data model: maps with
// string keys, slices, strings, json.Number, bools and nil.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeXML(root string, v any) ([]byte, error) {
	if _, ok := v.(xml.Marshaler); ok {
		return xml.Marshal(v)
	}

	data, err := normalize(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	if err := writeXMLElement(enc, root, data); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeXMLElement(enc *xml.Encoder, name string, v any) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if !xmlName.MatchString(name) {
		start = xml.StartElement{
			Name: xml.Name{Local: "item"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "key"}, Value: name}},
		}
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := writeXMLElement(enc, k, t[k]); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range t {
			if err := writeXMLElement(enc, "item", item); err != nil {
				return err
			}
		}
	case nil:
	default:
		if err := enc.EncodeToken(xml.CharData(fmt.Sprint(t))); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

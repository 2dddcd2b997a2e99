package mux

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// encodePHP writes v in the format produced by PHP's serialize().
func encodePHP(v any) ([]byte, error) {
	data, err := normalize(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writePHP(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePHP(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("N;")
	case bool:
		if t {
			buf.WriteString("b:1;")
		} else {
			buf.WriteString("b:0;")
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			fmt.Fprintf(buf, "i:%d;", n)
			return nil
		}
		f, err := t.Float64()
		if err != nil {
			return err
		}
		fmt.Fprintf(buf, "d:%s;", strconv.FormatFloat(f, 'G', -1, 64))
	case string:
		writePHPString(buf, t)
	case []any:
		fmt.Fprintf(buf, "a:%d:{", len(t))
		for i, item := range t {
			fmt.Fprintf(buf, "i:%d;", i)
			if err := writePHP(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintf(buf, "a:%d:{", len(t))
		for _, k := range keys {
			writePHPString(buf, k)
			if err := writePHP(buf, t[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("mux: cannot serialize %T as php", v)
	}
	return nil
}

// writePHPString writes s with its byte length, as PHP does.
func writePHPString(buf *bytes.Buffer, s string) {
	fmt.Fprintf(buf, "s:%d:\"%s\";", len(s), s)
}

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/bson-format/go-bson/extjson"
	"github.com/bson-format/go-bson/ir"
)

// readDocs reads one input, which holds either concatenated wire
// documents, one extended JSON value, or one YAML value. "-" reads
// stdin.
func readDocs(arg string, opts ...ir.ReadOption) ([]*ir.Document, error) {
	var r io.Reader
	if arg == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	docs, err := parseDocs(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return docs, nil
}

func parseDocs(data []byte, opts ...ir.ReadOption) ([]*ir.Document, error) {
	if looksLikeWire(data) {
		var docs []*ir.Document
		rest := data
		for len(rest) > 0 {
			if !looksLikeWire(rest) {
				return nil, fmt.Errorf("trailing garbage after document %d", len(docs))
			}
			n := int(binary.LittleEndian.Uint32(rest[:4]))
			doc, err := ir.ReadDocument(rest[:n], opts...)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			rest = rest[n:]
		}
		return docs, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		doc, err := extjson.DecodeDocument(trimmed)
		if err != nil {
			return nil, err
		}
		return []*ir.Document{doc}, nil
	}
	v, err := extjson.FromYAML(data)
	if err != nil {
		return nil, err
	}
	doc, ok := v.(*ir.Document)
	if !ok {
		return nil, fmt.Errorf("top-level value is %s, not a document", v.Kind())
	}
	return []*ir.Document{doc}, nil
}

// looksLikeWire sniffs the length-prefixed framing.
func looksLikeWire(data []byte) bool {
	if len(data) < 5 {
		return false
	}
	n := binary.LittleEndian.Uint32(data[:4])
	return n >= 5 && int(n) <= len(data) && data[n-1] == 0
}

func writeValue(cfg *MainConfig, w io.Writer, v ir.Value) error {
	switch {
	case cfg.W:
		d, ok := v.(*ir.Document)
		if !ok {
			return fmt.Errorf("wire output needs a document, have %s", v.Kind())
		}
		raw, err := d.Encode()
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	case cfg.Y:
		out, err := extjson.ToYAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		if err := extjson.Encode(v, w, cfg.encOpts(w)...); err != nil {
			return err
		}
		_, err := w.Write([]byte("\n"))
		return err
	}
}

func argsOrStdin(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

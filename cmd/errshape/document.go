package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Sumatoshi-tech/errshape/pkg/shapedoc"
)

const stdinPath = "-"

// loadDocument reads a shape document from path, or from in when path is "-".
// formatName overrides the format inferred from the extension; stdin defaults
// to YAML.
func loadDocument(in io.Reader, path, formatName string) (*shapedoc.Compiled, error) {
	doc, err := decodeDocument(in, path, formatName)
	if err != nil {
		return nil, err
	}

	compiled, err := doc.Compile(nil)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	return compiled, nil
}

func decodeDocument(in io.Reader, path, formatName string) (*shapedoc.Document, error) {
	if formatName == "" && path != stdinPath {
		return shapedoc.Load(path)
	}

	format := shapedoc.FormatYAML

	if formatName != "" {
		parsed, err := shapedoc.ParseFormat(formatName)
		if err != nil {
			return nil, err
		}

		format = parsed
	}

	var (
		data []byte
		err  error
	)

	if path == stdinPath {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	doc, err := shapedoc.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

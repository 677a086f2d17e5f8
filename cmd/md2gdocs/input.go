package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"md2gdocs/markdown"
)

type source struct {
	// Path is absolute, or empty when the input came from stdin.
	Path string
	Meta markdown.FrontMatter
	Body string
}

func readSource(arg string, stdin io.Reader) (*source, error) {
	var (
		data []byte
		path string
		err  error
	)

	if arg == "" || arg == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	} else {
		path, err = filepath.Abs(arg)
		if err != nil {
			return nil, inputError(err, "cannot resolve "+arg)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, inputError(err, "cannot read "+arg)
		}
	}

	meta, body := markdown.SplitFrontMatter(data)
	return &source{Path: path, Meta: meta, Body: string(body)}, nil
}

// title picks the document title: flag, then front matter, then the file
// name without its extension.
func (s *source) title(flag string) string {
	if flag != "" {
		return flag
	}
	if s.Meta.Title != "" {
		return s.Meta.Title
	}
	if s.Path != "" {
		base := filepath.Base(s.Path)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return "Untitled"
}

func sourceArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

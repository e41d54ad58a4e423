// Package report writes discovery results to stdout in the requested format.
package report

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/indaco/wfroots/internal/config"
	"github.com/indaco/wfroots/internal/discovery"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// document is the structured form shared by the json and yaml formats.
type document struct {
	Roots     []string `yaml:"roots"`
	Running   []string `yaml:"running"`
	Installed []string `yaml:"installed"`
}

func newDocument(result *discovery.Result) document {
	return document{
		Roots:     nonNil(result.Roots()),
		Running:   nonNil(result.Running.Sorted()),
		Installed: nonNil(result.Installed.Sorted()),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Write renders result to w. The text format prints one installation root
// per line and nothing else.
func Write(w io.Writer, format string, result *discovery.Result) error {
	switch format {
	case config.FormatText, "":
		return writeText(w, result.Roots())
	case config.FormatJSON:
		return writeJSON(w, newDocument(result))
	case config.FormatYAML:
		return writeYAML(w, newDocument(result))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, roots []string) error {
	for _, root := range roots {
		if _, err := fmt.Fprintln(w, root); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, doc document) error {
	out := []byte(`{}`)
	var err error
	for _, field := range []struct {
		key   string
		value []string
	}{
		{"roots", doc.Roots},
		{"running", doc.Running},
		{"installed", doc.Installed},
	} {
		if out, err = sjson.SetBytes(out, field.key, field.value); err != nil {
			return fmt.Errorf("failed to encode %s: %w", field.key, err)
		}
	}

	_, err = w.Write(pretty.Pretty(out))
	return err
}

func writeYAML(w io.Writer, doc document) error {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

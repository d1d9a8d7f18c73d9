package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"consultcoach/internal/model"

	"gopkg.in/yaml.v3"
)

func writeOutput(w io.Writer, format string, v interface{}) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		out, err := toYAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

// toYAML renders v with its JSON field names and field order.
func toYAML(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)
	return yaml.Marshal(&node)
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

func writeReportText(w io.Writer, report model.Report) {
	for i, section := range report.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, section.Title)
		fmt.Fprintln(w, strings.Repeat("=", len(section.Title)))
		body := section.Body
		if strings.TrimSpace(body) == "" {
			body = "(none)"
		}
		fmt.Fprintln(w, body)
	}
}

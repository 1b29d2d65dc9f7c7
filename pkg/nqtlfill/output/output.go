// Package output serializes assembly reports.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/nqtlfill-go/pkg/nqtlfill/models"
)

// Format names a report encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml"; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be json or yaml)", s)
	}
}

// ToJSON serializes rep as JSON. Map keys are emitted in sorted order.
func ToJSON(rep *models.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(rep, "", "  ")
	}
	return json.Marshal(rep)
}

// ToYAML serializes rep as YAML.
func ToYAML(rep *models.Report) ([]byte, error) {
	return marshalYAML(rep)
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes rep to w in format.
func Write(w io.Writer, rep *models.Report, format Format, pretty bool) error {
	return Encode(w, rep, format, pretty)
}

// Encode writes any json/yaml tagged value to w in format. JSON output ends
// with a newline.
func Encode(w io.Writer, v any, format Format, pretty bool) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = marshalYAML(v)
	default:
		if pretty {
			data, err = json.MarshalIndent(v, "", "  ")
		} else {
			data, err = json.Marshal(v)
		}
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

package writer

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

type YAML struct {
	StructuredFormat
}

func NewYAML() InspectWriter {
	return &YAML{
		StructuredFormat: StructuredFormat{
			MarshalFunc: func(i interface{}) ([]byte, error) {
				buf := bytes.NewBuffer([]byte("---\n"))
				enc := yaml.NewEncoder(buf)
				enc.SetIndent(2)
				if err := enc.Encode(i); err != nil {
					return []byte{}, err
				}
				if err := enc.Close(); err != nil {
					return []byte{}, err
				}
				return buf.Bytes(), nil
			},
		},
	}
}

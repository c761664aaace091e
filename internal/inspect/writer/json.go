package writer

import (
	"bytes"
	"encoding/json"
)

type JSON struct {
	StructuredFormat
}

func NewJSON() InspectWriter {
	return &JSON{
		StructuredFormat: StructuredFormat{
			MarshalFunc: func(i interface{}) ([]byte, error) {
				buf, err := json.Marshal(i)
				if err != nil {
					return []byte{}, err
				}
				formattedBuf := bytes.NewBuffer(nil)
				if err := json.Indent(formattedBuf, buf, "", "  "); err != nil {
					return []byte{}, err
				}
				formattedBuf.WriteString("\n")
				return formattedBuf.Bytes(), nil
			},
		},
	}
}

package curriculum

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCurriculum []byte

// Default returns the built-in starter curriculum.
func Default() (*Curriculum, error) {
	return ParseYAML(bytes.NewReader(defaultCurriculum))
}

func ParseYAML(r io.Reader) (*Curriculum, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Curriculum
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode curriculum yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

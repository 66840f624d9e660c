package memspec

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads a JSON memory specification file and validates it.
func Load(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return s, nil
}

// Decode reads a JSON memory specification. Fields that are absent keep the
// values of the protocol preset named in the document, or DDR3 if none is
// named.
func Decode(r io.Reader) (*Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var header struct {
		Protocol *Protocol `json:"protocol"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, err
	}

	s := Preset(DDR3)
	if header.Protocol != nil {
		s = Preset(*header.Protocol)
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Encode writes the specification as indented JSON.
func Encode(w io.Writer, s *Spec) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s)
}

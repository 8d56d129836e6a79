package platefile

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/plateforge/plateforge/pkg/errors"
)

// Parse decodes a TOML plate document from r. Parse does not close r.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlateFile, err, "reading plate document")
	}
	return parse(data)
}

// Load reads a TOML plate document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "plate file %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlateFile, err, "reading %s", path)
	}
	return parse(data)
}

func parse(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlateFile, err, "parsing plate document")
	}
	return &doc, nil
}

package storage

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

type yamlCodec struct{}

func (yamlCodec) write(path string, snap Snapshot) error {
	return writeFileAtomic(path, ".contacts-*.yaml.tmp", func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	})
}

func (yamlCodec) read(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", types.ErrMalformedSnapshot, err)
	}
	return snap, nil
}

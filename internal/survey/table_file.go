package survey

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alma-imf/contsel/internal/domain"
)

// tableFile is the on-disk layout of a band-table override file.
type tableFile struct {
	Overrides []Override `yaml:"overrides"`
}

// LoadOverrides reads a YAML band-table file:
//
//	overrides:
//	  - name: b6-extra-window
//	    bands:
//	      - id: B6
//	        windows:
//	          - id: 8
//	            min: 240.0GHz
//	            max: 240.5GHz
//	            channels: 960
//
// Unknown keys are rejected so a typo cannot silently drop a patch.
func LoadOverrides(path string) ([]Override, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: band table: %w", domain.ErrConfiguration, err)
	}
	var tf tableFile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: band table %s: %v", domain.ErrConfiguration, path, err)
	}
	for i, o := range tf.Overrides {
		if o.Name == "" {
			tf.Overrides[i].Name = fmt.Sprintf("%s#%d", path, i)
		}
	}
	return tf.Overrides, nil
}

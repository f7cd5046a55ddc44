package rubric

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mind-engage/introscore/internal/storage"
)

// Convert regenerates rubric.json from rubric.xlsx in store and returns the
// converted rubric.
func Convert(store storage.BlobStore) (*Rubric, error) {
	r, err := NewLoader(store).read(XLSXKey)
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	if _, err := store.Put(JSONKey, bytes.NewReader(append(b, '\n'))); err != nil {
		return nil, fmt.Errorf("write %s: %w", JSONKey, err)
	}
	return r, nil
}

package raidsync

import "encoding/json"

// Marshaler converts an object to and from a byte array. BlockCatalog.Save
// uses it to serialize the disk/block inventory whenever it is called (the
// sync driver calls it at every autosave checkpoint); the default
// implementation is encoding/json.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type defaultMarshaler struct{}

// NewMarshaler returns the default Marshaler, backed by encoding/json, used
// unless a caller supplies its own for the catalog's on-disk format.
func NewMarshaler() Marshaler {
	return defaultMarshaler{}
}

func (defaultMarshaler) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (defaultMarshaler) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

package badger

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/veldt/corpusqa/vecstore"
)

// manifest records the fixed configuration of a named index.
type manifest struct {
	Dimension int
	Metric    string
	CreatedAt int64 // unix micro
}

func marshalManifest(m manifest) []byte {
	size := varint.Int.Size(m.Dimension) +
		ord.String.Size(m.Metric) +
		varint.Int64.Size(m.CreatedAt)
	bs := make([]byte, size)
	n := varint.Int.Marshal(m.Dimension, bs)
	n += ord.String.Marshal(m.Metric, bs[n:])
	varint.Int64.Marshal(m.CreatedAt, bs[n:])
	return bs
}

func unmarshalManifest(bs []byte) (m manifest, err error) {
	n := 0
	m.Dimension, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return m, fmt.Errorf("%w: %v", vecstore.ErrSerializationFailed, err)
	}
	var n1 int
	m.Metric, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return m, fmt.Errorf("%w: %v", vecstore.ErrSerializationFailed, err)
	}
	m.CreatedAt, _, err = varint.Int64.Unmarshal(bs[n:])
	if err != nil {
		return m, fmt.Errorf("%w: %v", vecstore.ErrSerializationFailed, err)
	}
	return m, nil
}

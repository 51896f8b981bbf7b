package entity

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/searchlite/searchlite/pkg/domain"
)

// deepCopyRecord returns a structurally independent copy of a record via a
// MessagePack encode/decode roundtrip. Query results are copies so a caller
// mutating one cannot corrupt the primary index or a later query.
func deepCopyRecord(record domain.Record) (domain.Record, error) {
	raw, err := msgpack.Marshal(map[string]interface{}(record))
	if err != nil {
		return nil, err
	}

	var copied domain.Record
	if err := msgpack.Unmarshal(raw, &copied); err != nil {
		return nil, err
	}
	return copied, nil
}

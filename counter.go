package bookdb

import "encoding/binary"

var counterKey = []byte("id")

const counterSize = 8

// NextID increments the ID counter and returns the new value. The first ID
// handed out by a fresh store is 1.
//
// The increment is part of tx: if tx does not commit, the ID is not consumed.
func (tx *Tx) NextID() uint64 {
	buck := tx.bucket(counterRegion)
	id := tx.loadCounter(buck) + 1
	var raw [counterSize]byte
	binary.BigEndian.PutUint64(raw[:], id)
	err := buck.Put(counterKey, raw[:])
	if err != nil {
		panic(regionErrf(counterRegion, counterKey, err, "cannot increment id counter"))
	}
	if tx.db.verbose {
		tx.db.logger.Debug("db: NEXTID", "id", id)
	}
	return id
}

// LastID returns the most recently minted ID, or 0 if none were minted.
func (tx *Tx) LastID() uint64 {
	return tx.loadCounter(tx.bucket(counterRegion))
}

func (tx *Tx) loadCounter(buck storageBucket) uint64 {
	raw := buck.Get(counterKey)
	if raw == nil {
		return 0
	}
	if len(raw) != counterSize {
		panic(regionErrf(counterRegion, counterKey, dataErrf(raw, 0, nil, "invalid counter: got %d bytes, expected %d", len(raw), counterSize), ""))
	}
	return binary.BigEndian.Uint64(raw)
}

package bookdb

type Stats struct {
	LastID    uint64
	Books     int
	DataSize  int64
	DataAlloc int64
}

func (tx *Tx) Stats() Stats {
	bs := tx.bucket(booksRegion).Stats()
	return Stats{
		LastID:    tx.LastID(),
		Books:     bs.KeyN,
		DataSize:  bs.DataInuse,
		DataAlloc: bs.DataAlloc,
	}
}

func (db *DB) Stats() Stats {
	var stats Stats
	db.Read(func(tx *Tx) {
		stats = tx.Stats()
	})
	return stats
}

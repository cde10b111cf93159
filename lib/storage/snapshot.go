package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"

	"stakegate.io/stakegate/lib/errors"
)

// Snapshot is a read-only view of the backend at a point in time. It
// satisfies LevelDBCore so inspection tools can reuse the read path,
// every write returns `errors.NotImplemented`.
type Snapshot struct {
	*leveldb.Snapshot
}

func NewSnapshot(st *LevelDBBackend) (*Snapshot, error) {
	snapshot, err := st.DB.GetSnapshot()
	if err != nil {
		return nil, err
	}

	return &Snapshot{Snapshot: snapshot}, nil
}

func (s *Snapshot) Put([]byte, []byte, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}

func (s *Snapshot) Write(*leveldb.Batch, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}

func (s *Snapshot) Delete([]byte, *leveldbOpt.WriteOptions) error {
	return errors.NotImplemented
}

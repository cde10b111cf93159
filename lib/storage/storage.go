package storage

type Serializable interface {
	Serialize() ([]byte, error)
}

type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}

// Clone copies the item out of the iterator's shared buffers, for
// callers that hold items across iteration steps.
func (i IterItem) Clone() IterItem {
	return IterItem{
		N:     i.N,
		Key:   append([]byte{}, i.Key...),
		Value: append([]byte{}, i.Value...),
	}
}

type Item struct {
	Key   string
	Value interface{}
}

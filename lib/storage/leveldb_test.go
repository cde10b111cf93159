package storage

import (
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"stakegate.io/stakegate/lib/errors"
)

func TestLevelDBBackendFileStorage(t *testing.T) {
	path, err := ioutil.TempDir("", "stakegate-storage")
	require.NoError(t, err)
	defer CleanDB(path)

	config, err := NewConfigFromString("file://" + path)
	require.NoError(t, err)

	st := &LevelDBBackend{}
	require.NoError(t, st.Init(config))

	key := uuid.New().String()
	require.NoError(t, st.New(key, "persisted"))
	require.NoError(t, st.Close())

	// records written to a file backend survive reopening
	reopened := &LevelDBBackend{}
	require.NoError(t, reopened.Init(config))
	defer reopened.Close()

	var fetched string
	require.NoError(t, reopened.Get(key, &fetched))
	require.Equal(t, "persisted", fetched)
}

func TestLevelDBBackendNewGet(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := uuid.New().String()
	input := map[string]string{"showme": "findme"}

	require.NoError(t, st.New(key, input))

	exists, err := st.Has(key)
	require.NoError(t, err)
	require.True(t, exists)

	var fetched map[string]string
	require.NoError(t, st.Get(key, &fetched))
	require.Equal(t, input, fetched)
}

func TestLevelDBBackendNewDuplicated(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := uuid.New().String()
	require.NoError(t, st.New(key, "first"))

	err := st.New(key, "second")
	require.Equal(t, errors.StorageRecordAlreadyExists, err)
}

func TestLevelDBBackendGetMissing(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	var fetched string
	err := st.Get(uuid.New().String(), &fetched)
	require.Equal(t, errors.StorageRecordDoesNotExist, err)
}

func TestLevelDBBackendSet(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := uuid.New().String()

	// `Set` requires the record to exist already
	err := st.Set(key, 10)
	require.Equal(t, errors.StorageRecordDoesNotExist, err)

	require.NoError(t, st.New(key, 10))
	require.NoError(t, st.Set(key, 20))

	var fetched int
	require.NoError(t, st.Get(key, &fetched))
	require.Equal(t, 20, fetched)
}

func TestLevelDBBackendRemove(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := uuid.New().String()
	require.NoError(t, st.New(key, 10))

	require.NoError(t, st.Remove(key))

	exists, err := st.Has(key)
	require.NoError(t, err)
	require.False(t, exists)

	require.Equal(t, errors.StorageRecordDoesNotExist, st.Remove(key))
}

func TestLevelDBBackendNews(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	items := []Item{
		{Key: "news-0", Value: 0},
		{Key: "news-1", Value: 1},
		{Key: "news-2", Value: 2},
	}
	require.NoError(t, st.News(items...))

	for i, item := range items {
		var fetched int
		require.NoError(t, st.Get(item.Key, &fetched))
		require.Equal(t, i, fetched)
	}

	// one existing key fails the whole call
	err := st.News(Item{Key: "news-3", Value: 3}, Item{Key: "news-0", Value: 0})
	require.Equal(t, errors.StorageRecordAlreadyExists, err)
}

func TestLevelDBBackendGetIterator(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	total := 10
	for i := 0; i < total; i++ {
		require.NoError(t, st.New(fmt.Sprintf("iter-%03d", i), i))
	}
	require.NoError(t, st.New("other-000", 99))

	{ // forward, the prefix bounds the walk
		it, closeFunc := st.GetIterator("iter-", NewDefaultListOptions(false, nil, 0))
		defer closeFunc()

		var keys []string
		for {
			item, hasNext := it()
			if !hasNext {
				break
			}
			keys = append(keys, string(item.Key))
		}
		require.Equal(t, total, len(keys))
		require.Equal(t, "iter-000", keys[0])
		require.Equal(t, "iter-009", keys[total-1])
	}

	{ // reverse
		it, closeFunc := st.GetIterator("iter-", NewDefaultListOptions(true, nil, 0))
		defer closeFunc()

		item, hasNext := it()
		require.True(t, hasNext)
		require.Equal(t, "iter-009", string(item.Key))
	}

	{ // limit
		it, closeFunc := st.GetIterator("iter-", NewDefaultListOptions(false, nil, 3))
		defer closeFunc()

		var count int
		for {
			_, hasNext := it()
			if !hasNext {
				break
			}
			count++
		}
		require.Equal(t, 3, count)
	}

	{ // cursor resumes from the given key
		it, closeFunc := st.GetIterator("iter-", NewDefaultListOptions(false, []byte("iter-005"), 0))
		defer closeFunc()

		item, hasNext := it()
		require.True(t, hasNext)
		require.Equal(t, "iter-005", string(item.Key))
	}
}

func TestLevelDBBackendWalk(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, st.New(fmt.Sprintf("walk-%03d", i), i))
	}

	var walked []string
	err := st.Walk("walk-", NewWalkOption("", 10, false), func(key, value []byte) (bool, error) {
		walked = append(walked, string(key))
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, 5, len(walked))

	// stop early
	walked = walked[:0]
	err = st.Walk("walk-", NewWalkOption("", 10, false), func(key, value []byte) (bool, error) {
		walked = append(walked, string(key))
		return len(walked) < 2, nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, len(walked))
}

func TestLevelDBBackendTransaction(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	{ // commit makes the writes visible
		ts, err := st.OpenTransaction()
		require.NoError(t, err)

		require.NoError(t, ts.New("tx-commit", 10))
		require.NoError(t, ts.Commit())

		var fetched int
		require.NoError(t, st.Get("tx-commit", &fetched))
		require.Equal(t, 10, fetched)
	}

	{ // discard leaves no trace
		ts, err := st.OpenTransaction()
		require.NoError(t, err)

		require.NoError(t, ts.New("tx-discard", 10))
		require.NoError(t, ts.Discard())

		exists, err := st.Has("tx-discard")
		require.NoError(t, err)
		require.False(t, exists)
	}

	{ // a transaction cannot open another one
		ts, err := st.OpenTransaction()
		require.NoError(t, err)
		defer ts.Discard()

		_, err = ts.OpenTransaction()
		require.Error(t, err)
	}
}

func TestLevelDBBackendCommitOutsideTransaction(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.Equal(t, errors.NotCommittable, st.Commit())
	require.Equal(t, errors.NotCommittable, st.Discard())
}

func TestSnapshotIsReadOnly(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.NoError(t, st.New("snapshot-0", 10))

	snapshot, err := NewSnapshot(st)
	require.NoError(t, err)
	defer snapshot.Release()

	require.Equal(t, errors.NotImplemented, snapshot.Put(nil, nil, nil))
	require.Equal(t, errors.NotImplemented, snapshot.Delete(nil, nil))

	// reads still work through the snapshot
	b, err := snapshot.Get([]byte("snapshot-0"), nil)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	// later writes are invisible to an existing snapshot
	require.NoError(t, st.New("snapshot-1", 20))
	_, err = snapshot.Get([]byte("snapshot-1"), nil)
	require.Error(t, err)
}

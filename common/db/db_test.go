// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"fmt"
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDBGetSet(t *testing.T, db DB) {
	_, err := db.Get([]byte("a"))
	assert.Equal(t, ErrNotFoundInDb, err)

	require.Nil(t, db.Set([]byte("a"), []byte("1")))
	v, err := db.Get([]byte("a"))
	require.Nil(t, err)
	assert.Equal(t, []byte("1"), v)

	require.Nil(t, db.Delete([]byte("a")))
	_, err = db.Get([]byte("a"))
	assert.Equal(t, ErrNotFoundInDb, err)
	require.Nil(t, db.Delete([]byte("a")))
}

func testDBBatch(t *testing.T, db DB) {
	batch := db.NewBatch(true)
	batch.Set([]byte("b1"), []byte("v1"))
	batch.Set([]byte("b2"), []byte("v2"))
	_, err := db.Get([]byte("b1"))
	assert.Equal(t, ErrNotFoundInDb, err)
	assert.Equal(t, 8, batch.ValueSize())
	require.Nil(t, batch.Write())

	v, err := db.Get([]byte("b2"))
	require.Nil(t, err)
	assert.Equal(t, []byte("v2"), v)

	batch.Reset()
	assert.Equal(t, 0, batch.ValueSize())
	batch.Delete([]byte("b1"))
	require.Nil(t, batch.Write())
	_, err = db.Get([]byte("b1"))
	assert.Equal(t, ErrNotFoundInDb, err)
}

func testDBIterator(t *testing.T, db DB) {
	for i := 0; i < 5; i++ {
		require.Nil(t, db.Set([]byte(fmt.Sprintf("it-%02d", i)), []byte{byte(i)}))
	}
	require.Nil(t, db.Set([]byte("iu-00"), []byte("x")))

	it := db.Iterator([]byte("it-"), nil)
	var values []byte
	for it.Next() {
		values = append(values, it.Value()[0])
	}
	require.Nil(t, it.Error())
	it.Close()
	assert.Equal(t, []byte{0, 1, 2, 3, 4}, values)

	it = db.Iterator([]byte("it-01"), []byte("it-03"))
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"it-01", "it-02"}, keys)
}

func TestGoMemDB(t *testing.T) {
	db, err := NewDB("test", MemDBBackendStr, "", 0)
	require.Nil(t, err)
	defer db.Close()
	testDBGetSet(t, db)
	testDBBatch(t, db)
	testDBIterator(t, db)
}

func TestGoLevelDB(t *testing.T) {
	dir, err := ioutil.TempDir("", "goleveldb")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	db, err := NewDB("test", LevelDBBackendStr, dir, 16)
	require.Nil(t, err)
	testDBGetSet(t, db)
	testDBBatch(t, db)
	testDBIterator(t, db)
	require.Nil(t, db.Set([]byte("persist"), []byte("yes")))
	db.Close()

	db, err = NewDB("test", GoLevelDBBackendStr, dir, 16)
	require.Nil(t, err)
	defer db.Close()
	v, err := db.Get([]byte("persist"))
	require.Nil(t, err)
	assert.Equal(t, []byte("yes"), v)
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewDB("test", "rocksdb", "", 0)
	assert.Equal(t, ErrUnknownBackend, err)
}

func TestBytesPrefix(t *testing.T) {
	assert.Equal(t, []byte("ab"), BytesPrefix([]byte("aa")))
	assert.Nil(t, CloneByte(nil))
	src := []byte("x")
	dst := CloneByte(src)
	dst[0] = 'y'
	assert.Equal(t, []byte("x"), src)
}

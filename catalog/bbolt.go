package catalog

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"

	"github.com/leftmike/pika/sql"
)

var (
	pikaBucket = []byte{'p', 'i', 'k', 'a'}

	errBadKey = errors.New("bad key")
)

// Open returns a catalog which is loaded from and written through to the bbolt database in
// file.
func Open(file string, logger *log.Logger) (*Catalog, error) {
	db, err := bbolt.Open(file, 0644, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %s", file, err)
	}

	cat := New(logger)
	err = db.Update(func(tx *bbolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(pikaBucket)
		if err != nil {
			return err
		}

		return bkt.ForEach(func(key, val []byte) error {
			tbl, err := decodeTable(key, val)
			if err != nil {
				return err
			}
			ti, err := toItem(tbl)
			if err != nil {
				return err
			}
			cat.tree.ReplaceOrInsert(ti)
			if len(val) > 0 {
				cat.aliases[string(val)] = string(key)
			}
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: %s: %s", file, err)
	}

	cat.db = db
	logger.WithFields(log.Fields{
		"file":   file,
		"tables": cat.tree.Len(),
	}).Info("catalog: opened")
	return cat, nil
}

// A key is the path of a table with each name prefixed by its length.
func encodeKey(path []string) []byte {
	var key []byte
	var buf [binary.MaxVarintLen64]byte
	for _, nam := range path {
		n := binary.PutUvarint(buf[:], uint64(len(nam)))
		key = append(key, buf[:n]...)
		key = append(key, nam...)
	}
	return key
}

func decodeKey(key []byte) ([]string, error) {
	var path []string
	for len(key) > 0 {
		l, n := binary.Uvarint(key)
		if n <= 0 || uint64(len(key)-n) < l {
			return nil, errBadKey
		}
		path = append(path, string(key[n:n+int(l)]))
		key = key[n+int(l):]
	}
	if len(path) == 0 {
		return nil, errBadKey
	}
	return path, nil
}

func decodeTable(key, val []byte) (sql.Table, error) {
	path, err := decodeKey(key)
	if err != nil {
		return sql.Table{}, err
	}

	var ns *sql.Namespace
	for _, nam := range path[:len(path)-1] {
		ns, err = sql.NewNamespace(nam, ns)
		if err != nil {
			return sql.Table{}, err
		}
	}
	tbl, err := sql.NewTable(path[len(path)-1], sql.InNamespace(ns))
	if err != nil {
		return sql.Table{}, err
	}
	return tbl.WithAlias(string(val)), nil
}

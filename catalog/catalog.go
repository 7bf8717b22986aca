package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/btree"
	log "github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"

	"github.com/leftmike/pika/sql"
)

var (
	ErrAliasCollision = errors.New("alias already in use")
)

// Catalog is an ordered set of tables. Two tables are the same entry when they are
// structurally equal; aliases must be unique across entries.
type Catalog struct {
	mutex   sync.Mutex
	tree    *btree.BTree
	aliases map[string]string
	db      *bbolt.DB
	logger  *log.Logger
}

type tableItem struct {
	path []string
	tbl  sql.Table
}

func (ti tableItem) Less(item btree.Item) bool {
	return comparePaths(ti.path, item.(tableItem).path) < 0
}

func comparePaths(p1, p2 []string) int {
	for idx := 0; idx < len(p1) && idx < len(p2); idx++ {
		if p1[idx] < p2[idx] {
			return -1
		} else if p1[idx] > p2[idx] {
			return 1
		}
	}
	return len(p1) - len(p2)
}

func New(logger *log.Logger) *Catalog {
	return &Catalog{
		tree:    btree.New(16),
		aliases: map[string]string{},
		logger:  logger,
	}
}

func toItem(tbl sql.Table) (tableItem, error) {
	path, err := tbl.Path()
	if err != nil {
		return tableItem{}, err
	}
	return tableItem{path: path, tbl: tbl}, nil
}

// Add puts tbl into the catalog. It returns false if an equal table was already present; the
// stored table then takes the alias of tbl.
func (cat *Catalog) Add(tbl sql.Table) (bool, error) {
	ti, err := toItem(tbl)
	if err != nil {
		return false, err
	}
	key := string(encodeKey(ti.path))
	alias, aliased := tbl.Alias()

	cat.mutex.Lock()
	defer cat.mutex.Unlock()

	if aliased {
		if k, ok := cat.aliases[alias]; ok && k != key {
			return false, fmt.Errorf("catalog: table %s: alias %s: %w", tbl, alias,
				ErrAliasCollision)
		}
	}

	if cat.db != nil {
		err = cat.db.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket(pikaBucket).Put([]byte(key), []byte(alias))
		})
		if err != nil {
			return false, fmt.Errorf("catalog: table %s: %s", tbl, err)
		}
	}

	prev := cat.tree.ReplaceOrInsert(ti)
	if prev != nil {
		if a, ok := prev.(tableItem).tbl.Alias(); ok {
			delete(cat.aliases, a)
		}
	}
	if aliased {
		cat.aliases[alias] = key
	}

	cat.logger.WithFields(log.Fields{
		"table": tbl.Render('"', true),
		"new":   prev == nil,
	}).Debug("catalog: add")
	return prev == nil, nil
}

// Lookup returns the stored table equal to tbl, along with its stored alias.
func (cat *Catalog) Lookup(tbl sql.Table) (sql.Table, bool) {
	ti, err := toItem(tbl)
	if err != nil {
		return sql.Table{}, false
	}

	cat.mutex.Lock()
	defer cat.mutex.Unlock()

	item := cat.tree.Get(ti)
	if item == nil {
		return sql.Table{}, false
	}
	return item.(tableItem).tbl, true
}

func (cat *Catalog) ByAlias(alias string) (sql.Table, bool) {
	cat.mutex.Lock()
	defer cat.mutex.Unlock()

	key, ok := cat.aliases[alias]
	if !ok {
		return sql.Table{}, false
	}
	path, err := decodeKey([]byte(key))
	if err != nil {
		panic(fmt.Sprintf("catalog: alias %s: bad key: %s", alias, err))
	}
	item := cat.tree.Get(tableItem{path: path})
	if item == nil {
		panic(fmt.Sprintf("catalog: alias %s: missing table", alias))
	}
	return item.(tableItem).tbl, true
}

func (cat *Catalog) Remove(tbl sql.Table) (bool, error) {
	ti, err := toItem(tbl)
	if err != nil {
		return false, err
	}

	cat.mutex.Lock()
	defer cat.mutex.Unlock()

	if cat.tree.Get(ti) == nil {
		return false, nil
	}

	if cat.db != nil {
		err = cat.db.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket(pikaBucket).Delete(encodeKey(ti.path))
		})
		if err != nil {
			return false, fmt.Errorf("catalog: table %s: %s", tbl, err)
		}
	}

	prev := cat.tree.Delete(ti)
	if a, ok := prev.(tableItem).tbl.Alias(); ok {
		delete(cat.aliases, a)
	}

	cat.logger.WithField("table", tbl.String()).Debug("catalog: remove")
	return true, nil
}

// Tables returns the tables in the catalog ordered by path.
func (cat *Catalog) Tables() []sql.Table {
	cat.mutex.Lock()
	defer cat.mutex.Unlock()

	tbls := make([]sql.Table, 0, cat.tree.Len())
	cat.tree.Ascend(func(item btree.Item) bool {
		tbls = append(tbls, item.(tableItem).tbl)
		return true
	})
	return tbls
}

func (cat *Catalog) Len() int {
	cat.mutex.Lock()
	defer cat.mutex.Unlock()

	return cat.tree.Len()
}

func (cat *Catalog) Close() error {
	cat.mutex.Lock()
	defer cat.mutex.Unlock()

	if cat.db == nil {
		return nil
	}
	err := cat.db.Close()
	cat.db = nil
	return err
}

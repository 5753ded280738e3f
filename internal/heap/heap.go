package heap

import (
	"github.com/tinydb/engine/internal/buffer"
	"github.com/tinydb/engine/internal/dbctx/errs"
	"github.com/tinydb/engine/internal/dbctx/log"
	"github.com/tinydb/engine/internal/heap/freespace"
	"github.com/tinydb/engine/internal/page"
	"github.com/tinydb/engine/internal/relation"
)

// Insert encodes t and writes it into the relation via the free-space
// policy's chosen page, allocating a fresh page and inserting there
// instead if that page is full or the relation does not have it yet.
func Insert(pool *buffer.Pool, rel *relation.Relation, t Tuple) error {
	raw := Encode(t)

	targetPage := freespace.TargetPage()
	if targetPage <= rel.Storage.Size() {
		if err := insertInto(pool, rel, targetPage, raw); err == nil {
			return nil
		} else if !errs.Is(err, errs.PageFull) {
			return err
		}
		log.Debugf("heap: page %d full for relation %s, allocating a new page", targetPage, rel.Name)
	}

	bufID, _, err := pool.AllocBuffer(rel.Storage, rel.Locator.Tablespace, rel.Locator.Database, rel.Locator.OID)
	if err != nil {
		return err
	}
	pg := pool.Page(bufID)
	page.Init(pg)
	_, err = page.AddItem(pg, raw)
	pool.UnpinBuffer(bufID, true)
	return err
}

func insertInto(pool *buffer.Pool, rel *relation.Relation, pageNo uint32, raw []byte) error {
	bufID, err := pool.FetchBuffer(rel.Storage, rel.Locator.Tablespace, rel.Locator.Database, rel.Locator.OID, pageNo)
	if err != nil {
		return err
	}
	pg := pool.Page(bufID)
	_, err = page.AddItem(pg, raw)
	pool.UnpinBuffer(bufID, err == nil)
	return err
}

// Scan reads every tuple of rel, in ascending page number then
// line-pointer order. This ordering is stable and depended on by
// tests.
func Scan(pool *buffer.Pool, rel *relation.Relation) ([]Tuple, error) {
	var tuples []Tuple

	total := rel.Storage.Size()
	for pageNo := uint32(1); pageNo <= total; pageNo++ {
		bufID, err := pool.FetchBuffer(rel.Storage, rel.Locator.Tablespace, rel.Locator.Database, rel.Locator.OID, pageNo)
		if err != nil {
			return nil, err
		}

		pg := pool.Page(bufID)
		ids := page.ItemIDs(pg)
		for _, id := range ids {
			raw := page.ReadItem(pg, id)
			t, err := Decode(raw)
			if err != nil {
				pool.UnpinBuffer(bufID, false)
				return nil, err
			}
			tuples = append(tuples, t)
		}
		pool.UnpinBuffer(bufID, false)
	}

	return tuples, nil
}

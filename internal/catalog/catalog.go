// Package catalog bootstraps and queries the four system tables that
// describe every other relation: pg_attribute, pg_class, pg_database,
// and pg_tablespace. Bootstrap seeds pg_attribute first (so every
// catalog can describe its own columns), then pg_class, then the
// database and tablespace rows. Catalog tables are themselves opened
// and scanned as ordinary heap relations.
package catalog

import (
	"os"

	"github.com/tinydb/engine/internal/buffer"
	"github.com/tinydb/engine/internal/dbctx/errs"
	"github.com/tinydb/engine/internal/dbctx/log"
	"github.com/tinydb/engine/internal/heap"
	"github.com/tinydb/engine/internal/oid"
	"github.com/tinydb/engine/internal/page"
	"github.com/tinydb/engine/internal/relation"
)

// Catalog holds open handles to the four system tables for one
// database (pg_attribute and pg_class are per-database; pg_database
// and pg_tablespace are cluster-wide, in the GLOBAL tablespace).
type Catalog struct {
	dataDir string
	db      oid.OID
	pool    *buffer.Pool

	pgAttribute  *relation.Relation
	pgClass      *relation.Relation
	pgDatabase   *relation.Relation
	pgTablespace *relation.Relation
}

// Open opens the four catalog relations for an already-bootstrapped
// database db.
func Open(dataDir string, pool *buffer.Pool, db oid.OID) (*Catalog, error) {
	pgAttribute, err := relation.Open(dataDir, "pg_attribute", relation.Locator{Tablespace: oid.DefaultTablespace, Database: db, OID: oid.PgAttribute})
	if err != nil {
		return nil, err
	}
	pgClass, err := relation.Open(dataDir, "pg_class", relation.Locator{Tablespace: oid.DefaultTablespace, Database: db, OID: oid.PgClass})
	if err != nil {
		return nil, err
	}
	pgDatabase, err := relation.Open(dataDir, "pg_database", relation.Locator{Tablespace: oid.GlobalTablespace, OID: oid.PgDatabase})
	if err != nil {
		return nil, err
	}
	pgTablespace, err := relation.Open(dataDir, "pg_tablespace", relation.Locator{Tablespace: oid.GlobalTablespace, OID: oid.PgTablespace})
	if err != nil {
		return nil, err
	}

	return &Catalog{
		dataDir:      dataDir,
		db:           db,
		pool:         pool,
		pgAttribute:  pgAttribute,
		pgClass:      pgClass,
		pgDatabase:   pgDatabase,
		pgTablespace: pgTablespace,
	}, nil
}

// Bootstrap runs initdb: it creates the four catalog relation files,
// seeds pg_attribute with every catalog's own attribute rows first,
// then pg_class rows for the four catalogs, then the well-known
// DEFAULT and GLOBAL tablespace rows, then a row for dbName itself.
func Bootstrap(dataDir string, pool *buffer.Pool, dbName string) (*Catalog, error) {
	db := oid.TinydbDatabase
	if dbName != "tinydb" {
		db = oid.Next()
	}

	log.Infof("catalog: bootstrapping database %q (oid %d) under %s", dbName, db, dataDir)

	c := &Catalog{dataDir: dataDir, db: db, pool: pool}

	var err error
	if c.pgAttribute, err = newCatalogRelation(pool, dataDir, "pg_attribute", relation.Locator{Tablespace: oid.DefaultTablespace, Database: db, OID: oid.PgAttribute}); err != nil {
		return nil, err
	}
	if c.pgClass, err = newCatalogRelation(pool, dataDir, "pg_class", relation.Locator{Tablespace: oid.DefaultTablespace, Database: db, OID: oid.PgClass}); err != nil {
		return nil, err
	}
	if c.pgDatabase, err = newCatalogRelation(pool, dataDir, "pg_database", relation.Locator{Tablespace: oid.GlobalTablespace, OID: oid.PgDatabase}); err != nil {
		return nil, err
	}
	if c.pgTablespace, err = newCatalogRelation(pool, dataDir, "pg_tablespace", relation.Locator{Tablespace: oid.GlobalTablespace, OID: oid.PgTablespace}); err != nil {
		return nil, err
	}

	// pg_attribute must be seeded before anything else: every other
	// row inserted below is itself described by a pg_attribute row.
	catalogs := []struct {
		desc  heap.TupleDesc
		class PgClassRow
	}{
		{PgAttributeDesc(), PgClassRow{OID: oid.PgAttribute, RelName: "pg_attribute", RelTablespace: oid.DefaultTablespace, RelIsShared: false}},
		{PgClassDesc(), PgClassRow{OID: oid.PgClass, RelName: "pg_class", RelTablespace: oid.DefaultTablespace, RelIsShared: false}},
		{PgDatabaseDesc(), PgClassRow{OID: oid.PgDatabase, RelName: "pg_database", RelTablespace: oid.GlobalTablespace, RelIsShared: true}},
		{PgTablespaceDesc(), PgClassRow{OID: oid.PgTablespace, RelName: "pg_tablespace", RelTablespace: oid.GlobalTablespace, RelIsShared: true}},
	}

	for _, cat := range catalogs {
		for _, a := range cat.desc.Attrs {
			row := PgAttributeRow{AttRelID: a.AttRelID, AttName: a.AttName, AttNum: a.AttNum, AttLen: a.AttLen, AttTypID: a.AttTypID}
			if err := c.insertPgAttribute(row); err != nil {
				return nil, errs.Annotatef(err, "seeding pg_attribute for %s", cat.class.RelName)
			}
		}
	}

	for _, cat := range catalogs {
		if err := c.insertPgClass(cat.class); err != nil {
			return nil, errs.Annotatef(err, "seeding pg_class row for %s", cat.class.RelName)
		}
	}

	if err := c.insertPgTablespace(PgTablespaceRow{OID: oid.DefaultTablespace, SpcName: "pg_default"}); err != nil {
		return nil, errs.Trace(err)
	}
	if err := c.insertPgTablespace(PgTablespaceRow{OID: oid.GlobalTablespace, SpcName: "pg_global"}); err != nil {
		return nil, errs.Trace(err)
	}

	if err := c.insertPgDatabase(PgDatabaseRow{OID: db, DatName: dbName, DatTablespace: oid.DefaultTablespace}); err != nil {
		return nil, errs.Trace(err)
	}

	log.Infof("catalog: bootstrap complete for database %q", dbName)
	return c, nil
}

// newCatalogRelation creates (or reopens) a catalog's relation file
// and, when the file has no pages yet, allocates page 1 and
// initializes it as an empty slotted page.
func newCatalogRelation(pool *buffer.Pool, dataDir, name string, loc relation.Locator) (*relation.Relation, error) {
	rel, err := relation.Open(dataDir, name, loc)
	if err != nil {
		return nil, err
	}
	if rel.Storage.Size() == 0 {
		bufID, _, err := pool.AllocBuffer(rel.Storage, loc.Tablespace, loc.Database, loc.OID)
		if err != nil {
			return nil, err
		}
		pg := pool.Page(bufID)
		page.Init(pg)
		pool.UnpinBuffer(bufID, true)
	}
	return rel, nil
}

func (c *Catalog) insertPgAttribute(row PgAttributeRow) error {
	t, err := heap.FromDatums(row.datums(), PgAttributeDesc())
	if err != nil {
		return err
	}
	return heap.Insert(c.pool, c.pgAttribute, t)
}

func (c *Catalog) insertPgClass(row PgClassRow) error {
	t, err := heap.FromDatums(row.datums(), PgClassDesc())
	if err != nil {
		return err
	}
	return heap.Insert(c.pool, c.pgClass, t)
}

func (c *Catalog) insertPgDatabase(row PgDatabaseRow) error {
	t, err := heap.FromDatums(row.datums(), PgDatabaseDesc())
	if err != nil {
		return err
	}
	return heap.Insert(c.pool, c.pgDatabase, t)
}

func (c *Catalog) insertPgTablespace(row PgTablespaceRow) error {
	t, err := heap.FromDatums(row.datums(), PgTablespaceDesc())
	if err != nil {
		return err
	}
	return heap.Insert(c.pool, c.pgTablespace, t)
}

// ScanPgClass returns every decoded pg_class row.
func (c *Catalog) ScanPgClass() ([]PgClassRow, error) {
	tuples, err := heap.Scan(c.pool, c.pgClass)
	if err != nil {
		return nil, err
	}
	desc := PgClassDesc()
	rows := make([]PgClassRow, 0, len(tuples))
	for _, t := range tuples {
		row, err := decodePgClassRow(t, desc)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ScanPgAttribute returns every decoded pg_attribute row belonging to relOID.
func (c *Catalog) ScanPgAttribute(relOID oid.OID) ([]PgAttributeRow, error) {
	tuples, err := heap.Scan(c.pool, c.pgAttribute)
	if err != nil {
		return nil, err
	}
	desc := PgAttributeDesc()
	var rows []PgAttributeRow
	for _, t := range tuples {
		row, err := decodePgAttributeRow(t, desc)
		if err != nil {
			return nil, err
		}
		if row.AttRelID == relOID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// GetPgClass returns the pg_class row for name, or RelationNotFound.
func (c *Catalog) GetPgClass(name string) (PgClassRow, error) {
	rows, err := c.ScanPgClass()
	if err != nil {
		return PgClassRow{}, err
	}
	for _, r := range rows {
		if r.RelName == name {
			return r, nil
		}
	}
	return PgClassRow{}, errs.Annotatef(errs.RelationNotFound, "relation %q", name)
}

// GetOIDForRelation resolves a relation's name to its OID via pg_class.
func (c *Catalog) GetOIDForRelation(name string) (oid.OID, error) {
	row, err := c.GetPgClass(name)
	if err != nil {
		return oid.Invalid, err
	}
	return row.OID, nil
}

// TupleDescForRelation returns name's tuple descriptor: the hard-coded
// descriptor for the four catalog tables, or one assembled from
// pg_attribute rows for anything else.
func (c *Catalog) TupleDescForRelation(name string) (heap.TupleDesc, error) {
	if desc, ok := wellKnownDesc(name); ok {
		return desc, nil
	}

	row, err := c.GetPgClass(name)
	if err != nil {
		return heap.TupleDesc{}, err
	}

	attrRows, err := c.ScanPgAttribute(row.OID)
	if err != nil {
		return heap.TupleDesc{}, err
	}
	if len(attrRows) == 0 {
		return heap.TupleDesc{}, errs.Annotatef(errs.RelationNotFound, "no pg_attribute rows for relation %q", name)
	}

	attrs := make([]heap.Attribute, len(attrRows))
	for i, a := range attrRows {
		attrs[i] = heap.Attribute{AttRelID: a.AttRelID, AttName: a.AttName, AttNum: a.AttNum, AttLen: a.AttLen, AttTypID: a.AttTypID}
	}
	return heap.TupleDesc{Attrs: attrs}, nil
}

// NewRelationOID draws a fresh OID for a new relation in tablespace,
// redrawing from the counter until it finds one whose relation file
// does not already exist on disk. The counter is process-local and
// reseeds at its starting value on every restart, so an unchecked
// draw could otherwise collide with a relation created by an earlier
// run against this same data directory and silently alias its file.
func (c *Catalog) NewRelationOID(tablespace oid.OID) (oid.OID, error) {
	for {
		candidate := oid.Next()
		loc := relation.Locator{Tablespace: tablespace, Database: c.db, OID: candidate}
		path, err := loc.Path(c.dataDir)
		if err != nil {
			return 0, errs.Trace(err)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return candidate, nil
		} else if err != nil {
			return 0, errs.Annotatef(err, "checking for existing relation file %s", path)
		}
		log.Warnf("catalog: new relation oid %d already has a file at %s, redrawing", candidate, path)
	}
}

// HeapCreate registers a new relation: it writes its tuple descriptor
// into pg_attribute, its identity into pg_class, and initializes its
// first page.
func (c *Catalog) HeapCreate(tablespace oid.OID, name string, newOID oid.OID, desc heap.TupleDesc) (*relation.Relation, error) {
	for _, a := range desc.Attrs {
		if err := c.insertPgAttribute(PgAttributeRow{AttRelID: newOID, AttName: a.AttName, AttNum: a.AttNum, AttLen: a.AttLen, AttTypID: a.AttTypID}); err != nil {
			return nil, errs.Annotatef(err, "registering attribute %q of relation %q", a.AttName, name)
		}
	}

	isShared := tablespace == oid.GlobalTablespace
	if err := c.insertPgClass(PgClassRow{OID: newOID, RelName: name, RelTablespace: tablespace, RelIsShared: isShared}); err != nil {
		return nil, errs.Annotatef(err, "registering pg_class row for relation %q", name)
	}

	loc := relation.Locator{Tablespace: tablespace, OID: newOID}
	if tablespace == oid.DefaultTablespace {
		loc.Database = c.db
	}
	rel, err := newCatalogRelation(c.pool, c.dataDir, name, loc)
	if err != nil {
		return nil, errs.Annotatef(err, "creating heap file for relation %q", name)
	}

	log.Debugf("catalog: created relation %q (oid %d) in tablespace %d", name, newOID, tablespace)
	return rel, nil
}

// Database returns the OID of the database this catalog describes.
func (c *Catalog) Database() oid.OID { return c.db }

// Close closes the four catalog relation files.
func (c *Catalog) Close() error {
	for _, rel := range []*relation.Relation{c.pgAttribute, c.pgClass, c.pgDatabase, c.pgTablespace} {
		if rel == nil {
			continue
		}
		if err := rel.Storage.Close(); err != nil {
			return err
		}
	}
	return nil
}

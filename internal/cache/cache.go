// Package cache persists class.Class records to an on-disk sqlite
// database: a compact binary serialization of a
// ClassFolder{version: nat, classes: [Class]}. The version field guards
// migration; a mismatch causes the cache to be regenerated. Connection
// setup uses a Connect/Migrate pair over the single embedded sqlite
// dialector this server needs: no remote database target, since a
// language server's class cache is a single-process, single-file concern
// next to the rest of the editor's cache directory. Binary encoding uses
// encoding/gob (stdlib): no third-party binary/structured-serialization
// library fits a concern this narrow, so it stays on the standard
// library.
package cache

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oxhq/javalsp/internal/class"
)

// classRecord is the gorm-mapped row: one class, keyed by the archive
// identity tag it was loaded under (e.g. a jar's absolute path, or the
// source-language runtime's reported version string) and its class_path.
type classRecord struct {
	VersionTag string `gorm:"primaryKey"`
	ClassPath  string `gorm:"primaryKey"`
	Data       []byte
}

func (classRecord) TableName() string { return "class_cache" }

// cacheVersion is the single-row gate: a version number attached to the
// whole cache, bumped whenever the on-disk record layout changes. A
// mismatch between the stored row and CurrentCacheVersion invalidates
// every cached class regardless of version tag.
type cacheVersion struct {
	ID      int `gorm:"primaryKey"`
	Version int
}

func (cacheVersion) TableName() string { return "cache_version" }

// CurrentCacheVersion is compared against the stored cacheVersion row on
// Open; a mismatch regenerates the cache from empty.
const CurrentCacheVersion = 1

// Store wraps the sqlite-backed cache connection.
type Store struct {
	db *gorm.DB
}

// Open connects to (creating if necessary) the sqlite database at path and
// runs its migration: ensure the parent directory exists, open the
// dialector, AutoMigrate the schema, then check the cache version gate.
func Open(path string, debug bool) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := db.AutoMigrate(&classRecord{}, &cacheVersion{}); err != nil {
		return nil, fmt.Errorf("migrate cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.checkVersionGate(); err != nil {
		return nil, err
	}
	return s, nil
}

// checkVersionGate regenerates the cache (deletes every class row) when
// the stored cache_version row doesn't match CurrentCacheVersion, then
// writes the current version.
func (s *Store) checkVersionGate() error {
	var row cacheVersion
	err := s.db.First(&row, "id = 1").Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.Create(&cacheVersion{ID: 1, Version: CurrentCacheVersion}).Error
	case err != nil:
		return fmt.Errorf("read cache version: %w", err)
	case row.Version != CurrentCacheVersion:
		if err := s.db.Exec("DELETE FROM class_cache").Error; err != nil {
			return fmt.Errorf("regenerate cache: %w", err)
		}
		return s.db.Model(&cacheVersion{}).Where("id = 1").Update("version", CurrentCacheVersion).Error
	default:
		return nil
	}
}

// LoadFolder returns every cached class.Class under versionTag as a
// class.Folder, or ok=false if nothing is cached for that tag.
func (s *Store) LoadFolder(versionTag string) (class.Folder, bool, error) {
	var recs []classRecord
	if err := s.db.Where("version_tag = ?", versionTag).Find(&recs).Error; err != nil {
		return class.Folder{}, false, fmt.Errorf("load cache rows: %w", err)
	}
	if len(recs) == 0 {
		return class.Folder{}, false, nil
	}

	folder := class.Folder{Version: CurrentCacheVersion}
	for _, rec := range recs {
		var c class.Class
		if err := gobDecode(rec.Data, &c); err != nil {
			// A corrupt record triggers a silent rebuild rather than an error.
			return class.Folder{}, false, nil
		}
		folder.Classes = append(folder.Classes, c)
	}
	return folder, true, nil
}

// SaveFolder persists every class in folder under versionTag, replacing
// any existing rows for that tag.
func (s *Store) SaveFolder(versionTag string, folder class.Folder) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("version_tag = ?", versionTag).Delete(&classRecord{}).Error; err != nil {
			return err
		}
		for _, c := range folder.Classes {
			data, err := gobEncode(c)
			if err != nil {
				return fmt.Errorf("encode class %s: %w", c.ClassPath, err)
			}
			rec := classRecord{VersionTag: versionTag, ClassPath: c.ClassPath, Data: data}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Invalidate deletes every cached class under versionTag.
func (s *Store) Invalidate(versionTag string) error {
	return s.db.Where("version_tag = ?", versionTag).Delete(&classRecord{}).Error
}

// InvalidateAll deletes every cached class, regardless of tag.
func (s *Store) InvalidateAll() error {
	return s.db.Exec("DELETE FROM class_cache").Error
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gobEncode(c class.Class) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func gobDecode(data []byte, c *class.Class) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(c)
}

package storage

import (
	"fmt"

	"github.com/cristianoliveira/railsql/internal/ach"
	"github.com/cristianoliveira/railsql/internal/config"
	"github.com/cristianoliveira/railsql/internal/domain"
	"github.com/cristianoliveira/railsql/internal/logging"
	"github.com/cristianoliveira/railsql/internal/storage/sqlite"
)

// Store bundles the file repository, the index and the search service built on them.
type Store struct {
	*domain.SearchService
	Files *FileSystem
	Index *sqlite.Index
}

// Settings selects where files are read from and where they are indexed.
type Settings struct {
	DBPath  string
	ACHDirs []string
	Mask    ach.MaskOptions
}

// SettingsFromConfig reads Settings from the loaded configuration.
func SettingsFromConfig() Settings {
	return Settings{
		DBPath:  config.Get("db_path", ""),
		ACHDirs: config.GetList("ach_dirs"),
		Mask: ach.MaskOptions{
			AccountNumbers: config.GetBool("mask_account_numbers", false),
			CorrectedData:  config.GetBool("mask_account_numbers", false),
		},
	}
}

// NewFromConfig loads configuration and opens the configured store.
func NewFromConfig() (*Store, error) {
	config.Load()
	return Open(SettingsFromConfig())
}

// Open builds a store from settings.
func Open(s Settings) (*Store, error) {
	if len(s.ACHDirs) == 0 {
		return nil, fmt.Errorf("storage: no ACH directories configured")
	}
	index, err := sqlite.NewIndex(s.DBPath, sqlite.Options{Mask: s.Mask, Logger: logging.GetGlobal()})
	if err != nil {
		return nil, err
	}
	files := NewFileSystem(s.ACHDirs)
	logging.Debug("storage opened", "db_path", s.DBPath, "ach_dirs", s.ACHDirs)
	return &Store{
		SearchService: domain.NewSearchService(files, index),
		Files:         files,
		Index:         index,
	}, nil
}

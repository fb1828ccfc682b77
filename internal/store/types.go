package store

import (
	"database/sql"
	"sync"
)

// store keeps the snapshot in SQLite or Turso.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

const (
	metaPlayers    = "players"
	metaCategories = "categories"
	metaCourts     = "courts"
	metaGroups     = "groups"
)

package activity

import (
	"database/sql"
	"sync"
	"time"
)

// Action names an audited operation.
type Action string

const (
	ActionMatchUpdate Action = "MATCH_UPDATE"
	ActionMasterReset Action = "MASTER_RESET"
	ActionRestore     Action = "BACKUP_RESTORE"
	ActionBackup      Action = "BACKUP_DOWNLOAD"
)

// Entry is one line of the activity log.
type Entry struct {
	ID        int64          `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Action    Action         `json:"action"`
	Details   map[string]any `json:"details"`
}

// store handles activity-related database operations.
type store struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

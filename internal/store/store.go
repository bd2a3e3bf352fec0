package store

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store owns all rows. Handlers never touch gorm directly.
type Store struct {
	db  *gorm.DB
	log *zap.SugaredLogger

	// Injectable clock so calendar-date logic is testable.
	now func() time.Time
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Store {
	return &Store{
		db:  db,
		log: log.Named("store"),
		now: time.Now,
	}
}

// Identity is the owner of a row: exactly one of UserID/GuestID is set.
type Identity struct {
	UserID  string
	GuestID string
}

func (id Identity) Valid() bool {
	return (id.UserID != "") != (id.GuestID != "")
}

// Key is the progress-table key: whichever identity half is present.
func (id Identity) Key() string {
	if id.UserID != "" {
		return id.UserID
	}
	return id.GuestID
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// extractIDs pulls identifier strings out of a JSON array whose elements
// are either plain strings or objects carrying an "id" field.
func extractIDs(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			ids = append(ids, s)
			continue
		}
		var obj struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.ID != "" {
			ids = append(ids, obj.ID)
		}
	}
	return ids
}

func emptyJSONArray() datatypes.JSON {
	return datatypes.JSON([]byte("[]"))
}

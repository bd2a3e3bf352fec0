package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cedarpath/practice-api/internal/logger"
	"github.com/cedarpath/practice-api/internal/models"
)

var testDBSeq int

// newTestStore opens a fresh in-memory database per test. Each test gets
// its own shared-cache name so parallel tests never see each other's rows.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", testDBSeq)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Contact{},
		&models.Appointment{},
		&models.PracticeSession{},
		&models.CheckIn{},
		&models.UserProgress{},
	))

	return New(db, logger.Nop())
}

// setNow pins the store clock to a fixed instant.
func setNow(s *Store, t time.Time) {
	s.now = func() time.Time { return t }
}

func jsonArr(s string) datatypes.JSON {
	return datatypes.JSON([]byte(s))
}

func TestIdentityValid(t *testing.T) {
	cases := []struct {
		name string
		id   Identity
		want bool
	}{
		{"user only", Identity{UserID: "u1"}, true},
		{"guest only", Identity{GuestID: "g1"}, true},
		{"neither", Identity{}, false},
		{"both", Identity{UserID: "u1", GuestID: "g1"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.id.Valid())
		})
	}
}

func TestIdentityKey(t *testing.T) {
	require.Equal(t, "u1", Identity{UserID: "u1"}.Key())
	require.Equal(t, "g1", Identity{GuestID: "g1"}.Key())
}

func TestExtractIDs(t *testing.T) {
	t.Run("plain strings", func(t *testing.T) {
		got := extractIDs(jsonArr(`["joy","calm"]`))
		require.Equal(t, []string{"joy", "calm"}, got)
	})

	t.Run("objects with id field", func(t *testing.T) {
		got := extractIDs(jsonArr(`[{"id":"joy","label":"Joy"},{"id":"calm"}]`))
		require.Equal(t, []string{"joy", "calm"}, got)
	})

	t.Run("mixed", func(t *testing.T) {
		got := extractIDs(jsonArr(`["joy",{"id":"calm"}]`))
		require.Equal(t, []string{"joy", "calm"}, got)
	})

	t.Run("empty and invalid", func(t *testing.T) {
		require.Nil(t, extractIDs(nil))
		require.Nil(t, extractIDs(jsonArr(`not json`)))
		require.Empty(t, extractIDs(jsonArr(`[]`)))
	})
}

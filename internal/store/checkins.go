package store

import (
	"gorm.io/gorm/clause"
	"gorm.io/datatypes"

	"github.com/cedarpath/practice-api/internal/models"
)

const dateLayout = "2006-01-02"

type NewCheckIn struct {
	Identity    Identity
	Feelings    datatypes.JSON
	Needs       datatypes.JSON
	EnergyLevel *int
	Notes       string
}

// SaveCheckIn upserts today's check-in for the identity. A second check-in
// on the same calendar day overwrites the first; duplicate guarding is the
// database uniqueness constraint, not an application lock.
func (s *Store) SaveCheckIn(in NewCheckIn) (*models.CheckIn, error) {
	if !in.Identity.Valid() {
		return nil, ErrMissingIdentity
	}

	now := s.now()
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	checkIn := models.CheckIn{
		UserID:      nullable(in.Identity.UserID),
		GuestID:     nullable(in.Identity.GuestID),
		Date:        today,
		Feelings:    in.Feelings,
		Needs:       in.Needs,
		EnergyLevel: in.EnergyLevel,
		Notes:       in.Notes,
	}

	conflictCols := []clause.Column{{Name: "user_id"}, {Name: "date"}}
	if in.Identity.GuestID != "" {
		conflictCols = []clause.Column{{Name: "guest_id"}, {Name: "date"}}
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   conflictCols,
		DoUpdates: clause.AssignmentColumns([]string{"feelings", "needs", "energy_level", "notes"}),
	}).Create(&checkIn).Error
	if err != nil {
		return nil, err
	}

	// On a same-day overwrite the insert's generated id is not the
	// surviving row's. Reload so callers echo the stable id.
	saved, err := s.checkInForDate(in.Identity, today)
	if err != nil {
		return nil, err
	}

	if err := s.recordCheckIn(in.Identity.Key(), today, yesterday); err != nil {
		s.log.Errorw("failed to update progress on check-in",
			"identity", in.Identity.Key(), "error", err)
	}

	return saved, nil
}

func (s *Store) checkInForDate(identity Identity, date string) (*models.CheckIn, error) {
	q := s.db.Where("date = ?", date)
	if identity.UserID != "" {
		q = q.Where("user_id = ?", identity.UserID)
	} else {
		q = q.Where("guest_id = ?", identity.GuestID)
	}

	var checkIn models.CheckIn
	if err := q.First(&checkIn).Error; err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (s *Store) ListCheckIns(identity Identity, limit, offset int) ([]models.CheckIn, error) {
	if !identity.Valid() {
		return nil, ErrMissingIdentity
	}

	q := s.db.Model(&models.CheckIn{})
	if identity.UserID != "" {
		q = q.Where("user_id = ?", identity.UserID)
	} else {
		q = q.Where("guest_id = ?", identity.GuestID)
	}

	var checkIns []models.CheckIn
	err := q.Order("date DESC").
		Limit(limit).
		Offset(offset).
		Find(&checkIns).Error
	return checkIns, err
}

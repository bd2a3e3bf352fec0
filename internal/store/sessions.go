package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cedarpath/practice-api/internal/models"
)

type NewSession struct {
	Identity   Identity
	Type       string
	ScenarioID string
	Feelings   datatypes.JSON
	Needs      datatypes.JSON
}

func (s *Store) CreateSession(in NewSession) (*models.PracticeSession, error) {
	if !in.Identity.Valid() {
		return nil, ErrMissingIdentity
	}

	sessionType := in.Type
	if sessionType == "" {
		sessionType = string(models.SessionSelfEmpathy)
	}

	feelings := in.Feelings
	if len(feelings) == 0 {
		feelings = emptyJSONArray()
	}
	needs := in.Needs
	if len(needs) == 0 {
		needs = emptyJSONArray()
	}

	session := models.PracticeSession{
		ID:         uuid.NewString(),
		UserID:     nullable(in.Identity.UserID),
		GuestID:    nullable(in.Identity.GuestID),
		Type:       sessionType,
		ScenarioID: in.ScenarioID,
		Feelings:   feelings,
		Needs:      needs,
		Messages:   emptyJSONArray(),
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Store) GetSession(id string) (*models.PracticeSession, error) {
	var session models.PracticeSession
	if err := s.db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *Store) ListSessions(identity Identity, limit, offset int) ([]models.PracticeSession, error) {
	if !identity.Valid() {
		return nil, ErrMissingIdentity
	}

	q := s.db.Model(&models.PracticeSession{})
	if identity.UserID != "" {
		q = q.Where("user_id = ?", identity.UserID)
	} else {
		q = q.Where("guest_id = ?", identity.GuestID)
	}

	var sessions []models.PracticeSession
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	return sessions, err
}

// UpdateSession merges the patch into the stored row. The first
// false-to-true completion transition feeds the owner's progress counters;
// completing an already-completed session is not counted again.
func (s *Store) UpdateSession(id string, patch SessionPatch) (*models.PracticeSession, error) {
	existing, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}

	wasCompleted := existing.Completed
	updated := ApplySessionPatch(*existing, patch)

	if err := s.db.Save(&updated).Error; err != nil {
		return nil, err
	}

	if updated.Completed && !wasCompleted {
		owner := Identity{UserID: deref(updated.UserID), GuestID: deref(updated.GuestID)}
		if err := s.recordSessionCompletion(owner.Key(), updated.Feelings, updated.Needs); err != nil {
			// Progress is a secondary effect of the update.
			s.log.Errorw("failed to update progress on session completion",
				"session_id", id, "error", err)
		}
	}

	return &updated, nil
}

// DeleteSession removes a session only when it belongs to the requesting
// identity.
func (s *Store) DeleteSession(id, requesterID string) error {
	return s.db.
		Where("id = ? AND (user_id = ? OR guest_id = ?)", id, requesterID, requesterID).
		Delete(&models.PracticeSession{}).Error
}

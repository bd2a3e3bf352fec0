package store

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cedarpath/practice-api/internal/models"
)

// Progress is the client-facing view of a user_progress row, with the JSON
// count columns decoded into typed maps.
type Progress struct {
	UserID           string          `json:"userId"`
	CurrentStreak    int             `json:"currentStreak"`
	LongestStreak    int             `json:"longestStreak"`
	TotalSessions    int             `json:"totalSessions"`
	TotalCheckIns    int             `json:"totalCheckIns"`
	LastActivityDate string          `json:"lastActivityDate,omitempty"`
	FeelingCounts    map[string]int  `json:"feelingCounts"`
	NeedCounts       map[string]int  `json:"needCounts"`
	Insights         json.RawMessage `json:"insights"`
}

// NextStreak computes the new current streak for a check-in happening
// today. Calendar dates, not elapsed hours: checking in at 23:59 and again
// at 00:01 counts as consecutive days.
func NextStreak(lastActivityDate, today, yesterday string, current int) int {
	switch lastActivityDate {
	case today:
		return current
	case yesterday:
		return current + 1
	default:
		return 1
	}
}

// GetProgress returns the identity's progress row, creating an empty one on
// first read.
func (s *Store) GetProgress(key string) (*Progress, error) {
	row, err := s.progressRow(key)
	if err != nil {
		return nil, err
	}
	return toProgressView(row), nil
}

func (s *Store) progressRow(key string) (*models.UserProgress, error) {
	var row models.UserProgress
	err := s.db.First(&row, "user_id = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.UserProgress{
			UserID:        key,
			FeelingCounts: datatypes.JSON([]byte("{}")),
			NeedCounts:    datatypes.JSON([]byte("{}")),
			Insights:      datatypes.JSON([]byte("[]")),
		}
		if err := s.db.Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// recordCheckIn advances streak and totals for a check-in on the given
// calendar date. A same-day repeat is a no-op: the check-in row itself was
// overwritten by the upsert, but streak and totals must not double count.
func (s *Store) recordCheckIn(key, today, yesterday string) error {
	row, err := s.progressRow(key)
	if err != nil {
		return err
	}

	if row.LastActivityDate == today {
		return nil
	}

	streak := NextStreak(row.LastActivityDate, today, yesterday, row.CurrentStreak)
	longest := row.LongestStreak
	if streak > longest {
		longest = streak
	}

	return s.db.Model(&models.UserProgress{}).
		Where("user_id = ?", key).
		Updates(map[string]any{
			"current_streak":     streak,
			"longest_streak":     longest,
			"total_check_ins":    gorm.Expr("total_check_ins + 1"),
			"last_activity_date": today,
		}).Error
}

// recordSessionCompletion bumps the session total and the feeling/need
// occurrence counters. Idempotence is the caller's job (UpdateSession only
// calls this on the first completion transition).
func (s *Store) recordSessionCompletion(key string, feelings, needs datatypes.JSON) error {
	row, err := s.progressRow(key)
	if err != nil {
		return err
	}

	feelingCounts := decodeCounts(row.FeelingCounts)
	for _, id := range extractIDs(feelings) {
		feelingCounts[id]++
	}

	needCounts := decodeCounts(row.NeedCounts)
	for _, id := range extractIDs(needs) {
		needCounts[id]++
	}

	feelingJSON, _ := json.Marshal(feelingCounts)
	needJSON, _ := json.Marshal(needCounts)

	return s.db.Model(&models.UserProgress{}).
		Where("user_id = ?", key).
		Updates(map[string]any{
			"total_sessions": gorm.Expr("total_sessions + 1"),
			"feeling_counts": datatypes.JSON(feelingJSON),
			"need_counts":    datatypes.JSON(needJSON),
		}).Error
}

func decodeCounts(raw datatypes.JSON) map[string]int {
	counts := map[string]int{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &counts)
	}
	return counts
}

func toProgressView(row *models.UserProgress) *Progress {
	insights := json.RawMessage(row.Insights)
	if len(insights) == 0 {
		insights = json.RawMessage("[]")
	}

	return &Progress{
		UserID:           row.UserID,
		CurrentStreak:    row.CurrentStreak,
		LongestStreak:    row.LongestStreak,
		TotalSessions:    row.TotalSessions,
		TotalCheckIns:    row.TotalCheckIns,
		LastActivityDate: row.LastActivityDate,
		FeelingCounts:    decodeCounts(row.FeelingCounts),
		NeedCounts:       decodeCounts(row.NeedCounts),
		Insights:         insights,
	}
}

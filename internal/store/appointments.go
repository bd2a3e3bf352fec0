package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cedarpath/practice-api/internal/models"
)

type NewAppointment struct {
	ID              string
	ServiceName     string
	ServiceDuration int
	ServiceType     string
	Date            string
	Time            string
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	ClientNotes     string
}

func (s *Store) SaveAppointment(in NewAppointment) (*models.Appointment, error) {
	ap := models.Appointment{
		ID:              in.ID,
		ServiceName:     in.ServiceName,
		ServiceDuration: in.ServiceDuration,
		ServiceType:     in.ServiceType,
		Date:            in.Date,
		Time:            in.Time,
		ClientName:      in.ClientName,
		ClientEmail:     in.ClientEmail,
		ClientPhone:     in.ClientPhone,
		ClientNotes:     in.ClientNotes,
		Status:          string(models.AppointmentPending),
	}

	if err := s.db.Create(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (s *Store) GetAppointment(id string) (*models.Appointment, error) {
	var ap models.Appointment
	if err := s.db.First(&ap, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ap, nil
}

type AppointmentFilter struct {
	Status   string
	FromDate string
	Limit    int
	Offset   int
}

func (s *Store) ListAppointments(f AppointmentFilter) ([]models.Appointment, error) {
	q := s.db.Model(&models.Appointment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.FromDate != "" {
		q = q.Where("date >= ?", f.FromDate)
	}

	var aps []models.Appointment
	err := q.Order("date ASC, time ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&aps).Error
	return aps, err
}

func (s *Store) UpdateAppointmentStatus(id, status string) error {
	res := s.db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type DashboardStats struct {
	Contacts struct {
		Total int64 `json:"total"`
		New   int64 `json:"new"`
	} `json:"contacts"`
	Appointments struct {
		Total     int64 `json:"total"`
		Pending   int64 `json:"pending"`
		Confirmed int64 `json:"confirmed"`
	} `json:"appointments"`
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := s.db.Model(&models.Contact{}).Count(&stats.Contacts.Total).Error; err != nil {
		return nil, err
	}
	s.db.Model(&models.Contact{}).Where("status = ?", "new").Count(&stats.Contacts.New)

	if err := s.db.Model(&models.Appointment{}).Count(&stats.Appointments.Total).Error; err != nil {
		return nil, err
	}
	s.db.Model(&models.Appointment{}).
		Where("status = ?", string(models.AppointmentPending)).
		Count(&stats.Appointments.Pending)
	s.db.Model(&models.Appointment{}).
		Where("status = ?", string(models.AppointmentConfirmed)).
		Count(&stats.Appointments.Confirmed)

	return &stats, nil
}

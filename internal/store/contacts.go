package store

import (
	"github.com/cedarpath/practice-api/internal/models"
)

type NewContact struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

func (s *Store) SaveContact(in NewContact) (*models.Contact, error) {
	contact := models.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
		Status:  "new",
	}

	if err := s.db.Create(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

type ContactFilter struct {
	Status string
	Limit  int
	Offset int
}

func (s *Store) ListContacts(f ContactFilter) ([]models.Contact, error) {
	q := s.db.Model(&models.Contact{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var contacts []models.Contact
	err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&contacts).Error
	return contacts, err
}

func (s *Store) UpdateContactStatus(id uint, status string) error {
	res := s.db.Model(&models.Contact{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/docconnect/docconnect/internal/core/datamodel/session"
	sessionpkg "github.com/docconnect/docconnect/internal/session"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) sessionpkg.RepositoryAPI {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(s *session.ChatSession) error {
	return r.db.Create(s).Error
}

func (r *SessionRepository) GetByID(id string) (*session.ChatSession, error) {
	var s session.ChatSession
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&session.ChatSession{}).Error
}

func (r *SessionRepository) ListByPatient(patientID string, page, perPage int) ([]*session.ChatSession, int64, error) {
	return r.list("patient_id = ?", patientID, page, perPage)
}

func (r *SessionRepository) ListByDoctor(doctorID string, page, perPage int) ([]*session.ChatSession, int64, error) {
	return r.list("doctor_id = ?", doctorID, page, perPage)
}

func (r *SessionRepository) list(cond, id string, page, perPage int) ([]*session.ChatSession, int64, error) {
	var total int64
	if err := r.db.Model(&session.ChatSession{}).Where(cond, id).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []*session.ChatSession
	err := r.db.Where(cond, id).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

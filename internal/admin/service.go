package admin

import (
	"context"
	"log/slog"

	errors "github.com/docconnect/docconnect/internal"
	"github.com/docconnect/docconnect/internal/core/datamodel/doctor"
	"github.com/docconnect/docconnect/internal/core/events"
)

type Service struct {
	doctors  AdminDoctorRepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(doctors AdminDoctorRepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{doctors: doctors, eventBus: eventBus, logger: logger}
}

// VerifyDoctor applies an admin review decision. The profile status flip is
// the authoritative outcome; stamping the credential rows is best effort and
// a failure there does not undo the decision.
func (s *Service) VerifyDoctor(ctx context.Context, reviewerID string, dto VerifyDoctorDTO) (*VerifyDoctorResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.doctors.GetByID(dto.DoctorProfileID)
	if err != nil {
		s.logger.Error("failed to load doctor for review", "doctor_id", dto.DoctorProfileID, "error", err)
		return nil, errors.NewInternalError("could not load doctor", err)
	}
	if doc == nil {
		return nil, errors.ErrDoctorNotFound
	}

	profileStatus := doctor.VerificationVerified
	credentialStatus := doctor.CredentialApproved
	if dto.Action == ActionReject {
		profileStatus = doctor.VerificationRejected
		credentialStatus = doctor.CredentialRejected
	}

	if err := s.doctors.SetVerificationStatus(doc.ID, profileStatus); err != nil {
		s.logger.Error("failed to update verification status", "doctor_id", doc.ID, "error", err)
		return nil, errors.NewInternalError("could not update verification status", err)
	}

	if err := s.doctors.ReviewCredentials(doc.ID, credentialStatus, reviewerID, dto.Note); err != nil {
		s.logger.Warn("failed to stamp credentials after review",
			"doctor_id", doc.ID, "status", credentialStatus, "error", err)
	}

	if pubErr := s.eventBus.Publish(ctx, events.NewDoctorVerifiedEvent(doc.ID, profileStatus)); pubErr != nil {
		s.logger.Warn("failed to publish doctor verified event", "doctor_id", doc.ID, "error", pubErr)
	}

	s.logger.Info("doctor review applied",
		"doctor_id", doc.ID,
		"status", profileStatus,
		"reviewer_id", reviewerID)

	return &VerifyDoctorResponse{
		DoctorProfileID:    doc.ID,
		VerificationStatus: profileStatus,
	}, nil
}

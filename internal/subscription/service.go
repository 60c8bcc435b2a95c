package subscription

import (
	"context"
	"log/slog"

	errors "github.com/docconnect/docconnect/internal"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListForPatient returns the patient's recurring billing records, newest first.
func (s *Service) ListForPatient(ctx context.Context, patientID string) ([]View, error) {
	subs, err := s.repo.ListByPatient(patientID)
	if err != nil {
		s.logger.Error("failed to list subscriptions", "patient_id", patientID, "error", err)
		return nil, errors.NewInternalError("could not list subscriptions", err)
	}

	views := make([]View, 0, len(subs))
	for _, sub := range subs {
		views = append(views, ToView(sub))
	}
	return views, nil
}

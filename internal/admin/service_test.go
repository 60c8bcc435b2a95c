package admin_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/docconnect/docconnect/internal"
	"github.com/docconnect/docconnect/internal/admin"
	"github.com/docconnect/docconnect/internal/core/datamodel/doctor"
	"github.com/docconnect/docconnect/internal/core/events"
)

func TestAdmin(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Admin Service Suite")
}

type mockAdminDoctorRepo struct {
	doctors map[string]*doctor.DoctorProfile

	statusSet      map[string]string
	reviewedStatus string
	reviewedBy     string
	reviewedNote   *string

	statusErr error
	stampErr  error
}

func newMockAdminDoctorRepo() *mockAdminDoctorRepo {
	return &mockAdminDoctorRepo{
		doctors:   make(map[string]*doctor.DoctorProfile),
		statusSet: make(map[string]string),
	}
}

func (m *mockAdminDoctorRepo) GetByID(id string) (*doctor.DoctorProfile, error) {
	return m.doctors[id], nil
}

func (m *mockAdminDoctorRepo) SetVerificationStatus(doctorID, status string) error {
	if m.statusErr != nil {
		return m.statusErr
	}
	m.statusSet[doctorID] = status
	return nil
}

func (m *mockAdminDoctorRepo) ReviewCredentials(doctorID, status, reviewerID string, note *string) error {
	if m.stampErr != nil {
		return m.stampErr
	}
	m.reviewedStatus = status
	m.reviewedBy = reviewerID
	m.reviewedNote = note
	return nil
}

var _ = Describe("Admin Service", func() {
	var (
		repo    *mockAdminDoctorRepo
		service *admin.Service
		ctx     context.Context
	)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockAdminDoctorRepo()
		repo.doctors["doc-1"] = &doctor.DoctorProfile{
			ID:                 "doc-1",
			UserID:             "user-doc-1",
			VerificationStatus: doctor.VerificationPending,
		}
		service = admin.NewService(repo, events.NewEventBus(logger), logger)
	})

	Describe("VerifyDoctor", func() {
		It("should approve a doctor and stamp credentials", func() {
			note := "license checks out"
			resp, err := service.VerifyDoctor(ctx, "admin-1", admin.VerifyDoctorDTO{
				DoctorProfileID: "doc-1",
				Action:          admin.ActionApprove,
				Note:            &note,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.DoctorProfileID).To(Equal("doc-1"))
			Expect(resp.VerificationStatus).To(Equal(doctor.VerificationVerified))

			Expect(repo.statusSet["doc-1"]).To(Equal(doctor.VerificationVerified))
			Expect(repo.reviewedStatus).To(Equal(doctor.CredentialApproved))
			Expect(repo.reviewedBy).To(Equal("admin-1"))
			Expect(repo.reviewedNote).To(Equal(&note))
		})

		It("should reject a doctor", func() {
			resp, err := service.VerifyDoctor(ctx, "admin-1", admin.VerifyDoctorDTO{
				DoctorProfileID: "doc-1",
				Action:          admin.ActionReject,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.VerificationStatus).To(Equal(doctor.VerificationRejected))
			Expect(repo.reviewedStatus).To(Equal(doctor.CredentialRejected))
		})

		It("should return not found for an unknown doctor", func() {
			_, err := service.VerifyDoctor(ctx, "admin-1", admin.VerifyDoctorDTO{
				DoctorProfileID: "doc-missing",
				Action:          admin.ActionApprove,
			})

			Expect(err).To(Equal(internal.ErrDoctorNotFound))
		})

		It("should require a doctor profile id", func() {
			_, err := service.VerifyDoctor(ctx, "admin-1", admin.VerifyDoctorDTO{Action: admin.ActionApprove})

			Expect(err).To(HaveOccurred())
			appErr, ok := err.(*internal.AppError)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})

		It("should reject an unknown action", func() {
			_, err := service.VerifyDoctor(ctx, "admin-1", admin.VerifyDoctorDTO{
				DoctorProfileID: "doc-1",
				Action:          "escalate",
			})

			Expect(err).To(HaveOccurred())
			appErr, ok := err.(*internal.AppError)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(repo.statusSet).To(BeEmpty())
		})

		It("should fail when the status update fails", func() {
			repo.statusErr = errors.New("db down")

			_, err := service.VerifyDoctor(ctx, "admin-1", admin.VerifyDoctorDTO{
				DoctorProfileID: "doc-1",
				Action:          admin.ActionApprove,
			})

			Expect(err).To(HaveOccurred())
		})

		It("should keep the decision when credential stamping fails", func() {
			repo.stampErr = errors.New("db down")

			resp, err := service.VerifyDoctor(ctx, "admin-1", admin.VerifyDoctorDTO{
				DoctorProfileID: "doc-1",
				Action:          admin.ActionApprove,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.VerificationStatus).To(Equal(doctor.VerificationVerified))
			Expect(repo.statusSet["doc-1"]).To(Equal(doctor.VerificationVerified))
		})
	})
})

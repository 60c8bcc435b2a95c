package doctor_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/docconnect/docconnect/internal"
	doctormodel "github.com/docconnect/docconnect/internal/core/datamodel/doctor"
	"github.com/docconnect/docconnect/internal/doctor"
	"github.com/docconnect/docconnect/internal/paystack"
)

func TestDoctor(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Doctor Service Suite")
}

type mockDoctorRepo struct {
	byID     map[string]*doctormodel.DoctorProfile
	byUserID map[string]*doctormodel.DoctorProfile

	listResult []*doctormodel.DoctorProfile
	listTotal  int64
	lastFilter doctor.ListFilter

	subaccountCodes map[string]string
	oneTimeKobo     *int64
	subKobo         *int64
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{
		byID:            make(map[string]*doctormodel.DoctorProfile),
		byUserID:        make(map[string]*doctormodel.DoctorProfile),
		subaccountCodes: make(map[string]string),
	}
}

func (m *mockDoctorRepo) add(d *doctormodel.DoctorProfile) {
	m.byID[d.ID] = d
	m.byUserID[d.UserID] = d
}

func (m *mockDoctorRepo) GetByID(id string) (*doctormodel.DoctorProfile, error) {
	return m.byID[id], nil
}

func (m *mockDoctorRepo) GetVerifiedByID(id string) (*doctormodel.DoctorProfile, error) {
	d := m.byID[id]
	if d == nil || d.VerificationStatus != doctormodel.VerificationVerified {
		return nil, nil
	}
	return d, nil
}

func (m *mockDoctorRepo) GetByUserID(userID string) (*doctormodel.DoctorProfile, error) {
	return m.byUserID[userID], nil
}

func (m *mockDoctorRepo) List(filter doctor.ListFilter) ([]*doctormodel.DoctorProfile, int64, error) {
	m.lastFilter = filter
	return m.listResult, m.listTotal, nil
}

func (m *mockDoctorRepo) SetSubaccountCode(doctorID, code string) error {
	m.subaccountCodes[doctorID] = code
	return nil
}

func (m *mockDoctorRepo) SetRates(doctorID string, oneTimeKobo, subscriptionKobo *int64) error {
	m.oneTimeKobo = oneTimeKobo
	m.subKobo = subscriptionKobo
	return nil
}

type mockPayoutGateway struct {
	banks         []paystack.Bank
	resolved      *paystack.ResolvedAccount
	subaccount    *paystack.Subaccount
	subaccountReq paystack.CreateSubaccountRequest
	subaccountErr error
	resolveErr    error
	banksCountry  string
}

func (m *mockPayoutGateway) ResolveAccountNumber(ctx context.Context, accountNumber, bankCode string) (*paystack.ResolvedAccount, error) {
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	return m.resolved, nil
}

func (m *mockPayoutGateway) CreateSubaccount(ctx context.Context, req paystack.CreateSubaccountRequest) (*paystack.Subaccount, error) {
	m.subaccountReq = req
	if m.subaccountErr != nil {
		return nil, m.subaccountErr
	}
	return m.subaccount, nil
}

func (m *mockPayoutGateway) ListBanks(ctx context.Context, country string) ([]paystack.Bank, error) {
	m.banksCountry = country
	return m.banks, nil
}

var _ = Describe("Doctor Service", func() {
	var (
		repo    *mockDoctorRepo
		gateway *mockPayoutGateway
		service *doctor.Service
		ctx     context.Context
	)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockDoctorRepo()
		repo.add(&doctormodel.DoctorProfile{
			ID:                 "doc-1",
			UserID:             "user-doc-1",
			VerificationStatus: doctormodel.VerificationVerified,
		})
		gateway = &mockPayoutGateway{
			banks:    []paystack.Bank{{Name: "Access Bank", Code: "044"}},
			resolved: &paystack.ResolvedAccount{AccountNumber: "0001234567", AccountName: "AMAKA OBI"},
			subaccount: &paystack.Subaccount{
				SubaccountCode: "ACCT_xyz",
				BusinessName:   "Dr Amaka Obi",
			},
		}
		service = doctor.NewService(repo, gateway, logger)
	})

	Describe("List", func() {
		It("should normalize pagination before querying", func() {
			repo.listTotal = 1
			repo.listResult = []*doctormodel.DoctorProfile{repo.byID["doc-1"]}

			_, total, err := service.List(ctx, doctor.ListFilter{Page: 0, PerPage: 500})

			Expect(err).ToNot(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(repo.lastFilter.Page).To(Equal(1))
			Expect(repo.lastFilter.PerPage).To(Equal(12))
		})
	})

	Describe("GetByID", func() {
		It("should return a verified doctor", func() {
			doc, err := service.GetByID(ctx, "doc-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(doc.ID).To(Equal("doc-1"))
		})

		It("should hide unverified doctors", func() {
			repo.add(&doctormodel.DoctorProfile{
				ID:                 "doc-2",
				UserID:             "user-doc-2",
				VerificationStatus: doctormodel.VerificationInReview,
			})

			_, err := service.GetByID(ctx, "doc-2")

			Expect(err).To(Equal(internal.ErrDoctorNotFound))
		})
	})

	Describe("ListBanks", func() {
		It("should fetch the nigerian bank list", func() {
			banks, err := service.ListBanks(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(banks).To(HaveLen(1))
			Expect(gateway.banksCountry).To(Equal("nigeria"))
		})
	})

	Describe("ResolveBankAccount", func() {
		It("should return the resolved account name", func() {
			account, err := service.ResolveBankAccount(ctx, doctor.ResolveBankAccountDTO{
				AccountNumber: "0001234567",
				BankCode:      "044",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(account.AccountName).To(Equal("AMAKA OBI"))
		})

		It("should wrap gateway failures", func() {
			gateway.resolveErr = errors.New("gateway timeout")

			_, err := service.ResolveBankAccount(ctx, doctor.ResolveBankAccountDTO{
				AccountNumber: "0001234567",
				BankCode:      "044",
			})

			appErr, ok := err.(*internal.AppError)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(502))
		})

		It("should require both fields", func() {
			_, err := service.ResolveBankAccount(ctx, doctor.ResolveBankAccountDTO{AccountNumber: "0001234567"})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CreatePayoutSubaccount", func() {
		dto := doctor.CreateSubaccountDTO{
			BusinessName:  "Dr Amaka Obi",
			AccountNumber: "0001234567",
			BankCode:      "044",
		}

		It("should register the subaccount and store its code", func() {
			sub, err := service.CreatePayoutSubaccount(ctx, "user-doc-1", dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(sub.SubaccountCode).To(Equal("ACCT_xyz"))

			Expect(gateway.subaccountReq.SettlementBank).To(Equal("044"))
			Expect(gateway.subaccountReq.PercentageCharge).To(BeZero())
			Expect(repo.subaccountCodes["doc-1"]).To(Equal("ACCT_xyz"))
		})

		It("should fail for a user without a doctor profile", func() {
			_, err := service.CreatePayoutSubaccount(ctx, "user-unknown", dto)

			Expect(err).To(Equal(internal.ErrDoctorNotFound))
		})

		It("should not store a code when the gateway fails", func() {
			gateway.subaccountErr = errors.New("gateway down")

			_, err := service.CreatePayoutSubaccount(ctx, "user-doc-1", dto)

			Expect(err).To(HaveOccurred())
			Expect(repo.subaccountCodes).To(BeEmpty())
		})
	})

	Describe("SetRates", func() {
		It("should convert naira rates to kobo", func() {
			oneTime := 5000.0
			sub := 15000.0

			_, err := service.SetRates(ctx, "user-doc-1", doctor.SetRatesDTO{
				OneTimeRate:      &oneTime,
				SubscriptionRate: &sub,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(repo.oneTimeKobo).ToNot(BeNil())
			Expect(*repo.oneTimeKobo).To(Equal(int64(500000)))
			Expect(*repo.subKobo).To(Equal(int64(1500000)))
		})

		It("should leave an omitted rate untouched", func() {
			sub := 15000.0

			_, err := service.SetRates(ctx, "user-doc-1", doctor.SetRatesDTO{SubscriptionRate: &sub})

			Expect(err).ToNot(HaveOccurred())
			Expect(repo.oneTimeKobo).To(BeNil())
			Expect(*repo.subKobo).To(Equal(int64(1500000)))
		})
	})
})

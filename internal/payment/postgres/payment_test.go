package postgres

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/docconnect/docconnect/internal/core/datamodel/payment"
	"github.com/docconnect/docconnect/internal/core/datamodel/session"
	"github.com/docconnect/docconnect/internal/core/datamodel/webhookevent"
)

func TestPaymentRepositories(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Payment Repository Suite")
}

func openTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	err = db.AutoMigrate(&payment.Payment{}, &session.ChatSession{}, &webhookevent.WebhookEvent{})
	gomega.Expect(err).ToNot(gomega.HaveOccurred())

	return db
}

var _ = ginkgo.Describe("PaymentRepository", func() {
	var (
		db   *gorm.DB
		repo *PaymentRepository
	)

	ginkgo.BeforeEach(func() {
		db = openTestDB()
		repo = NewPaymentRepository(db).(*PaymentRepository)
	})

	ginkgo.Describe("Create and GetByReference", func() {
		ginkgo.It("should persist a payment and find it by reference", func() {
			p := &payment.Payment{
				SessionID:       "sess-1",
				PaystackRef:     "dc_sess-1_100",
				AmountKobo:      500000,
				PlatformCutKobo: 150000,
				DoctorCutKobo:   350000,
				Status:          payment.StatusPending,
			}

			gomega.Expect(repo.Create(p)).To(gomega.Succeed())
			gomega.Expect(p.ID).ToNot(gomega.BeEmpty())

			found, err := repo.GetByReference("dc_sess-1_100")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(found.SessionID).To(gomega.Equal("sess-1"))
			gomega.Expect(found.AmountKobo).To(gomega.Equal(int64(500000)))
		})

		ginkgo.It("should reject a second payment with the same reference", func() {
			first := &payment.Payment{SessionID: "sess-1", PaystackRef: "dup-ref", AmountKobo: 100, PlatformCutKobo: 30, DoctorCutKobo: 70}
			second := &payment.Payment{SessionID: "sess-2", PaystackRef: "dup-ref", AmountKobo: 100, PlatformCutKobo: 30, DoctorCutKobo: 70}

			gomega.Expect(repo.Create(first)).To(gomega.Succeed())
			gomega.Expect(repo.Create(second)).ToNot(gomega.Succeed())
		})
	})

	ginkgo.Describe("GetBySessionID", func() {
		ginkgo.It("should return payments for the session only", func() {
			gomega.Expect(repo.Create(&payment.Payment{SessionID: "sess-1", PaystackRef: "ref-1", AmountKobo: 100, PlatformCutKobo: 30, DoctorCutKobo: 70})).To(gomega.Succeed())
			gomega.Expect(repo.Create(&payment.Payment{SessionID: "sess-2", PaystackRef: "ref-2", AmountKobo: 100, PlatformCutKobo: 30, DoctorCutKobo: 70})).To(gomega.Succeed())

			payments, err := repo.GetBySessionID("sess-1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(payments).To(gomega.HaveLen(1))
			gomega.Expect(payments[0].PaystackRef).To(gomega.Equal("ref-1"))
		})
	})
})

var _ = ginkgo.Describe("AdminPaymentRepository", func() {
	var (
		db    *gorm.DB
		admin *AdminPaymentRepository
	)

	seed := func() (*payment.Payment, *session.ChatSession) {
		chatSession := &session.ChatSession{
			DoctorID:        "doc-1",
			PatientID:       "pat-1",
			SessionType:     session.TypeOneTime,
			Status:          session.StatusPending,
			PaymentStatus:   session.PaymentPending,
			AmountKobo:      500000,
			PlatformFeeKobo: 150000,
		}
		gomega.Expect(db.Create(chatSession).Error).ToNot(gomega.HaveOccurred())

		p := &payment.Payment{
			SessionID:       chatSession.ID,
			PaystackRef:     "dc_" + chatSession.ID + "_1",
			AmountKobo:      500000,
			PlatformCutKobo: 150000,
			DoctorCutKobo:   350000,
			Status:          payment.StatusPending,
		}
		gomega.Expect(db.Create(p).Error).ToNot(gomega.HaveOccurred())

		return p, chatSession
	}

	ginkgo.BeforeEach(func() {
		db = openTestDB()
		admin = NewAdminPaymentRepository(db).(*AdminPaymentRepository)
	})

	ledgerRows := func() int64 {
		var count int64
		gomega.Expect(db.Model(&webhookevent.WebhookEvent{}).Count(&count).Error).ToNot(gomega.HaveOccurred())
		return count
	}

	ginkgo.Describe("ApplyChargeSuccess", func() {
		ginkgo.It("should mark the payment success and activate the session together", func() {
			p, chatSession := seed()

			applied, err := admin.ApplyChargeSuccess("charge.success", p.PaystackRef, chatSession.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(applied).To(gomega.BeTrue())

			var updatedPayment payment.Payment
			gomega.Expect(db.First(&updatedPayment, "paystack_ref = ?", p.PaystackRef).Error).ToNot(gomega.HaveOccurred())
			gomega.Expect(updatedPayment.Status).To(gomega.Equal(payment.StatusSuccess))

			var updatedSession session.ChatSession
			gomega.Expect(db.First(&updatedSession, "id = ?", chatSession.ID).Error).ToNot(gomega.HaveOccurred())
			gomega.Expect(updatedSession.Status).To(gomega.Equal(session.StatusActive))
			gomega.Expect(updatedSession.PaymentStatus).To(gomega.Equal(session.PaymentSuccess))

			gomega.Expect(ledgerRows()).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("should treat a replayed delivery as a no-op", func() {
			p, chatSession := seed()

			applied, err := admin.ApplyChargeSuccess("charge.success", p.PaystackRef, chatSession.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(applied).To(gomega.BeTrue())

			applied, err = admin.ApplyChargeSuccess("charge.success", p.PaystackRef, chatSession.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(applied).To(gomega.BeFalse())

			gomega.Expect(ledgerRows()).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("should roll the ledger row back when the session is missing", func() {
			p, _ := seed()

			_, err := admin.ApplyChargeSuccess("charge.success", p.PaystackRef, "no-such-session")
			gomega.Expect(err).To(gomega.HaveOccurred())

			var reloaded payment.Payment
			gomega.Expect(db.First(&reloaded, "paystack_ref = ?", p.PaystackRef).Error).ToNot(gomega.HaveOccurred())
			gomega.Expect(reloaded.Status).To(gomega.Equal(payment.StatusPending))

			gomega.Expect(ledgerRows()).To(gomega.BeZero())
		})

		ginkgo.It("should apply a failed delivery once its session exists", func() {
			p, chatSession := seed()

			_, err := admin.ApplyChargeSuccess("charge.success", p.PaystackRef, "no-such-session")
			gomega.Expect(err).To(gomega.HaveOccurred())

			applied, err := admin.ApplyChargeSuccess("charge.success", p.PaystackRef, chatSession.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(applied).To(gomega.BeTrue())

			var updatedSession session.ChatSession
			gomega.Expect(db.First(&updatedSession, "id = ?", chatSession.ID).Error).ToNot(gomega.HaveOccurred())
			gomega.Expect(updatedSession.Status).To(gomega.Equal(session.StatusActive))
		})

		ginkgo.It("should fail when no payment matches the reference", func() {
			_, chatSession := seed()

			_, err := admin.ApplyChargeSuccess("charge.success", "unknown-ref", chatSession.ID)
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(ledgerRows()).To(gomega.BeZero())
		})
	})
})

var _ = ginkgo.Describe("RecordDelivery", func() {
	var db *gorm.DB

	ginkgo.BeforeEach(func() {
		db = openTestDB()
	})

	ginkgo.It("should record a fresh delivery", func() {
		fresh, err := RecordDelivery(db, "charge.success", "dc_sess-1_1")

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(fresh).To(gomega.BeTrue())
	})

	ginkgo.It("should report a replayed delivery as not fresh", func() {
		_, err := RecordDelivery(db, "charge.success", "dc_sess-1_1")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		fresh, err := RecordDelivery(db, "charge.success", "dc_sess-1_1")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(fresh).To(gomega.BeFalse())
	})

	ginkgo.It("should key the ledger on event type and reference together", func() {
		_, err := RecordDelivery(db, "charge.success", "SUB_1")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		fresh, err := RecordDelivery(db, "subscription.create", "SUB_1")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(fresh).To(gomega.BeTrue())
	})
})

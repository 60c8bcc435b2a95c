package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestOpenAPIContract(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "OpenAPI Contract Suite")
}

var _ = ginkgo.Describe("api/openapi.yml", func() {
	var doc *openapi3.T

	ginkgo.BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
	})

	ginkgo.It("should be a valid OpenAPI 3 document", func() {
		gomega.Expect(doc.Validate(context.Background())).To(gomega.Succeed())
	})

	ginkgo.It("should document every routed operation", func() {
		operations := map[string][]string{
			"/health":                  {http.MethodGet},
			"/ping":                    {http.MethodGet},
			"/webhooks/paystack":       {http.MethodPost},
			"/auth/register":           {http.MethodPost},
			"/auth/login":              {http.MethodPost},
			"/auth/refresh":            {http.MethodPost},
			"/auth/logout":             {http.MethodPost},
			"/users/me":                {http.MethodGet},
			"/doctors":                 {http.MethodGet},
			"/doctors/{doctorID}":      {http.MethodGet},
			"/doctors/me/rates":        {http.MethodPut},
			"/sessions":                {http.MethodPost, http.MethodGet},
			"/sessions/{sessionID}":    {http.MethodGet},
			"/subscriptions":           {http.MethodGet},
			"/payouts/banks":           {http.MethodGet},
			"/payouts/resolve-account": {http.MethodPost},
			"/payouts/subaccount":      {http.MethodPost},
			"/admin/verify":            {http.MethodPost},
		}

		for path, methods := range operations {
			item := doc.Paths.Find(path)
			gomega.Expect(item).ToNot(gomega.BeNil(), "path %s is missing", path)
			for _, method := range methods {
				gomega.Expect(item.GetOperation(method)).ToNot(gomega.BeNil(), "%s %s is missing", method, path)
			}
		}
	})

	ginkgo.It("should require bearer auth on authenticated operations", func() {
		gomega.Expect(doc.Components.SecuritySchemes).To(gomega.HaveKey("bearerAuth"))

		op := doc.Paths.Find("/sessions").GetOperation(http.MethodPost)
		gomega.Expect(op.Security).ToNot(gomega.BeNil())
	})

	ginkgo.It("should keep the gateway webhook outside bearer auth", func() {
		op := doc.Paths.Find("/webhooks/paystack").GetOperation(http.MethodPost)
		gomega.Expect(op.Security).To(gomega.BeNil())
	})
})

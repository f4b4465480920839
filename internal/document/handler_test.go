package document_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	datamodel "github.com/barangay/docucheck/internal/core/datamodel/document"
	"github.com/barangay/docucheck/internal/document"
	documentPostgres "github.com/barangay/docucheck/internal/document/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Document Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    document.Repository
		service *document.Service
		handler *document.Handler
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&datamodel.Clearance{}, &datamodel.Indigency{}, &datamodel.BusinessPermit{})
		Expect(err).NotTo(HaveOccurred())

		repo = documentPostgres.NewDocumentRepository(db)
		service = document.NewService(repo, nil, nil, "integration-test-salt", testLogger())
		handler = document.NewHandler(service)
	})

	Describe("POST /clearance", func() {
		It("should issue a clearance and return its hash code", func() {
			body := `{
				"LastName": "Dela Cruz",
				"FirstName": "Juan",
				"Address": "123 Mabini St",
				"Age": 34,
				"Birthdate": "1991-04-12",
				"ContactNumber": "09171234567",
				"Gender": "Male",
				"Purpose": "Employment",
				"issuedOn": "2025-06-01"
			}`
			req := httptest.NewRequest(http.MethodPost, "/clearance", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.IssueClearance(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp document.IssueResponseDTO
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("Form submitted successfully"))
			Expect(resp.ID).To(BeNumerically(">", 0))
			Expect(resp.HashCode).To(HaveLen(32))

			stored, err := repo.GetByHash(datamodel.TypeClearance, resp.HashCode)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.LastName).To(Equal("Dela Cruz"))
		})

		It("should accept Age posted as a string", func() {
			body := `{
				"LastName": "Dela Cruz",
				"FirstName": "Juan",
				"Address": "123 Mabini St",
				"Age": "34",
				"Birthdate": "1991-04-12",
				"ContactNumber": "09171234567",
				"Gender": "Male",
				"Purpose": "Employment",
				"issuedOn": "2025-06-01"
			}`
			req := httptest.NewRequest(http.MethodPost, "/clearance", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.IssueClearance(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should reject an incomplete submission with 400 and persist nothing", func() {
			body := `{"LastName": "Dela Cruz", "FirstName": "Juan"}`
			req := httptest.NewRequest(http.MethodPost, "/clearance", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.IssueClearance(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp map[string]any
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["message"]).To(Equal("All required fields must be filled"))

			n, err := repo.Count(datamodel.TypeClearance)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})

		It("should reject a malformed body with 400", func() {
			req := httptest.NewRequest(http.MethodPost, "/clearance", strings.NewReader("{not json"))
			w := httptest.NewRecorder()

			handler.IssueClearance(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /indigency", func() {
		It("should issue an indigency certificate without a contact number", func() {
			body := `{
				"LastName": "Doe",
				"FirstName": "Jane",
				"Address": "7 Quezon St",
				"Age": 41,
				"Birthdate": "1984-02-20",
				"Gender": "Female",
				"Purpose": "Medical assistance",
				"issuedOn": "2025-06-02"
			}`
			req := httptest.NewRequest(http.MethodPost, "/indigency", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.IssueIndigency(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp document.IssueResponseDTO
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("Certificate of Indigency form submitted successfully"))
		})
	})

	Describe("GET /recent-issuance", func() {
		It("should merge all three tables into one feed", func() {
			clearance := `{"LastName":"A","FirstName":"B","Address":"X","Age":30,"Birthdate":"1995-01-01","ContactNumber":"0917","Gender":"Male","Purpose":"Work","issuedOn":"2025-06-03"}`
			indigency := `{"LastName":"C","FirstName":"D","Address":"Y","Age":50,"Birthdate":"1975-01-01","Gender":"Female","Purpose":"Aid","issuedOn":"2025-06-04"}`

			w := httptest.NewRecorder()
			handler.IssueClearance(w, httptest.NewRequest(http.MethodPost, "/clearance", strings.NewReader(clearance)))
			Expect(w.Code).To(Equal(http.StatusOK))

			w = httptest.NewRecorder()
			handler.IssueIndigency(w, httptest.NewRequest(http.MethodPost, "/indigency", strings.NewReader(indigency)))
			Expect(w.Code).To(Equal(http.StatusOK))

			w = httptest.NewRecorder()
			handler.RecentIssuance(w, httptest.NewRequest(http.MethodGet, "/recent-issuance", nil))

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp document.RecentIssuanceResponseDTO
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Recent).To(HaveLen(2))
			Expect(resp.Recent[0].LastName).To(Equal("C"))
			Expect(resp.Recent[1].LastName).To(Equal("A"))
		})
	})

	Describe("GET /stats", func() {
		It("should report zero counters on an empty database", func() {
			w := httptest.NewRecorder()
			handler.Stats(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Expect(w.Code).To(Equal(http.StatusOK))

			var stats document.Stats
			Expect(json.NewDecoder(w.Body).Decode(&stats)).To(Succeed())
			Expect(stats.TotalIssued).To(BeZero())
		})
	})
})

package pdf_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	datamodel "github.com/barangay/docucheck/internal/core/datamodel/document"
	"github.com/barangay/docucheck/internal/document"
	"github.com/barangay/docucheck/internal/pdf"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPDF(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PDF Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Honorific", func() {
	It("should address male applicants as MR.", func() {
		Expect(pdf.Honorific("Male")).To(Equal("MR."))
	})

	It("should address female applicants as MS.", func() {
		Expect(pdf.Honorific("Female")).To(Equal("MS."))
	})

	It("should fall back to the combined form", func() {
		Expect(pdf.Honorific("")).To(Equal("MR./MS."))
		Expect(pdf.Honorific("Other")).To(Equal("MR./MS."))
	})
})

var _ = Describe("CertificateText", func() {
	var rec *document.Record

	BeforeEach(func() {
		rec = &document.Record{
			Type:       datamodel.TypeClearance,
			FirstName:  "Juan",
			MiddleName: "Santos",
			LastName:   "Dela Cruz",
			Address:    "123 Rizal St",
			Purpose:    "Employment",
			IssuedOn:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}
	})

	It("should name the applicant and the stated purpose", func() {
		text := pdf.CertificateText(rec)
		Expect(text).To(ContainSubstring("certify that Juan Santos Dela Cruz"))
		Expect(text).To(ContainSubstring("postal address at 123 Rizal St"))
		Expect(text).To(ContainSubstring("for Employment purposes"))
	})

	It("should print the issue date in long form", func() {
		text := pdf.CertificateText(rec)
		Expect(text).To(ContainSubstring("Issued this June 1, 2025"))
	})

	It("should use the business nature when no purpose is set", func() {
		rec.Type = datamodel.TypeBusinessPermit
		rec.Purpose = ""
		rec.BusinessNature = "Retail"

		Expect(pdf.CertificateText(rec)).To(ContainSubstring("for Retail purposes"))
	})
})

var _ = Describe("Assembler", func() {
	It("should report a readable error when the template is missing", func() {
		assembler := pdf.NewAssembler(GinkgoT().TempDir(), nil, testLogger())

		rec := &document.Record{
			Type:      datamodel.TypeClearance,
			FirstName: "Juan",
			LastName:  "Dela Cruz",
			IssuedOn:  time.Now(),
		}

		_, err := assembler.Assemble(context.Background(), rec)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Certificate template is unavailable"))
	})
})

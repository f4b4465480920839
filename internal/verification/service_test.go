package verification_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"testing"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	internal "github.com/barangay/docucheck/internal"
	datamodel "github.com/barangay/docucheck/internal/core/datamodel/document"
	"github.com/barangay/docucheck/internal/core/events"
	"github.com/barangay/docucheck/internal/document"
	"github.com/barangay/docucheck/internal/verification"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestVerificationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Verification Service Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func blankImage(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

// MockFinder implements verification.DocumentFinder
type MockFinder struct {
	records map[datamodel.Type]map[string]*document.Record
}

func NewMockFinder() *MockFinder {
	return &MockFinder{records: make(map[datamodel.Type]map[string]*document.Record)}
}

func (m *MockFinder) Add(rec *document.Record) {
	if m.records[rec.Type] == nil {
		m.records[rec.Type] = make(map[string]*document.Record)
	}
	m.records[rec.Type][rec.HashCode] = rec
}

func (m *MockFinder) GetByHash(ctx context.Context, t datamodel.Type, hash string) (*document.Record, error) {
	if rec, ok := m.records[t][hash]; ok {
		return rec, nil
	}
	return nil, errors.New("record not found")
}

// MockBus collects published events
type MockBus struct {
	published []events.Event
}

func (m *MockBus) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("Verification Service", func() {
	var (
		finder  *MockFinder
		bus     *MockBus
		service *verification.Service
		ctx     context.Context
	)

	issued := &document.Record{
		ID:        7,
		Type:      datamodel.TypeClearance,
		LastName:  "Dela Cruz",
		FirstName: "Juan",
		MiddleName: "Santos",
		Address:   "123 Mabini St",
		Gender:    "Male",
		Purpose:   "Employment",
		IssuedOn:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		HashCode:  "deadbeefdeadbeefdeadbeefdeadbeef",
	}

	BeforeEach(func() {
		finder = NewMockFinder()
		finder.Add(issued)
		bus = &MockBus{}
		service = verification.NewService(finder, bus, false, testLogger())
		ctx = context.Background()
	})

	Describe("Verify", func() {
		Context("with the hash of an issued document", func() {
			It("should confirm validity with a redacted summary", func() {
				result, err := service.Verify(ctx, issued.HashCode, "")
				Expect(err).NotTo(HaveOccurred())
				Expect(result.IsValid).To(BeTrue())
				Expect(result.DocumentType).To(Equal(datamodel.TypeClearance))
				Expect(result.Document.FullName).To(Equal("Juan Santos Dela Cruz"))
				Expect(result.Document.Purpose).To(Equal("Employment"))
				Expect(result.Document.IssuedOn).To(Equal("2025-06-01"))
			})

			It("should publish a successful verification event", func() {
				_, err := service.Verify(ctx, issued.HashCode, "")
				Expect(err).NotTo(HaveOccurred())
				Expect(bus.published).To(HaveLen(1))
				Expect(bus.published[0].EventType()).To(Equal(events.EventTypeDocumentVerified))
			})

			It("should be idempotent", func() {
				first, err := service.Verify(ctx, issued.HashCode, "")
				Expect(err).NotTo(HaveOccurred())
				second, err := service.Verify(ctx, issued.HashCode, "")
				Expect(err).NotTo(HaveOccurred())
				Expect(second).To(Equal(first))
			})

			It("should honor a matching claimed type", func() {
				result, err := service.Verify(ctx, issued.HashCode, datamodel.TypeClearance)
				Expect(err).NotTo(HaveOccurred())
				Expect(result.IsValid).To(BeTrue())
			})

			It("should fail when the claimed type does not match", func() {
				result, err := service.Verify(ctx, issued.HashCode, datamodel.TypeIndigency)
				Expect(err).NotTo(HaveOccurred())
				Expect(result.IsValid).To(BeFalse())
				Expect(result.Document).To(BeNil())
			})
		})

		Context("with an unknown hash", func() {
			It("should report invalid without erroring", func() {
				result, err := service.Verify(ctx, "00000000000000000000000000000000", "")
				Expect(err).NotTo(HaveOccurred())
				Expect(result.IsValid).To(BeFalse())
				Expect(result.Document).To(BeNil())
			})

			It("should publish a failed verification event", func() {
				_, err := service.Verify(ctx, "00000000000000000000000000000000", "")
				Expect(err).NotTo(HaveOccurred())
				Expect(bus.published).To(HaveLen(1))
			})
		})

		Context("with an empty hash", func() {
			It("should return a validation error", func() {
				_, err := service.Verify(ctx, "  ", "")
				Expect(err).To(HaveOccurred())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
			})
		})

		Context("with an unknown claimed type", func() {
			It("should return an error", func() {
				_, err := service.Verify(ctx, issued.HashCode, datamodel.Type("passport"))
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("VerifyImage", func() {
		qrImage := func(text string) *bytes.Buffer {
			data, err := qrcode.Encode(text, qrcode.Medium, 256)
			Expect(err).NotTo(HaveOccurred())
			return bytes.NewBuffer(data)
		}

		Context("with a QR image of an issued hash", func() {
			It("should confirm validity", func() {
				result, err := service.VerifyImage(ctx, qrImage(issued.HashCode), "")
				Expect(err).NotTo(HaveOccurred())
				Expect(result.IsValid).To(BeTrue())
				Expect(result.DocumentType).To(Equal(datamodel.TypeClearance))
			})
		})

		Context("with a QR image of an unknown hash", func() {
			It("should report invalid", func() {
				result, err := service.VerifyImage(ctx, qrImage("ffffffffffffffffffffffffffffffff"), "")
				Expect(err).NotTo(HaveOccurred())
				Expect(result.IsValid).To(BeFalse())
			})
		})

		Context("with an image that contains no QR code", func() {
			It("should return the decode error and publish a failed outcome", func() {
				blank := func() *bytes.Buffer {
					var buf bytes.Buffer
					img := blankImage(64)
					Expect(png.Encode(&buf, img)).To(Succeed())
					return &buf
				}()

				_, err := service.VerifyImage(ctx, blank, "")
				Expect(err).To(HaveOccurred())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(422))
				Expect(bus.published).To(HaveLen(1))
			})
		})
	})

	Describe("demo mode", func() {
		BeforeEach(func() {
			service = verification.NewService(finder, bus, true, testLogger())
		})

		It("should resolve the built-in sample hashes", func() {
			result, err := service.Verify(ctx, "a1b2c3d4e5f60718293a4b5c6d7e8f90", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsValid).To(BeTrue())
			Expect(result.DocumentType).To(Equal(datamodel.TypeClearance))
		})

		It("should still resolve real documents first", func() {
			result, err := service.Verify(ctx, issued.HashCode, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsValid).To(BeTrue())
		})

		It("should not resolve sample hashes when demo mode is off", func() {
			offService := verification.NewService(finder, bus, false, testLogger())
			result, err := offService.Verify(ctx, "a1b2c3d4e5f60718293a4b5c6d7e8f90", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsValid).To(BeFalse())
		})
	})
})

package qr_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/barangay/docucheck/internal/qr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestQR(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "QR Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Gateway", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("without a render API configured", func() {
		It("should generate a decodable PNG locally", func() {
			gateway := qr.NewGateway(qr.GatewayConfig{}, testLogger())

			png, err := gateway.Render(ctx, "deadbeefdeadbeefdeadbeefdeadbeef")
			Expect(err).NotTo(HaveOccurred())
			Expect(png).NotTo(BeEmpty())

			text, err := qr.Decode(bytes.NewReader(png))
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("deadbeefdeadbeefdeadbeefdeadbeef"))
		})
	})

	Context("with a working render API", func() {
		It("should return the remote image", func() {
			remote := []byte("remote-png-bytes")
			var gotQuery string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.RawQuery
				w.Write(remote)
			}))
			defer server.Close()

			gateway := qr.NewGateway(qr.GatewayConfig{RenderAPIURL: server.URL, Size: 300}, testLogger())

			png, err := gateway.Render(ctx, "some-hash")
			Expect(err).NotTo(HaveOccurred())
			Expect(png).To(Equal(remote))
			Expect(gotQuery).To(ContainSubstring("size=300x300"))
			Expect(gotQuery).To(ContainSubstring("format=png"))
			Expect(gotQuery).To(ContainSubstring("data=some-hash"))
		})
	})

	Context("when the render API fails", func() {
		It("should fall back to local generation", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			gateway := qr.NewGateway(qr.GatewayConfig{RenderAPIURL: server.URL}, testLogger())

			png, err := gateway.Render(ctx, "fallback-hash")
			Expect(err).NotTo(HaveOccurred())

			text, err := qr.Decode(bytes.NewReader(png))
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal("fallback-hash"))
		})
	})
})

var _ = Describe("Decode", func() {
	It("should reject data that is not an image", func() {
		_, err := qr.Decode(bytes.NewReader([]byte("not an image")))
		Expect(err).To(HaveOccurred())
	})
})

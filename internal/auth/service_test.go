package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/barangay/docucheck/internal/auth"
	"github.com/barangay/docucheck/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

// MockUserRepository implements auth.UserRepository
type MockUserRepository struct {
	users map[string]*auth.UserRecord
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*auth.UserRecord)}
}

func (m *MockUserRepository) Add(rec *auth.UserRecord) {
	m.users[rec.Name] = rec
}

func (m *MockUserRepository) GetByName(name string) (*auth.UserRecord, error) {
	if rec, ok := m.users[name]; ok {
		return rec, nil
	}
	return nil, errors.New("user not found")
}

func (m *MockUserRepository) GetByID(userID int64) (*auth.UserRecord, error) {
	for _, rec := range m.users {
		if rec.ID == userID {
			return rec, nil
		}
	}
	return nil, errors.New("user not found")
}

// MockBus collects published events
type MockBus struct {
	published []events.Event
}

func (m *MockBus) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

func (m *MockBus) lastLogin() *events.LoginAttemptEvent {
	if len(m.published) == 0 {
		return nil
	}
	e, _ := m.published[len(m.published)-1].(*events.LoginAttemptEvent)
	return e
}

const (
	accessSecret  = "test-access-secret-32-characters!!"
	refreshSecret = "test-refresh-secret-32-characters!"
)

var _ = Describe("Auth Service", func() {
	var (
		repo    *MockUserRepository
		bus     *MockBus
		service *auth.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = NewMockUserRepository()
		bus = &MockBus{}

		hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		repo.Add(&auth.UserRecord{
			ID:           1,
			Name:         "secretary",
			PasswordHash: string(hash),
			Role:         "staff",
			IsActive:     true,
		})

		tokenGen := auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 7*24*time.Hour)
		service = auth.NewService(repo, tokenGen, bus, bcrypt.MinCost)
		ctx = context.Background()
	})

	Describe("Authenticate", func() {
		Context("with valid credentials", func() {
			It("should return the user and a token pair", func() {
				user, tokens, err := service.Authenticate(ctx, auth.LoginDTO{Name: "secretary", Password: "correct-password"})
				Expect(err).NotTo(HaveOccurred())
				Expect(user.Name).To(Equal("secretary"))
				Expect(user.Role).To(Equal("staff"))
				Expect(tokens.AccessToken).NotTo(BeEmpty())
				Expect(tokens.RefreshToken).NotTo(BeEmpty())
			})

			It("should issue an access token that validates back to the user", func() {
				_, tokens, err := service.Authenticate(ctx, auth.LoginDTO{Name: "secretary", Password: "correct-password"})
				Expect(err).NotTo(HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				Expect(err).NotTo(HaveOccurred())
				Expect(claims.UserID).To(Equal("1"))
				Expect(claims.Name).To(Equal("secretary"))
				Expect(claims.Role).To(Equal("staff"))
			})

			It("should publish a successful login event", func() {
				_, _, err := service.Authenticate(ctx, auth.LoginDTO{Name: "secretary", Password: "correct-password"})
				Expect(err).NotTo(HaveOccurred())

				e := bus.lastLogin()
				Expect(e).NotTo(BeNil())
				Expect(e.Success).To(BeTrue())
				Expect(e.UserName).To(Equal("secretary"))
			})
		})

		Context("with a wrong password", func() {
			It("should reject with invalid credentials", func() {
				_, _, err := service.Authenticate(ctx, auth.LoginDTO{Name: "secretary", Password: "wrong"})
				Expect(err).To(Equal(auth.ErrInvalidCredentials))
			})

			It("should publish a failed login event", func() {
				service.Authenticate(ctx, auth.LoginDTO{Name: "secretary", Password: "wrong"})
				e := bus.lastLogin()
				Expect(e).NotTo(BeNil())
				Expect(e.Success).To(BeFalse())
			})
		})

		Context("with an unknown user", func() {
			It("should reject with the same error as a wrong password", func() {
				_, _, err := service.Authenticate(ctx, auth.LoginDTO{Name: "nobody", Password: "whatever"})
				Expect(err).To(Equal(auth.ErrInvalidCredentials))
			})
		})

		Context("with an inactive account", func() {
			It("should reject the login", func() {
				hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
				repo.Add(&auth.UserRecord{ID: 2, Name: "former", PasswordHash: string(hash), Role: "staff", IsActive: false})

				_, _, err := service.Authenticate(ctx, auth.LoginDTO{Name: "former", Password: "pw"})
				Expect(err).To(Equal(auth.ErrUserInactive))
			})
		})

		Context("with missing fields", func() {
			It("should return a validation error", func() {
				_, _, err := service.Authenticate(ctx, auth.LoginDTO{Name: "secretary"})
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(Equal("Name and password are required"))
			})
		})
	})

	Describe("RefreshTokens", func() {
		It("should exchange a refresh token for a new pair", func() {
			_, tokens, err := service.Authenticate(ctx, auth.LoginDTO{Name: "secretary", Password: "correct-password"})
			Expect(err).NotTo(HaveOccurred())

			fresh, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh.AccessToken).NotTo(BeEmpty())

			claims, err := service.ValidateAccessToken(fresh.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Name).To(Equal("secretary"))
		})

		It("should reject garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-jwt")
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})

	Describe("GetUser", func() {
		It("should return the redacted view without the password hash", func() {
			user, err := service.GetUser(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Name).To(Equal("secretary"))
		})

		It("should reject inactive accounts", func() {
			repo.Add(&auth.UserRecord{ID: 3, Name: "gone", PasswordHash: "x", Role: "staff", IsActive: false})
			_, err := service.GetUser(3)
			Expect(err).To(Equal(auth.ErrUserInactive))
		})
	})
})

var _ = Describe("Login Handler", func() {
	var (
		handler *auth.Handler
		repo    *MockUserRepository
	)

	BeforeEach(func() {
		repo = NewMockUserRepository()
		hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		repo.Add(&auth.UserRecord{ID: 1, Name: "secretary", PasswordHash: string(hash), Role: "staff", IsActive: true})

		tokenGen := auth.NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 7*24*time.Hour)
		handler = auth.NewHandler(auth.NewService(repo, tokenGen, nil, bcrypt.MinCost))
	})

	It("should answer a valid login with the legacy success message", func() {
		body := `{"name": "secretary", "password": "correct-password"}`
		w := httptest.NewRecorder()
		handler.Login(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))

		Expect(w.Code).To(Equal(http.StatusOK))

		var resp auth.LoginResponseDTO
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Message).To(Equal("Login successful"))
		Expect(resp.User.Name).To(Equal("secretary"))
		Expect(resp.AccessToken).NotTo(BeEmpty())
	})

	It("should answer wrong credentials with 401", func() {
		body := `{"name": "secretary", "password": "wrong"}`
		w := httptest.NewRecorder()
		handler.Login(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))

		Expect(w.Code).To(Equal(http.StatusUnauthorized))

		var resp map[string]any
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp["message"]).To(Equal("Invalid credentials"))
	})

	It("should answer missing fields with 400", func() {
		body := `{"name": "secretary"}`
		w := httptest.NewRecorder()
		handler.Login(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))

		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var resp map[string]any
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp["message"]).To(Equal("Name and password are required"))
	})

	It("should guard staff routes with the middleware", func() {
		var gotUser *auth.User
		protected := handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUser, _ = auth.UserFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		// no token
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recent-issuance", nil))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))

		// valid token
		body := `{"name": "secretary", "password": "correct-password"}`
		w = httptest.NewRecorder()
		handler.Login(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
		var resp auth.LoginResponseDTO
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())

		req := httptest.NewRequest(http.MethodGet, "/recent-issuance", nil)
		req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
		w = httptest.NewRecorder()
		protected.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotUser).NotTo(BeNil())
		Expect(gotUser.Name).To(Equal("secretary"))
	})
})

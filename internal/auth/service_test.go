package auth_test

import (
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/alfarhan/hr-fleet-management/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

// MockRepository implements auth.RepositoryAPI for testing
type MockRepository struct {
	credentials map[string][]auth.Credentials
	users       map[int64]*auth.User
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		credentials: make(map[string][]auth.Credentials),
		users:       make(map[int64]*auth.User),
	}
}

func (m *MockRepository) GetCredentialsForEmail(email string) ([]auth.Credentials, error) {
	creds, ok := m.credentials[email]
	if !ok || len(creds) == 0 {
		return nil, fmt.Errorf("user not found")
	}
	return creds, nil
}

func (m *MockRepository) GetUserWithPermissions(userID int64) (*auth.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

var _ = Describe("Auth Service", func() {
	var (
		repo    *MockRepository
		service *auth.Service
	)

	hashOf := func(password string) string {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		return string(hash)
	}

	companyID := func(id int64) *int64 { return &id }

	BeforeEach(func() {
		repo = NewMockRepository()
		tokenGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", time.Minute, time.Hour)
		service = auth.NewService(repo, tokenGen, bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		It("should log in a user and issue a token pair", func() {
			repo.credentials["fatima@alpha.example"] = []auth.Credentials{
				{UserID: 7, CompanyID: companyID(1), PasswordHash: hashOf("correct-horse"), Active: true},
			}

			tokens, err := service.Authenticate(auth.LoginDTO{Email: "fatima@alpha.example", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("7"))
		})

		It("should reject a wrong password", func() {
			repo.credentials["fatima@alpha.example"] = []auth.Credentials{
				{UserID: 7, CompanyID: companyID(1), PasswordHash: hashOf("correct-horse"), Active: true},
			}

			_, err := service.Authenticate(auth.LoginDTO{Email: "fatima@alpha.example", Password: "wrong"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("should reject an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "nobody@alpha.example", Password: "anything"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("should reject an inactive user", func() {
			repo.credentials["fatima@alpha.example"] = []auth.Credentials{
				{UserID: 7, CompanyID: companyID(1), PasswordHash: hashOf("correct-horse"), Active: false},
			}

			_, err := service.Authenticate(auth.LoginDTO{Email: "fatima@alpha.example", Password: "correct-horse"})
			Expect(err).To(Equal(auth.ErrUserInactive))
		})

		Context("when the same email exists in two companies", func() {
			BeforeEach(func() {
				repo.credentials["hr@example.com"] = []auth.Credentials{
					{UserID: 1, CompanyID: companyID(1), PasswordHash: hashOf("alpha-password"), Active: true},
					{UserID: 2, CompanyID: companyID(2), PasswordHash: hashOf("beta-password"), Active: true},
				}
			})

			It("should log each user into their own company", func() {
				tokens, err := service.Authenticate(auth.LoginDTO{
					Email: "hr@example.com", Password: "alpha-password", CompanyID: companyID(1),
				})
				Expect(err).NotTo(HaveOccurred())
				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				Expect(err).NotTo(HaveOccurred())
				Expect(claims.UserID).To(Equal("1"))

				tokens, err = service.Authenticate(auth.LoginDTO{
					Email: "hr@example.com", Password: "beta-password", CompanyID: companyID(2),
				})
				Expect(err).NotTo(HaveOccurred())
				claims, err = service.ValidateAccessToken(tokens.AccessToken)
				Expect(err).NotTo(HaveOccurred())
				Expect(claims.UserID).To(Equal("2"))
			})

			It("should refuse to guess when no company is given", func() {
				_, err := service.Authenticate(auth.LoginDTO{Email: "hr@example.com", Password: "alpha-password"})
				Expect(err).To(Equal(auth.ErrAmbiguousEmail))
			})

			It("should not accept the other company's password", func() {
				_, err := service.Authenticate(auth.LoginDTO{
					Email: "hr@example.com", Password: "beta-password", CompanyID: companyID(1),
				})
				Expect(err).To(Equal(auth.ErrInvalidCredentials))
			})

			It("should reject a company where the email does not exist", func() {
				_, err := service.Authenticate(auth.LoginDTO{
					Email: "hr@example.com", Password: "alpha-password", CompanyID: companyID(3),
				})
				Expect(err).To(Equal(auth.ErrInvalidCredentials))
			})
		})
	})
})

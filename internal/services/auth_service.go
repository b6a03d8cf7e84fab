package services

import (
	"errors"
	"time"

	"backoffice-service/internal/config"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmailTaken         = errors.New("email is already registered")
)

const tokenLifetime = 3 * time.Hour

type AuthService struct {
	userRepo     *repository.UserRepository
	customerRepo *repository.CustomerRepository
	cfg          *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, customerRepo *repository.CustomerRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, customerRepo: customerRepo, cfg: cfg}
}

// Claims is the JWT payload issued on login
type Claims struct {
	TenantID string          `json:"tenant_id"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Login verifies the password and issues a signed token
func (s *AuthService) Login(tenantID string, req *models.LoginRequest) (*models.TokenResponse, *models.User, error) {
	user, err := s.userRepo.GetByEmail(tenantID, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, nil, err
	}

	_ = s.userRepo.TouchLogin(tenantID, user.ID)
	return token, user, nil
}

// RegisterCustomer creates a customer record plus a login account for it
func (s *AuthService) RegisterCustomer(tenantID string, req *models.RegisterCustomerRequest) (*models.TokenResponse, *models.User, error) {
	exists, err := s.userRepo.EmailExists(tenantID, req.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	customer := &models.Customer{
		FullName:       req.FullName,
		Email:          req.Email,
		DocumentNumber: req.DocumentNumber,
		PhoneNumber:    req.PhoneNumber,
		Age:            req.Age,
		IsActive:       true,
	}
	if err := s.customerRepo.Create(tenantID, customer); err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.UserRoleCustomer,
		CustomerID:   &customer.ID,
		IsActive:     true,
	}
	if err := s.userRepo.Create(tenantID, user); err != nil {
		return nil, nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, nil, err
	}
	return token, user, nil
}

func (s *AuthService) issueToken(user *models.User) (*models.TokenResponse, error) {
	expiration := time.Now().Add(tokenLifetime)

	claims := Claims{
		TenantID: user.TenantID,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{s.cfg.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiration),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{Token: signed, Expiration: expiration}, nil
}

package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/anafit/fitcore/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// demoAccount seeds the fixed demo user set.
type demoAccount struct {
	name     string
	email    string
	password string
	planID   string
}

var demoAccounts = []demoAccount{
	{name: "Demo User", email: "demo@ana-fitness.com", password: "demo123", planID: domain.PlanPremium},
	{name: "Test User", email: "test@ana-fitness.com", password: "test123", planID: domain.PlanStandard},
}

// IdentityService is the mock identity provider. It authenticates against a
// fixed in-memory demo user set and issues signed session tokens. There is no
// real account storage; registrations live only for the process lifetime.
type IdentityService struct {
	mu     sync.Mutex
	users  map[string]*domain.User // keyed by email
	secret []byte
	clock  domain.Clock
}

// NewIdentityService creates the provider and seeds the demo accounts.
func NewIdentityService(secret string, clock domain.Clock) (*IdentityService, error) {
	s := &IdentityService{
		users:  make(map[string]*domain.User),
		secret: []byte(secret),
		clock:  clock,
	}

	for _, acct := range demoAccounts {
		if _, err := s.seed(acct); err != nil {
			return nil, fmt.Errorf("seed demo account %s: %w", acct.email, err)
		}
	}
	return s, nil
}

func (s *IdentityService) seed(acct demoAccount) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(acct.password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         acct.name,
		Email:        acct.email,
		PasswordHash: string(hash),
		PlanID:       acct.planID,
		CreatedAt:    s.clock.Now(),
	}
	s.users[user.Email] = user
	return user, nil
}

// Login verifies credentials and returns the user with a signed session token.
func (s *IdentityService) Login(email, password string) (*domain.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	cp := *user
	return &cp, token, nil
}

// Register creates a new in-memory account on the free plan and logs it in.
func (s *IdentityService) Register(name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: name, email, and password are required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(email)
	if _, exists := s.users[email]; exists {
		return nil, "", domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		PlanID:       domain.PlanFree,
		CreatedAt:    s.clock.Now(),
	}
	s.users[email] = user

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	cp := *user
	return &cp, token, nil
}

// VerifyToken parses and validates a session token and returns its user.
func (s *IdentityService) VerifyToken(tokenString string) (*domain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == sub {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

func (s *IdentityService) generateToken(user *domain.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

package service

import (
	"errors"
	"testing"

	"github.com/anafit/fitcore/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestIdentity(t *testing.T) *IdentityService {
	t.Helper()
	s, err := NewIdentityService(testSecret, &fakeClock{now: testNow})
	if err != nil {
		t.Fatalf("NewIdentityService: %v", err)
	}
	return s
}

func TestLoginDemoUser(t *testing.T) {
	identity := newTestIdentity(t)

	user, token, err := identity.Login("demo@ana-fitness.com", "demo123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Name != "Demo User" || user.PlanID != domain.PlanPremium {
		t.Errorf("user = %+v", user)
	}
	if token == "" {
		t.Error("expected a session token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	identity := newTestIdentity(t)

	if _, _, err := identity.Login("demo@ana-fitness.com", "nope"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if _, _, err := identity.Login("ghost@ana-fitness.com", "demo123"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyToken(t *testing.T) {
	identity := newTestIdentity(t)

	user, token, err := identity.Login("test@ana-fitness.com", "test123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	verified, err := identity.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if verified.ID != user.ID || verified.Email != user.Email {
		t.Errorf("verified = %+v, want %+v", verified, user)
	}

	if _, err := identity.VerifyToken("not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestRegisterStartsOnFreePlan(t *testing.T) {
	identity := newTestIdentity(t)

	user, token, err := identity.Register("New User", "new@ana-fitness.com", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PlanID != domain.PlanFree {
		t.Errorf("plan = %s, want free", user.PlanID)
	}
	if token == "" {
		t.Error("expected a session token")
	}

	// The account is immediately usable.
	if _, _, err := identity.Login("new@ana-fitness.com", "hunter22"); err != nil {
		t.Errorf("Login after Register: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	identity := newTestIdentity(t)

	if _, _, err := identity.Register("Imposter", "demo@ana-fitness.com", "password"); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegisterRequiresFields(t *testing.T) {
	identity := newTestIdentity(t)

	if _, _, err := identity.Register("", "a@b.com", "pw"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

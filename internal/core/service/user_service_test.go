package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/crewhub/accounts-system/internal/core/domain"
	"github.com/crewhub/accounts-system/internal/core/ports"
)

func TestUserService_Create(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, testSalt, zerolog.Nop())

	profile, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:     "Alice@Example.com",
		Password:  "s3cret-pass",
		FirstName: "Alice",
		LastName:  "Smith",
		Position:  "Engineer",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if profile.Role != domain.RoleUser {
		t.Fatalf("role must default to user, got %s", profile.Role)
	}
	if !profile.IsActive {
		t.Fatalf("new accounts must be active")
	}
	if !strings.HasPrefix(profile.Avatar, "https://www.gravatar.com/avatar/") {
		t.Fatalf("unexpected avatar: %s", profile.Avatar)
	}

	stored := users.users[profile.ID]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.Hash == "s3cret-pass" || stored.Hash == "" {
		t.Fatalf("password must be stored as a salted hash")
	}
	if stored.Hash != HashPassword("s3cret-pass", testSalt) {
		t.Fatalf("stored hash does not match the salted password hash")
	}
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), testSalt, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    "a@x.com",
		Password: "s3cret-pass",
		Role:     "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	users.seed("a@x.com", "p", domain.RoleUser)
	svc := NewUserService(users, testSalt, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Email:    "a@x.com",
		Password: "s3cret-pass",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

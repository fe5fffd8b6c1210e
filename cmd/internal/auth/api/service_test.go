package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"gate/cmd/identity"
	"gate/cmd/security/password"
	"gate/cmd/security/token"
)

func testHasher() password.Params {
	// Small parameters keep the suite fast; production uses DefaultParams.
	return password.Params{
		MemoryKiB:   8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func testTokens(t *testing.T) token.Service {
	t.Helper()
	svc, err := token.NewHS256Service(token.Config{
		Issuer:    "gate",
		TTL:       time.Hour,
		ClockSkew: time.Minute,
		Secret:    []byte("0123456789abcdef0123456789abcdef"),
	})
	if err != nil {
		t.Fatalf("NewHS256Service: %v", err)
	}
	return svc
}

func newTestService(t *testing.T) (*Service, identity.Store) {
	t.Helper()
	store := identity.NewMemoryStore()
	return NewService(store, testTokens(t), testHasher()), store
}

func validRegister() registerRequest {
	return registerRequest{
		Name:        "Ada Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "+15550001111",
		Password:    "s3cret-password",
	}
}

func TestRegister_OK(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, validRegister())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if sess.UserID == "" || sess.Token == "" {
		t.Fatalf("incomplete session: %+v", sess)
	}
	if !sess.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry not in future: %v", sess.ExpiresAt)
	}

	user, err := store.GetUserByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user.ID != sess.UserID {
		t.Fatalf("stored id %q, session id %q", user.ID, sess.UserID)
	}
	if user.PasswordHash == "" || user.PasswordHash == "s3cret-password" {
		t.Fatalf("password not hashed: %q", user.PasswordHash)
	}
}

func TestRegister_ValidationOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		mutate    func(*registerRequest)
		wantField string
	}{
		{"all missing", func(r *registerRequest) { *r = registerRequest{} }, "name"},
		{"name missing", func(r *registerRequest) { r.Name = "" }, "name"},
		{"name blank", func(r *registerRequest) { r.Name = "   " }, "name"},
		{"email missing", func(r *registerRequest) { r.Email = "" }, "email"},
		{"phone missing", func(r *registerRequest) { r.PhoneNumber = "" }, "phoneNumber"},
		{"password missing", func(r *registerRequest) { r.Password = "" }, "password"},
		{"email and password missing", func(r *registerRequest) { r.Email, r.Password = "", "" }, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)

			_, err := svc.Register(ctx, req)
			ve, ok := asValidation(err)
			if !ok {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Fatalf("field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	dup := validRegister()
	dup.Email = "ADA@Example.COM" // lookups are case-insensitive
	dup.PhoneNumber = "+15550002222"

	_, err := svc.Register(ctx, dup)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestLogin_OK(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, validRegister())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	sess, err := svc.Login(ctx, loginRequest{
		Email:    "ada@example.com",
		Password: "s3cret-password",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.UserID != reg.UserID {
		t.Fatalf("login id %q, register id %q", sess.UserID, reg.UserID)
	}
	if sess.Token == "" {
		t.Fatal("empty token")
	}
}

func TestLogin_Failures(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("missing email", func(t *testing.T) {
		_, err := svc.Login(ctx, loginRequest{Password: "s3cret-password"})
		ve, ok := asValidation(err)
		if !ok || ve.Field != "email" {
			t.Fatalf("want email ValidationError, got %v", err)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		_, err := svc.Login(ctx, loginRequest{Email: "ada@example.com"})
		ve, ok := asValidation(err)
		if !ok || ve.Field != "password" {
			t.Fatalf("want password ValidationError, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, loginRequest{Email: "nobody@example.com", Password: "x"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, loginRequest{Email: "ada@example.com", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("want ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestVerifyToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, validRegister())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("valid", func(t *testing.T) {
		user, err := svc.VerifyToken(ctx, sess.Token)
		if err != nil {
			t.Fatalf("VerifyToken: %v", err)
		}
		if user.ID != sess.UserID {
			t.Fatalf("id = %q, want %q", user.ID, sess.UserID)
		}
		if user.PasswordHash != "" {
			t.Fatal("verification result carries a password hash")
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.VerifyToken(ctx, "")
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("want ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken(ctx, "not.a.token")
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("want ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		late := NewService(svc.store, svc.tokens, svc.hasher)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, err := late.VerifyToken(ctx, sess.Token)
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("want ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("subject gone", func(t *testing.T) {
		id, err := identity.NewULID(time.Now())
		if err != nil {
			t.Fatalf("NewULID: %v", err)
		}
		tok, _, err := testTokens(t).Issue(id, time.Now())
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		_, err = svc.VerifyToken(ctx, tok)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

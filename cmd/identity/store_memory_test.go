package identity

import (
	"context"
	"errors"
	"testing"
)

func validInput() CreateUserInput {
	return CreateUserInput{
		Name:         "A",
		Email:        "a@x.com",
		PhoneNumber:  "123",
		PasswordHash: "$argon2id$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2E$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
	}
}

func TestMemoryStore_CreateAndLookup(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	u, err := st.CreateUser(ctx, validInput())
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected generated id")
	}
	if u.CreatedAt.IsZero() || !u.CreatedAt.Equal(u.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %v / %v", u.CreatedAt, u.UpdatedAt)
	}

	byEmail, err := st.GetUserByEmail(ctx, "  A@X.COM ")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Fatalf("lookup id = %q, want %q", byEmail.ID, u.ID)
	}
	if byEmail.PasswordHash == "" {
		t.Fatalf("expected password hash on email lookup")
	}

	byID, err := st.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if byID.PasswordHash != "" {
		t.Fatalf("id lookup must exclude the password hash")
	}
}

func TestMemoryStore_EmailConflict(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if _, err := st.CreateUser(ctx, validInput()); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	in := validInput()
	in.PhoneNumber = "456" // different phone, same email
	_, err := st.CreateUser(ctx, in)
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	var ce ConflictError
	if !errors.As(err, &ce) || ce.Field != "email" {
		t.Fatalf("expected email conflict, got %v", err)
	}
}

func TestMemoryStore_PhoneConflict(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if _, err := st.CreateUser(ctx, validInput()); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	in := validInput()
	in.Email = "b@x.com" // different email, same phone
	_, err := st.CreateUser(ctx, in)
	var ce ConflictError
	if !errors.As(err, &ce) || ce.Field != "phone_number" {
		t.Fatalf("expected phone_number conflict, got %v", err)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if _, err := st.GetUserByEmail(ctx, "nobody@x.com"); !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if _, err := st.GetUserByID(ctx, "01JNOPE000000000000000USER"); !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestMemoryStore_InvalidInput(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	in := validInput()
	in.PasswordHash = " "
	if _, err := st.CreateUser(ctx, in); !IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestMemoryStore_ConcurrentRegistrationSameEmail(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := st.CreateUser(ctx, validInput())
			errs <- err
		}()
	}

	var created, conflicts int
	for i := 0; i < n; i++ {
		switch err := <-errs; {
		case err == nil:
			created++
		case IsConflict(err):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if created != 1 || conflicts != n-1 {
		t.Fatalf("created=%d conflicts=%d, want 1/%d", created, conflicts, n-1)
	}
}

func TestNormalize(t *testing.T) {
	if got := NormalizeEmail("  A@X.Com "); got != "a@x.com" {
		t.Fatalf("NormalizeEmail = %q", got)
	}
	if got := NormalizePhone("  +1 555 0100 "); got != "+1 555 0100" {
		t.Fatalf("NormalizePhone = %q", got)
	}
}


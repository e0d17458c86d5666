package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mewzone/mewzone/internal/domain/entity"
	"github.com/mewzone/mewzone/pkg/helpers"
)

func newAuthService(users *stubUsers, otps *stubOTPs, regs *stubRegStore, pub *stubPublisher) *AuthService {
	return &AuthService{
		Users:       users,
		OTPs:        otps,
		Shops:       newStubShops(),
		Reg:         regs,
		JWT:         helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour),
		Pub:         pub,
		OTPTTL:      10 * time.Minute,
		RegTTL:      15 * time.Minute,
		MailEnabled: true,
	}
}

func sellerInput(email string) RegisterInput {
	return RegisterInput{
		Email:           email,
		Password:        "hunter2hunter2",
		ConfirmPassword: "hunter2hunter2",
		FirstName:       "Mia",
		LastName:        "Katz",
		Phone:           "+15550123",
		Role:            entity.RoleSeller,
	}
}

func TestRegisterSellerIssuesOTP(t *testing.T) {
	users := newStubUsers()
	otps := newStubOTPs()
	regs := newStubRegStore()
	pub := &stubPublisher{}
	svc := newAuthService(users, otps, regs, pub)

	res, err := svc.Register(context.Background(), sellerInput("mia@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.User.IsVerified {
		t.Error("seller should start unverified")
	}
	if res.RegistrationSessionID == "" {
		t.Fatal("expected a registration session id")
	}
	if got := regs.markers[res.RegistrationSessionID]; got != "mia@example.com" {
		t.Errorf("pending marker = %q, want registrant email", got)
	}
	if len(otps.created) != 1 {
		t.Fatalf("OTP rows = %d, want 1", len(otps.created))
	}
	otp := otps.created[0]
	if otp.VerificationType != entity.VerificationRegistration {
		t.Errorf("verification type = %s", otp.VerificationType)
	}
	if len(otp.OTPCode) != 6 {
		t.Errorf("OTP code %q is not 6 digits", otp.OTPCode)
	}
	if window := otp.ExpiresAt.Sub(otp.CreatedAt); window < 9*time.Minute || window > 11*time.Minute {
		t.Errorf("OTP validity window = %v, want about 10m", window)
	}
	if len(pub.jobs) != 1 {
		t.Fatalf("email jobs = %d, want 1", len(pub.jobs))
	}
	if pub.jobs[0]["template"] != "otp_verification" {
		t.Errorf("job template = %v", pub.jobs[0]["template"])
	}
}

func TestRegisterNormalVerifiedImmediately(t *testing.T) {
	users := newStubUsers()
	otps := newStubOTPs()
	pub := &stubPublisher{}
	svc := newAuthService(users, otps, newStubRegStore(), pub)

	in := sellerInput("norm@example.com")
	in.Role = entity.RoleNormal
	res, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !res.User.IsVerified {
		t.Error("normal user should be verified immediately")
	}
	if res.RegistrationSessionID != "" {
		t.Error("normal user should not get a registration session")
	}
	if len(otps.created) != 0 {
		t.Errorf("OTP rows = %d, want 0", len(otps.created))
	}
	if len(pub.jobs) != 0 {
		t.Errorf("email jobs = %d, want 0", len(pub.jobs))
	}
}

func TestRegisterCollectsAllValidationErrors(t *testing.T) {
	users := newStubUsers()
	users.add(&entity.User{ID: "user-0", Email: "taken@example.com"})
	svc := newAuthService(users, newStubOTPs(), newStubRegStore(), &stubPublisher{})

	in := sellerInput("taken@example.com")
	in.ConfirmPassword = "different"
	in.Phone = ""
	_, err := svc.Register(context.Background(), in)

	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("want ValidationError, got %v", err)
	}
	for _, field := range []string{"confirm_password", "phone", "email"} {
		if _, present := ve.Fields[field]; !present {
			t.Errorf("missing field error for %q: %v", field, ve.Fields)
		}
	}
}

func TestRegisterPublishFailureKeepsOTPRow(t *testing.T) {
	users := newStubUsers()
	otps := newStubOTPs()
	pub := &stubPublisher{failWith: errors.New("broker down")}
	svc := newAuthService(users, otps, newStubRegStore(), pub)

	_, err := svc.Register(context.Background(), sellerInput("mia@example.com"))
	if err == nil {
		t.Fatal("expected dispatch error")
	}
	if len(otps.created) != 1 {
		t.Fatalf("OTP rows = %d, want 1 (dispatch failure must not roll back)", len(otps.created))
	}
	if len(users.created) != 1 {
		t.Fatalf("users created = %d, want 1", len(users.created))
	}
}

func TestVerifyOTP(t *testing.T) {
	users := newStubUsers()
	otps := newStubOTPs()
	regs := newStubRegStore()
	svc := newAuthService(users, otps, regs, &stubPublisher{})

	res, err := svc.Register(context.Background(), sellerInput("mia@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	sid := res.RegistrationSessionID
	code := otps.created[0].OTPCode

	t.Run("no pending marker", func(t *testing.T) {
		_, _, err := svc.VerifyOTP(context.Background(), "unknown-sid", code)
		if !errors.Is(err, ErrSessionMissing) {
			t.Errorf("err = %v, want ErrSessionMissing", err)
		}
	})

	t.Run("wrong code keeps marker", func(t *testing.T) {
		_, _, err := svc.VerifyOTP(context.Background(), sid, "000000")
		if !errors.Is(err, ErrInvalidOTP) {
			t.Errorf("err = %v, want ErrInvalidOTP", err)
		}
		if _, ok := regs.markers[sid]; !ok {
			t.Error("marker should survive a failed attempt")
		}
	})

	t.Run("expired code rejected", func(t *testing.T) {
		otps.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
		defer func() { otps.now = time.Now }()
		_, _, err := svc.VerifyOTP(context.Background(), sid, code)
		if !errors.Is(err, ErrInvalidOTP) {
			t.Errorf("err = %v, want ErrInvalidOTP for expired code", err)
		}
	})

	t.Run("success verifies and clears marker", func(t *testing.T) {
		u, pair, err := svc.VerifyOTP(context.Background(), sid, code)
		if err != nil {
			t.Fatalf("VerifyOTP: %v", err)
		}
		if !u.IsVerified {
			t.Error("user should be verified")
		}
		if pair.AccessToken == "" || pair.RefreshToken == "" {
			t.Error("expected a token pair")
		}
		if _, ok := regs.markers[sid]; ok {
			t.Error("marker should be cleared on success")
		}
	})

	t.Run("code is single use", func(t *testing.T) {
		regs.markers[sid] = "mia@example.com"
		_, _, err := svc.VerifyOTP(context.Background(), sid, code)
		if !errors.Is(err, ErrInvalidOTP) {
			t.Errorf("err = %v, want ErrInvalidOTP on reuse", err)
		}
	})
}

func TestLogin(t *testing.T) {
	users := newStubUsers()
	hash, _ := helpers.HashPassword("hunter2hunter2")
	users.add(&entity.User{ID: "u1", Email: "v@example.com", Password: hash, IsVerified: true})
	users.add(&entity.User{ID: "u2", Email: "p@example.com", Password: hash, IsVerified: false})
	svc := newAuthService(users, newStubOTPs(), newStubRegStore(), &stubPublisher{})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"verified user logs in", "v@example.com", "hunter2hunter2", nil},
		{"wrong password", "v@example.com", "nope", ErrInvalidCredentials},
		{"unknown email", "ghost@example.com", "hunter2hunter2", ErrInvalidCredentials},
		{"unverified blocked", "p@example.com", "hunter2hunter2", ErrEmailNotVerified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Login err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPasswordReset(t *testing.T) {
	users := newStubUsers()
	hash, _ := helpers.HashPassword("oldpassword1")
	u := users.add(&entity.User{ID: "u1", Email: "v@example.com", Password: hash, IsVerified: true})
	otps := newStubOTPs()
	pub := &stubPublisher{}
	svc := newAuthService(users, otps, newStubRegStore(), pub)

	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Errorf("unknown email should be silent, got %v", err)
	}
	if len(otps.created) != 0 {
		t.Fatalf("OTP rows after unknown email = %d, want 0", len(otps.created))
	}

	if err := svc.RequestPasswordReset(context.Background(), u.Email); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if len(otps.created) != 1 || otps.created[0].VerificationType != entity.VerificationPasswordReset {
		t.Fatalf("expected one PASSWORD_RESET OTP, got %+v", otps.created)
	}

	code := otps.created[0].OTPCode
	if err := svc.ConfirmPasswordReset(context.Background(), "999999", "newpassword1"); !errors.Is(err, ErrInvalidOTP) {
		t.Errorf("wrong code err = %v, want ErrInvalidOTP", err)
	}
	if err := svc.ConfirmPasswordReset(context.Background(), code, "newpassword1"); err != nil {
		t.Fatalf("ConfirmPasswordReset: %v", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, "newpassword1") {
		t.Error("password was not rehashed")
	}
}

package service

import (
	"errors"
	"testing"

	"github.com/shabihhaider/waterbottle-admin/internal/config"
	"github.com/shabihhaider/waterbottle-admin/internal/models"
	"github.com/shabihhaider/waterbottle-admin/internal/repository"

	"gorm.io/gorm"
)

func newAuthServiceForTest(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true}
	return NewAuthService(cfg, repository.NewAdminRepository(db))
}

func seedAdmin(t *testing.T, db *gorm.DB, svc *AuthService, username, password string) *models.Admin {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Username: username, PasswordHash: hash, DisplayName: "管理员"}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}
	return admin
}

func TestLoginSuccess(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newAuthServiceForTest(t, db)
	seedAdmin(t, db, svc, "admin", "water-pass-1")

	admin, token, expiresAt, err := svc.Login("admin", "water-pass-1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" {
		t.Fatalf("token should not be empty")
	}
	if expiresAt.IsZero() {
		t.Fatalf("expires_at should be set")
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("last_login_at should be updated")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT error: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newAuthServiceForTest(t, db)
	seedAdmin(t, db, svc, "admin", "water-pass-1")

	if _, _, _, err := svc.Login("admin", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "water-pass-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}
}

func TestChangePasswordBumpsTokenVersion(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newAuthServiceForTest(t, db)
	admin := seedAdmin(t, db, svc, "admin", "water-pass-1")

	if err := svc.ChangePassword(admin.ID, "water-pass-1", "new-water-pass-2"); err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}

	var got models.Admin
	if err := db.First(&got, admin.ID).Error; err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if got.TokenVersion != admin.TokenVersion+1 {
		t.Fatalf("token_version want %d got %d", admin.TokenVersion+1, got.TokenVersion)
	}
	if err := svc.VerifyPassword(got.PasswordHash, "new-water-pass-2"); err != nil {
		t.Fatalf("new password should verify: %v", err)
	}

	// 旧密码失效
	if _, _, _, err := svc.Login("admin", "water-pass-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password want ErrInvalidCredentials got %v", err)
	}
}

func TestChangePasswordValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newAuthServiceForTest(t, db)
	admin := seedAdmin(t, db, svc, "admin", "water-pass-1")

	if err := svc.ChangePassword(admin.ID, "wrong-pass", "new-water-pass-2"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "water-pass-1", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password want ErrWeakPassword got %v", err)
	}
	if err := svc.ChangePassword(99999, "water-pass-1", "new-water-pass-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing admin want ErrNotFound got %v", err)
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireNumber: true}

	cases := []struct {
		password string
		wantErr  bool
	}{
		{password: "Water-pass-1", wantErr: false},
		{password: "short", wantErr: true},
		{password: "water-pass-1", wantErr: true},
		{password: "Water-pass-x", wantErr: true},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.wantErr && !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("password %q want ErrWeakPassword got %v", tc.password, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("password %q should pass, got %v", tc.password, err)
		}
	}

	// 空策略不做校验
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("empty policy should pass, got %v", err)
	}
}

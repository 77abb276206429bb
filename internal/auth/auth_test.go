package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boutique-backend/internal/auth"
)

func TestCan(t *testing.T) {
	tests := []struct {
		role       string
		capability string
		want       bool
	}{
		{auth.RoleAdmin, auth.CapManageUsers, true},
		{auth.RoleAdmin, auth.CapManageCredentials, true},
		{auth.RoleAdmin, auth.CapViewAnalytics, true},
		{auth.RoleMember, auth.CapRecordSales, true},
		{auth.RoleMember, auth.CapManageCatalog, true},
		{auth.RoleMember, auth.CapManageUsers, false},
		{auth.RoleMember, auth.CapManageCredentials, false},
		{"unknown", auth.CapRecordSales, false},
		{"", auth.CapViewAnalytics, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.capability, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.Can(tt.role, tt.capability))
		})
	}
}

func TestPasscodeRoundTrip(t *testing.T) {
	hash, err := auth.HashPasscode("secret-passcode")
	assert.NoError(t, err)
	assert.True(t, auth.VerifyPasscode(hash, "secret-passcode"))
	assert.False(t, auth.VerifyPasscode(hash, "wrong-passcode"))
}

func TestGenerateTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		pw, err := auth.GenerateTempPassword()
		assert.NoError(t, err)
		assert.Len(t, pw, 12)
		assert.False(t, seen[pw], "temp passwords should not repeat")
		seen[pw] = true
	}
}

func TestSecretBoxRoundTrip(t *testing.T) {
	box, err := auth.NewSecretBox("test-encryption-key")
	assert.NoError(t, err)

	ciphertext, err := box.Encrypt("rzp_secret_0123456789012345678901234567890123")
	assert.NoError(t, err)
	assert.NotContains(t, ciphertext, "rzp_secret")

	plain, err := box.Decrypt(ciphertext)
	assert.NoError(t, err)
	assert.Equal(t, "rzp_secret_0123456789012345678901234567890123", plain)
}

func TestSecretBoxRejectsEmptyKey(t *testing.T) {
	_, err := auth.NewSecretBox("")
	assert.Error(t, err)
}

func TestSecretBoxRejectsTampering(t *testing.T) {
	box, _ := auth.NewSecretBox("test-encryption-key")
	ciphertext, _ := box.Encrypt("payload")
	_, err := box.Decrypt("AAAA" + ciphertext[4:])
	assert.Error(t, err)
}

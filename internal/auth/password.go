package auth

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost of 8 keeps login under ~25ms on the small VPS this runs on
const bcryptCost = 8

// MinPasscodeLength for user-chosen passcodes
const MinPasscodeLength = 6

// HashPasscode generates a bcrypt hash of the passcode
func HashPasscode(passcode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPasscode checks if the provided passcode matches the hash
func VerifyPasscode(hashedPasscode, passcode string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPasscode), []byte(passcode))
	return err == nil
}

const tempPasswordLength = 12

const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// GenerateTempPassword produces the one-time password handed to a newly
// added team member. Ambiguous characters (0/O, 1/l/I) are excluded.
func GenerateTempPassword() (string, error) {
	buf := make([]byte, tempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}

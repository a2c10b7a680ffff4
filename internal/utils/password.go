package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt ignores input beyond 72 bytes; reject instead of silently
// truncating the credential.
const maxPasswordBytes = 72

func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", E(CodeInvalidArgument, "HashPassword", "password too long", nil)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

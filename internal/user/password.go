package user

import (
	"errors"

	"gadget-shop-be/internal/apperror"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong covers multi-byte passwords that pass the 72 character
// check but exceed bcrypt's 72 byte input limit.
var ErrPasswordTooLong = apperror.Wrap(apperror.ErrInvalidInput, "password must be at most 72 bytes")

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt digest. bcrypt is the only hashing
// scheme in use; fast unsalted digests are not acceptable for credentials.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

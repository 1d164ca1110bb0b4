package password

import "golang.org/x/crypto/bcrypt"

// Hash hashes a plain text password with bcrypt. Each call salts the
// hash independently, so hashing the same input twice yields different
// strings.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plain matches the stored bcrypt hash.
// A malformed hash simply verifies as false.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

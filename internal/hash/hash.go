package hash

import "github.com/alexedwards/argon2id"

// dummyDigest is a syntactically valid argon2id digest that matches no
// password. Verifying against it keeps the "unknown email" path as
// expensive as a real comparison.
const dummyDigest = "$argon2id$v=19$m=65536,t=1,p=2$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

func Password(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

// Check reports whether password matches digest. A malformed digest is
// treated as a mismatch, never an error.
func Check(digest, password string) bool {
	ok, err := argon2id.ComparePasswordAndHash(password, digest)
	return err == nil && ok
}

// CheckDummy burns one argon2id comparison against a throwaway digest and
// always reports false.
func CheckDummy(password string) bool {
	return Check(dummyDigest, password)
}

// Package credentials derives the two password representations the
// login and map servers expect from a single plaintext input.
//
// Both formats are legacy constraints: the login server compares the
// plaintext verbatim and the map server expects an unsalted MD5 hex
// digest duplicated across two columns. Neither is acceptable for a new
// design; they are preserved only because the existing server binaries
// read these exact formats. A rewrite that can change the schemas
// should migrate to a salted slow hash.
package credentials

import (
	"crypto/md5"
	"encoding/hex"
)

// Credentials holds the per-store representations of one password.
type Credentials struct {
	LoginForm string // stored as given in accounts.password
	GameForm  string // lowercase MD5 hex digest for tb_user.password and tb_user.pwd
}

// Derive computes both store representations of plaintext. It is pure
// and deterministic: same input, same output, no I/O.
func Derive(plaintext string) Credentials {
	sum := md5.Sum([]byte(plaintext))
	return Credentials{
		LoginForm: plaintext,
		GameForm:  hex.EncodeToString(sum[:]),
	}
}

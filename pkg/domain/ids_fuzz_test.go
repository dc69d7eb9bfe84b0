//go:build go1.18

package domain

import (
	"testing"
)

// FuzzParseDID verifies that parsing never panics on arbitrary input and that
// accepted values round-trip unchanged.
func FuzzParseDID(f *testing.F) {
	f.Add("")
	f.Add("alice-main")
	f.Add("-leading")
	f.Add("trailing.")
	f.Add("'; DROP TABLE identities;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

	f.Fuzz(func(t *testing.T, input string) {
		did, err := ParseDID(input)
		if err != nil {
			return
		}
		roundTrip, err2 := ParseDID(did.String())
		if err2 != nil {
			t.Errorf("accepted DID failed round-trip: %v", err2)
		}
		if roundTrip != did {
			t.Error("round-trip changed DID value")
		}
		if len(input) < 6 || len(input) > 50 {
			t.Errorf("length invariant violated: accepted %d characters", len(input))
		}
	})
}

// FuzzParseEvidenceHash verifies the decoder rejects everything that is not a
// non-zero 32-byte hex string, without panicking.
func FuzzParseEvidenceHash(f *testing.F) {
	f.Add("")
	f.Add("deadbeef")
	f.Add("0000000000000000000000000000000000000000000000000000000000000000")
	f.Add("abababababababababababababababababababababababababababababababab")

	f.Fuzz(func(t *testing.T, input string) {
		h, err := ParseEvidenceHash(input)
		if err != nil {
			return
		}
		if h.IsZero() {
			t.Error("all-zero hash was accepted")
		}
		roundTrip, err2 := ParseEvidenceHash(h.String())
		if err2 != nil || roundTrip != h {
			t.Error("accepted hash failed round-trip")
		}
	})
}

package uid

import "testing"

func TestToCurrent(t *testing.T) {
	legacy, err := Parse("0123456789ABCDEF0011223344556677")
	if err != nil {
		t.Fatal(err)
	}

	got := legacy.ToCurrent()
	want := "67452301AB89EFCD0011223344556677"
	if got.Hex() != want {
		t.Fatalf("ToCurrent = %s, want %s", got.Hex(), want)
	}
}

func TestRoundTrip(t *testing.T) {
	ids := []string{
		"0123456789ABCDEF0011223344556677",
		"00000000000000000000000000000000",
		"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF",
		"DEADBEEFCAFEBABE0102030405060708",
	}
	for _, s := range ids {
		id, err := Parse(s)
		if err != nil {
			t.Fatal(err)
		}
		if back := id.ToCurrent().ToLegacy(); back != id {
			t.Fatalf("round trip of %s produced %s", id.Hex(), back.Hex())
		}
	}
}

func TestTailIsFixedPoint(t *testing.T) {
	id, err := Parse("0123456789ABCDEF8899AABBCCDDEEFF")
	if err != nil {
		t.Fatal(err)
	}
	converted := id.ToCurrent()
	for i := 8; i < Size; i++ {
		if converted[i] != id[i] {
			t.Fatalf("byte %d changed: %02X -> %02X", i, id[i], converted[i])
		}
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := []string{
		"",
		"0123",
		"0123456789ABCDEF001122334455667", // 31 chars
		"0123456789ABCDEF00112233445566778", // 33 chars
		"ZZ23456789ABCDEF0011223344556677",
	}
	for _, s := range cases {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestHexUppercase(t *testing.T) {
	id, err := Parse("deadbeefcafebabe0102030405060708")
	if err != nil {
		t.Fatal(err)
	}
	if id.Hex() != "DEADBEEFCAFEBABE0102030405060708" {
		t.Fatalf("Hex() = %s, want uppercase form", id.Hex())
	}
}

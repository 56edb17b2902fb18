package chain

import "testing"

func TestValidAddress(t *testing.T) {
	valid := []string{
		"0x1111111111111111111111111111111111111111",
		"0xabcdef0123456789abcdef0123456789abcdef01",
		"0XABCDEF0123456789ABCDEF0123456789ABCDEF01",
	}
	for _, a := range valid {
		if !ValidAddress(a) {
			t.Errorf("expected %q to be valid", a)
		}
	}

	invalid := []string{
		"",
		"0x",
		"1111111111111111111111111111111111111111",
		"0x111111111111111111111111111111111111111",    // too short
		"0x11111111111111111111111111111111111111111",  // too long
		"0xzz11111111111111111111111111111111111111",   // not hex
		"ax1111111111111111111111111111111111111111",   // bad prefix
	}
	for _, a := range invalid {
		if ValidAddress(a) {
			t.Errorf("expected %q to be invalid", a)
		}
	}
}

func TestNormalizeAddress(t *testing.T) {
	got := NormalizeAddress("0XABCDEF0123456789ABCDEF0123456789ABCDEF01")
	want := "0xabcdef0123456789abcdef0123456789abcdef01"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

package codec

import (
	"reflect"
	"testing"
)

func TestEncodeWordID(t *testing.T) {
	cases := []struct {
		name string
		id   uint32
		want [3]byte
	}{
		{"zero", 0, [3]byte{0, 0, 0}},
		{"medium id (arbitrary)", 61_528, [3]byte{0, 240, 88}},
		{"large id (us-address vocabulary size)", 561_528, [3]byte{8, 145, 120}},
		{"largest representable id", MaxWordID, [3]byte{255, 255, 255}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := EncodeWordID(c.id)
			if err != nil {
				t.Fatalf("EncodeWordID(%d): %v", c.id, err)
			}
			if got != c.want {
				t.Errorf("EncodeWordID(%d) = %v, want %v", c.id, got, c.want)
			}
		})
	}
}

func TestEncodeWordID_Overflow(t *testing.T) {
	if _, err := EncodeWordID(MaxWordID + 1); err == nil {
		t.Fatal("expected error encoding id beyond 2^24-1")
	}
}

func TestDecodeWordID(t *testing.T) {
	got := DecodeWordID([]byte{8, 145, 120})
	if got != 561_528 {
		t.Errorf("DecodeWordID = %d, want 561528", got)
	}
}

func TestEncodeDecodePhrase_RoundTrip(t *testing.T) {
	ids := []uint32{61_528, 561_528, 1}
	key, err := EncodePhrase(ids)
	if err != nil {
		t.Fatalf("EncodePhrase: %v", err)
	}
	want := []byte{
		0, 240, 88,
		8, 145, 120,
		0, 0, 1,
	}
	if !reflect.DeepEqual(key, want) {
		t.Errorf("EncodePhrase(%v) = %v, want %v", ids, key, want)
	}

	back := DecodePhrase(key)
	if !reflect.DeepEqual(back, ids) {
		t.Errorf("DecodePhrase round trip = %v, want %v", back, ids)
	}
}

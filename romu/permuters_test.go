package romu

import "testing"

// Vectors computed out-of-band with the reference recurrence
// (www.romu-random.org/code.c) from pinned raw states.

func TestRomuTrioReferenceVector(t *testing.T) {
	gen, err := NewRomuTrioFromState(1, 2, 4)
	if err != nil {
		t.Fatal(err)
	}

	expected := []uint64{
		0x0000000000000001,
		0x4e0cfa013d315d2c,
		0x8ae9600000000000,
		0xe21b5a2e46b3a8b5,
		0xd473abe5781585ef,
	}

	for i, want := range expected {
		if got := gen.Next(); got != want {
			t.Errorf("draw %d: got %016x, want %016x", i, got, want)
		}
	}
}

func TestRomuDuoJrReferenceVector(t *testing.T) {
	gen, err := NewRomuDuoJrFromState(3, 5)
	if err != nil {
		t.Fatal(err)
	}

	expected := []uint64{
		0x0000000000000003,
		0x219038818c7db477,
		0x04f4c574b0000000,
		0xa9bdbb9d8fc00849,
		0xd2c5c951caf11d2d,
	}

	for i, want := range expected {
		if got := gen.Next(); got != want {
			t.Errorf("draw %d: got %016x, want %016x", i, got, want)
		}
	}
}

func TestRomuDuoReferenceVector(t *testing.T) {
	gen, err := NewRomuDuoFromState(3, 5)
	if err != nil {
		t.Fatal(err)
	}

	expected := []uint64{
		0x0000000000000003,
		0x219038818c7db477,
		0x6992522dec567a1f,
		0xc6fdf7728d47a723,
		0x04f1710505f0ac49,
	}

	for i, want := range expected {
		if got := gen.Next(); got != want {
			t.Errorf("draw %d: got %016x, want %016x", i, got, want)
		}
	}
}

func TestRomuQuadReferenceVector(t *testing.T) {
	gen, err := NewRomuQuadFromState(1, 2, 3, 5)
	if err != nil {
		t.Fatal(err)
	}

	expected := []uint64{
		0x0000000000000002,
		0x0010000000000005,
		0x477219038838c7db,
		0xc419648c3c6fa281,
		0x59074ecb7ef82177,
	}

	for i, want := range expected {
		if got := gen.Next(); got != want {
			t.Errorf("draw %d: got %016x, want %016x", i, got, want)
		}
	}
}

func TestRotationRoundTrip(t *testing.T) {
	// every rotation amount any variant uses
	amounts := []int{12, 15, 19, 27, 36, 44, 52}

	values := []uint64{
		0x0000000000000001,
		0x8000000000000000,
		0xdeadbeefcafebabe,
		0xffffffffffffffff,
		0x0123456789abcdef,
	}

	for _, r := range amounts {
		for _, v := range values {
			if got := GenericRotLeft(GenericRotLeft(v, r), 64-r); got != v {
				t.Errorf("rotl(rotl(%016x, %d), %d) = %016x", v, r, 64-r, got)
			}
		}
	}
}

func TestEmitBeforeOverwrite(t *testing.T) {
	// the first draw must be the pre-step value of the output word, never
	// the freshly computed successor
	trio, _ := NewRomuTrioFromState(0xaaaa, 0xbbbb, 0xcccc)
	if got := trio.Next(); got != 0xaaaa {
		t.Errorf("trio emitted %016x, want the previous x word", got)
	}

	quad, _ := NewRomuQuadFromState(0x1111, 0x2222, 0x3333, 0x4444)
	if got := quad.Next(); got != 0x2222 {
		t.Errorf("quad emitted %016x, want the previous x word", got)
	}
}

func BenchmarkRomuTrio(b *testing.B) {
	gen := NewRomuTrio(1)

	b.ReportAllocs()

	var sink uint64
	for i := 0; i < b.N; i++ {
		sink = gen.Next()
	}

	_ = sink
}

func BenchmarkRomuDuoJr(b *testing.B) {
	gen := NewRomuDuoJr(1)

	b.ReportAllocs()

	var sink uint64
	for i := 0; i < b.N; i++ {
		sink = gen.Next()
	}

	_ = sink
}

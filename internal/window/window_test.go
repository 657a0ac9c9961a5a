package window_test

import (
	"bytes"
	"testing"

	"github.com/coreward/gzdecode/internal/window"
)

func TestEmitTracksCRCAndByteCount(t *testing.T) {
	var out bytes.Buffer
	s := window.New(&out)

	if err := s.Emit([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if err := s.Emit([]byte{4, 8, 15, 16, 23}); err != nil {
		t.Fatal(err)
	}
	if got, want := s.BytesEmitted(), int64(9); got != want {
		t.Errorf("got %d bytes emitted, want %d", got, want)
	}
	if err := s.Emit([]byte{0}); err != nil {
		t.Fatal(err)
	}
	if got, want := s.CRC32(), uint32(0xb2593659); got != want {
		t.Errorf("got crc32 %#x, want %#x", got, want)
	}
	if got, want := out.Bytes(), []byte{1, 2, 3, 4, 4, 8, 15, 16, 23, 0}; !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEmitHelloMatchesGzipCRCReference(t *testing.T) {
	var out bytes.Buffer
	s := window.New(&out)
	if err := s.Emit([]byte("Hello")); err != nil {
		t.Fatal(err)
	}
	if got, want := s.CRC32(), uint32(0xF7D18982); got != want {
		t.Errorf("got %#x, want %#x", got, want)
	}
}

func TestBackReferenceFromHistory(t *testing.T) {
	var out bytes.Buffer
	s := window.New(&out)

	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	if err := s.Emit(data); err != nil {
		t.Fatal(err)
	}

	if err := s.BackReference(192, 128); err != nil {
		t.Fatal(err)
	}
	if got, want := s.BytesEmitted(), int64(384); got != want {
		t.Errorf("got %d, want %d", got, want)
	}
	if got, want := s.CRC32(), uint32(0x9ba8c879); got != want {
		t.Errorf("got crc32 %#x, want %#x", got, want)
	}
}

func TestBackReferenceDistanceOne(t *testing.T) {
	// distance=1, length=4 repeats the single preceding byte four times.
	var out bytes.Buffer
	s := window.New(&out)
	if err := s.Emit([]byte{0x42}); err != nil {
		t.Fatal(err)
	}
	if err := s.BackReference(1, 4); err != nil {
		t.Fatal(err)
	}
	if got, want := out.Bytes(), []byte{0x42, 0x42, 0x42, 0x42, 0x42}; !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBackReferenceSelfOverlapDistanceLessThanLength(t *testing.T) {
	// distance=2, length=4 must reproduce a period-2 run ("ab" -> "abab"),
	// which requires each recalled byte to be visible to the next recall
	// within the same call, not just across calls.
	var out bytes.Buffer
	s := window.New(&out)
	if err := s.Emit([]byte("ab")); err != nil {
		t.Fatal(err)
	}
	if err := s.BackReference(2, 4); err != nil {
		t.Fatal(err)
	}
	if got, want := out.Bytes(), []byte("ababab"); !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBackReferenceRejectsDistanceBeyondHistory(t *testing.T) {
	var out bytes.Buffer
	s := window.New(&out)
	if err := s.Emit([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := s.BackReference(10, 1); err == nil {
		t.Fatal("expected a bad-distance error")
	}
}

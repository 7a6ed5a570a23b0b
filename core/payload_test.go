package core

import "testing"

func TestPayloadCopiesSource(t *testing.T) {
	src := []byte("Hello")
	p := NewPayload(src)
	src[0] = 'X'

	if p.String() != "Hello" {
		t.Errorf("payload = %q, want %q", p.String(), "Hello")
	}
	if p.Len() != 5 {
		t.Errorf("len = %d, want 5", p.Len())
	}
}

func TestPayloadRetainRelease(t *testing.T) {
	p := NewPayload([]byte("data"))
	p.Retain()

	p.Release()
	if p.Released() {
		t.Fatal("released with a reference outstanding")
	}
	if p.Bytes() == nil {
		t.Fatal("bytes freed with a reference outstanding")
	}

	p.Release()
	if !p.Released() {
		t.Error("not released after final Release")
	}
	if p.Bytes() != nil {
		t.Error("bytes survive after final Release")
	}
}

func TestPayloadDoubleReleasePanics(t *testing.T) {
	p := NewPayload([]byte("x"))
	p.Release()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on double release")
		}
	}()
	p.Release()
}

func TestPayloadRetainAfterReleasePanics(t *testing.T) {
	p := NewPayload(nil)
	p.Release()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on retain of released payload")
		}
	}()
	p.Retain()
}

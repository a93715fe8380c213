package binfmt

import (
	"bytes"
	"io"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	records := []Record{
		{Pos: 0, Hash: 111},
		{Pos: 3, Hash: 222},
		{Pos: 3, Hash: 333},
		{Pos: 100, Hash: 444},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, 21, SchemeWindowMinimizer, true, "chr1")
	for _, r := range records {
		if err := w.Write(r); err != nil {
			t.Fatal(err)
		}
	}

	reader, err := NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if reader.K != 21 || reader.Scheme != SchemeWindowMinimizer || !reader.Canonical || reader.Source != "chr1" {
		t.Fatalf("header mismatch: %+v", reader.Header)
	}

	var got []Record
	for {
		r, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatal(err)
		}
		got = append(got, r)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("record %d: got %+v want %+v", i, got[i], records[i])
		}
	}
}

func TestReaderRejectsBadMagic(t *testing.T) {
	if _, err := NewReader(bytes.NewReader([]byte("not a binfmt file at all"))); err == nil {
		t.Fatal("expected an error for invalid magic")
	}
}

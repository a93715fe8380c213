package index

import (
	"bufio"
	"bytes"
	"io"
	"testing"
)

func TestIndexWriteAndRead(t *testing.T) {
	k := 21
	canonical := true
	numHashes := uint8(1)
	names := []string{"chr1", "chr2", "plasmid1"}
	rows := [][]byte{
		{0b00000101}, // bucket 0: chr1, plasmid1
		{0b00000010}, // bucket 1: chr2
	}
	numSigs := uint64(len(rows))

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	writer, err := NewWriter(w, k, canonical, numHashes, numSigs, names)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	reader, err := NewReader(bufio.NewReader(&buf))
	if err != nil {
		t.Fatal(err)
	}
	if reader.K != k || reader.Canonical != canonical || reader.NumHashes != numHashes || reader.NumSigs != numSigs {
		t.Fatalf("header mismatch: %+v", reader.Header)
	}
	if len(reader.Names) != len(names) {
		t.Fatalf("names mismatch: got %v want %v", reader.Names, names)
	}
	for i, name := range names {
		if reader.Names[i] != name {
			t.Fatalf("name %d: got %q want %q", i, reader.Names[i], name)
		}
	}

	var got [][]byte
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatal(err)
		}
		got = append(got, append([]byte(nil), row...))
	}
	if len(got) != len(rows) {
		t.Fatalf("got %d rows, want %d", len(got), len(rows))
	}
	for i := range rows {
		if !bytes.Equal(got[i], rows[i]) {
			t.Fatalf("row %d: got %v want %v", i, got[i], rows[i])
		}
	}
}

func TestHeaderCompatible(t *testing.T) {
	a := Header{Version: Version, K: 21, Canonical: true, NumHashes: 1}
	b := Header{Version: Version, K: 21, Canonical: true, NumHashes: 1}
	if !a.Compatible(b) {
		t.Fatal("expected identical headers to be compatible")
	}
	b.K = 15
	if a.Compatible(b) {
		t.Fatal("expected mismatched K to be incompatible")
	}
}

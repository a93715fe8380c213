// Package binfmt is the compact binary format a digest run is saved in:
// a small magic-prefixed header followed by delta-varint-encoded
// (position, hash) records, optionally gzip-compressed.
//
// The header follows the conventions of unikmer's .unik format (magic +
// fixed metadata block); the record body is new, shaped for minimizer
// output rather than raw k-mer codes: each position is a standard
// encoding/binary uvarint delta and each hash a fixed 8-byte big-endian
// value.
package binfmt

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/pgzip"
)

// MainVersion and MinorVersion identify the on-disk layout.
const (
	MainVersion  uint8 = 1
	MinorVersion uint8 = 0
)

// Magic opens every binfmt file.
var Magic = [8]byte{'.', 'd', 'g', 's', 't', 'm', 'i', 'n'}

var ErrInvalidFormat = errors.New("binfmt: invalid file format")
var ErrKMismatch = errors.New("binfmt: K mismatch")

var be = binary.BigEndian

// Scheme mirrors digest.Scheme without importing the digest package,
// keeping binfmt usable standalone.
type Scheme uint8

const (
	SchemeModMinimizer Scheme = iota
	SchemeWindowMinimizer
	SchemeSyncmer
)

// Header describes the run that produced the records that follow.
type Header struct {
	MainVersion  uint8
	MinorVersion uint8
	K            int
	Scheme       Scheme
	Canonical    bool
	Source       string
}

func (h Header) String() string {
	return fmt.Sprintf("digest minimizer file v%d.%d, K=%d, scheme=%d, canonical=%v, source=%q",
		h.MainVersion, h.MinorVersion, h.K, h.Scheme, h.Canonical, h.Source)
}

// Record is one reported minimizer.
type Record struct {
	Pos  int64
	Hash uint64
}

// Writer appends Records after a lazily-written Header. Positions are
// delta-encoded against the previous position to keep the common case
// (small forward steps) cheap. A position smaller than the previous one
// is stored as the two's-complement of its negative delta (a full
// 10-byte uvarint) and still reads back correctly.
type Writer struct {
	Header
	w           io.Writer
	wroteHeader bool
	lastPos     int64
	varintBuf   [binary.MaxVarintLen64]byte
}

func NewWriter(w io.Writer, k int, scheme Scheme, canonical bool, source string) *Writer {
	return &Writer{
		Header: Header{
			MainVersion:  MainVersion,
			MinorVersion: MinorVersion,
			K:            k,
			Scheme:       scheme,
			Canonical:    canonical,
			Source:       source,
		},
		w: w,
	}
}

func (wr *Writer) writeHeader() error {
	if err := binary.Write(wr.w, be, Magic); err != nil {
		return err
	}
	var canonical uint8
	if wr.Canonical {
		canonical = 1
	}
	if err := binary.Write(wr.w, be, [4]uint8{wr.MainVersion, wr.MinorVersion, uint8(wr.K), uint8(wr.Scheme)}); err != nil {
		return err
	}
	if err := binary.Write(wr.w, be, canonical); err != nil {
		return err
	}
	src := []byte(wr.Source)
	if err := binary.Write(wr.w, be, uint32(len(src))); err != nil {
		return err
	}
	if _, err := wr.w.Write(src); err != nil {
		return err
	}
	wr.wroteHeader = true
	return nil
}

// Write appends one record. Records may come in any position order;
// non-decreasing order keeps the encoding smallest.
func (wr *Writer) Write(rec Record) error {
	if !wr.wroteHeader {
		if err := wr.writeHeader(); err != nil {
			return err
		}
	}
	delta := uint64(rec.Pos - wr.lastPos)
	n := binary.PutUvarint(wr.varintBuf[:], delta)
	if _, err := wr.w.Write(wr.varintBuf[:n]); err != nil {
		return err
	}
	if err := binary.Write(wr.w, be, rec.Hash); err != nil {
		return err
	}
	wr.lastPos = rec.Pos
	return nil
}

// Reader reads back what Writer wrote.
type Reader struct {
	Header
	r       *bufio.Reader
	lastPos int64
}

func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	reader := &Reader{r: br}
	if err := reader.readHeader(); err != nil {
		return nil, err
	}
	return reader, nil
}

func (rd *Reader) readHeader() error {
	var m [8]byte
	if err := binary.Read(rd.r, be, &m); err != nil {
		return err
	}
	if m != Magic {
		return ErrInvalidFormat
	}
	var meta [4]uint8
	if err := binary.Read(rd.r, be, &meta); err != nil {
		return err
	}
	rd.MainVersion = meta[0]
	rd.MinorVersion = meta[1]
	rd.K = int(meta[2])
	rd.Scheme = Scheme(meta[3])

	var canonical uint8
	if err := binary.Read(rd.r, be, &canonical); err != nil {
		return err
	}
	rd.Canonical = canonical != 0

	var n uint32
	if err := binary.Read(rd.r, be, &n); err != nil {
		return err
	}
	src := make([]byte, n)
	if _, err := io.ReadFull(rd.r, src); err != nil {
		return err
	}
	rd.Source = string(src)
	return nil
}

// Read returns the next record, or io.EOF once the stream is exhausted.
func (rd *Reader) Read() (Record, error) {
	delta, err := binary.ReadUvarint(rd.r)
	if err != nil {
		return Record{}, err
	}
	var hash uint64
	if err := binary.Read(rd.r, be, &hash); err != nil {
		return Record{}, err
	}
	rd.lastPos += int64(delta)
	return Record{Pos: rd.lastPos, Hash: hash}, nil
}

// OpenGzipWriter wraps w with a parallel gzip writer (github.com/klauspost/pgzip),
// matching unikmer's use of pgzip for its own compressed output.
func OpenGzipWriter(w io.Writer) *pgzip.Writer {
	return pgzip.NewWriter(w)
}

// OpenGzipReader wraps r with a pgzip reader.
func OpenGzipReader(r io.Reader) (*pgzip.Reader, error) {
	return pgzip.NewReader(r)
}

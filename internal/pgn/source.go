// Package pgn reads and writes game records in PGN form: sources that
// stream bytes out of plain or compressed files, a reader that segments
// the stream into records, and a writer that serializes records back.
package pgn

import (
	"io"
	"os"
	"path/filepath"

	"github.com/dsnet/compress/bzip2"
	"github.com/inhies/go-bytesize"
	"github.com/klauspost/compress/zstd"

	"github.com/ianrastall/pgnfilter/internal/errors"
)

// Source is an open byte stream of PGN text plus the bookkeeping needed
// for progress reporting. Size is the on-disk size of the backing file
// and BytesRead the compressed bytes consumed so far, so the two are
// comparable even when the stream is decompressed on the way out.
type Source interface {
	io.Reader
	io.Closer
	Size() bytesize.ByteSize
	BytesRead() bytesize.ByteSize
}

// byteCountingReader counts the bytes handed out by the wrapped reader.
type byteCountingReader struct {
	reader    io.Reader
	bytesRead bytesize.ByteSize
}

func (bcr *byteCountingReader) Read(p []byte) (n int, err error) {
	n, err = bcr.reader.Read(p)
	bcr.bytesRead += bytesize.ByteSize(uint64(n))
	return n, err
}

// OpenSource opens path as a PGN byte stream. The container format is
// chosen by extension: .zst and .bz2 are decompressed transparently and
// everything else is read as plain text.
func OpenSource(path string) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	size := bytesize.ByteSize(uint64(stat.Size()))

	switch filepath.Ext(path) {
	case ".zst":
		counting := &byteCountingReader{reader: file}
		dec, err := zstd.NewReader(counting)
		if err != nil {
			file.Close()
			return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "%s: %v", path, err)
		}
		return &zstSource{file: file, counting: counting, dec: dec, size: size}, nil
	case ".bz2":
		dec, err := bzip2.NewReader(file, nil)
		if err != nil {
			file.Close()
			return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "%s: %v", path, err)
		}
		return &bzip2Source{file: file, dec: dec, size: size}, nil
	default:
		return &plainSource{file: file, counting: &byteCountingReader{reader: file}, size: size}, nil
	}
}

// plainSource reads an uncompressed file.
type plainSource struct {
	file     *os.File
	counting *byteCountingReader
	size     bytesize.ByteSize
}

func (s *plainSource) Read(p []byte) (int, error) { return s.counting.Read(p) }
func (s *plainSource) Close() error               { return s.file.Close() }
func (s *plainSource) Size() bytesize.ByteSize    { return s.size }
func (s *plainSource) BytesRead() bytesize.ByteSize {
	return s.counting.bytesRead
}

// zstSource reads a zstd-compressed file. The counting reader sits
// between the file and the decoder so BytesRead measures compressed
// bytes, matching Size.
type zstSource struct {
	file     *os.File
	counting *byteCountingReader
	dec      *zstd.Decoder
	size     bytesize.ByteSize
}

func (s *zstSource) Read(p []byte) (int, error) { return s.dec.Read(p) }

func (s *zstSource) Close() error {
	s.dec.Close()
	return s.file.Close()
}

func (s *zstSource) Size() bytesize.ByteSize { return s.size }
func (s *zstSource) BytesRead() bytesize.ByteSize {
	return s.counting.bytesRead
}

// bzip2Source reads a bzip2-compressed file. The decompressor tracks
// its own input offset, so no counting wrapper is needed.
type bzip2Source struct {
	file *os.File
	dec  *bzip2.Reader
	size bytesize.ByteSize
}

func (s *bzip2Source) Read(p []byte) (int, error) { return s.dec.Read(p) }

func (s *bzip2Source) Close() error {
	if err := s.dec.Close(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

func (s *bzip2Source) Size() bytesize.ByteSize { return s.size }
func (s *bzip2Source) BytesRead() bytesize.ByteSize {
	return bytesize.ByteSize(uint64(s.dec.InputOffset))
}

package ingestors

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"

	"log-analyzer/internal/shared/filestorages"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// logStream is the decompressed view of a log file. Close releases the decoder, then the file.
type logStream struct {
	io.Reader
	closers []io.Closer
}

func (s *logStream) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}

// openLogStream opens key from storage and unwraps gzip or zstd when the content starts with
// their magic bytes. The file extension is not consulted.
func openLogStream(ctx context.Context, storage filestorages.FileStorage, key string) (io.ReadCloser, error) {
	file, err := storage.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	buffered := bufio.NewReader(file)
	head, err := buffered.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		_ = file.Close()
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		return &logStream{Reader: gz, closers: []io.Closer{file, gz}}, nil
	case bytes.HasPrefix(head, zstdMagic):
		zd, err := zstd.NewReader(buffered)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		zrc := zd.IOReadCloser()
		return &logStream{Reader: zrc, closers: []io.Closer{file, zrc}}, nil
	default:
		return &logStream{Reader: buffered, closers: []io.Closer{file}}, nil
	}
}

const initialLineBuffer = 64 * 1024

// newLineScanner splits the stream into lines; a line longer than maxLineBytes stops the
// scanner with bufio.ErrTooLong.
func newLineScanner(r io.Reader, maxLineBytes int) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialLineBuffer, maxLineBytes)), maxLineBytes)
	return scanner
}

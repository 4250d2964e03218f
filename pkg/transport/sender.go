package transport

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/penpath/pkg/errors"
	"github.com/matzehuels/penpath/pkg/observability"
)

// Wire constants of the handshake.
const (
	initCommand   = "IN;"
	resumeCommand = "OA;"
	ready         = 13 // carriage return
)

// InputResetter is implemented by ports that can drop buffered input.
type InputResetter interface {
	ResetInputBuffer() error
}

// Progress reports the state of a transfer after each chunk.
type Progress struct {
	Chunk      int    // 1-based index of the chunk just written
	Chunks     int    // total chunks
	Bytes      int    // bytes written so far, excluding handshake traffic
	TotalBytes int    // total document bytes to send
	Data       string // the chunk just written
}

// Done reports whether the last chunk has been written.
func (p Progress) Done() bool { return p.Chunk == p.Chunks }

// Stats summarizes a completed transfer.
type Stats struct {
	Chunks   int
	Bytes    int
	Duration time.Duration
}

// Sender writes documents to a plotter port.
type Sender struct {
	// Port is the open device. If it implements [InputResetter], buffered
	// input is dropped after every handshake.
	Port io.ReadWriter

	// ChunkSize is the device buffer in bytes. Zero means [DefaultChunkSize].
	ChunkSize int

	// HandshakeTimeout bounds the wait for the device's carriage return.
	// Zero waits until the context is done. Reads that time out at the port
	// level are retried until then.
	HandshakeTimeout time.Duration

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger

	// Progress is called after each chunk is written.
	Progress func(Progress)
}

// Send initializes the device, then writes text chunk by chunk, waiting for
// the device between chunks. No handshake follows the last chunk.
func (s *Sender) Send(ctx context.Context, text string) (*Stats, error) {
	start := time.Now()
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	size := s.ChunkSize
	if size == 0 {
		size = DefaultChunkSize
	}
	if err := perrors.ValidateChunkSize(size); err != nil {
		return nil, err
	}

	chunks := Chunk(Lines(text), size)
	total := 0
	for _, c := range chunks {
		total += len(c)
	}

	stats := &Stats{}
	err := s.send(ctx, logger, chunks, total, stats)
	stats.Duration = time.Since(start)
	observability.Transport().OnTransferComplete(ctx, stats.Chunks, stats.Bytes, stats.Duration, err)
	if err != nil {
		return stats, err
	}
	logger.Debug("transfer complete", "chunks", stats.Chunks, "bytes", stats.Bytes, "duration", stats.Duration)
	return stats, nil
}

func (s *Sender) send(ctx context.Context, logger *log.Logger, chunks [][]byte, total int, stats *Stats) error {
	if err := s.write(ctx, []byte(initCommand)); err != nil {
		return err
	}

	for i, chunk := range chunks {
		if err := s.write(ctx, chunk); err != nil {
			return err
		}
		stats.Chunks++
		stats.Bytes += len(chunk)
		observability.Transport().OnChunkSent(ctx, i, len(chunk))
		logger.Debug("sent chunk", "index", i+1, "of", len(chunks), "data", string(chunk))
		if s.Progress != nil {
			s.Progress(Progress{Chunk: i + 1, Chunks: len(chunks), Bytes: stats.Bytes, TotalBytes: total, Data: string(chunk)})
		}

		if i == len(chunks)-1 {
			break
		}
		waited, err := s.handshake(ctx)
		if err != nil {
			return err
		}
		observability.Transport().OnHandshake(ctx, i, waited)
	}
	return nil
}

func (s *Sender) write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := s.Port.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeDevice, err, "write %d bytes", len(data))
	}
	return nil
}

// handshake requests the pen position and waits for the carriage return
// that ends the device's answer.
func (s *Sender) handshake(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.write(ctx, []byte(resumeCommand)); err != nil {
		return 0, err
	}

	buf := make([]byte, 1)
	for {
		if err := ctx.Err(); err != nil {
			return time.Since(start), err
		}
		if s.HandshakeTimeout > 0 && time.Since(start) > s.HandshakeTimeout {
			return time.Since(start), perrors.New(perrors.ErrCodeTimeout, "device not ready after %s", s.HandshakeTimeout)
		}

		n, err := s.Port.Read(buf)
		if n == 1 && buf[0] == ready {
			break
		}
		if errors.Is(err, io.EOF) {
			return time.Since(start), perrors.Wrap(perrors.ErrCodeDevice, err, "device closed during handshake")
		}
		if err != nil {
			return time.Since(start), perrors.Wrap(perrors.ErrCodeDevice, err, "read handshake")
		}
	}

	if r, ok := s.Port.(InputResetter); ok {
		if err := r.ResetInputBuffer(); err != nil {
			return time.Since(start), perrors.Wrap(perrors.ErrCodeDevice, err, "reset input buffer")
		}
	}
	return time.Since(start), nil
}

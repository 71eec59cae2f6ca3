// Package snapshot persists index contents through a blobstore. A snapshot
// is a self-describing blob: a fixed header naming the codec and
// compression, followed by the compressed, codec-encoded document dump.
// Restore replays the dump through AddOrUpdate, so any backend can load a
// snapshot taken from any other.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/localsearch/blobstore"
	"github.com/hupe1980/localsearch/codec"
	"github.com/hupe1980/localsearch/index"
	"github.com/hupe1980/localsearch/model"
	"github.com/hupe1980/localsearch/resource"
)

var (
	// ErrNotSnapshottable is returned when the index cannot export its
	// documents.
	ErrNotSnapshottable = errors.New("index does not support dumping")

	// ErrMalformed is returned when a blob is not a valid snapshot.
	ErrMalformed = errors.New("malformed snapshot")
)

var magic = [4]byte{'L', 'S', 'N', 'P'}

const version = 1

// Compression identifies the compression applied to the snapshot payload.
type Compression byte

// Supported compressions.
const (
	None Compression = iota
	Zstd
	LZ4
)

// String returns a string representation of the Compression.
func (c Compression) String() string {
	switch c {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Options contains configuration options for snapshot save/restore.
type Options struct {
	// Codec encodes the document dump. Defaults to codec.Default.
	Codec codec.Codec

	// Compression applied to the encoded dump. Defaults to Zstd.
	Compression Compression

	// Controller throttles snapshot IO and concurrency. Nil means
	// unthrottled.
	Controller *resource.Controller
}

// DefaultOptions contains the default configuration options for snapshots.
var DefaultOptions = Options{
	Compression: Zstd,
}

func applyOptions(optFns []func(o *Options)) Options {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Codec == nil {
		opts.Codec = codec.Default
	}

	return opts
}

// Save writes a snapshot of the index to the store under the given name.
func Save(ctx context.Context, store blobstore.Store, name string, idx index.Index, optFns ...func(o *Options)) error {
	opts := applyOptions(optFns)

	dumper, ok := idx.(index.Dumper)
	if !ok {
		return ErrNotSnapshottable
	}

	frame, err := encode(dumper.Dump(), opts)
	if err != nil {
		return err
	}

	if err := opts.Controller.AcquireIO(ctx, len(frame)); err != nil {
		return err
	}

	return store.Put(ctx, name, frame)
}

// Restore loads a snapshot into the index, replacing its current contents.
func Restore(ctx context.Context, store blobstore.Store, name string, idx index.Index, optFns ...func(o *Options)) error {
	opts := applyOptions(optFns)

	frame, err := store.Get(ctx, name)
	if err != nil {
		return err
	}

	if err := opts.Controller.AcquireIO(ctx, len(frame)); err != nil {
		return err
	}

	docs, err := decode(frame)
	if err != nil {
		return err
	}

	if err := idx.ClearIndex(); err != nil {
		return err
	}

	return idx.AddOrUpdate(docs)
}

// SaveAll snapshots several named indexes concurrently. Blob names are the
// map keys. Concurrency and IO are bounded by the options' Controller.
func SaveAll(ctx context.Context, store blobstore.Store, indexes map[string]index.Index, optFns ...func(o *Options)) error {
	opts := applyOptions(optFns)

	g, ctx := errgroup.WithContext(ctx)

	for name, idx := range indexes {
		g.Go(func() error {
			if err := opts.Controller.AcquireBackground(ctx); err != nil {
				return err
			}
			defer opts.Controller.ReleaseBackground()

			if err := Save(ctx, store, name, idx, optFns...); err != nil {
				return fmt.Errorf("snapshot %q: %w", name, err)
			}

			return nil
		})
	}

	return g.Wait()
}

// Frame layout: magic(4) | version(1) | compression(1) | codecNameLen(1) |
// codecName | payload.
func encode(docs []model.Document, opts Options) ([]byte, error) {
	payload, err := opts.Codec.Marshal(docs)
	if err != nil {
		return nil, err
	}

	payload, err = compress(payload, opts.Compression)
	if err != nil {
		return nil, err
	}

	codecName := opts.Codec.Name()
	if len(codecName) > 255 {
		return nil, fmt.Errorf("codec name too long: %q", codecName)
	}

	var buf bytes.Buffer
	buf.Grow(len(magic) + 3 + len(codecName) + len(payload))

	buf.Write(magic[:])
	buf.WriteByte(version)
	buf.WriteByte(byte(opts.Compression))
	buf.WriteByte(byte(len(codecName)))
	buf.WriteString(codecName)
	buf.Write(payload)

	return buf.Bytes(), nil
}

func decode(frame []byte) ([]model.Document, error) {
	if len(frame) < len(magic)+3 || !bytes.Equal(frame[:4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrMalformed)
	}
	if frame[4] != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, frame[4])
	}

	compression := Compression(frame[5])
	nameLen := int(frame[6])
	if len(frame) < 7+nameLen {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformed)
	}

	codecName := string(frame[7 : 7+nameLen])
	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrMalformed, codecName)
	}

	payload, err := decompress(frame[7+nameLen:], compression)
	if err != nil {
		return nil, err
	}

	var docs []model.Document
	if err := c.Unmarshal(payload, &docs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return docs, nil
}

func compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case None:
		return data, nil

	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		out := enc.EncodeAll(data, nil)
		return out, enc.Close()

	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unknown compression %d", compression)
	}
}

func decompress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case None:
		return data, nil

	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return out, nil

	case LZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrMalformed, compression)
	}
}

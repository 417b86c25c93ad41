package source

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// isZstd reports whether data begins with a zstd frame.
func isZstd(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// decoderPool keeps zstd decoders for reuse between reads.
type decoderPool struct {
	pool      sync.Pool
	maxMemory uint64
}

func newDecoderPool(maxMemory uint64) *decoderPool {
	return &decoderPool{maxMemory: maxMemory}
}

// get returns a decoder reading from r and a function that hands it back.
func (p *decoderPool) get(r io.Reader) (*zstd.Decoder, func(), error) {
	if dec, ok := p.pool.Get().(*zstd.Decoder); ok {
		if err := dec.Reset(r); err == nil {
			return dec, func() {
				_ = dec.Reset(nil) //nolint:errcheck // clearing state before pool return
				p.pool.Put(dec)
			}, nil
		}
		dec.Close()
	}

	dec, err := p.newDecoder(r)
	if err != nil {
		return nil, nil, err
	}
	return dec, func() {
		_ = dec.Reset(nil) //nolint:errcheck // clearing state before pool return
		p.pool.Put(dec)
	}, nil
}

func (p *decoderPool) newDecoder(r io.Reader) (*zstd.Decoder, error) {
	opts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
	if p.maxMemory > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(p.maxMemory))
	}
	return zstd.NewReader(r, opts...)
}

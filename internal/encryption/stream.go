package encryption

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/idelchi/gosalsa/pkg/salsa20"
)

const (
	// blocksPerChunk sets the streaming granularity: 8192 cipher blocks,
	// 512 KiB per read.
	blocksPerChunk = 8192

	// chunkSize is the streaming chunk length in bytes.
	chunkSize = blocksPerChunk * salsa20.BlockSize
)

// encrypt streams reader through a fresh keystream into writer. In
// random-nonce mode a new nonce is drawn and written as the first 8 output
// bytes; in explicit-nonce mode the output is the raw transform.
func (p *Processor) encrypt(reader io.Reader, writer io.Writer, total int64, progress progressFunc) error {
	nonce := p.material.nonce

	if !p.material.explicitNonce() {
		nonce = make([]byte, salsa20.NonceSize)

		if _, err := rand.Read(nonce); err != nil {
			return fmt.Errorf("generating nonce: %w", err)
		}

		if _, err := writer.Write(nonce); err != nil {
			return fmt.Errorf("writing nonce: %w", err)
		}
	}

	engine, err := salsa20.New(p.material.key, nonce)
	if err != nil {
		return fmt.Errorf("keying cipher: %w", err)
	}
	defer engine.Reset()

	return p.transform(reader, writer, engine, total, progress)
}

// decrypt is the mirror image of encrypt: the same transform, with the
// nonce taken from the input prefix in random-nonce mode.
func (p *Processor) decrypt(reader io.Reader, writer io.Writer, total int64, progress progressFunc) error {
	nonce := p.material.nonce

	if !p.material.explicitNonce() {
		nonce = make([]byte, salsa20.NonceSize)

		if _, err := io.ReadFull(reader, nonce); err != nil {
			return fmt.Errorf("%w: %v", ErrTruncatedInput, err) //nolint:errorlint // the sentinel carries the chain
		}

		total -= salsa20.NonceSize
	}

	engine, err := salsa20.New(p.material.key, nonce)
	if err != nil {
		return fmt.Errorf("keying cipher: %w", err)
	}
	defer engine.Reset()

	return p.transform(reader, writer, engine, total, progress)
}

// transform pumps reader through the engine into writer chunk by chunk.
// Whole blocks go through ProcessBlocks; a final sub-block tail, which with
// io.ReadFull can only appear on the last read, goes through ProcessFinal.
// Chunking never changes the output bytes.
func (p *Processor) transform(
	reader io.Reader,
	writer io.Writer,
	engine *salsa20.Cipher,
	total int64,
	progress progressFunc,
) error {
	buf := bufferPool.Get().([]byte) //nolint:forcetypeassert // pool only holds chunk buffers
	defer bufferPool.Put(buf)        //nolint:staticcheck // fixed-size buffers, reuse is the point

	var done int64

	for {
		n, readErr := io.ReadFull(reader, buf)

		if n > 0 {
			blocks := n / salsa20.BlockSize

			if err := engine.ProcessBlocks(buf, buf, blocks); err != nil {
				return fmt.Errorf("transforming blocks: %w", err)
			}

			if off := blocks * salsa20.BlockSize; off < n {
				if err := engine.ProcessFinal(buf[off:n], buf[off:n]); err != nil {
					return fmt.Errorf("transforming final bytes: %w", err)
				}
			}

			if _, err := writer.Write(buf[:n]); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			done += int64(n)

			if progress != nil {
				progress(done, total)
			}
		}

		switch {
		case readErr == nil:
		case errors.Is(readErr, io.EOF), errors.Is(readErr, io.ErrUnexpectedEOF):
			return nil
		default:
			return fmt.Errorf("reading input: %w", readErr)
		}
	}
}

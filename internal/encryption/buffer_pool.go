package encryption

import (
	"sync"
)

// bufferPool provides reusable chunk buffers for streaming file transforms.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, chunkSize)
	},
}

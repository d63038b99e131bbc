package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are ULIDs: 26-character Crockford Base32 strings with a timestamp
// prefix, so listings sort by creation time. Generated locally to avoid a
// dependency for 40 lines of encoding.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// 48-bit big-endian timestamp, then 80 bits of randomness with a
	// sequence counter in the first two bytes for uniqueness within one ms.
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	// 128 bits into 26 base32 characters; the first character carries only
	// the top 3 bits.
	bitAt := func(pos int) byte {
		return (b[pos/8] >> (7 - pos%8)) & 1
	}
	var out [26]byte
	for i := 0; i < 26; i++ {
		var v byte
		for k := 0; k < 5; k++ {
			p := i*5 - 2 + k
			v <<= 1
			if p >= 0 {
				v |= bitAt(p)
			}
		}
		out[i] = crockford[v]
	}
	return string(out[:])
}

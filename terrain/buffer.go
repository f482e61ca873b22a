package terrain

// MaxResults bounds the number of raw hits one linecast keeps.
const MaxResults = 128

// Buffer is a caller-owned, fixed-size scratch area for linecast results,
// ordered by distance along the cast. It never allocates.
type Buffer struct {
	hits [MaxResults]Hit
	n    int
}

func (b *Buffer) Reset() {
	for i := 0; i < b.n; i++ {
		b.hits[i] = Hit{}
	}
	b.n = 0
}

func (b *Buffer) Len() int {
	return b.n
}

// Hits returns the stored results, nearest first. The slice aliases the buffer.
func (b *Buffer) Hits() []Hit {
	return b.hits[:b.n]
}

// Insert places h after every stored hit with Alpha <= h.Alpha. When the
// buffer is full the furthest result is dropped, which may be h itself.
func (b *Buffer) Insert(h Hit) {
	i := b.n
	for i > 0 && b.hits[i-1].Alpha > h.Alpha {
		i--
	}
	if b.n == MaxResults {
		if i == MaxResults {
			return
		}
		copy(b.hits[i+1:], b.hits[i:MaxResults-1])
		b.hits[i] = h
		return
	}
	copy(b.hits[i+1:b.n+1], b.hits[i:b.n])
	b.hits[i] = h
	b.n++
}

package internal

// Cursor is a finite, restartable sequence backed by a page fetcher. Every
// Take or All drains from the first page again, so callers get a fresh read
// each time. Pages are numbered from 1; an empty page ends the sequence.
type Cursor[T any] struct {
	fetch func(page int) ([]T, error)
}

func NewCursor[T any](fetch func(page int) ([]T, error)) *Cursor[T] {
	return &Cursor[T]{fetch: fetch}
}

// Take returns up to n records in source order. n <= 0 means all.
func (c *Cursor[T]) Take(n int) ([]T, error) {
	var out []T
	for page := 1; ; page++ {
		batch, err := c.fetch(page)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			return out, nil
		}
		out = append(out, batch...)
		if n > 0 && len(out) >= n {
			return out[:n], nil
		}
	}
}

// All drains the cursor to exhaustion.
func (c *Cursor[T]) All() ([]T, error) {
	return c.Take(0)
}

package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
)

// Generic channel pipeline helpers; the tick pipeline is composed from
// these. Pattern after:
// https://betterprogramming.pub/writing-a-stream-api-in-go-afbc3c4350e2

// maxLineBytes caps a single NDJSON line. Ticks are small; anything near
// this is garbage anyway.
const maxLineBytes = 1024 * 1024

func Slice[T any](ctx context.Context, in []T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, element := range in {
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
	}()
	return out
}

// NDJSON decodes newline-delimited JSON from in. Malformed lines are
// logged and skipped (a json.Decoder would stick on its first syntax
// error, so lines are scanned and unmarshaled one at a time); the stream
// ends at EOF or context cancellation.
func NDJSON[T any](ctx context.Context, in io.Reader) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var element T
			if err := json.Unmarshal(line, &element); err != nil {
				slog.Warn("NDJSON decode failed", "error", err)
				continue
			}
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
		if err := scanner.Err(); err != nil {
			slog.Warn("NDJSON scan failed", "error", err)
		}
	}()
	return out
}

func Filter[T any](ctx context.Context, predicate func(T) bool, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for element := range in {
			if predicate(element) {
				select {
				case <-ctx.Done():
					return
				case out <- element:
				}
			}
		}
	}()
	return out
}

func Transform[I any, O any](ctx context.Context, transformer func(I) O, in <-chan I) <-chan O {
	out := make(chan O)
	go func() {
		defer close(out)
		for element := range in {
			select {
			case <-ctx.Done():
				return
			case out <- transformer(element):
			}
		}
	}()
	return out
}

// Tee duplicates in onto two output channels. Both must be drained; the
// slower consumer paces the stream.
func Tee[T any](ctx context.Context, in <-chan T) (<-chan T, <-chan T) {
	out1, out2 := make(chan T), make(chan T)
	go func() {
		defer close(out1)
		defer close(out2)
		for element := range in {
			var c1, c2 chan T = out1, out2
			for i := 0; i < 2; i++ {
				select {
				case <-ctx.Done():
					return
				case c1 <- element:
					c1 = nil
				case c2 <- element:
					c2 = nil
				}
			}
		}
	}()
	return out1, out2
}

// Batched groups elements into slices of at most size, flushing the
// remainder when in closes.
func Batched[T any](ctx context.Context, size int, in <-chan T) <-chan []T {
	out := make(chan []T)
	go func() {
		defer close(out)
		batch := make([]T, 0, size)
		flush := func() bool {
			if len(batch) == 0 {
				return true
			}
			select {
			case <-ctx.Done():
				return false
			case out <- batch:
				batch = make([]T, 0, size)
				return true
			}
		}
		for element := range in {
			batch = append(batch, element)
			if len(batch) >= size {
				if !flush() {
					return
				}
			}
		}
		flush()
	}()
	return out
}

func Collect[T any](ctx context.Context, in <-chan T) []T {
	out := make([]T, 0)
	for element := range in {
		select {
		case <-ctx.Done():
			return out
		default:
			out = append(out, element)
		}
	}
	return out
}

// Sink drains in through fn, returning when the stream ends or the
// context is done.
func Sink[T any](ctx context.Context, fn func(T), in <-chan T) {
	for element := range in {
		select {
		case <-ctx.Done():
			return
		default:
			fn(element)
		}
	}
}

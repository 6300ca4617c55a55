package app

import (
	"fmt"
	"io"

	"kestrel/kernel"
)

// valueFuture resolves to a fixed value on its first poll.
type valueFuture[T any] struct {
	v T
}

func (f *valueFuture[T]) Poll(*kernel.Context) kernel.Poll { return kernel.Ready }

func (f *valueFuture[T]) Value() T { return f.v }

func asyncNumber() *valueFuture[int] { return &valueFuture[int]{v: 42} }

// ExampleTask awaits asyncNumber and prints the result to out.
func ExampleTask(out io.Writer) kernel.Future {
	num := asyncNumber()
	return kernel.FutureFunc(func(cx *kernel.Context) kernel.Poll {
		if num.Poll(cx) == kernel.Pending {
			return kernel.Pending
		}
		fmt.Fprintf(out, "async number: %d\n", num.Value())
		return kernel.Ready
	})
}

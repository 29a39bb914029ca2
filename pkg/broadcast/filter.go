package broadcast

import (
	"context"
	"sync"
)

// Filter returns a subscriber that receives only the messages of src for
// which keep returns true. Closing it closes src.
func Filter[T any](src Subscriber[T], keep func(T) bool) Subscriber[T] {
	f := &filtered[T]{
		src:  src,
		ch:   make(chan Message[T]),
		done: make(chan struct{}),
	}
	go f.forward(keep)
	return f
}

type filtered[T any] struct {
	src  Subscriber[T]
	ch   chan Message[T]
	done chan struct{}
	once sync.Once
}

func (f *filtered[T]) Receive(ctx context.Context) <-chan Message[T] {
	return f.ch
}

func (f *filtered[T]) Close() error {
	var err error
	f.once.Do(func() {
		close(f.done)
		err = f.src.Close()
	})
	return err
}

func (f *filtered[T]) forward(keep func(T) bool) {
	defer close(f.ch)
	for msg := range f.src.Receive(context.Background()) {
		if !keep(msg.Data) {
			continue
		}
		select {
		case f.ch <- msg:
		case <-f.done:
			return
		}
	}
}

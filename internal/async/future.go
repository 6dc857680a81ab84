// Package async содержит отложенный результат, который отдают загрузчики изображений.
package async

import (
	"context"
	"sync"
)

// Result итог асинхронной операции: либо значение, либо ошибка
type Result[T any] struct {
	Value T
	Err   error
}

// Future результат, который станет известен позже
type Future[T any] struct {
	once sync.Once
	done chan struct{}
	res  Result[T]
}

// New создаёт незавершённый Future и функции для его завершения. Срабатывает только первый вызов.
func New[T any]() (f *Future[T], resolve func(T), reject func(error)) {
	f = &Future[T]{done: make(chan struct{})}
	resolve = func(v T) { f.complete(Result[T]{Value: v}) }
	reject = func(err error) { f.complete(Result[T]{Err: err}) }
	return f, resolve, reject
}

// Resolved возвращает уже завершённый успехом Future
func Resolved[T any](v T) *Future[T] {
	f, resolve, _ := New[T]()
	resolve(v)
	return f
}

// Rejected возвращает уже завершённый ошибкой Future
func Rejected[T any](err error) *Future[T] {
	f, _, reject := New[T]()
	reject(err)
	return f
}

// Go запускает fn в горутине и возвращает Future с её результатом
func Go[T any](fn func() (T, error)) *Future[T] {
	f, resolve, reject := New[T]()
	go func() {
		v, err := fn()
		if err != nil {
			reject(err)
			return
		}
		resolve(v)
	}()
	return f
}

func (f *Future[T]) complete(r Result[T]) {
	f.once.Do(func() {
		f.res = r
		close(f.done)
	})
}

// Done закрывается, когда результат готов
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await ждёт результат или отмену контекста
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.res.Value, f.res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/credeq/credeq/internal/adapters/cache"
	. "github.com/smartystreets/goconvey/convey"
)

type countingEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (e *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return []float32{float32(len(text))}, nil
}

func TestEmbedCache(t *testing.T) {
	Convey("Given a cache in front of a counting embedder", t, func() {
		ctx := context.Background()
		upstream := &countingEmbedder{}
		c := cache.New(upstream)

		Convey("When the same text is embedded twice", func() {
			first, err1 := c.Embed(ctx, "course text")
			second, err2 := c.Embed(ctx, "course text")

			Convey("Then the upstream should be called once", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldResemble, second)
				So(upstream.calls, ShouldEqual, 1)
				So(c.Size(), ShouldEqual, 1)
			})
		})

		Convey("When different texts are embedded", func() {
			_, _ = c.Embed(ctx, "a")
			_, _ = c.Embed(ctx, "b")

			Convey("Then each should hit the upstream", func() {
				So(upstream.calls, ShouldEqual, 2)
				So(c.Size(), ShouldEqual, 2)
			})
		})

		Convey("When the upstream fails", func() {
			failing := &countingEmbedder{err: errors.New("down")}
			fc := cache.New(failing)

			_, err := fc.Embed(ctx, "x")

			Convey("Then the error should propagate and nothing should be cached", func() {
				So(err, ShouldNotBeNil)
				So(fc.Size(), ShouldEqual, 0)
			})
		})
	})
}

func TestEmbedCacheBounds(t *testing.T) {
	Convey("Given a cache bounded to two entries", t, func() {
		ctx := context.Background()
		upstream := &countingEmbedder{}
		c := cache.New(upstream, cache.WithMaxSize(2))

		Convey("When a third text arrives", func() {
			_, _ = c.Embed(ctx, "a")
			_, _ = c.Embed(ctx, "bb")
			_, _ = c.Embed(ctx, "ccc")

			Convey("Then the size should stay at the bound", func() {
				So(c.Size(), ShouldEqual, 2)
			})
		})
	})
}

func TestEmbedCacheConcurrency(t *testing.T) {
	Convey("Given concurrent embeds of the same text", t, func() {
		ctx := context.Background()
		upstream := &countingEmbedder{}
		c := cache.New(upstream)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = c.Embed(ctx, "shared")
			}()
		}
		wg.Wait()

		Convey("Then the cache should hold one entry", func() {
			So(c.Size(), ShouldEqual, 1)
		})
	})
}

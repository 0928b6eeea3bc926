package state

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestValue_GetSet(t *testing.T) {
	Convey("Value 缓存最后一个值", t, func() {
		v := NewValue(1)
		So(v.Get(), ShouldEqual, 1)

		v.Set(2)
		So(v.Get(), ShouldEqual, 2)

		Convey("Update 基于当前值计算新值", func() {
			v.Update(func(cur int) int { return cur * 10 })
			So(v.Get(), ShouldEqual, 20)
		})
	})
}

func TestValue_Subscribe(t *testing.T) {
	Convey("Subscribe 先收到当前值", t, func() {
		v := NewValue("a")
		ch, cancel := v.Subscribe()
		defer cancel()

		So(<-ch, ShouldEqual, "a")

		Convey("之后收到后续更新", func() {
			v.Set("b")
			So(<-ch, ShouldEqual, "b")
		})

		Convey("消费慢的订阅者跳过中间值、看到最新值", func() {
			v.Set("b")
			v.Set("c")
			v.Set("d")
			So(<-ch, ShouldEqual, "d")
		})

		Convey("多个订阅者各自收到更新", func() {
			ch2, cancel2 := v.Subscribe()
			defer cancel2()
			So(<-ch2, ShouldEqual, "a")

			v.Set("x")
			So(<-ch, ShouldEqual, "x")
			So(<-ch2, ShouldEqual, "x")
		})
	})

	Convey("取消订阅后通道关闭，发布者不再投递", t, func() {
		v := NewValue(0)
		ch, cancel := v.Subscribe()
		So(<-ch, ShouldEqual, 0)

		cancel()
		_, ok := <-ch
		So(ok, ShouldBeFalse)

		// 退订后发布不会panic
		v.Set(1)
		So(v.Get(), ShouldEqual, 1)
	})

	Convey("发布者永不阻塞", t, func() {
		v := NewValue(0)
		_, cancel := v.Subscribe()
		defer cancel()

		done := make(chan struct{})
		go func() {
			// 没有任何消费者在读，连续发布也应立即返回
			for i := 1; i <= 100; i++ {
				v.Set(i)
			}
			close(done)
		}()

		select {
		case <-done:
			So(v.Get(), ShouldEqual, 100)
		case <-time.After(time.Second):
			t.Fatal("publisher blocked")
		}
	})
}

package prefs

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("MemoryStore 维护设备级的匿名帖子索引", t, func() {
		store := NewMemoryStore()

		Convey("空设备的索引为空", func() {
			ids, err := store.List(ctx, "device-1")
			So(err, ShouldBeNil)
			So(ids, ShouldBeEmpty)
		})

		Convey("Remember 后 List 与 Contains 可见", func() {
			So(store.Remember(ctx, "device-1", "post-a"), ShouldBeNil)
			So(store.Remember(ctx, "device-1", "post-b"), ShouldBeNil)

			ids, err := store.List(ctx, "device-1")
			So(err, ShouldBeNil)
			So(ids, ShouldContainKey, "post-a")
			So(ids, ShouldContainKey, "post-b")

			ok, err := store.Contains(ctx, "device-1", "post-a")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("重复 Remember 幂等", func() {
			So(store.Remember(ctx, "device-1", "post-a"), ShouldBeNil)
			So(store.Remember(ctx, "device-1", "post-a"), ShouldBeNil)

			ids, err := store.List(ctx, "device-1")
			So(err, ShouldBeNil)
			So(len(ids), ShouldEqual, 1)
		})

		Convey("设备之间互不可见", func() {
			So(store.Remember(ctx, "device-1", "post-a"), ShouldBeNil)

			ok, err := store.Contains(ctx, "device-2", "post-a")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)

			ids, err := store.List(ctx, "device-2")
			So(err, ShouldBeNil)
			So(ids, ShouldBeEmpty)
		})

		Convey("Forget 移除指定ID，不存在时也不报错", func() {
			So(store.Remember(ctx, "device-1", "post-a"), ShouldBeNil)
			So(store.Forget(ctx, "device-1", "post-a"), ShouldBeNil)

			ok, err := store.Contains(ctx, "device-1", "post-a")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)

			So(store.Forget(ctx, "device-1", "never-seen"), ShouldBeNil)
		})
	})
}

package repository

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"treehole/internal/model"
)

func TestMatchesQuery(t *testing.T) {
	Convey("搜索词匹配", t, func() {
		p := &model.Post{
			Content: "今天在Library自习到很晚",
			Tags:    []string{"日常", "School"},
		}

		Convey("空搜索词命中一切帖子", func() {
			So(matchesQuery(p, ""), ShouldBeTrue)
			So(matchesQuery(&model.Post{}, ""), ShouldBeTrue)
		})

		Convey("内容子串匹配", func() {
			So(matchesQuery(p, "自习"), ShouldBeTrue)
			So(matchesQuery(p, "食堂"), ShouldBeFalse)
		})

		Convey("标签子串匹配", func() {
			So(matchesQuery(p, "日常"), ShouldBeTrue)
			So(matchesQuery(p, "chool"), ShouldBeTrue)
		})

		Convey("不区分大小写", func() {
			So(matchesQuery(p, "library"), ShouldBeTrue)
			So(matchesQuery(p, "LIBRARY"), ShouldBeTrue)
			So(matchesQuery(p, "school"), ShouldBeTrue)
		})

		Convey("没有标签的帖子只看内容", func() {
			bare := &model.Post{Content: "只有内容"}
			So(matchesQuery(bare, "内容"), ShouldBeTrue)
			So(matchesQuery(bare, "标签"), ShouldBeFalse)
		})
	})
}

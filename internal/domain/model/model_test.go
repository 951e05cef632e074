package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	model "github.com/okian/matchdb/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestDate(t *testing.T) {
	convey.Convey("Given a date string", t, func() {
		convey.Convey("When it is a valid civil date", func() {
			d, err := model.ParseDate("2020-08-10")

			convey.Convey("Then its parts are split out", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(d, convey.ShouldResemble, model.NewDate(2020, time.August, 10))
				convey.So(d.String(), convey.ShouldEqual, "2020-08-10")
			})
		})

		convey.Convey("When it is not a date", func() {
			_, err := model.ParseDate("10/08/2020")

			convey.Convey("Then ErrInvalidDate is returned", func() {
				convey.So(errors.Is(err, model.ErrInvalidDate), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When it is embedded in JSON", func() {
			var d model.Date
			err := json.Unmarshal([]byte(`"1999-12-31"`), &d)
			out, _ := json.Marshal(d)

			convey.So(err, convey.ShouldBeNil)
			convey.So(d.Year, convey.ShouldEqual, 1999)
			convey.So(string(out), convey.ShouldEqual, `"1999-12-31"`)
		})
	})
}

func TestClock(t *testing.T) {
	convey.Convey("Given a time of day", t, func() {
		convey.Convey("When only hours and minutes are present", func() {
			c, err := model.ParseClock("15:30")

			convey.So(err, convey.ShouldBeNil)
			convey.So(c.String(), convey.ShouldEqual, "15:30:00")
		})

		convey.Convey("When seconds are present", func() {
			c, err := model.ParseClock("20:45:10")

			convey.So(err, convey.ShouldBeNil)
			convey.So(c, convey.ShouldResemble, model.Clock{Hour: 20, Minute: 45, Second: 10})
		})

		convey.Convey("When the value is out of range", func() {
			_, err := model.ParseClock("25:00")

			convey.So(errors.Is(err, model.ErrInvalidTime), convey.ShouldBeTrue)
		})
	})
}

func TestHomeAway(t *testing.T) {
	convey.Convey("Given home_away values", t, func() {
		cases := map[string]model.HomeAway{
			"":     model.Both,
			"both": model.Both,
			"HOME": model.Home,
			"away": model.Away,
		}
		for in, want := range cases {
			got, err := model.ParseHomeAway(in)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldEqual, want)
		}

		_, err := model.ParseHomeAway("neutral")
		convey.So(errors.Is(err, model.ErrInvalidHomeAway), convey.ShouldBeTrue)
		convey.So(model.Away.String(), convey.ShouldEqual, "away")
	})
}

func TestSeasonAndList(t *testing.T) {
	convey.Convey("Given a season spanning two years", t, func() {
		end := 2016
		s := model.Season{ID: 1, StartYear: 2015, EndYear: &end}

		convey.So(s.Years(), convey.ShouldResemble, []int{2015, 2016})
		convey.So(model.Season{StartYear: 2015}.Years(), convey.ShouldResemble, []int{2015})
	})

	convey.Convey("Given a match list", t, func() {
		l := model.MatchList{Matches: []model.Match{{ID: 7}, {ID: 9}}}

		convey.So(l.FirstID(), convey.ShouldEqual, model.MatchID(7))
		convey.So(l.IDs(), convey.ShouldResemble, []model.MatchID{7, 9})
		convey.So(model.MatchList{}.FirstID(), convey.ShouldEqual, model.MatchID(0))
	})

	convey.Convey("Given a corpus", t, func() {
		c := model.Corpus{"2016-17": {"a": "", "b": ""}, "2015-16": {"c": ""}}

		convey.So(c.Names(), convey.ShouldResemble, []string{"2015-16", "2016-17"})
		convey.So(c.Files(), convey.ShouldEqual, 3)
	})
}

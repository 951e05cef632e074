package testcorpus_test

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/matchdb/internal/adapters/corpus"
	"github.com/okian/matchdb/internal/adapters/decode"
	"github.com/okian/matchdb/internal/testcorpus"
	"github.com/okian/matchdb/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestGenerate(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := testcorpus.DefaultConfig()
		c, exp := testcorpus.Generate(cfg)

		Convey("Then there is one directory and one file per season and tournament", func() {
			So(c.Names(), ShouldResemble, []string{"2015-16", "2016-17", "2017-18"})
			So(c.Files(), ShouldEqual, cfg.Seasons*cfg.Tournaments)
		})

		Convey("Then the expected counts follow from the configuration", func() {
			So(exp.Seasons, ShouldEqual, 3)
			So(exp.Tournaments, ShouldEqual, 2)
			So(exp.Teams, ShouldEqual, 12)
			So(exp.Matches, ShouldEqual, 3*2*10*3)
		})

		Convey("Then every file decodes and dates stay inside the season", func() {
			n := 0
			for _, name := range c.Names() {
				for _, text := range c[name] {
					list, err := decode.JSON(text)
					So(err, ShouldBeNil)
					So(strings.HasPrefix(list.Name, "League "), ShouldBeTrue)
					for _, m := range list.Matches {
						So(m.Team1, ShouldNotEqual, m.Team2)
						So(m.Date.Year, ShouldBeBetweenOrEqual, 2015, 2018)
					}
					n += len(list.Matches)
				}
			}
			So(n, ShouldEqual, exp.Matches)
		})

		Convey("Then generation is deterministic", func() {
			again, _ := testcorpus.Generate(cfg)
			So(again, ShouldResemble, c)
		})
	})

	Convey("Given junk and single-year seasons", t, func() {
		cfg := testcorpus.DefaultConfig()
		cfg.Junk = true
		cfg.SingleYearEvery = 2
		c, exp := testcorpus.Generate(cfg)

		So(c.Names(), ShouldResemble, []string{"2015-16", "2016", "2017-18", "notes"})
		So(c["2015-16"], ShouldContainKey, "broken.json")
		So(c["2015-16"], ShouldContainKey, "empty.json")
		So(exp.Seasons, ShouldEqual, 3)
	})

	Convey("Given a season that would cross a millennium", t, func() {
		cfg := testcorpus.DefaultConfig()
		cfg.FirstYear = 1999
		cfg.Seasons = 2
		c, _ := testcorpus.Generate(cfg)

		So(c.Names(), ShouldResemble, []string{"1999", "2000-01"})
	})
}

func TestWrite(t *testing.T) {
	Convey("Given a generated corpus written to disk", t, func() {
		c, _ := testcorpus.Generate(testcorpus.DefaultConfig())
		root := t.TempDir()
		So(testcorpus.Write(context.Background(), root, c), ShouldBeNil)

		Convey("Then the filesystem loader reads it back unchanged", func() {
			got, err := corpus.New(corpus.WithLogger(logger.Discard())).Load(context.Background(), root)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, c)
		})
	})
}

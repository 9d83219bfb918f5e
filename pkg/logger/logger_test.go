package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When it is initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a usable logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When it is initialized with a nil writer", func() {
			err := InitWithWriter(nil)

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "teams formed",
				Int("formed", 3),
				String("run", "abc"),
				Bool("balanced", true),
				Duration("took", time.Second),
				Float64("spread", 0.5),
				Error(errors.New("boom")),
			)

			Convey("Then the record carries every field and the caller", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "teams formed")
				So(out, ShouldContainSubstring, "formed=3")
				So(out, ShouldContainSubstring, "run=abc")
				So(out, ShouldContainSubstring, "balanced=true")
				So(out, ShouldContainSubstring, "error=boom")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When using With and Named", func() {
			Named("assembler").With(String("run", "r1")).Warn(ctx, "slow task")

			Convey("Then the attached fields are present", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "slow task")
				So(out, ShouldContainSubstring, "run=r1")
			})
		})

		Convey("When the level is raised to error", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Error(ctx, "visible")

			Convey("Then only error records are written", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "visible")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(SetLevelString("debug"), ShouldBeNil)
		So(levelVar.Level(), ShouldEqual, slog.LevelDebug)
		So(SetLevelString(" WARNING "), ShouldBeNil)
		So(levelVar.Level(), ShouldEqual, slog.LevelWarn)
		So(SetLevelString(""), ShouldBeNil)
		So(levelVar.Level(), ShouldEqual, slog.LevelInfo)
		So(SetLevelString("verbose"), ShouldNotBeNil)
	})
}

func TestDiscard(t *testing.T) {
	Convey("Given a discard logger", t, func() {
		l := Discard()
		So(func() { l.Info(context.Background(), "nothing") }, ShouldNotPanic)
	})
}

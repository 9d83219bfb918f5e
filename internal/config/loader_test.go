package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/teamforge/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"TEAMFORGE_CONFIG",
	"TEAMFORGE_LOG_LEVEL",
	"TEAMFORGE_PARTICIPANTS_FILE",
	"TEAMFORGE_TEAMS_FILE",
	"TEAMFORGE_METRICS_FILE",
	"TEAMFORGE_SEED",
	"TEAMFORGE_RETURN_UNCLAIMED",
	"TEAMFORGE_DEFAULT_TEAM_SIZE",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TEAMFORGE_LOG_LEVEL", "debug")
			_ = os.Setenv("TEAMFORGE_TEAMS_FILE", "out/teams.csv")
			_ = os.Setenv("TEAMFORGE_SEED", "1234")
			_ = os.Setenv("TEAMFORGE_RETURN_UNCLAIMED", "true")
			_ = os.Setenv("TEAMFORGE_DEFAULT_TEAM_SIZE", "4")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.TeamsFile, convey.ShouldEqual, "out/teams.csv")
				convey.So(cfg.Seed, convey.ShouldEqual, 1234)
				convey.So(cfg.ReturnUnclaimed, convey.ShouldBeTrue)
				convey.So(cfg.DefaultTeamSize, convey.ShouldEqual, 4)
				convey.So(cfg.ParticipantsFile, convey.ShouldEqual, "data/participants.csv")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := filepath.Join(t.TempDir(), "teamforge.yaml")
			yaml := "participants_file: /tmp/people.csv\nmetrics_file: /tmp/teamforge.prom\ndefault_team_size: 6\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)

			convey.Convey("And the file is named by TEAMFORGE_CONFIG", func() {
				_ = os.Setenv("TEAMFORGE_CONFIG", path)
				_ = os.Setenv("TEAMFORGE_DEFAULT_TEAM_SIZE", "3")
				cfg, err := config.Load(ctx)

				convey.Convey("Then file values apply and env wins over the file", func() {
					convey.So(err, convey.ShouldBeNil)
					convey.So(cfg.ParticipantsFile, convey.ShouldEqual, "/tmp/people.csv")
					convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/teamforge.prom")
					convey.So(cfg.DefaultTeamSize, convey.ShouldEqual, 3)
				})
			})

			convey.Convey("And the file is passed with WithFile", func() {
				cfg, err := config.Load(ctx, config.WithFile(path))

				convey.Convey("Then the file values apply", func() {
					convey.So(err, convey.ShouldBeNil)
					convey.So(cfg.DefaultTeamSize, convey.ShouldEqual, 6)
				})
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_, err := config.Load(ctx, config.WithFile(filepath.Join(t.TempDir(), "missing.yaml")))

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value fails validation", func() {
			_ = os.Setenv("TEAMFORGE_DEFAULT_TEAM_SIZE", "-1")
			_, err := config.Load(ctx)

			convey.Convey("Then ErrInvalidConfig is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

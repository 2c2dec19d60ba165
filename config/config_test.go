package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a config file on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yml")
		contents := `
DEBUG:
  ENABLED: true
SOCKET:
  HOST: "0.0.0.0"
  PORT: 9000
INFO:
  NAME: cc-miner
  AUTHOR: alexfayers
`
		So(os.WriteFile(path, []byte(contents), 0o644), ShouldBeNil)

		Convey("Load populates every recognized option", func() {
			cfg, err := Load(path)
			So(err, ShouldBeNil)
			So(cfg.Debug.Enabled, ShouldBeTrue)
			So(cfg.Socket.Host, ShouldEqual, "0.0.0.0")
			So(cfg.Socket.Port, ShouldEqual, 9000)
			So(cfg.Info.Name, ShouldEqual, "cc-miner")
			So(cfg.Info.Author, ShouldEqual, "alexfayers")
			So(cfg.Addr(), ShouldEqual, "0.0.0.0:9000")
		})

		Convey("Load of a missing file fails", func() {
			_, err := Load(filepath.Join(dir, "nope.yml"))
			So(err, ShouldNotBeNil)
		})
	})
}

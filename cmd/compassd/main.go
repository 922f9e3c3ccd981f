package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/compass.go/pkg/config"
	"github.com/robotalks/compass.go/pkg/framework"
	"github.com/robotalks/compass.go/pkg/l1/daemon"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", configFile, "Config file (YAML).")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load(configFile)
	if err != nil {
		glog.Fatal(err)
	}
	d, err := daemon.New(cfg)
	if err != nil {
		glog.Fatal(err)
	}
	defer d.Close()

	r := framework.NewRunner().HandleSignals()
	r.Go(framework.NamedRun("compassd", framework.RunFunc(d.Run)))
	if err := r.Wait(); err != nil {
		glog.Error(err)
	}
}

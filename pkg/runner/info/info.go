package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/store"
)

// Info prints where data is stored and how much of it there is.
type Info struct {
	Config  store.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	bold := color.New(color.Bold)

	if override := os.Getenv("SNIP_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(n.Out, "SNIP_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(n.Out, "SNIP_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	driver := n.Config.Driver()
	if driver == "" {
		driver = store.DriverDiskv
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("driver"), driver)
	switch driver {
	case store.DriverSQLite:
		tbl.AddRow(bold.Sprint("sqlite.path"), n.Config.SQLitePath())
	case store.DriverRedis:
		r := n.Config.Redis()
		tbl.AddRow(bold.Sprint("redis.addr"), r.Addr)
		tbl.AddRow(bold.Sprint("redis.db"), r.DB)
		tbl.AddRow(bold.Sprint("redis.namespace"), r.Namespace)
	default:
		tbl.AddRow(bold.Sprint("path"), n.Config.BasePath())
	}
	tbl.AddRow(bold.Sprint("view.path"), n.Config.ViewPath())

	if n.Service == nil {
		return fmt.Errorf("failed to create persistence object")
	}
	snap, err := n.Service.Snapshot(ctx)
	if err != nil {
		return err
	}
	tbl.AddRow(bold.Sprint("categories"), len(snap.Categories))
	tbl.AddRow(bold.Sprint("blocks"), len(snap.Blocks))

	_, _ = fmt.Fprintln(n.Out, tbl)
	return nil
}

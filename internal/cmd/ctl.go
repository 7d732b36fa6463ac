package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/g502-hero/g502d/ctrlclient"
)

// Ctl talks to a running daemon over its control socket.
type Ctl struct {
	Addr string `help:"Daemon control address" default:"127.0.0.1:9502" env:"G502D_CTRL_ADDR"`

	Show    CtlShow    `cmd:"" help:"Read an attribute of the current profile"`
	Store   CtlStore   `cmd:"" help:"Write an attribute and push it to the device"`
	Profile CtlProfile `cmd:"" help:"List or switch profiles"`
	Fw      CtlFw      `cmd:"" help:"Show the device firmware identification"`
}

func (c *Ctl) client() *ctrlclient.Client { return ctrlclient.New(c.Addr) }

type CtlShow struct {
	Name string `arg:"" help:"Attribute name (report_rate or dpi)"`
}

func (c *CtlShow) Run(parent *Ctl, logger *slog.Logger) error {
	v, err := parent.client().AttrShow(c.Name)
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}

type CtlStore struct {
	Name  string `arg:"" help:"Attribute name (report_rate or dpi)"`
	Value uint16 `arg:"" help:"Decimal value to store"`
}

func (c *CtlStore) Run(parent *Ctl, logger *slog.Logger) error {
	if err := parent.client().AttrStore(c.Name, c.Value); err != nil {
		return err
	}
	logger.Info("stored", "attr", c.Name, "value", c.Value)
	return nil
}

type CtlProfile struct {
	List   CtlProfileList   `cmd:"" help:"List all profiles"`
	Switch CtlProfileSwitch `cmd:"" help:"Advance to the next profile"`
}

type CtlProfileList struct{}

func (c *CtlProfileList) Run(parent *Ctl, logger *slog.Logger) error {
	profiles, err := parent.client().ProfileList()
	if err != nil {
		return err
	}
	for _, p := range profiles {
		marker := " "
		if p.Current {
			marker = "*"
		}
		fmt.Printf("%s %d: %4d Hz %5d dpi\n", marker, p.Index, p.ReportRate, p.DPI)
	}
	return nil
}

type CtlProfileSwitch struct{}

func (c *CtlProfileSwitch) Run(parent *Ctl, logger *slog.Logger) error {
	p, err := parent.client().ProfileSwitch()
	if err != nil {
		return err
	}
	fmt.Printf("* %d: %4d Hz %5d dpi\n", p.Index, p.ReportRate, p.DPI)
	return nil
}

type CtlFw struct{}

func (c *CtlFw) Run(parent *Ctl, logger *slog.Logger) error {
	fw, err := parent.client().Firmware()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(fw)
}

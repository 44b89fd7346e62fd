// smllisten opens a serial device carrying SML transport frames and
// prints a one-line summary of each decoded message as it arrives.
//
// Usage:
//
//	smllisten -d /dev/ttyUSB0 [-b 9600] [-c smllisten.yaml]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/term"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mbenders/go-sml/sml"
	"github.com/mbenders/go-sml/transport"
)

// config is the optional YAML overlay for device/quirk settings that are
// awkward to carry as flags (e.g. a fixed list of known meters). Flags
// always take priority over a loaded config's Device/Baud when set
// explicitly on the command line.
type config struct {
	Device    string `yaml:"device"`
	Baud      int    `yaml:"baud"`
	MaxFrame  int    `yaml:"max_frame"`
	LogVendor bool   `yaml:"log_vendor_workarounds"`
}

func loadConfig(path string) (config, error) {
	var c config
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

func main() {
	var device = pflag.StringP("device", "d", "", "Serial device, e.g. /dev/ttyUSB0.")
	var baud = pflag.IntP("baud", "b", 9600, "Baud rate.")
	var configFile = pflag.StringP("config", "c", "", "Optional YAML config overlaying device/baud.")
	var maxFrame = pflag.IntP("max-frame", "m", 0, "Maximum transport frame length (0 = library default).")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "smllisten - listen for SML transport frames on a serial line.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: smllisten -d <device> [options]\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		sml.Logger.Error("could not load config", "err", err)
		os.Exit(1)
	}
	if *device == "" {
		*device = cfg.Device
	}
	if !pflag.CommandLine.Changed("baud") && cfg.Baud != 0 {
		*baud = cfg.Baud
	}
	if *maxFrame == 0 {
		*maxFrame = cfg.MaxFrame
	}
	if *device == "" {
		fmt.Fprintf(os.Stderr, "smllisten: -d/--device is required\n")
		pflag.Usage()
		os.Exit(1)
	}

	fd, err := term.Open(*device, term.RawMode)
	if err != nil {
		sml.Logger.Error("could not open serial device", "device", *device, "err", err)
		os.Exit(1)
	}
	defer fd.Close()

	if err := applyBaud(fd, *baud); err != nil {
		sml.Logger.Warn("could not apply baud rate via termios extension, falling back to library default", "baud", *baud, "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sml.Logger.Info("listening", "device", *device, "baud", *baud)

	err = transport.Listen(ctx, fd, *maxFrame, func(frame []byte) error {
		inner, err := transport.Unescape(frame)
		if err != nil {
			sml.Logger.Warn("dropping frame, could not unescape", "err", err)
			return nil
		}

		file, err := sml.FileParse(inner)
		if err != nil {
			sml.Logger.Warn("file parsed only partially, logging recovered messages", "err", err)
		}
		for _, msg := range file.Messages {
			if msg.Body == nil {
				continue
			}
			sml.Logger.Info("message", "tag", fmt.Sprintf("0x%08x", msg.Body.Tag),
				"transaction-id", sml.ToHexString(msg.TransactionID, false))
		}
		return nil
	})
	if err != nil {
		sml.Logger.Error("listen loop ended", "err", err)
		os.Exit(1)
	}
}

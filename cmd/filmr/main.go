// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/pbnjay/memory"

	"github.com/mlnoga/filmr/internal/backend/cpu"
	"github.com/mlnoga/filmr/internal/config"
	"github.com/mlnoga/filmr/internal/filmrerr"
	"github.com/mlnoga/filmr/internal/filmrlog"
	"github.com/mlnoga/filmr/internal/imageio"
	"github.com/mlnoga/filmr/internal/pipeline"
	"github.com/mlnoga/filmr/internal/rest"
	"github.com/mlnoga/filmr/internal/simconfig"
)

const version = "0.1.0"

var totalMiBs = memory.TotalMemory() / 1024 / 1024

var port = flag.Int64("port", 8080, "port for serving HTTP API")
var chroot = flag.String("chroot", "", "directory to chroot and chdir to when serving HTTP. must be run as root")
var setuid = flag.Int64("setuid", -1, "user id number to setuid to when serving HTTP. must be run as root")

var stockName = flag.String("stock", "Kodak Portra 400", "film stock preset to render with")
var customStocksDir = flag.String("customStocksDir", "", "directory of extra *.json film stock presets")

var out = flag.String("out", "out.png", "save output to `file`")
var jpegQuality = flag.Int64("jpegQuality", 92, "JPEG quality, 1..100, when -out ends in .jpg")
var log = flag.String("log", "%auto", "save log output to `file`. `%auto` replaces suffix of output file with .log")

var exposure = flag.Float64("exposure", 0, "exposure time in seconds, 0=auto-estimate from the input image")
var grain = flag.Bool("grain", true, "simulate film grain")
var wb = flag.String("wb", "auto", "white balance mode: auto, gray, white, off")
var wbStrength = flag.Float64("wbStrength", 1.0, "white balance strength, [0,1]")
var warmth = flag.Float64("warmth", 0, "warmth adjustment, [-1,1]")
var saturation = flag.Float64("saturation", 1.0, "output saturation multiplier")
var mode = flag.String("mode", "positive", "output mode: positive or negative")
var useGPU = flag.Bool("gpu", false, "use the GPU backend if available, falling back to CPU silently")

var verbose = flag.Bool("verbose", false, "print full error stack traces")

func main() {
	debug.SetGCPercent(10)
	start := time.Now()
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Filmr Copyright (c) 2020 Markus L. Noga
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (run|serve|estimate|presets|version|legal|help) (img0.png ... imgn.png)

Commands:
  run      Render input images through the simulation pipeline
  serve    Run the HTTP API server
  estimate Print the auto-estimated exposure time for an input image
  presets  List known film stock presets, or print one given its name
  legal    Show license and attribution information
  version  Show version information

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *log == "%auto" {
		if *out != "" {
			*log = strings.TrimSuffix(*out, filepath.Ext(*out)) + ".log"
		} else {
			*log = ""
		}
	}
	if *log != "" {
		if err := filmrlog.AlsoToFile(*log); err != nil {
			fmt.Fprintf(os.Stderr, "unable to open log file %s: %s\n", *log, err)
		}
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if *customStocksDir != "" {
		cfg.CustomStocksDir = *customStocksDir
	}

	var runErr error
	switch args[0] {
	case "serve":
		rest.MakeSandbox(*chroot, int(*setuid))
		server, err := rest.NewServer(cfg)
		if err != nil {
			fatal(err)
		}
		filmrlog.Info("serving", "port", *port, "workers", cpu.Workers(), "avx2", cpu.HasAVX2())
		runErr = server.Serve(int(*port))

	case "run":
		runErr = runCommand(cfg, args[1:])

	case "estimate":
		runErr = estimateCommand(cfg, args[1:])

	case "presets":
		runErr = presetsCommand(cfg, args[1:])

	case "legal":
		fmt.Print(legal)

	case "version":
		fmt.Printf("filmr version %s (%d logical CPUs, %d MiB memory, AVX2=%v)\n",
			version, cpu.Workers(), totalMiBs, cpu.HasAVX2())

	case "help", "?":
		flag.Usage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		flag.Usage()
		os.Exit(1)
	}

	if runErr != nil {
		fatal(runErr)
	}

	elapsed := time.Since(start).Round(time.Millisecond * 10)
	fmt.Printf("\nDone after %s\n", elapsed)
}

func fatal(err error) {
	if *verbose {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

func simConfigFromFlags() (simconfig.Config, error) {
	c := simconfig.Default()
	c.ExposureTime = *exposure
	c.EnableGrain = *grain
	c.WhiteBalanceStrength = *wbStrength
	c.Warmth = *warmth
	c.Saturation = *saturation
	c.UseGPU = *useGPU

	switch strings.ToLower(*wb) {
	case "auto":
		c.WhiteBalanceMode = simconfig.WBAuto
	case "gray":
		c.WhiteBalanceMode = simconfig.WBGray
	case "white":
		c.WhiteBalanceMode = simconfig.WBWhite
	case "off":
		c.WhiteBalanceMode = simconfig.WBOff
	default:
		return c, filmrerr.Wrapf(filmrerr.ErrInvalidPreset, "unknown white balance mode %q", *wb)
	}

	switch strings.ToLower(*mode) {
	case "positive":
		c.OutputMode = simconfig.Positive
	case "negative":
		c.OutputMode = simconfig.Negative
	default:
		return c, filmrerr.Wrapf(filmrerr.ErrInvalidPreset, "unknown output mode %q", *mode)
	}
	return c, nil
}

func runCommand(cfg config.Config, files []string) error {
	if len(files) == 0 {
		return filmrerr.Wrapf(filmrerr.ErrInvalidImage, "run requires at least one input image")
	}

	library, err := config.LoadStockLibrary(cfg)
	if err != nil {
		return err
	}
	stock, ok := library[*stockName]
	if !ok {
		return filmrerr.Wrapf(filmrerr.ErrInvalidFilmStock, "unknown film stock %q", *stockName)
	}

	simCfg, err := simConfigFromFlags()
	if err != nil {
		return err
	}

	for i, file := range files {
		img, err := imageio.DecodeFile(file)
		if err != nil {
			return err
		}

		fileCfg := simCfg
		if fileCfg.ExposureTime <= 0 {
			fileCfg.ExposureTime = pipeline.EstimateExposureTime(img, stock)
			filmrlog.Info("estimated exposure", "file", file, "seconds", fileCfg.ExposureTime)
		}

		pipeline.Process(img, stock, fileCfg, filmrlog.Info)

		outPath := *out
		if len(files) > 1 {
			ext := filepath.Ext(outPath)
			outPath = fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(outPath, ext), i, ext)
		}
		if err := imageio.EncodeFile(outPath, img, int(*jpegQuality)); err != nil {
			return err
		}
		filmrlog.Info("rendered", "input", file, "output", outPath, "stock", stock.Name)
	}
	return nil
}

func estimateCommand(cfg config.Config, files []string) error {
	if len(files) != 1 {
		return filmrerr.Wrapf(filmrerr.ErrInvalidImage, "estimate requires exactly one input image")
	}
	library, err := config.LoadStockLibrary(cfg)
	if err != nil {
		return err
	}
	stock, ok := library[*stockName]
	if !ok {
		return filmrerr.Wrapf(filmrerr.ErrInvalidFilmStock, "unknown film stock %q", *stockName)
	}
	img, err := imageio.DecodeFile(files[0])
	if err != nil {
		return err
	}
	seconds := pipeline.EstimateExposureTime(img, stock)
	fmt.Printf("%f\n", seconds)
	return nil
}

func presetsCommand(cfg config.Config, args []string) error {
	library, err := config.LoadStockLibrary(cfg)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		for name := range library {
			fmt.Println(name)
		}
		return nil
	}
	stock, ok := library[args[0]]
	if !ok {
		return filmrerr.Wrapf(filmrerr.ErrInvalidFilmStock, "unknown film stock %q", args[0])
	}
	m, err := json.MarshalIndent(stock, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(m))
	return nil
}

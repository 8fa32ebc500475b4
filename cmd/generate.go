package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/apex/log"
	"github.com/ardanlabs/protocol-converter/config"
	"github.com/ardanlabs/protocol-converter/generator"
	"github.com/ardanlabs/protocol-converter/parser"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func run(cmd *cobra.Command, v *viper.Viper, opts rootOptions, input string) error {
	used, err := config.ReadFile(v, opts.configFile)
	if err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if used != "" {
		log.WithField("path", used).Debug("using config file")
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", input)
	}

	header, err := parser.Parse(string(data), parser.WithCallingConvention(cfg.CallingConvention))
	if err != nil {
		return errors.Wrapf(err, "failed to parse %s", input)
	}
	log.WithFields(log.Fields{
		"functions": len(header.Functions),
		"version":   header.Version,
	}).Debug("parsed header")

	genOpts := []generator.Option{generator.WithConfig(cfg)}
	if opts.protocol {
		genOpts = append(genOpts, generator.WithProtocol(""))
	}
	if opts.library {
		genOpts = append(genOpts, generator.WithLibrary(""))
	}

	files, err := generator.New(header, genOpts...).Generate()
	if err != nil {
		return errors.Wrapf(err, "failed to generate from %s", input)
	}

	if opts.check {
		return checkFiles(cmd.OutOrStdout(), files)
	}

	if cfg.Debug && cfg.Dump != "" {
		if err := writeDump(cfg.Dump, header); err != nil {
			return err
		}
	}

	return writeFiles(files)
}

func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

func writeFiles(files map[string]string) error {
	for _, path := range sortedPaths(files) {
		content := files[path]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return errors.Wrapf(err, "failed to create %s", dir)
			}
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
		log.WithField("size", humanize.Bytes(uint64(len(content)))).Infof("Created %s", path)
	}
	return nil
}

// checkFiles compares every generated file with what is on disk and prints a
// diff for each one that is stale or missing.
func checkFiles(w io.Writer, files map[string]string) error {
	var stale []string
	for _, path := range sortedPaths(files) {
		existing, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return errors.Wrapf(err, "failed to read %s", path)
			}
			fmt.Fprintf(w, "missing: %s\n", path)
			stale = append(stale, path)
			continue
		}

		diff, err := generator.Diff(path, string(existing), files[path])
		if err != nil {
			return errors.Wrapf(err, "failed to diff %s", path)
		}
		if diff != "" {
			fmt.Fprint(w, diff)
			stale = append(stale, path)
			continue
		}
		log.Debugf("%s is up to date", path)
	}

	if len(stale) > 0 {
		return errors.Errorf("%d generated file(s) out of date: %s", len(stale), strings.Join(stale, ", "))
	}
	return nil
}

func writeDump(path string, header *parser.Header) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create dump %s", path)
	}
	return dumpTo(f, path, header)
}

// dumpTo encodes header into w and closes it. A failed close fails the dump.
func dumpTo(w io.WriteCloser, path string, header *parser.Header) error {
	if err := parser.Dump(w, header, parser.DumpFormatFor(path)); err != nil {
		w.Close()
		return errors.Wrapf(err, "failed to write dump %s", path)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "failed to close dump %s", path)
	}
	log.Infof("Writing functions to %s", path)
	return nil
}

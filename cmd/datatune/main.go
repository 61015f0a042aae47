package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/datatune/datatune"
	"github.com/datatune/datatune/compose"
	"github.com/datatune/datatune/csvdata"
	"github.com/datatune/datatune/midicsv"
	"github.com/datatune/datatune/publish"
	"github.com/datatune/datatune/report"
	"github.com/datatune/datatune/version"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Output extensions. The data files are .csv themselves, so the midicsv
// text gets a compound extension.
const (
	textExt   = ".midi.csv"
	midiExt   = ".mid"
	yamlExt   = ".tune.yml"
	reportExt = ".report.txt"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "Read generation parameters from this .yml file. Flags given explicitly override it.")
	seed := pflag.Int64("seed", 0, "Seed for all choices; 0 means no randomness.")
	style := pflag.String("style", string(datatune.Plain), "Production style: plain, gentle or house.")
	intro := pflag.Int("intro", 0, "Number of silent intro bars.")
	hetero := pflag.Bool("hetero", false, "Scale every stream against its own maximum and vary their instruments.")
	name := pflag.String("name", "", "Tune name. Defaults to the input file name.")
	outPath := pflag.StringP("output", "o", "", "Directory where to write the output files. Created if needed. By default, everything is placed next to the input file.")
	stdout := pflag.BoolP("stdout", "s", false, "Do not write files; write the text and report outputs to standard output instead.")
	safe := pflag.BoolP("no-overwrite", "n", false, "Never overwrite files; if a file already exists and would change, give an error.")
	textOut := pflag.BoolP("text", "t", false, "Output the tune as midicsv text (the default when nothing else is asked for).")
	midiOut := pflag.BoolP("midi", "m", false, "Output the tune as a standard MIDI file.")
	yamlOut := pflag.BoolP("yaml", "y", false, "Output the tune structure as a .yml file.")
	reportOut := pflag.BoolP("report", "r", false, "Output a human readable report of the tune.")
	jobs := pflag.IntP("jobs", "j", runtime.NumCPU(), "Number of files to process concurrently.")
	versionFlag := pflag.BoolP("version", "v", false, "Print version.")
	debug := pflag.Bool("debug", false, "Log debug information.")
	pflag.Usage = printUsage
	pflag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if pflag.NArg() == 0 {
		pflag.Usage()
		os.Exit(0)
	}
	params := datatune.DefaultParams()
	if *configPath != "" {
		var err error
		if params, err = datatune.LoadParams(*configPath); err != nil {
			logrus.Errorf("could not load parameters: %v", err)
			os.Exit(1)
		}
	}
	flags := pflag.CommandLine
	if flags.Changed("seed") || *configPath == "" {
		params.Seed = *seed
	}
	if flags.Changed("style") || *configPath == "" {
		params.Style = datatune.Style(*style)
	}
	if flags.Changed("intro") || *configPath == "" {
		params.IntroBars = *intro
	}
	if flags.Changed("hetero") {
		params.HeterogeneousStreams = *hetero
	}
	if flags.Changed("name") {
		params.Name = *name
	}
	if err := params.Validate(); err != nil {
		logrus.Errorf("invalid parameters: %v", err)
		os.Exit(1)
	}
	if !*midiOut && !*yamlOut && !*reportOut {
		*textOut = true
	}
	var reporter *report.Reporter
	if *reportOut {
		var err error
		if reporter, err = report.New(); err != nil {
			logrus.Errorf("error creating reporter: %v", err)
			os.Exit(1)
		}
	}
	var stdoutMu sync.Mutex
	output := func(filename string, extension string, contents []byte) error {
		if *stdout {
			stdoutMu.Lock()
			defer stdoutMu.Unlock()
			_, err := os.Stdout.Write(contents)
			return err
		}
		dir, base := filepath.Split(filename)
		if *outPath != "" {
			dir = *outPath
		}
		f := filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+extension)
		changed, err := publish.File(f, contents, publish.Options{NoOverwrite: *safe})
		if err != nil {
			return err
		}
		if changed {
			logrus.Debugf("wrote %v (%v)", f, humanize.Bytes(uint64(len(contents))))
		} else {
			logrus.Debugf("%v is up to date", f)
		}
		return nil
	}
	process := func(filename string) error {
		data, err := csvdata.ReadFile(filename)
		if err != nil {
			return err
		}
		p := params
		if p.Name == "" {
			base := filepath.Base(filename)
			p.Name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		c, err := compose.Compose(data, p)
		if err != nil {
			return errors.Wrap(err, "composing failed")
		}
		logrus.WithFields(logrus.Fields{
			"file":    filename,
			"cadence": c.Cadence,
			"streams": c.Bounds.Streams,
			"bars":    c.Tune.NumBars(),
		}).Debugf("composed %v", durafmt.Parse(c.Tune.Duration()).LimitFirstN(2))
		seq := midicsv.FromTune(c.Tune)
		if *textOut {
			var buf bytes.Buffer
			if err := seq.WriteText(&buf); err != nil {
				return errors.Wrap(err, "could not write midicsv text")
			}
			if err := output(filename, textExt, buf.Bytes()); err != nil {
				return errors.Wrap(err, "error outputting midicsv text")
			}
		}
		if *midiOut && !*stdout {
			var buf bytes.Buffer
			if err := seq.WriteSMF(&buf); err != nil {
				return errors.Wrap(err, "could not write midi file")
			}
			if err := output(filename, midiExt, buf.Bytes()); err != nil {
				return errors.Wrap(err, "error outputting midi file")
			}
		}
		if *yamlOut {
			out, err := yaml.Marshal(dumpTune(c))
			if err != nil {
				return errors.Wrap(err, "could not marshal the tune as yaml")
			}
			if err := output(filename, yamlExt, out); err != nil {
				return errors.Wrap(err, "error outputting yaml file")
			}
		}
		if *reportOut {
			var buf bytes.Buffer
			if err := reporter.Write(&buf, report.Summarise(data, c)); err != nil {
				return err
			}
			if err := output(filename, reportExt, buf.Bytes()); err != nil {
				return errors.Wrap(err, "error outputting report")
			}
		}
		return nil
	}
	files, err := expandArgs(pflag.Args())
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
	var failed sync.Once
	retval := 0
	swg := sizedwaitgroup.New(max(*jobs, 1))
	for _, file := range files {
		swg.Add()
		go func() {
			defer swg.Done()
			if err := process(file); err != nil {
				logrus.Errorf("could not process file %v: %v", file, err)
				failed.Do(func() { retval = 1 })
			}
		}()
	}
	swg.Wait()
	os.Exit(retval)
}

// expandArgs replaces every @listfile argument with the paths listed in it,
// one per line. Blank lines and lines starting with '#' are skipped.
func expandArgs(args []string) ([]string, error) {
	var ret []string
	for _, arg := range args {
		list, ok := strings.CutPrefix(arg, "@")
		if !ok {
			ret = append(ret, arg)
			continue
		}
		f, err := os.Open(list)
		if err != nil {
			return nil, errors.Wrap(err, "could not open file list")
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if !filepath.IsAbs(line) {
				line = filepath.Join(filepath.Dir(list), line)
			}
			ret = append(ret, line)
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "could not read file list %v", list)
		}
	}
	return ret, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Datatune. Input .csv data files, outputs tunes as midicsv text, .mid files, .yml dumps or reports.\nUsage: %s [flags] [path|@listfile ...]\n", os.Args[0])
	pflag.PrintDefaults()
}

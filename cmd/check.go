/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/notargets/gogeo/InputParameters"
	"github.com/notargets/gogeo/geometry"
	"github.com/notargets/gogeo/geometry/readers"
	"github.com/notargets/gogeo/utils"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate geometry files and report every problem found",
		Long: `Reads each file, resolves all references and checks the geometry:
loops must be closed, simple and planar, arcs circular, physical groups must
hold entities of their own dimension and mesh options must be in range.

Exits with status 1 when any file has an error. Warnings do not change the
exit status.

Recognized mesh options:
` + wrapWords(geometry.KnownMeshOptions(), 72),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chk, err := a.newChecker(cmd)
			if err != nil {
				return err
			}
			parallel, _ := cmd.Flags().GetInt("parallel")
			failed := 0
			results := chk.runAll(args, parallel)
			for i := range results {
				r := &results[i]
				if _, err := cmd.OutOrStdout().Write(r.out.Bytes()); err != nil {
					return err
				}
				if r.errs > 0 {
					failed++
				}
			}
			utils.LogMemUsage(a.log, "check finished")
			if failed > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d of %d file(s) failed\n", failed, len(args))
				return errFailed
			}
			return nil
		},
	}
	addCheckFlags(a, cmd)
	cmd.Flags().IntP("parallel", "p", runtime.NumCPU(), "number of files checked concurrently")
	return cmd
}

// wrapWords joins words with spaces into indented lines of at most width
// characters.
func wrapWords(words []string, width int) string {
	var (
		sb   strings.Builder
		line = "  "
	)
	for _, w := range words {
		if len(line) > 2 && len(line)+1+len(w) > width {
			sb.WriteString(line + "\n")
			line = "  "
		}
		if len(line) > 2 {
			line += " "
		}
		line += w
	}
	sb.WriteString(line)
	return sb.String()
}

func addCheckFlags(a *app, cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("inputParametersFile", "I", "", "YAML file of check parameters like:\n\t- Tolerance\n\t- ArcSegments\n\t- MeshOptions (defaults)")
	flags.Float64("tolerance", geometry.DefaultCheckParams().Tolerance, "tolerance relative to the model size")
	flags.Int("arc-segments", geometry.DefaultCheckParams().ArcSegments, "chords per arc when testing loops for crossings")
	flags.Bool("strict", true, "treat unrecognized mesh options as errors")
	flags.Bool("warn-unused", true, "warn about points that nothing refers to")
	for _, name := range []string{"tolerance", "arc-segments", "strict", "warn-unused"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}
}

// checker validates files with one set of parameters.
type checker struct {
	a      *app
	params geometry.CheckParams
	ip     *InputParameters.CheckParameters
}

// newChecker layers the parameters: defaults, then the -I file, then any
// value set by flag, environment or config file.
func (a *app) newChecker(cmd *cobra.Command) (*checker, error) {
	chk := &checker{a: a, params: geometry.DefaultCheckParams()}
	if file, _ := cmd.Flags().GetString("inputParametersFile"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read input parameters: %w", err)
		}
		chk.ip = &InputParameters.CheckParameters{}
		if err = chk.ip.Parse(data); err != nil {
			return nil, fmt.Errorf("parse input parameters %s: %w", file, err)
		}
		chk.params = chk.ip.Apply(chk.params)
		if a.log.Debug().Enabled() {
			chk.ip.Print(a.stderr)
		}
	}
	v := a.v
	if v.IsSet("tolerance") {
		chk.params.Tolerance = v.GetFloat64("tolerance")
	}
	if v.IsSet("arc-segments") {
		chk.params.ArcSegments = v.GetInt("arc-segments")
	}
	if v.IsSet("strict") {
		chk.params.Strict = v.GetBool("strict")
	}
	if v.IsSet("warn-unused") {
		chk.params.WarnUnused = v.GetBool("warn-unused")
	}
	return chk, nil
}

type fileResult struct {
	out         bytes.Buffer
	errs, warns int
}

// runAll checks files in parallel buckets; the results keep the order of
// files.
func (chk *checker) runAll(files []string, parallel int) []fileResult {
	var (
		results = make([]fileResult, len(files))
		pm      = utils.NewPartitionMap(parallel, len(files))
		wg      sync.WaitGroup
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			for k := kMin; k < kMax; k++ {
				r := &results[k]
				r.errs, r.warns = chk.run(&r.out, files[k])
			}
		}(np)
	}
	wg.Wait()
	return results
}

// run checks one file, prints its problems and returns their counts.
func (chk *checker) run(out io.Writer, file string) (errs, warns int) {
	log := chk.a.log.With().Str("file", file).Logger()
	m, err := readers.ReadGeoFile(file)
	if err != nil {
		problems := readProblems(err)
		for _, p := range problems {
			fmt.Fprintln(out, p)
		}
		log.Error().Err(err).Msg("read failed")
		return len(problems), 0
	}
	if chk.ip != nil {
		added, err := chk.ip.ApplyMeshDefaults(m)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", file, err)
			return 1, 0
		}
		if len(added) > 0 {
			log.Debug().Strs("options", added).Msg("applied default mesh options")
		}
	}
	report := m.Check(chk.params)
	for _, e := range report.Errors {
		fmt.Fprintf(out, "%s: %v\n", file, e)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "%s: warning: %v\n", file, w)
	}
	if report.OK() {
		fmt.Fprintf(out, "%s: ok\n", file)
	}
	log.Info().Int("errors", len(report.Errors)).Int("warnings", len(report.Warnings)).Msg("checked")
	return len(report.Errors), len(report.Warnings)
}

// readProblems splits a reader error into one line per problem. Reader
// errors already name the file.
func readProblems(err error) []error {
	inner := errors.Unwrap(err)
	if inner == nil {
		return []error{err}
	}
	problems := geometry.Problems(inner)
	if len(problems) < 2 || !strings.HasSuffix(err.Error(), inner.Error()) {
		return []error{err}
	}
	prefix := strings.TrimSuffix(err.Error(), inner.Error())
	out := make([]error, len(problems))
	for i, p := range problems {
		out[i] = fmt.Errorf("%s%w", prefix, p)
	}
	return out
}

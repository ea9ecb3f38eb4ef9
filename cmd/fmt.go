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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/notargets/gogeo/geometry/readers"
	"github.com/notargets/gogeo/geometry/writers"
)

func newFmtCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt FILE...",
		Short: "Rewrite geometry scripts in canonical form",
		Long: `Prints each file in canonical form: points, curves, loops, surfaces,
mesh constraints, physical groups and mesh options, each section ordered by id.
Declaration order and expressions in the input do not change the output.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")
			list, _ := cmd.Flags().GetBool("list")
			out := cmd.OutOrStdout()
			failed := false
			for _, file := range args {
				log := a.log.With().Str("file", file).Logger()
				m, err := readers.ReadGeoFile(file)
				if err != nil {
					fmt.Fprintln(out, err)
					failed = true
					continue
				}
				canonical, err := writers.Canonical(m)
				if err != nil {
					return fmt.Errorf("format %s: %w", file, err)
				}
				if !write && !list {
					fmt.Fprint(out, canonical)
					continue
				}
				orig, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				if bytes.Equal(orig, []byte(canonical)) {
					continue
				}
				if list {
					fmt.Fprintln(out, file)
				}
				if write {
					if !strings.EqualFold(filepath.Ext(file), ".geo") {
						return fmt.Errorf("%s: -w only rewrites .geo scripts, use export for documents", file)
					}
					if err = writeFileAtomic(file, []byte(canonical)); err != nil {
						return err
					}
					log.Info().Msg("rewritten")
				}
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolP("write", "w", false, "write the result to the source file instead of stdout")
	cmd.Flags().BoolP("list", "l", false, "list files whose formatting differs from canonical form")
	return cmd
}

// writeFileAtomic replaces path so that readers see either the old or the
// new content, keeping the existing file mode.
func writeFileAtomic(path string, data []byte) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithExistingPermissions())
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer pending.Cleanup()

	if _, err = pending.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

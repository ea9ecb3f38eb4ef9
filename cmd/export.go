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

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/notargets/gogeo/geometry/readers"
	"github.com/notargets/gogeo/geometry/writers"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export a geometry as a YAML or JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("format")
			format, err := writers.NewFormat(name)
			if err != nil {
				return err
			}
			m, err := readers.ReadGeoFile(args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err = writers.Export(&buf, m, format); err != nil {
				return fmt.Errorf("export %s: %w", args[0], err)
			}
			outFile, _ := cmd.Flags().GetString("output")
			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err = renameio.WriteFile(outFile, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("write %s: %w", outFile, err)
			}
			a.log.Info().Str("file", args[0]).Str("output", outFile).Str("format", string(format)).Msg("exported")
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "yaml", "document format: yaml or json")
	cmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	return cmd
}

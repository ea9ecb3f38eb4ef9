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
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gogeo/geometry"
	"github.com/notargets/gogeo/geometry/readers"
	"github.com/notargets/gogeo/geometry/writers"
	"github.com/notargets/gogeo/types"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Summarize a geometry: counts, sizes, areas and physical groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readers.ReadGeoFile(args[0])
			if err != nil {
				return err
			}
			a.log.Debug().Str("file", args[0]).Msg("summarizing")
			printInfo(cmd.OutOrStdout(), args[0], m)
			return nil
		},
	}
}

func printInfo(out io.Writer, file string, m *geometry.Model) {
	c := m.Counts()
	b := m.Bounds()
	fmt.Fprintf(out, "File:     %s\n", file)
	fmt.Fprintf(out, "Entities: %d points, %d lines, %d circles, %d loops, %d surfaces\n",
		c.Points, c.Lines, c.Circles, c.Loops, c.Surfaces)
	fmt.Fprintf(out, "Bounds:   (%s) to (%s)\n", fmtPoint(b.Min), fmtPoint(b.Max))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if loops := m.Loops(); len(loops) > 0 {
		fmt.Fprintln(tw, "\nLOOP\tEDGES\tLENGTH\tORIENTATION\t")
		for _, l := range loops {
			length, err := m.LoopLength(l.ID)
			if err != nil {
				fmt.Fprintf(tw, "%d\t%d\t-\t%v\t\n", l.ID, len(l.Edges), err)
				continue
			}
			o, err := m.LoopOrientation(l.ID)
			orientation := o.String()
			if err != nil {
				orientation = err.Error()
			}
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t\n", l.ID, len(l.Edges), fmtFloat(length), orientation)
		}
	}
	if surfaces := m.Surfaces(); len(surfaces) > 0 {
		fmt.Fprintln(tw, "\nSURFACE\tLOOPS\tAREA\t")
		for _, s := range surfaces {
			area := "-"
			if v, err := m.SurfaceArea(s.ID); err == nil {
				area = fmtFloat(v)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t\n", s.ID, joinIDs(s.Loops), area)
		}
	}
	if groups := m.PhysicalGroups(); len(groups) > 0 {
		fmt.Fprintln(tw, "\nPHYSICAL\tNAME\tTAG\tROLE\tMEMBERS\t")
		for _, g := range groups {
			name, tag := g.Name, "-"
			if name == "" {
				name = "-"
			}
			if g.Tag != 0 {
				tag = strconv.Itoa(g.Tag)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", g.Dim, name, tag, role(g), joinIDs(g.Members))
		}
	}
	if opts := m.MeshOptions(); len(opts) > 0 {
		fmt.Fprintln(tw, "\nMESH OPTION\tVALUE\t")
		for _, o := range opts {
			value := writers.FormatFloat(o.Value)
			if geometry.IsMeshSizeOption(o.Name) {
				value += " (size)"
			}
			fmt.Fprintf(tw, "%s\t%s\t\n", o, value)
		}
	}
	tw.Flush()
}

// role names the boundary condition a group stands for, with the label of
// names such as "Wall-top".
func role(g geometry.PhysicalGroup) string {
	flag := types.Classify(g)
	if label := types.NewBCTAG(g.Name).GetLabel(); label != "" && flag != types.BC_None {
		return fmt.Sprintf("%s (%s)", flag, label)
	}
	return flag.String()
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func fmtPoint(v r3.Vec) string {
	return strings.Join([]string{
		writers.FormatFloat(v.X), writers.FormatFloat(v.Y), writers.FormatFloat(v.Z),
	}, ", ")
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

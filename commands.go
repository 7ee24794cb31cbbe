// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cybrota/arbor/catalog"
	"github.com/cybrota/arbor/cdn"
	"github.com/cybrota/arbor/diagnosis"
	"github.com/cybrota/arbor/dom"
	"github.com/cybrota/arbor/expr"
	"github.com/cybrota/arbor/filesystem"
	"github.com/cybrota/arbor/genealogy"
	"github.com/cybrota/arbor/hierarchy"
	"github.com/cybrota/arbor/orgchart"
	"github.com/cybrota/arbor/trace"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries what every command needs once the root flags are parsed.
type app struct {
	config *Config
}

func (a *app) prepare(cmd *cobra.Command) error {
	debug, _ := cmd.Flags().GetBool("debug")
	verbose, _ := cmd.Flags().GetBool("verbose")
	ctx, log := trace.NewLogger(cmd.Context(), debug, verbose)
	cmd.SetContext(ctx)

	config, err := LoadConfig()
	if err != nil {
		log.WithError(err).Warn("failed to load configuration, using defaults")
		config = &defaultConfig
	}
	a.config = config
	return nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func newRootCmd(logo string) *cobra.Command {
	a := &app{config: &defaultConfig}

	rootCmd := &cobra.Command{
		Use:           "arbor",
		Version:       version,
		Long:          logo,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the browser when no subcommand is provided
			return a.browse(cmd, "org")
		},
	}
	rootCmd.PersistentFlags().Bool("debug", false, "log debug details")
	rootCmd.PersistentFlags().Bool("verbose", false, "log progress")

	rootCmd.AddCommand(
		a.treeCmd(logo),
		a.orgCmd(),
		a.fsCmd(),
		a.cdnCmd(),
		a.catalogCmd(),
		a.domCmd(),
		a.familyCmd(),
		a.exprCmd(),
		a.browseCmd(logo),
		a.diagnoseCmd(),
		&cobra.Command{
			Use:   "usage",
			Short: "Print Arbor usage guide",
			Long:  fmt.Sprintf("%s\n%s", logo, `Usage displays the arbor CLI usage guide`),
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				printf(cmd, "%s\n", getHelpMessage())
			},
		},
		&cobra.Command{
			Use:   "settings",
			Short: "Show the configuration, creating ~/.arbor.yaml if needed",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				displaySettings()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print Arbor version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				printf(cmd, "%s\n", version)
			},
		},
	)
	return rootCmd
}

func (a *app) treeCmd(logo string) *cobra.Command {
	return &cobra.Command{
		Use:       "tree <dataset>",
		Short:     "Print a sample tree",
		Long:      fmt.Sprintf("%s\nTree prints one of the sample trees: %s", logo, strings.Join(datasetNames, ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: datasetNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(args[0], trace.FromContext(cmd.Context()))
			if err != nil {
				return err
			}
			out, err := renderTree(ds.rows())
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", out)
			return nil
		},
	}
}

func (a *app) orgCmd() *cobra.Command {
	orgCmd := &cobra.Command{
		Use:   "org",
		Short: "Query the sample organization chart",
	}

	chart := func(cmd *cobra.Command) *orgchart.Chart {
		return orgchart.Sample(trace.FromContext(cmd.Context()))
	}

	orgCmd.AddCommand(
		&cobra.Command{
			Use:   "levels <name>",
			Short: "Count the levels between an employee and the CEO",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c := chart(cmd)
				levels, err := c.LevelsBelowCEO(args[0])
				if err != nil {
					return withSuggestions(err, c.Tree(), args[0], a.config.Browse.Suggestions)
				}
				printf(cmd, "%s\n", pterm.Success.Sprintf("%s is %d levels below the CEO", args[0], levels))
				return nil
			},
		},
		&cobra.Command{
			Use:   "chain <name>",
			Short: "Print the chain of command from the CEO down to an employee",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c := chart(cmd)
				chain, err := c.ChainOfCommand(args[0])
				if err != nil {
					return withSuggestions(err, c.Tree(), args[0], a.config.Browse.Suggestions)
				}
				printf(cmd, "%s\n", strings.Join(chain, pathSeparator))
				return nil
			},
		},
		&cobra.Command{
			Use:   "reports <name>",
			Short: "List the direct reports of an employee",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c := chart(cmd)
				reports, err := c.Reports(args[0])
				if err != nil {
					return withSuggestions(err, c.Tree(), args[0], a.config.Browse.Suggestions)
				}
				if len(reports) == 0 {
					printf(cmd, "%s\n", pterm.Info.Sprintf("%s has no direct reports", args[0]))
					return nil
				}
				data := pterm.TableData{{"Name", "Title", "Department", "Hired"}}
				for _, e := range reports {
					data = append(data, []string{e.Name, e.Title, e.Department, orgchart.FormatHireDate(e.HiredOn)})
				}
				out, err := renderTable(data)
				if err != nil {
					return err
				}
				printf(cmd, "%s\n", out)
				return nil
			},
		},
	)
	return orgCmd
}

func (a *app) fsCmd() *cobra.Command {
	fsCmd := &cobra.Command{
		Use:   "fs",
		Short: "Locate files in the sample tree or a scanned directory",
	}

	locateCmd := &cobra.Command{
		Use:   "locate <name>",
		Short: "Print the absolute path of a file or folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			progress, _ := cmd.Flags().GetBool("progress")
			limit, _ := cmd.Flags().GetInt("max")
			all, _ := cmd.Flags().GetBool("all")
			log := trace.FromContext(cmd.Context())

			tree := filesystem.Sample()
			if dir != "" {
				scanned, err := filesystem.Scan(afero.NewOsFs(), dir, filesystem.ScanOptions{
					Ignore:     filesystem.DefaultIgnore,
					MaxEntries: limit,
					Progress:   progress,
					Output:     cmd.ErrOrStderr(),
					Log:        log,
				})
				if errors.Is(err, filesystem.ErrScanLimit) {
					pterm.Warning.Printfln("stopped after %d entries, results are partial", limit)
				} else if err != nil {
					return err
				}
				tree = scanned
			}

			if all {
				paths := tree.LocateAll(args[0])
				if len(paths) == 0 {
					printf(cmd, "%s\n", pterm.Info.Sprintf("nothing contains %q", args[0]))
				}
				for _, p := range paths {
					printf(cmd, "%s\n", p)
				}
				return nil
			}

			path, err := tree.Locate(args[0])
			if err != nil {
				return withSuggestions(err, tree.Hierarchy(), args[0], a.config.Browse.Suggestions)
			}
			printf(cmd, "%s\n", path)
			return nil
		},
	}
	locateCmd.Flags().String("dir", "", "scan this directory instead of the sample tree")
	locateCmd.Flags().Bool("progress", false, "show a progress bar while scanning")
	locateCmd.Flags().Int("max", 100000, "stop scanning after this many entries")
	locateCmd.Flags().Bool("all", false, "list every entry whose name contains the text")

	fsCmd.AddCommand(locateCmd)
	return fsCmd
}

func (a *app) cdnCmd() *cobra.Command {
	cdnCmd := &cobra.Command{
		Use:   "cdn",
		Short: "Query the sample server network",
	}

	nearestCmd := &cobra.Command{
		Use:   "nearest",
		Short: "List the servers nearest to a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			latText, _ := cmd.Flags().GetString("lat")
			lonText, _ := cmd.Flags().GetString("lon")
			lat, lon, err := cdn.ParseCoordinates(latText, lonText)
			if err != nil {
				return err
			}
			k := a.config.Nearest.K
			if cmd.Flags().Changed("k") {
				k, _ = cmd.Flags().GetInt("k")
			}

			network := cdn.SampleNetwork(trace.FromContext(cmd.Context()))
			ranked, err := network.Nearest(lat, lon, k)
			if err != nil {
				return err
			}
			data := pterm.TableData{{"#", "Server", "Route", "Distance"}}
			for i, r := range ranked {
				data = append(data, []string{
					strconv.Itoa(i + 1),
					r.Node.Payload.String(),
					cdn.Route(r.Node),
					strconv.FormatFloat(r.Score, 'f', 2, 64),
				})
			}
			out, err := renderTable(data)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", out)
			return nil
		},
	}
	nearestCmd.Flags().String("lat", "", "latitude of the user")
	nearestCmd.Flags().String("lon", "", "longitude of the user")
	nearestCmd.Flags().IntP("k", "k", 0, "number of servers (default from settings)")
	_ = nearestCmd.MarkFlagRequired("lat")
	_ = nearestCmd.MarkFlagRequired("lon")

	lookupCmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Print a server and its route from the central server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			network := cdn.SampleNetwork(trace.FromContext(cmd.Context()))
			server, route, err := network.Lookup(args[0])
			if err != nil {
				return withSuggestions(err, network.Tree(), args[0], a.config.Browse.Suggestions)
			}
			printf(cmd, "%s\n%s\n", server, route)
			return nil
		},
	}

	cdnCmd.AddCommand(nearestCmd, lookupCmd)
	return cdnCmd
}

func (a *app) catalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the sample product catalog",
	}
	catalogCmd.AddCommand(&cobra.Command{
		Use:   "search <text>",
		Short: "List the categories whose name contains the text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := catalog.Sample().Search(args[0])
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				printf(cmd, "%s\n", pterm.Info.Sprintf("no category contains %q", args[0]))
				return nil
			}
			data := pterm.TableData{{"Category", "Path", "Subcategories"}}
			for _, m := range matches {
				d := catalog.Describe(m.Node)
				data = append(data, []string{m.Node.Key(), d.Path, strconv.Itoa(d.Subcategories)})
			}
			out, err := renderTable(data)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", out)
			return nil
		},
	})
	return catalogCmd
}

func (a *app) domCmd() *cobra.Command {
	domCmd := &cobra.Command{
		Use:   "dom",
		Short: "Query the elements of a web page",
	}

	findCmd := &cobra.Command{
		Use:   "find <tag>",
		Short: "List the elements with a tag and their paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			tree := dom.Sample()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return errors.Wrap(err, "open page")
				}
				defer f.Close()
				if tree, err = dom.Parse(f); err != nil {
					return err
				}
			}

			matches, err := dom.FindTags(tree, args[0])
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				printf(cmd, "%s\n", pterm.Info.Sprintf("no <%s> elements", args[0]))
				return nil
			}
			data := pterm.TableData{{"Element", "Path"}}
			for _, m := range matches {
				data = append(data, []string{m.Node.Payload.String(), m.Path})
			}
			out, err := renderTable(data)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", out)
			return nil
		},
	}
	findCmd.Flags().String("file", "", "HTML file to parse instead of the sample page")

	domCmd.AddCommand(findCmd)
	return domCmd
}

func (a *app) familyCmd() *cobra.Command {
	familyCmd := &cobra.Command{
		Use:   "family",
		Short: "Query the sample family tree",
	}

	registry := func(cmd *cobra.Command) *genealogy.Registry {
		return genealogy.Sample(
			genealogy.WithDedupe(a.config.Genealogy.DedupeAncestors),
			genealogy.WithLogger(trace.FromContext(cmd.Context())),
		)
	}

	ancestorsCmd := &cobra.Command{
		Use:   "ancestors <name>",
		Short: "List the ancestors of a given generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			generation, _ := cmd.Flags().GetInt("generation")
			names, err := registry(cmd).Ancestors(args[0], generation)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printf(cmd, "%s\n", pterm.Info.Sprintf("no ancestors of %s at generation %d", args[0], generation))
				return nil
			}
			printf(cmd, "%s\n", strings.Join(names, "\n"))
			return nil
		},
	}
	ancestorsCmd.Flags().IntP("generation", "g", 1, "1 for parents, 2 for grandparents and so on")

	siblingsCmd := &cobra.Command{
		Use:   "siblings <name>",
		Short: "List the people with exactly the same father and mother as someone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			siblings, err := registry(cmd).Siblings(args[0])
			if err != nil {
				return err
			}
			if len(siblings) == 0 {
				printf(cmd, "%s\n", pterm.Info.Sprintf("%s has no recorded siblings", args[0]))
				return nil
			}
			names := lo.Map(siblings, func(p *genealogy.Person, _ int) string { return p.Name() })
			printf(cmd, "%s\n", strings.Join(names, "\n"))
			return nil
		},
	}

	familyCmd.AddCommand(ancestorsCmd, siblingsCmd)
	return familyCmd
}

func (a *app) exprCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expr",
		Short: "Print the sample expression tree and its value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := expr.Sample()
			out, err := renderTree(hierarchy.Outline(tree, nil))
			if err != nil {
				return err
			}
			value, err := expr.Eval(tree.Root())
			if err != nil {
				return err
			}
			printf(cmd, "%s\n%s = %s\n", out, expr.Infix(tree.Root()), strconv.FormatFloat(value, 'g', -1, 64))
			return nil
		},
	}
}

func (a *app) browseCmd(logo string) *cobra.Command {
	return &cobra.Command{
		Use:       "browse [dataset]",
		Short:     "Browse a sample tree interactively",
		Long:      fmt.Sprintf("%s\n%s", logo, `Browse opens a tree with a query bar, the list of nodes and their details`),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: datasetNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "org"
			if len(args) > 0 {
				name = args[0]
			}
			return a.browse(cmd, name)
		},
	}
}

func (a *app) browse(cmd *cobra.Command, name string) error {
	ds, err := loadDataset(name, trace.FromContext(cmd.Context()))
	if err != nil {
		return err
	}
	InitializeColors()
	return runProgram(NewBrowseModel(ds, a.config))
}

func (a *app) diagnoseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Walk through the device troubleshooting guide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := diagnosis.NewSession(diagnosis.Sample())
			if err != nil {
				return err
			}
			InitializeColors()
			return runProgram(NewDiagnoseModel(session))
		},
	}
}

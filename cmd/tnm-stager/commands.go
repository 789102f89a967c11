package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/tnmstage/internal/config"
	"github.com/ehr/tnmstage/internal/domain/oncology"
	"github.com/ehr/tnmstage/internal/domain/staging"
	"github.com/ehr/tnmstage/internal/platform/fhir"
)

func newRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tnm-stager",
		Short:        "Lung cancer TNM classification and stage grouping",
		SilenceUsage: true,
	}

	svc := oncology.NewService(logger, cfg.StagingSystem)

	rootCmd.AddCommand(classifyCmd(cfg, svc))
	rootCmd.AddCommand(batchCmd(cfg, svc, logger))
	rootCmd.AddCommand(tableCmd(cfg))
	rootCmd.AddCommand(vocabCmd(cfg))
	return rootCmd
}

func addOutputFlag(cmd *cobra.Command, cfg *config.Config, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", cfg.OutputFormat, "output format (json|text)")
}

func checkOutput(output string) error {
	if output != "json" && output != "text" {
		return fmt.Errorf("invalid output format: %s", output)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func classifyCmd(cfg *config.Config, svc *oncology.Service) *cobra.Command {
	var (
		size        float64
		invasions   []string
		nodules     string
		nodes       []string
		multipleN2  bool
		meta        string
		location    string
		description string
		output      string
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one tumor and print T, N, M and the stage group",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			edit := oncology.TnmEdit{
				SizeCM:             &size,
				Invasions:          &invasions,
				Nodules:            &nodules,
				NodalInvolvement:   &nodes,
				MultipleN2Stations: &multipleN2,
				Metastasis:         &meta,
				TumorLocation:      &location,
				TumorDescription:   &description,
			}
			r, err := svc.Stage(edit)
			if err != nil {
				return err
			}
			return printRecord(cmd.OutOrStdout(), r, output)
		},
	}
	cmd.Flags().Float64Var(&size, "size", 0, "largest tumor dimension in cm (0 = not assessed)")
	cmd.Flags().StringArrayVar(&invasions, "invasion", nil, "invaded structure (repeatable)")
	cmd.Flags().StringVar(&nodules, "nodules", "", "separate tumor nodules (none|same_lobe|different_ipsilateral_lobe)")
	cmd.Flags().StringArrayVar(&nodes, "node", nil, "involved nodal level n1|n2|n3 (repeatable)")
	cmd.Flags().BoolVar(&multipleN2, "multiple-n2", false, "N2 involvement spans multiple stations")
	cmd.Flags().StringVar(&meta, "meta", "", "metastasis pattern (m0|m1a|m1b|m1c1|m1c2)")
	cmd.Flags().StringVar(&location, "location", "", "free-text tumor location")
	cmd.Flags().StringVar(&description, "description", "", "free-text tumor description")
	addOutputFlag(cmd, cfg, &output)
	return cmd
}

func printRecord(w io.Writer, r *staging.Record, output string) error {
	if output == "json" {
		return writeJSON(w, r)
	}
	res := r.Result()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "T\t%s\t%s\n", res.T, res.T.Label())
	fmt.Fprintf(tw, "N\t%s\t%s\n", res.N, res.N.Label())
	fmt.Fprintf(tw, "M\t%s\t%s\n", res.M, res.M.Label())
	fmt.Fprintf(tw, "Stage\t%s\t%s\n", res.Stage, res.Stage.Label())
	return tw.Flush()
}

func batchCmd(cfg *config.Config, svc *oncology.Service, logger zerolog.Logger) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "batch <file.yaml>",
		Short: "Stage every case in a YAML case file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open case file: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runBatch(cmd.OutOrStdout(), in, svc, logger, output)
		},
	}
	addOutputFlag(cmd, cfg, &output)
	return cmd
}

func runBatch(w io.Writer, in io.Reader, svc *oncology.Service, logger zerolog.Logger, output string) error {
	cases, err := oncology.ImportCases(in)
	if err != nil {
		if output == "json" {
			if werr := writeJSON(w, []interface{}{fhir.ErrorOutcome(err.Error())}); werr != nil {
				return werr
			}
		}
		return err
	}
	staged, failed := svc.StageCases(cases)
	logger.Info().
		Int("cases", len(cases)).
		Int("staged", len(staged)).
		Int("failed", len(failed)).
		Msg("batch staged")

	if output == "json" {
		resources := make([]interface{}, 0, len(staged)+len(failed))
		for _, d := range staged {
			resources = append(resources, d.ToFHIR())
		}
		for _, ce := range failed {
			resources = append(resources, fhir.InvalidOutcome(fmt.Sprintf("cases[%d]", ce.Index), ce.Err.Error()))
		}
		if err := writeJSON(w, resources); err != nil {
			return err
		}
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, d := range staged {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.TStage(), d.NStage(), d.MStage(), d.StageGroup().Label())
		}
		for _, ce := range failed {
			fmt.Fprintf(tw, "error\t%s\n", ce.Error())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d cases could not be staged", len(failed), len(cases))
	}
	return nil
}

func tableCmd(cfg *config.Config) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the stage grouping table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), output)
		},
	}
	addOutputFlag(cmd, cfg, &output)
	return cmd
}

func printTable(w io.Writer, output string) error {
	m0 := staging.StageTable()
	m1 := staging.MetastaticStages()
	if output == "json" {
		return writeJSON(w, map[string]interface{}{
			"edition": staging.Edition,
			"m0":      m0,
			"m1":      m1,
		})
	}

	fmt.Fprintf(w, "%s\n\n", staging.Edition)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "M0")
	for _, t := range staging.TCategories {
		if t == staging.TX {
			continue
		}
		fmt.Fprintf(tw, "\t%s", t)
	}
	fmt.Fprintln(tw)
	for _, n := range staging.NCategories {
		fmt.Fprint(tw, n)
		for _, t := range staging.TCategories {
			if t == staging.TX {
				continue
			}
			stage, ok := m0[n][t]
			if !ok {
				stage = staging.StageUnknown
			}
			fmt.Fprintf(tw, "\t%s", stage)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, m := range staging.MCategories {
		if stage, ok := m1[m]; ok {
			fmt.Fprintf(tw, "%s\tany T, any N\t%s\n", m, stage)
		}
	}
	return tw.Flush()
}

type vocabEntry struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type vocabSection struct {
	name    string
	entries []vocabEntry
}

func vocabularies() []vocabSection {
	var inv, nod, lvl, met []vocabEntry
	for _, v := range staging.InvasionSites {
		inv = append(inv, vocabEntry{string(v), v.Label()})
	}
	for _, v := range staging.NoduleExtents {
		nod = append(nod, vocabEntry{string(v), v.Label()})
	}
	for _, v := range staging.NodalLevels {
		lvl = append(lvl, vocabEntry{string(v), v.Label()})
	}
	for _, v := range staging.MetastasisPatterns {
		met = append(met, vocabEntry{string(v), v.Label()})
	}
	return []vocabSection{
		{"invasions", inv},
		{"nodules", nod},
		{"n_involvement", lvl},
		{"meta_type", met},
	}
}

func vocabCmd(cfg *config.Config) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "List the input vocabularies with their labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			return printVocab(cmd.OutOrStdout(), output)
		},
	}
	addOutputFlag(cmd, cfg, &output)
	return cmd
}

func printVocab(w io.Writer, output string) error {
	sections := vocabularies()
	if output == "json" {
		out := make(map[string][]vocabEntry, len(sections))
		for _, s := range sections {
			out[s.name] = s.entries
		}
		return writeJSON(w, out)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s:\n", s.name)
		for _, e := range s.entries {
			fmt.Fprintf(tw, "  %s\t%s\n", e.Code, e.Label)
		}
	}
	return tw.Flush()
}

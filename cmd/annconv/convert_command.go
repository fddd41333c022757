package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"annconv/internal/config"
	"annconv/internal/conll"
	"annconv/internal/convert"
	"annconv/internal/logging"
	"annconv/internal/runlog"
	"annconv/internal/standoff"
	"annconv/internal/textio"
	"annconv/internal/token"
)

type convertOptions struct {
	annSuffix   string
	outSuffix   string
	singleClass string
	strategy    token.Strategy
	attributes  bool
}

type fileOutcome struct {
	input    string
	output   string
	outcome  runlog.Outcome
	warnings int64
	detail   string
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var (
		annSuffixFlag   string
		outSuffixFlag   string
		singleClassFlag string
		tokenizerFlag   string
		attributesFlag  bool
		keepGoing       bool
		verbose         bool
	)

	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Convert annotated text files to tagging format",
		Long: `Convert reads each text file, tokenizes it, projects the standoff
annotations found next to it onto the tokens as BIO tags, and writes
tab-separated tagging rows. A single "-" argument reads stdin and writes
stdout without annotation lookup.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := convertOptions{
				annSuffix:   cfg.Annotations.Suffix,
				outSuffix:   cfg.Output.Suffix,
				singleClass: cfg.Annotations.SingleClass,
				strategy:    cfg.Strategy(),
				attributes:  cfg.Annotations.Attributes,
			}
			if cmd.Flags().Changed("ann-suffix") {
				opts.annSuffix = normalizeSuffix(annSuffixFlag)
			}
			if cmd.Flags().Changed("out-suffix") {
				opts.outSuffix = normalizeSuffix(outSuffixFlag)
			}
			if cmd.Flags().Changed("single-class") {
				opts.singleClass = strings.TrimSpace(singleClassFlag)
			}
			if cmd.Flags().Changed("attributes") {
				opts.attributes = attributesFlag
			}
			if cmd.Flags().Changed("tokenizer") {
				strategy, err := token.ParseStrategy(tokenizerFlag)
				if err != nil {
					return err
				}
				opts.strategy = strategy
			}
			if opts.annSuffix != "" && opts.annSuffix == opts.outSuffix {
				return fmt.Errorf("annotation suffix %q equals output suffix; refusing to overwrite inputs", opts.annSuffix)
			}

			tokenizer, err := token.New(opts.strategy)
			if err != nil {
				return err
			}

			store := openRunLog(cfg, logger)
			defer store.Close()
			var runID string
			if store != nil {
				run, err := store.BeginRun(cmd.Context(), "convert "+strings.Join(args, " "))
				if err != nil {
					return err
				}
				runID = run.ID
			}

			var outcomes []fileOutcome
			failed := 0
			for _, arg := range args {
				outcome, err := convertFile(cmd, ctx, tokenizer, opts, arg, logger)
				if err != nil {
					recoverable := convert.IsFormatError(err) || errors.Is(err, fs.ErrNotExist)
					if !keepGoing || !recoverable {
						return err
					}
					logger.Warn("file failed; continuing",
						logging.String("input", arg), logging.Error(err))
					outcome.outcome = runlog.OutcomeFailed
					outcome.detail = err.Error()
					failed++
				}
				outcomes = append(outcomes, outcome)
				if store != nil {
					record := runlog.FileRecord{
						RunID:    runID,
						Input:    outcome.input,
						Output:   outcome.output,
						Outcome:  outcome.outcome,
						Warnings: outcome.warnings,
						Detail:   outcome.detail,
					}
					if err := store.RecordFile(cmd.Context(), record); err != nil {
						return err
					}
				}
			}
			if store != nil {
				if err := store.FinishRun(cmd.Context(), runID); err != nil {
					return err
				}
			}

			if verbose {
				fmt.Fprintln(cmd.ErrOrStderr(), renderConvertSummary(outcomes))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&annSuffixFlag, "ann-suffix", strings.TrimPrefix(config.Default().Annotations.Suffix, "."), "Suffix of the standoff file next to each input (empty disables lookup)")
	cmd.Flags().StringVar(&outSuffixFlag, "out-suffix", strings.TrimPrefix(config.Default().Output.Suffix, "."), "Suffix of the output file (empty writes to stdout)")
	cmd.Flags().StringVar(&singleClassFlag, "single-class", "", "Collapse every projected label to this class")
	cmd.Flags().StringVar(&tokenizerFlag, "tokenizer", "", "Tokenization strategy: regex, unicode, or none")
	cmd.Flags().BoolVar(&attributesFlag, "attributes", false, "Fold attribute annotations into span types")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Continue the batch past files with malformed input")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print a per-file summary table")

	return cmd
}

// convertFile runs the forward conversion for one input. The special input
// "-" reads stdin and writes stdout; annotations are unavailable there, so
// every token stays O.
func convertFile(cmd *cobra.Command, ctx *commandContext, tokenizer token.Tokenizer, opts convertOptions, input string, base *slog.Logger) (fileOutcome, error) {
	outcome := fileOutcome{input: input, outcome: runlog.OutcomeConverted}

	logger, counter := logging.NewCounter(base)
	logger = logger.With(logging.String("input", input))
	defer func() { outcome.warnings = counter.Warnings() }()

	var text string
	if input == "-" {
		read, err := textio.ReadAll(cmd.InOrStdin())
		if err != nil {
			return outcome, fmt.Errorf("read stdin: %w", err)
		}
		text = read
	} else {
		info, err := os.Stat(input)
		if err != nil {
			return outcome, fmt.Errorf("stat %s: %w", input, err)
		}
		if info.IsDir() {
			logger.Warn("skipping directory")
			outcome.outcome = runlog.OutcomeSkipped
			return outcome, nil
		}
		file, err := os.Open(input)
		if err != nil {
			return outcome, fmt.Errorf("open %s: %w", input, err)
		}
		read, err := textio.ReadAll(file)
		file.Close()
		if err != nil {
			return outcome, fmt.Errorf("read %s: %w", input, err)
		}
		text = read
	}

	sentences := convert.Tokenize(tokenizer, text)

	if input != "-" && opts.annSuffix != "" {
		spans, err := readAnnotations(annotationPath(input, opts.annSuffix), opts.attributes, logger)
		if err != nil {
			return outcome, err
		}
		convert.ProjectLabels(sentences, spans, logger)
		convert.CollapseSingleClass(sentences, opts.singleClass)
	}

	if input == "-" || opts.outSuffix == "" {
		if err := conll.WriteSentences(cmd.OutOrStdout(), sentences); err != nil {
			return outcome, fmt.Errorf("write output: %w", err)
		}
		return outcome, nil
	}

	outcome.output = annotationPath(input, opts.outSuffix)
	out, err := os.Create(outcome.output)
	if err != nil {
		return outcome, fmt.Errorf("create %s: %w", outcome.output, err)
	}
	if err := conll.WriteSentences(out, sentences); err != nil {
		out.Close()
		return outcome, fmt.Errorf("write %s: %w", outcome.output, err)
	}
	if err := out.Close(); err != nil {
		return outcome, fmt.Errorf("close %s: %w", outcome.output, err)
	}
	return outcome, nil
}

// annotationPath swaps the input's extension for the given suffix.
func annotationPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

func readAnnotations(path string, attributes bool, logger *slog.Logger) ([]standoff.Textbound, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotations: %w", err)
	}
	defer file.Close()

	textbounds, err := standoff.Parse(textio.NewReader(file), standoff.ParseOptions{AppendAttributes: attributes}, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return standoff.ResolveOverlaps(textbounds, logger), nil
}

func renderConvertSummary(outcomes []fileOutcome) string {
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		output := outcome.output
		if output == "" && outcome.outcome == runlog.OutcomeConverted {
			output = "(stdout)"
		}
		rows = append(rows, []string{
			outcome.input,
			output,
			string(outcome.outcome),
			fmt.Sprintf("%d", outcome.warnings),
		})
	}
	return renderTable([]string{"Input", "Output", "Outcome", "Warnings"}, rows, 3)
}

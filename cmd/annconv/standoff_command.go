package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"annconv/internal/conll"
	"annconv/internal/convert"
	"annconv/internal/logging"
	"annconv/internal/runlog"
	"annconv/internal/textio"
)

func newStandoffCommand(ctx *commandContext) *cobra.Command {
	var (
		segmentEntities int
		keepGoing       bool
	)

	cmd := &cobra.Command{
		Use:   "standoff CONLLDIR TOKDIR OUTDIR",
		Short: "Map tagged document containers back to standoff annotations",
		Long: `Standoff walks every tagged container file in CONLLDIR together with its
tokenized text in TOKDIR (same base name, .tok suffix) and reconstructs
character offsets, writing segmented .ann/.txt pairs into OUTDIR.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			conllDir, tokDir, outDir := args[0], args[1], args[2]
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			maxEntities := cfg.Segment.MaxEntities
			if cmd.Flags().Changed("segment-entities") {
				maxEntities = segmentEntities
			}
			if maxEntities <= 0 {
				return fmt.Errorf("segment entity budget must be positive, got %d", maxEntities)
			}

			suffix := cfg.Output.Suffix
			if suffix == "" {
				suffix = ".conll"
			}
			inputs, err := listBySuffix(conllDir, suffix)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no %s files found in %s", suffix, conllDir)
			}

			store := openRunLog(cfg, logger)
			defer store.Close()
			var runID string
			if store != nil {
				run, err := store.BeginRun(cmd.Context(), "standoff "+strings.Join(args, " "))
				if err != nil {
					return err
				}
				runID = run.ID
			}

			failed := 0
			for _, input := range inputs {
				outcome, err := mapContainerFile(input, tokDir, outDir, suffix, maxEntities, logger)
				if err != nil {
					if !keepGoing || !convert.IsFormatError(err) {
						return err
					}
					logger.Warn("file failed; continuing",
						logging.String("input", input), logging.Error(err))
					outcome.outcome = runlog.OutcomeFailed
					outcome.detail = err.Error()
					failed++
				}
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

			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed", failed, len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&segmentEntities, "segment-entities", convert.DefaultSegmentEntities, "Entity-id budget per output segment")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Continue the batch past files with malformed input")

	return cmd
}

// mapContainerFile converts every document in one container file. Each
// document gets its own segment series named after the file's base name,
// with a -doc-NNN infix when the file holds more than one document.
func mapContainerFile(input, tokDir, outDir, suffix string, maxEntities int, base *slog.Logger) (fileOutcome, error) {
	outcome := fileOutcome{input: input, output: outDir, outcome: runlog.OutcomeConverted}

	logger, counter := logging.NewCounter(base)
	logger = logger.With(logging.String("input", input))
	defer func() { outcome.warnings = counter.Warnings() }()

	file, err := os.Open(input)
	if err != nil {
		return outcome, fmt.Errorf("open %s: %w", input, err)
	}
	docs, err := conll.ReadDocuments(textio.NewReader(file))
	file.Close()
	if err != nil {
		return outcome, fmt.Errorf("%s: %w", input, err)
	}

	name := strings.TrimSuffix(filepath.Base(input), suffix)
	tokPath := filepath.Join(tokDir, name+".tok")
	tokFile, err := os.Open(tokPath)
	if err != nil {
		return outcome, fmt.Errorf("open tokenized text: %w", err)
	}
	tokenized, err := convert.ParseTokenizedText(textio.NewReader(tokFile))
	tokFile.Close()
	if err != nil {
		return outcome, err
	}

	consumed := 0
	totalSegments, totalEntities := 0, 0
	for i, doc := range docs {
		remaining := tokenized[consumed:]
		if len(doc.Sentences) > len(remaining) {
			return outcome, fmt.Errorf("%w: %s: document %q needs %d sentences but only %d remain in %s",
				conll.ErrFormat, input, doc.Name, len(doc.Sentences), len(remaining), tokPath)
		}
		docName := name
		if len(docs) > 1 {
			docName = fmt.Sprintf("%s-doc-%03d", name, i)
		}
		result, err := convert.MapDocument(doc, remaining[:len(doc.Sentences)], segmentOpener(outDir, docName), convert.ReverseOptions{SegmentEntities: maxEntities})
		if err != nil {
			return outcome, fmt.Errorf("%s: %w", input, err)
		}
		consumed += len(doc.Sentences)
		totalSegments += result.Segments
		totalEntities += result.Entities
	}
	if consumed != len(tokenized) {
		return outcome, fmt.Errorf("%w: %s has %d sentences but the documents in %s cover only %d",
			conll.ErrFormat, tokPath, len(tokenized), input, consumed)
	}

	outcome.detail = fmt.Sprintf("%d entities in %d segment(s)", totalEntities, totalSegments)
	logger.Info("mapped container file",
		logging.Int("documents", len(docs)),
		logging.Int("segments", totalSegments),
		logging.Int("entities", totalEntities))
	return outcome, nil
}

// segmentOpener creates the .ann/.txt pair for one segment. A failed .txt
// open removes the already created .ann so no half pair is left behind.
func segmentOpener(outDir, docName string) convert.OpenSegment {
	return func(segment int) (io.WriteCloser, io.WriteCloser, error) {
		stem := filepath.Join(outDir, fmt.Sprintf("%s_%02d", docName, segment))
		ann, err := os.Create(stem + ".ann")
		if err != nil {
			return nil, nil, err
		}
		txt, err := os.Create(stem + ".txt")
		if err != nil {
			ann.Close()
			os.Remove(stem + ".ann")
			return nil, nil, err
		}
		return ann, txt, nil
	}
}

func listBySuffix(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

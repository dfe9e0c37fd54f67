package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/chapterize"
	"github.com/tsawler/chapterize/internal/config"
	"github.com/tsawler/chapterize/model"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Extract the narrative chapters of one or more EPUB files",
	Long: `Parse reads each EPUB, drops front matter and prints the chapters.

Files are parsed concurrently. A file that cannot be parsed is reported on
stderr and does not stop the others; the command then exits non-zero.`,
	Example: `  chapterize parse book.epub
  chapterize parse -o text --apply-lexicons *.epub`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("apply-lexicons", false, "wrap lexicon words in phoneme markup")
	parseCmd.Flags().IntP("concurrency", "j", 0, "files parsed at once (default: number of CPUs)")
	parseCmd.Flags().StringP("output", "o", "", "output format: json or text")
}

// fileReport is the JSON shape of one parsed file.
type fileReport struct {
	Path     string          `json:"path"`
	Document *model.Document `json:"document,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	batch := chapterize.Batch{
		Logger:        log,
		ApplyLexicons: cfg.Parse.ApplyLexicons,
		Concurrency:   cfg.Parse.Concurrency,
	}

	results, err := batch.ParseMany(cmd.Context(), args...)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Error("parse failed", zap.String("source", r.Path), zap.Error(r.Err))
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
		}
	}

	out := cmd.OutOrStdout()
	if strings.EqualFold(cfg.Parse.Output, config.OutputText) {
		err = writeText(out, results)
	} else {
		err = writeJSON(out, results)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// writeJSON prints one report per file as an indented JSON array.
func writeJSON(w io.Writer, results []chapterize.Result) error {
	reports := make([]fileReport, 0, len(results))
	for _, r := range results {
		rep := fileReport{Path: r.Path, Document: r.Document}
		if r.Err != nil {
			rep.Error = r.Err.Error()
		}
		reports = append(reports, rep)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(reports)
}

// writeText prints a human readable summary of each parsed file.
func writeText(w io.Writer, results []chapterize.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	printed := 0
	for _, r := range results {
		if r.Document == nil {
			continue
		}
		if printed > 0 {
			fmt.Fprintln(tw)
		}
		printed++

		doc := r.Document
		fmt.Fprintf(tw, "%s\n", r.Path)
		fmt.Fprintf(tw, "  %s, by %s [%s]\n", doc.Title, doc.Author, doc.Language)
		fmt.Fprintf(tw, "  %d chapters, %d characters, %s narration\n",
			doc.ChapterCount(), doc.TotalCharacters, formatDuration(doc.TotalEstimatedDuration))
		if doc.HasAnnotations {
			fmt.Fprintf(tw, "  pronunciation: %d lexicons\n", len(doc.Lexicons))
		}

		fmt.Fprintln(tw, "  #\tTITLE\tCHARS\tDURATION")
		for _, ch := range doc.Chapters {
			fmt.Fprintf(tw, "  %d\t%s\t%d\t%s\n",
				ch.SequenceNumber, ch.Title, ch.CharacterCount, formatDuration(ch.EstimatedDurationSeconds))
		}
	}

	return tw.Flush()
}

// formatDuration renders whole seconds as h:mm:ss or m:ss.
func formatDuration(seconds int) string {
	h, m, s := seconds/3600, seconds/60%60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

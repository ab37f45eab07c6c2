package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/libretranslator/internal"
	"codeberg.org/snonux/libretranslator/internal/archive"
	"codeberg.org/snonux/libretranslator/internal/batch"
	"codeberg.org/snonux/libretranslator/internal/cli"
	"codeberg.org/snonux/libretranslator/internal/language"
	"codeberg.org/snonux/libretranslator/internal/logging"
	"codeberg.org/snonux/libretranslator/internal/translation"
)

// Summary counts the outcome of a TranslateLines run
type Summary struct {
	Lines      int
	Translated int
	Preset     int
	Errors     int
}

// Processor translates text outside of an interactive session
type Processor struct {
	translator translation.Translator
	cache      *translation.Cache
	pair       language.Pair
	errOut     io.Writer
}

// NewProcessor creates a processor for the given pair. Repeated texts are
// answered from a cache.
func NewProcessor(t translation.Translator, pair language.Pair) *Processor {
	cache := translation.NewCache()
	return &Processor{
		translator: translation.NewCachingTranslator(t, cache),
		cache:      cache,
		pair:       pair,
		errOut:     os.Stderr,
	}
}

// SetErrorOutput redirects per-line error reports
func (p *Processor) SetErrorOutput(w io.Writer) {
	p.errOut = w
}

// TranslateText translates one text
func (p *Processor) TranslateText(ctx context.Context, text string) (string, error) {
	if internal.IsBlank(text) {
		return "", translation.ErrEmptyInput
	}

	req := translation.Request{Text: text, Source: p.pair.Source, Target: p.pair.Target}
	logging.TranslationRequest(p.translator.Name(), string(req.Source), string(req.Target), internal.CharCount(text))

	out, err := p.translator.Translate(ctx, req)
	if err != nil {
		logging.Errorf("translation of %q failed: %v", internal.Truncate(text, 40), err)
		return "", err
	}
	return out, nil
}

// TranslateLines translates every non-blank line of r, one request per line,
// and writes one result line to w
func (p *Processor) TranslateLines(ctx context.Context, r io.Reader, w io.Writer) (Summary, error) {
	entries, err := batch.ReadEntries(r)
	if err != nil {
		return Summary{}, err
	}
	return p.TranslateEntries(ctx, entries, w)
}

// TranslateEntries writes one result line per entry to w. Preset entries
// are written as given; failed lines are reported on the error output and
// counted; blank lines are copied through.
func (p *Processor) TranslateEntries(ctx context.Context, entries []batch.Entry, w io.Writer) (Summary, error) {
	var sum Summary
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if e.Blank() {
			fmt.Fprintln(w)
			continue
		}
		sum.Lines++

		if e.Preset() {
			sum.Preset++
			fmt.Fprintln(w, e.Translation)
			continue
		}

		out, err := p.TranslateText(ctx, e.Text)
		if err != nil {
			sum.Errors++
			fmt.Fprintf(p.errOut, "Error translating line %d: %v\n", e.Line, err)
			fmt.Fprintln(w)
			continue
		}
		sum.Translated++
		fmt.Fprintln(w, out)
	}
	return sum, nil
}

// CacheSize returns the number of cached translations
func (p *Processor) CacheSize() int {
	return p.cache.Len()
}

// RunTranslate implements the translate command: args are joined and
// translated as one text; without args the lines of inputFile (or stdin)
// are translated. With outputDir set the result is also saved there.
func RunTranslate(ctx context.Context, flags *cli.Flags, args []string, stdin io.Reader, stdout io.Writer) error {
	t, err := translation.NewTranslator(ctx, cli.TranslatorConfig())
	if err != nil {
		return err
	}
	pair, err := cli.GetPair()
	if err != nil {
		return err
	}
	p := NewProcessor(t, pair)

	if len(args) > 0 {
		out, err := p.TranslateText(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, out)
		return saveIfRequested(flags, out)
	}

	var entries []batch.Entry
	if flags.InputFile != "" {
		entries, err = batch.ReadFile(flags.InputFile)
	} else {
		entries, err = batch.ReadEntries(stdin)
	}
	if err != nil {
		return err
	}

	var buf strings.Builder
	sum, err := p.TranslateEntries(ctx, entries, io.MultiWriter(stdout, &buf))
	if err != nil {
		return err
	}
	if sum.Errors > 0 {
		return fmt.Errorf("%d of %d lines failed to translate", sum.Errors, sum.Lines)
	}
	return saveIfRequested(flags, strings.TrimRight(buf.String(), "\n"))
}

func saveIfRequested(flags *cli.Flags, text string) error {
	dir := flags.OutputDir
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if flags.Archive {
		archived, err := archive.ArchiveFile(filepath.Join(dir, translation.OutputFileName), time.Now())
		if err != nil {
			return err
		}
		if archived != "" {
			logging.Infof("previous translation archived to %s", archived)
		}
	}
	return translation.SaveTranslation(dir, text)
}

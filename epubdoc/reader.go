package epubdoc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsawler/chapterize/htmldoc"
	"github.com/tsawler/chapterize/model"
	"github.com/tsawler/chapterize/narrative"
	"github.com/tsawler/chapterize/phonetic"
)

// Reader-related errors.
var (
	ErrEmptyDocument  = errors.New("epub: no narrative content found")
	ErrMissingContent = errors.New("epub: referenced content file not found")
)

// parser holds the state of a single Parse call.
type parser struct {
	archive  *archive
	pkg      *Package
	nav      NavigationMap
	lexicons []model.Lexicon
	opts     parseOptions
	log      *zap.Logger
}

// Parse reads an EPUB from memory and returns its narrative chapters.
// displayName identifies the input in log output only.
func Parse(data []byte, displayName string, opts ...Option) (*model.Document, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{
		opts: o,
		log: o.logger.With(
			zap.String("source", displayName),
			zap.String("parse_id", uuid.NewString()),
		),
	}
	return p.run(data)
}

// ParseFile reads and parses the EPUB at filePath.
func ParseFile(filePath string, opts ...Option) (*model.Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	return Parse(data, filePath, opts...)
}

// ParseReader reads the whole of r and parses it.
func ParseReader(r io.Reader, displayName string, opts ...Option) (*model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", displayName, err)
	}
	return Parse(data, displayName, opts...)
}

func (p *parser) run(data []byte) (*model.Document, error) {
	a, err := openArchive(data)
	if err != nil {
		return nil, err
	}
	p.archive = a

	// A missing or wrong mimetype entry is not fatal.
	if mt := a.mimetype(); mt != epubMimetype {
		p.log.Warn("unexpected container mimetype", zap.String("mimetype", mt))
	}

	// Check for DRM - REJECT if found
	if err := checkForDRM(a); err != nil {
		return nil, err
	}

	opfPath, err := parseContainer(a)
	if err != nil {
		return nil, err
	}

	pkg, err := parseOPF(a, opfPath)
	if err != nil {
		return nil, err
	}
	p.pkg = pkg
	p.log.Debug("parsed package document",
		zap.String("opf", opfPath),
		zap.String("version", pkg.Version),
		zap.Int("manifest_items", len(pkg.Manifest)),
		zap.Int("spine_items", len(pkg.Spine)),
	)

	p.nav = p.loadNavigation()
	p.lexicons = p.loadLexicons()

	chapters, skipped := p.loadChapters()
	if len(chapters) == 0 {
		p.log.Warn("no narrative content survived classification", zap.Int("skipped", skipped))
		return nil, ErrEmptyDocument
	}

	doc := model.NewDocument(pkg.Metadata, chapters, p.lexicons)
	p.log.Info("parsed document",
		zap.String("title", doc.Title),
		zap.Int("chapters", len(doc.Chapters)),
		zap.Int("skipped", skipped),
		zap.Int("characters", doc.TotalCharacters),
		zap.Int("duration_seconds", doc.TotalEstimatedDuration),
	)
	return doc, nil
}

// loadNavigation parses the table of contents. A missing or broken one
// yields an empty map.
func (p *parser) loadNavigation() NavigationMap {
	var (
		nav  NavigationMap
		err  error
		path string
	)

	switch {
	case p.pkg.NCXPath != "":
		path = p.pkg.NCXPath
		nav, err = parseNCX(p.archive, path)
	case p.pkg.NavDocPath != "":
		path = p.pkg.NavDocPath
		nav, err = parseNavDocument(p.archive, path)
	default:
		p.log.Debug("no table of contents declared")
		return NavigationMap{}
	}

	if err != nil {
		p.log.Warn("skipping table of contents", zap.String("path", path), zap.Error(err))
		return NavigationMap{}
	}

	p.log.Debug("parsed table of contents", zap.String("path", path), zap.Int("entries", len(nav)))
	return nav
}

// loadLexicons parses every declared lexicon, skipping broken ones.
func (p *parser) loadLexicons() []model.Lexicon {
	var lexicons []model.Lexicon

	for _, item := range p.pkg.LexiconItems {
		lex, err := parseLexicon(p.archive, item.ID, item.Href)
		if err != nil {
			p.log.Warn("skipping pronunciation lexicon", zap.String("path", item.Href), zap.Error(err))
			continue
		}
		lexicons = append(lexicons, *lex)
	}

	return lexicons
}

// loadChapters extracts, titles and classifies every spine document.
func (p *parser) loadChapters() ([]model.Chapter, int) {
	chapters := make([]model.Chapter, 0, len(p.pkg.Spine))
	skipped := 0

	for i, spineItem := range p.pkg.Spine {
		item, ok := p.pkg.Manifest[spineItem.IDRef]
		if !ok {
			p.log.Debug("spine item not in manifest", zap.Int("index", i), zap.String("idref", spineItem.IDRef))
			skipped++
			continue
		}
		if !isMarkup(item.MediaType) {
			p.log.Debug("spine item is not a content document",
				zap.String("path", item.Href),
				zap.String("media_type", item.MediaType),
			)
			skipped++
			continue
		}

		ch, ok := p.buildChapter(item, len(chapters)+1)
		if !ok {
			skipped++
			continue
		}
		chapters = append(chapters, ch)
	}

	return chapters, skipped
}

// buildChapter turns one content document into a chapter numbered seq.
// It reports false when the document is unreadable, blank or not narrative.
func (p *parser) buildChapter(item ManifestItem, seq int) (model.Chapter, bool) {
	log := p.log.With(zap.String("path", item.Href))

	content, err := p.archive.readFile(item.Href)
	if err != nil {
		log.Warn("skipping unreadable content document", zap.Error(err))
		return model.Chapter{}, false
	}

	root, err := htmldoc.ParseContent(content)
	if err != nil {
		log.Warn("skipping malformed content document", zap.Error(err))
		return model.Chapter{}, false
	}

	ex := htmldoc.Extract(htmldoc.Body(root))
	if ex.IsEmpty() {
		log.Debug("skipping blank content document")
		return model.Chapter{}, false
	}

	title := htmldoc.InferTitle(root, p.nav.Label(item.Href), seq, ex.Plain)
	if verdict := narrative.Classify(title.Text, ex.Plain); verdict.Exclude {
		log.Debug("skipping non-narrative content",
			zap.String("title", title.Text),
			zap.Stringer("reason", verdict.Reason),
		)
		return model.Chapter{}, false
	}

	annotated := ex.Annotated
	if p.opts.applyLexicons && len(p.lexicons) > 0 {
		annotated = phonetic.ApplyLexicons(annotated, p.lexicons)
	}

	ch := model.NewChapter(seq, title.Text, ex.Plain, annotated, ex.Annotations)
	ch.SourcePath = item.Href
	log.Debug("added chapter",
		zap.Int("sequence", seq),
		zap.String("title", ch.Title),
		zap.String("title_source", title.Source),
		zap.Int("characters", ch.CharacterCount),
	)
	return ch, true
}

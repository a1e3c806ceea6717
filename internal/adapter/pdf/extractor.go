package pdf

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/m-zajac/gitinsight/internal/app"
	"github.com/sirupsen/logrus"
)

// MIMEType is the only accepted document type.
const MIMEType = "application/pdf"

// DefaultMaxSize is the default document size limit, 10MB.
const DefaultMaxSize = 10 * 1024 * 1024

// Plaintext github urls. Closing brackets and quotes end the match.
var textLinkRe = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[^\s)"'\]{}<>]+`)

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// Extractor finds github links in pdf documents.
// This struct is an adapter for app.LinkExtractor.
type Extractor struct {
	maxSize int64
	l       logrus.FieldLogger
}

var _ app.LinkExtractor = &Extractor{}

// NewExtractor creates new Extractor. Documents bigger than maxSize are rejected.
func NewExtractor(maxSize int64, l logrus.FieldLogger) *Extractor {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &Extractor{
		maxSize: maxSize,
		l:       l,
	}
}

// Extract returns unique github links found in document text and link annotations, in order of first appearance.
// Invalid documents are rejected with app.InvalidRequestError before parsing.
// Malformed documents are reported with app.InvalidRequestError too.
func (e *Extractor) Extract(ctx context.Context, doc app.Document, progress app.ProgressFunc) (links []string, err error) {
	if err := e.validate(doc); err != nil {
		return nil, err
	}

	// pdf package panics on malformed objects.
	defer func() {
		if r := recover(); r != nil {
			e.l.WithField("document", doc.Name).Warnf("parsing pdf panicked: %v", r)
			links, err = nil, app.InvalidRequestError(fmt.Sprintf("unreadable pdf: %v", r))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return nil, app.InvalidRequestError(fmt.Sprintf("unreadable pdf: %v", err))
	}

	found := newLinkSet()
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		text, err := pageText(p)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		for _, m := range textLinkRe.FindAllString(text, -1) {
			found.add(normalize(m))
		}
		for _, uri := range annotationURIs(p) {
			if strings.Contains(strings.ToLower(uri), "github.com") {
				found.add(uri)
			}
		}

		if progress != nil {
			progress(i, total)
		}
	}
	e.l.WithField("pages", total).Debugf("found %d links", len(found.list))

	return found.list, nil
}

func (e *Extractor) validate(doc app.Document) error {
	if len(doc.Data) == 0 {
		return app.InvalidRequestError("document is empty")
	}
	if int64(len(doc.Data)) > e.maxSize {
		return app.InvalidRequestError(fmt.Sprintf("document is too big, max size is %dMB", e.maxSize/1024/1024))
	}
	if doc.ContentType != "" && !mimetype.EqualsAny(doc.ContentType, MIMEType) {
		return app.InvalidRequestError(fmt.Sprintf("invalid content type %s, only pdf files are accepted", doc.ContentType))
	}
	if mt := mimetype.Detect(doc.Data); !mt.Is(MIMEType) {
		return app.InvalidRequestError(fmt.Sprintf("invalid document type %s, only pdf files are accepted", mt.String()))
	}

	return nil
}

func pageText(p pdf.Page) (string, error) {
	fonts := make(map[string]*pdf.Font)
	for _, name := range p.Fonts() {
		f := p.Font(name)
		fonts[name] = &f
	}

	return p.GetPlainText(fonts)
}

func annotationURIs(p pdf.Page) []string {
	annots := p.V.Key("Annots")

	var uris []string
	for i := 0; i < annots.Len(); i++ {
		a := annots.Index(i)
		if a.Key("Subtype").Name() != "Link" {
			continue
		}
		if uri := strings.TrimSpace(a.Key("A").Key("URI").Text()); uri != "" {
			uris = append(uris, uri)
		}
	}

	return uris
}

// normalize trims trailing punctuation and adds missing scheme.
func normalize(link string) string {
	link = strings.TrimRight(link, ".,;:!")
	if !schemeRe.MatchString(link) {
		link = "https://" + link
	}
	return link
}

type linkSet struct {
	seen map[string]bool
	list []string
}

func newLinkSet() *linkSet {
	return &linkSet{
		seen: make(map[string]bool),
		list: []string{},
	}
}

func (s *linkSet) add(link string) {
	if s.seen[link] {
		return
	}
	s.seen[link] = true
	s.list = append(s.list, link)
}

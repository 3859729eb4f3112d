// Package slidesmith provides a fluent API for turning a structured
// outline into a PowerPoint deck.
//
// Basic usage:
//
//	result, err := slidesmith.FromTemplate("theme.pptx").
//	    Title("Q3 Engineering Review").
//	    Slide("Where we are", "Shipped the new ingest path", "Latency down 40%").
//	    Slide("Where we're going", "Multi-region rollout").
//	    Build()
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile(result.Filename, result.Data, 0644)
//
// A deck is built by cloning the content slide of a pre-authored
// template and layering generated text on top, so every slide keeps the
// template's backgrounds and embedded resources. With Fallback()
// enabled, a missing template degrades to a built-in dark theme instead
// of an error.
//
// For lower-level control over templates and slides, the deck package
// is also available.
package slidesmith

import (
	"errors"
	"fmt"
	"os"

	"github.com/slidesmith/slidesmith/deck"
)

// Deck accumulates a presentation under construction. Each
// configuration method returns a new Deck instance, making it safe to
// branch a partially configured builder.
type Deck struct {
	// Source
	templatePath string
	templateData []byte

	// Configuration
	allowFallback bool
	title         string
	slides        []deck.Content

	// Accumulated error (fail-fast)
	err error
}

// Result is a finished presentation: the serialized file, a filename
// derived from the title, and a note of whether the built-in theme
// stood in for the template.
type Result struct {
	Data         []byte
	Filename     string
	UsedFallback bool
}

// FromTemplate starts a deck on the given template file.
func FromTemplate(filename string) *Deck {
	return &Deck{templatePath: filename}
}

// FromBytes starts a deck on a template already in memory.
func FromBytes(data []byte) *Deck {
	return &Deck{templateData: data}
}

// New starts a deck on the built-in dark theme, with no template
// involved.
func New() *Deck {
	return &Deck{allowFallback: true}
}

// clone creates a copy of the Deck with its own slide list. This
// ensures immutability - each chain method returns a new instance.
func (d *Deck) clone() *Deck {
	newDeck := &Deck{
		templatePath:  d.templatePath,
		templateData:  d.templateData,
		allowFallback: d.allowFallback,
		title:         d.title,
		slides:        append([]deck.Content(nil), d.slides...),
		err:           d.err,
	}
	return newDeck
}

// Fallback allows Build to fall back to the built-in theme when the
// template cannot be opened. Malformed templates still fail: a readable
// but broken asset is a deployment problem, not a missing one.
func (d *Deck) Fallback() *Deck {
	newDeck := d.clone()
	newDeck.allowFallback = true
	return newDeck
}

// Title sets the deck title, rendered on the first slide and used to
// derive the filename.
func (d *Deck) Title(title string) *Deck {
	newDeck := d.clone()
	newDeck.title = title
	return newDeck
}

// Slide appends a content slide with a heading and its bullet points.
// Bullets beyond the per-slide cap are dropped at render time, never
// rejected here.
func (d *Deck) Slide(heading string, bullets ...string) *Deck {
	newDeck := d.clone()
	newDeck.slides = append(newDeck.slides, deck.Content{
		Heading: heading,
		Bullets: append([]string(nil), bullets...),
	})
	return newDeck
}

// Contents appends a batch of content slides in order.
func (d *Deck) Contents(contents []deck.Content) *Deck {
	newDeck := d.clone()
	for _, c := range contents {
		newDeck.slides = append(newDeck.slides, deck.Content{
			Heading: c.Heading,
			Bullets: append([]string(nil), c.Bullets...),
		})
	}
	return newDeck
}

// Build assembles and serializes the deck.
func (d *Deck) Build() (*Result, error) {
	if d.err != nil {
		return nil, d.err
	}
	if len(d.slides) == 0 {
		return nil, fmt.Errorf("deck needs at least one content slide")
	}

	p, usedFallback, err := d.open()
	if err != nil {
		return nil, err
	}

	if usedFallback {
		err = d.populateFallback(p)
	} else {
		err = d.populateTemplate(p)
	}
	if err != nil {
		return nil, err
	}

	data, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serializing deck: %w", err)
	}
	return &Result{
		Data:         data,
		Filename:     deck.Filename(d.title),
		UsedFallback: usedFallback,
	}, nil
}

// WriteFile builds the deck and writes it to the given path.
func (d *Deck) WriteFile(filename string) error {
	result, err := d.Build()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, result.Data, 0644)
}

// open resolves the slide source: template bytes, template file, or the
// built-in theme.
func (d *Deck) open() (*deck.Presentation, bool, error) {
	var (
		p   *deck.Presentation
		err error
	)
	switch {
	case d.templateData != nil:
		p, err = deck.Load(d.templateData)
	case d.templatePath != "":
		p, err = deck.OpenTemplate(d.templatePath)
	default:
		return deck.NewFallback(), true, nil
	}

	if err != nil {
		if d.allowFallback && errors.Is(err, deck.ErrTemplateUnavailable) {
			return deck.NewFallback(), true, nil
		}
		return nil, false, err
	}
	return p, false, nil
}

// populateTemplate decorates the template's two archetype slides and
// clones the content archetype for every additional slide. All cloning
// happens before any content decoration so each clone starts from the
// pristine archetype.
func (d *Deck) populateTemplate(p *deck.Presentation) error {
	title, err := p.Slide(deck.TitleSlot)
	if err != nil {
		return err
	}
	if err := title.DecorateTitle(d.title); err != nil {
		return err
	}

	contentSlides := make([]*deck.Slide, 0, len(d.slides))
	first, err := p.Slide(deck.ContentSlot)
	if err != nil {
		return err
	}
	contentSlides = append(contentSlides, first)
	for i := 1; i < len(d.slides); i++ {
		dup, err := p.DuplicateSlide(deck.ContentSlot)
		if err != nil {
			return fmt.Errorf("cloning content slide %d: %w", i+1, err)
		}
		contentSlides = append(contentSlides, dup)
	}

	for i, s := range contentSlides {
		if err := s.DecorateContent(d.slides[i], i+1); err != nil {
			return err
		}
	}
	return nil
}

// populateFallback builds the same deck shape from blank themed slides.
func (d *Deck) populateFallback(p *deck.Presentation) error {
	title, err := p.AppendBlankSlide()
	if err != nil {
		return err
	}
	if err := title.DecorateTitle(d.title); err != nil {
		return err
	}

	for i, c := range d.slides {
		s, err := p.AppendBlankSlide()
		if err != nil {
			return err
		}
		if err := s.DecorateContent(c, i+1); err != nil {
			return err
		}
	}
	return nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// SPDX-License-Identifier: MIT
package blocks

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/thatcatcamp/picodemo/internal/markup"
	"github.com/thatcatcamp/picodemo/internal/themes"
	"gopkg.in/yaml.v3"
)

// ErrUnknownBlock is returned for block types the renderer does not handle
var ErrUnknownBlock = errors.New("unknown block type")

// Block is a typed content block as written in an outline file.
// The type selects how the remaining fields are decoded.
type Block struct {
	Type string
	data *yaml.Node
}

// UnmarshalYAML keeps the raw node so the type-specific data can be decoded later
func (b *Block) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := value.Decode(&head); err != nil {
		return err
	}
	b.Type = head.Type
	b.data = value
	return nil
}

// NewBlock builds a block from a data struct, for outlines built in code
func NewBlock(blockType string, data any) (Block, error) {
	var node yaml.Node
	if err := node.Encode(data); err != nil {
		return Block{}, fmt.Errorf("failed to encode %s block data: %w", blockType, err)
	}
	return Block{Type: blockType, data: &node}, nil
}

// Env carries the per-render lookup data blocks may need
type Env struct {
	Palettes *themes.Table
	Policy   *bluemonday.Policy
}

// DefaultPolicy is the sanitizer applied to rich markup in outlines
func DefaultPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("rel", "target").OnElements("a")
	p.AllowAttrs("class").Globally()
	return p
}

func (e *Env) policy() *bluemonday.Policy {
	if e == nil || e.Policy == nil {
		return DefaultPolicy()
	}
	return e.Policy
}

// Sanitize cleans rich markup with the env's policy
func (e *Env) Sanitize(s string) string {
	return e.policy().Sanitize(s)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// decode unpacks and validates the type-specific data of a block
func decode(b Block, into any) error {
	if b.data == nil {
		return fmt.Errorf("%s block has no data", b.Type)
	}
	if err := b.data.Decode(into); err != nil {
		return fmt.Errorf("failed to parse %s block data: %w", b.Type, err)
	}
	if err := validate.Struct(into); err != nil {
		return fmt.Errorf("invalid %s block: %w", b.Type, err)
	}
	return nil
}

// RenderBlock renders a block to markup based on its type and data
func RenderBlock(b Block, env *Env) (markup.Node, error) {
	switch b.Type {
	case "text":
		return renderTextBlock(b)
	case "html":
		return renderHTMLBlock(b, env)
	case "code":
		return renderCodeBlock(b)
	case "card":
		return renderCardBlock(b, env)
	case "list":
		return renderListBlock(b)
	case "palette":
		return renderPaletteBlock(b, env)
	default:
		return markup.Node{}, fmt.Errorf("%w: %q", ErrUnknownBlock, b.Type)
	}
}

// TextBlockData represents the structure for text blocks
type TextBlockData struct {
	Content string `yaml:"content" validate:"required"`
}

// renderTextBlock renders a text block with HTML escaping and line break preservation
func renderTextBlock(b Block) (markup.Node, error) {
	var data TextBlockData
	if err := decode(b, &data); err != nil {
		return markup.Node{}, err
	}

	var children []markup.Node
	for i, line := range strings.Split(data.Content, "\n") {
		if i > 0 {
			children = append(children, markup.El("br", nil))
		}
		children = append(children, markup.Text(line))
	}

	return markup.Node{
		Kind:     markup.KindParagraph,
		Attrs:    markup.A("class", "text-block"),
		Children: children,
	}, nil
}

// HTMLBlockData is prose with inline markup
type HTMLBlockData struct {
	HTML string `yaml:"html" validate:"required"`
}

func renderHTMLBlock(b Block, env *Env) (markup.Node, error) {
	var data HTMLBlockData
	if err := decode(b, &data); err != nil {
		return markup.Node{}, err
	}
	return markup.Raw(env.Sanitize(data.HTML)), nil
}

// CodeBlockData is a highlighted code sample
type CodeBlockData struct {
	Language    string `yaml:"language" validate:"required"`
	Source      string `yaml:"source" validate:"required"`
	LineNumbers bool   `yaml:"line_numbers"`
}

func renderCodeBlock(b Block) (markup.Node, error) {
	var data CodeBlockData
	if err := decode(b, &data); err != nil {
		return markup.Node{}, err
	}
	return codeSample(data), nil
}

func codeSample(data CodeBlockData) markup.Node {
	class := "language-" + data.Language
	if data.LineNumbers {
		class = "line-numbers " + class
	}
	return markup.El("pre", markup.A("class", "prismjs"),
		markup.El("code", markup.A("class", class), markup.Text(strings.TrimRight(data.Source, "\n"))),
	)
}

// CardBlockData is an example widget: header, rendered body, and the code
// samples that produce it in the footer
type CardBlockData struct {
	Header  string          `yaml:"header"`
	Body    string          `yaml:"body" validate:"required"`
	Samples []CodeBlockData `yaml:"samples" validate:"dive"`
}

func renderCardBlock(b Block, env *Env) (markup.Node, error) {
	var data CardBlockData
	if err := decode(b, &data); err != nil {
		return markup.Node{}, err
	}

	var children []markup.Node
	if data.Header != "" {
		children = append(children, markup.El("header", nil, markup.Raw(env.Sanitize(data.Header))))
	}
	children = append(children, markup.Raw(env.Sanitize(data.Body)))
	if len(data.Samples) > 0 {
		samples := make([]markup.Node, 0, len(data.Samples))
		for _, s := range data.Samples {
			samples = append(samples, codeSample(s))
		}
		children = append(children, markup.El("footer", nil, samples...))
	}

	return markup.El("article", nil, children...), nil
}

// ListBlockData is a plain bulleted or numbered list
type ListBlockData struct {
	Items   []string `yaml:"items" validate:"required,min=1"`
	Ordered bool     `yaml:"ordered"`
}

func renderListBlock(b Block) (markup.Node, error) {
	var data ListBlockData
	if err := decode(b, &data); err != nil {
		return markup.Node{}, err
	}

	tag := "ul"
	if data.Ordered {
		tag = "ol"
	}
	items := make([]markup.Node, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, markup.El("li", nil, markup.Text(item)))
	}
	return markup.El(tag, nil, items...), nil
}

// PaletteBlockData selects a palette to show; empty shows every palette
type PaletteBlockData struct {
	Name string `yaml:"name"`
}

func renderPaletteBlock(b Block, env *Env) (markup.Node, error) {
	var data PaletteBlockData
	if err := decode(b, &data); err != nil {
		return markup.Node{}, err
	}
	if env == nil || env.Palettes == nil {
		return markup.Node{}, fmt.Errorf("palette block: %w: table not loaded", themes.ErrPaletteTable)
	}

	palettes := env.Palettes.ListPalettes()
	if data.Name != "" {
		p := env.Palettes.GetPalette(data.Name)
		if p == nil {
			return markup.Node{}, fmt.Errorf("palette block: unknown palette %q", data.Name)
		}
		palettes = []*themes.Palette{p}
	}

	figures := make([]markup.Node, 0, len(palettes))
	for _, p := range palettes {
		swatches := make([]markup.Node, 0, len(p.Shades))
		for _, s := range p.Shades {
			label := p.Name + "-" + strconv.Itoa(s.Step)
			swatches = append(swatches, markup.El("div",
				markup.A("class", "swatch", "style", "background-color: "+s.Hex),
				markup.El("small", nil, markup.Text(label)),
				markup.El("br", nil),
				markup.El("code", nil, markup.Text(s.Hex)),
			))
		}
		figures = append(figures, markup.El("figure", markup.A("id", "palette-"+p.Name),
			markup.El("figcaption", nil, markup.Text(p.Name)),
			markup.El("div", markup.A("class", "swatches"), swatches...),
		))
	}

	return markup.El("div", markup.A("class", "palettes"), figures...), nil
}

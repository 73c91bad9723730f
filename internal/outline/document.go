// SPDX-License-Identifier: MIT
package outline

import (
	"fmt"
	"io"
	"io/fs"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/thatcatcamp/picodemo/internal/blocks"
	"github.com/thatcatcamp/picodemo/internal/markup"
	"gopkg.in/yaml.v3"
)

// Document is a page outline as written in a YAML file
type Document struct {
	Title    string        `yaml:"title" validate:"required"`
	Aside    string        `yaml:"aside" validate:"omitempty,oneof=toc none"`
	TOCDepth int           `yaml:"toc_depth" validate:"min=0,max=6"`
	Sections []SectionSpec `yaml:"sections" validate:"required,min=1,dive"`
}

// SectionSpec is the file form of a SectionDescriptor
type SectionSpec struct {
	Title       string         `yaml:"title" validate:"required"`
	Level       int            `yaml:"level" validate:"required,min=1,max=6"`
	Description string         `yaml:"description"`
	Content     []blocks.Block `yaml:"content"`
	Children    []SectionSpec  `yaml:"children" validate:"dive"`
}

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	pageNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

// ParseDocument decodes and validates an outline document
func ParseDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &ConfigError{Reason: "failed to parse outline", Err: err}
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, &ConfigError{Reason: "invalid outline", Err: err}
	}
	return &doc, nil
}

// LoadDocument reads page name (without extension) from fsys. Unknown or
// malformed page names report fs.ErrNotExist.
func LoadDocument(fsys fs.FS, name string) (*Document, error) {
	if !pageNamePattern.MatchString(name) {
		return nil, fmt.Errorf("page %q: %w", name, fs.ErrNotExist)
	}

	f, err := fsys.Open(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", name, err)
	}
	defer f.Close()

	doc, err := ParseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", name, err)
	}
	return doc, nil
}

// Descriptors converts the document's sections, rendering content blocks with env
func (d *Document) Descriptors(env *blocks.Env) ([]SectionDescriptor, error) {
	return buildDescriptors(d.Sections, env)
}

func buildDescriptors(specs []SectionSpec, env *blocks.Env) ([]SectionDescriptor, error) {
	out := make([]SectionDescriptor, 0, len(specs))
	for _, spec := range specs {
		content := make([]markup.Node, 0, len(spec.Content))
		for i, b := range spec.Content {
			node, err := blocks.RenderBlock(b, env)
			if err != nil {
				return nil, &ConfigError{
					Reason: fmt.Sprintf("section %q: content block %d", spec.Title, i+1),
					Err:    err,
				}
			}
			content = append(content, node)
		}

		children, err := buildDescriptors(spec.Children, env)
		if err != nil {
			return nil, err
		}

		out = append(out, SectionDescriptor{
			Title:       spec.Title,
			Level:       spec.Level,
			Description: spec.Description,
			Content:     content,
			Children:    children,
		})
	}
	return out, nil
}

// CompileDocument renders a whole document into the page's main element
func (c *Compiler) CompileDocument(doc *Document, env *blocks.Env) (markup.Node, error) {
	sections, err := doc.Descriptors(env)
	if err != nil {
		return markup.Node{}, err
	}

	var aside *markup.Node
	if doc.Aside == "toc" {
		toc, err := c.TableOfContents(sections, doc.TOCDepth)
		if err != nil {
			return markup.Node{}, err
		}
		aside = &toc
	}

	return c.RenderPage(sections, aside)
}

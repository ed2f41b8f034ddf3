// Copyright (c) 2026 The psdf authors.

package pdf

import (
	"golang.org/x/sync/errgroup"

	"github.com/rduggan/psdf/config"
	"github.com/rduggan/psdf/logger"
)

// Page is one leaf of the page tree: its dictionary and the object
// number it was reached through (0 when the node was not reached through
// an indirect reference).
type Page struct {
	Dict Dict
	Num  int
}

// Pages walks the catalog's page tree (§4.6) and returns every /Page
// leaf, depth-first, left to right. The walk is bounded by
// cfg.MaxPageTreeDepth and guards against cycles a malicious or
// corrupted file could introduce (§9's "cyclic references" note).
func (d *Document) Pages(cfg *config.Config) ([]Page, error) {
	catalog, err := d.Root()
	if err != nil {
		return nil, err
	}
	pagesRef, ok := catalog["Pages"]
	if !ok {
		return nil, newError(KindPdfFormatError, "catalog missing /Pages")
	}

	var out []Page
	visited := make(map[int]bool)
	if err := d.walkPageNode(pagesRef, 0, cfg.MaxPageTreeDepth, visited, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Document) walkPageNode(obj Object, depth, maxDepth int, visited map[int]bool, out *[]Page) error {
	if depth > maxDepth {
		return newError(KindPdfFormatError, "page tree exceeds maximum depth")
	}
	num := 0
	if ref, ok := obj.(Reference); ok {
		if visited[ref.Num] {
			logger.Errorf("page tree cycle detected, skipping", "obj", ref.Num)
			return nil
		}
		visited[ref.Num] = true
		num = ref.Num
	}
	resolved, err := d.Resolve(obj)
	if err != nil {
		return err
	}
	dict, ok := resolved.(Dict)
	if !ok {
		return newError(KindPdfFormatError, "page tree node is not a dictionary")
	}

	switch dict["Type"] {
	case Name("Page"):
		*out = append(*out, Page{Dict: dict, Num: num})
		return nil
	case Name("Pages"):
		kids, ok := dict["Kids"].(Array)
		if !ok {
			return newError(KindPdfFormatError, "/Pages node missing /Kids array")
		}
		for _, kid := range kids {
			if err := d.walkPageNode(kid, depth+1, maxDepth, visited, out); err != nil {
				return err
			}
		}
		return nil
	default:
		return newError(KindPdfFormatError, "page tree node has unrecognized /Type")
	}
}

// ContentStream resolves and decodes a page's /Contents, concatenating
// an array of content streams in order (§4.6).
func (d *Document) ContentStream(p Page) ([]byte, error) {
	contentsObj, ok := p.Dict["Contents"]
	if !ok {
		return nil, nil
	}
	resolved, err := d.Resolve(contentsObj)
	if err != nil {
		return nil, err
	}
	switch c := resolved.(type) {
	case *Stream:
		return decodeStream(c)
	case Array:
		var out []byte
		for _, elem := range c {
			r, err := d.Resolve(elem)
			if err != nil {
				return nil, err
			}
			st, ok := r.(*Stream)
			if !ok {
				continue
			}
			bytes, err := decodeStream(st)
			if err != nil {
				return nil, err
			}
			out = append(out, bytes...)
			out = append(out, '\n')
		}
		return out, nil
	default:
		return nil, newError(KindPdfFormatError, "/Contents is neither a stream nor an array")
	}
}

// ContentStreams resolves and decodes every page's content stream
// concurrently, bounded by cfg.MaxWorkersPerPDF: the page tree's DAG
// structure carries no ordering requirement between distinct pages'
// byte-fetch-and-inflate work, unlike the sequential tree walk itself.
func (d *Document) ContentStreams(pages []Page, cfg *config.Config) ([][]byte, error) {
	out := make([][]byte, len(pages))
	g := new(errgroup.Group)
	g.SetLimit(cfg.MaxWorkersPerPDF)
	for i, p := range pages {
		i, p := i, p
		g.Go(func() error {
			data, err := d.ContentStream(p)
			if err != nil {
				return err
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

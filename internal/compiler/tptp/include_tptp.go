// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package tptp

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"gopkg.microglot.org/tptp.go/internal/exc"
	"gopkg.microglot.org/tptp.go/internal/source"
	"gopkg.microglot.org/tptp.go/internal/target"
)

// include reads include('file') or include('file', [names]) and switches to
// the included file. The units of the including file resume once it reaches
// its end.
func (p *parser) include() exc.Exception {
	c := p.cur()
	c.advance()
	if _, err := c.expect(TokenTypeLeftParen); err != nil {
		return err
	}
	name, err := c.expectName("file name")
	if err != nil {
		return err
	}
	var allowed map[string]bool
	if c.is(TokenTypeComma) {
		c.advance()
		if _, err := c.expect(TokenTypeLeftBracket); err != nil {
			return err
		}
		allowed = make(map[string]bool)
		for !c.is(TokenTypeRightBracket) {
			n, err := c.expectOneOf(TokenTypeName, TokenTypeInteger)
			if err != nil {
				return err
			}
			allowed[n.Value] = true
			if !c.is(TokenTypeComma) {
				break
			}
			c.advance()
		}
		if _, err := c.expect(TokenTypeRightBracket); err != nil {
			return err
		}
	}
	if _, err := c.expect(TokenTypeRightParen); err != nil {
		return err
	}
	if _, err := c.expect(TokenTypeDot); err != nil {
		return err
	}
	if p.config.forbidden[name.Value] {
		log.Infof("ignoring forbidden include %s", name.Value)
		return nil
	}
	f, e := p.resolveInclude(c, name)
	if e != nil {
		return e
	}
	if err := p.open(f, allowed); err != nil {
		return exc.Wrap(c.location(name), codeOf(err, exc.CodeFileNotFound), err)
	}
	log.Debugf("including %s from %s", f.Path(p.ctx), c.uri)
	return nil
}

// resolveInclude finds the file named by an include. The name must denote a
// single file.
func (p *parser) resolveInclude(c *cursor, name *Token) (source.File, exc.Exception) {
	if p.config.fs == nil {
		return nil, c.fail(name, exc.CodeFileNotFound, fmt.Sprintf("cannot open file %s", name.Value))
	}
	for _, candidate := range target.IncludeCandidates(c.dir(), name.Value) {
		files, err := p.config.fs.Open(p.ctx, candidate)
		if err != nil {
			log.Debugf("include candidate %s: %v", candidate, err)
			continue
		}
		if len(files) != 1 {
			return nil, c.fail(name, exc.CodeUnsupportedFileFormat, fmt.Sprintf("include %s names a directory", name.Value))
		}
		return files[0], nil
	}
	return nil, c.fail(name, exc.CodeFileNotFound, fmt.Sprintf("cannot open file %s", name.Value))
}

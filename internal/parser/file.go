package parser

import (
	"strings"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/token"
)

// parseFile parses a complete File: optional package declaration, import
// list, then top-level Things or a single module declaration.
func (c *cursor) parseFile(pos int) (ast.File, int, error) {
	start := pos
	file := ast.File{}

	pos = c.skip(pos)
	if p, ok := c.peekIs(pos, token.KwPackage); ok {
		pkg, next, err := c.parsePackage(p)
		if err != nil {
			return file, start, err
		}
		file.Package = &pkg
		pos = next
	}

	for {
		pos = c.skip(pos)
		if _, ok := c.peekIs(pos, token.Semicolon); ok {
			pos++
			continue
		}
		p, ok := c.peekIs(pos, token.KwImport)
		if !ok {
			break
		}
		imp, next, err := c.parseImport(p)
		if err != nil {
			pos = next + 1
			continue
		}
		file.Imports = append(file.Imports, imp)
		pos = next
	}

	for {
		pos = c.skip(pos)
		if c.kind(pos) == token.EOF {
			break
		}
		if _, ok := c.peekIs(pos, token.Semicolon); ok {
			pos++
			continue
		}
		if p, ok := c.peekIs(pos, token.KwModule); ok {
			mod, next, err := c.parseModuleDecl(p)
			if err != nil {
				pos = next + 1
				continue
			}
			file.Modules = append(file.Modules, mod)
			pos = next
			continue
		}
		thing, next, err := c.parseThing(pos)
		if err != nil {
			return file, start, err
		}
		file.Things = append(file.Things, thing)
		pos = next
	}

	file.Range = ast.Range{Start: c.point(start), End: c.point(pos)}
	return file, pos, nil
}

// parsePackage parses `package a.b.c;`. pos points at `package`.
func (c *cursor) parsePackage(pos int) (ast.Package, int, error) {
	start := pos
	pos++
	name, next, err := c.parseDottedName(pos)
	if err != nil {
		return ast.Package{}, start, err
	}
	next, _ = c.expect(next, token.Semicolon, ";")
	return ast.Package{Name: name, Range: ast.Range{Start: c.point(start), End: c.point(next)}}, next, nil
}

// parseDottedName parses a `.`-separated identifier chain, optionally
// ending in `.*` (the caller decides whether a trailing star is legal).
func (c *cursor) parseDottedName(pos int) (string, int, error) {
	var parts []string
	name, next, err := c.expectIdentifier(pos)
	if err != nil {
		return "", pos, err
	}
	parts = append(parts, name)
	pos = next
	for {
		p, ok := c.peekIs(pos, token.Dot)
		if !ok {
			break
		}
		if q, ok2 := c.peekIs(p+1, token.Star); ok2 {
			pos = q
			break
		}
		part, afterPart, perr := c.expectIdentifier(p + 1)
		if perr != nil {
			break
		}
		parts = append(parts, part)
		pos = afterPart
	}
	return strings.Join(parts, "."), pos, nil
}

// parseImport parses every import-declaration variant: plain class,
// static class, static single-member, on-demand (`a.b.*`), and static
// on-demand (`static a.B.*`). pos points at `import`.
func (c *cursor) parseImport(pos int) (ast.Import, int, error) {
	start := pos
	pos++
	isStatic := false
	if p, ok := c.peekIs(pos, token.KwStatic); ok {
		isStatic = true
		pos = p + 1
	}

	name, next, err := c.parseDottedName(pos)
	if err != nil {
		return ast.Import{}, start, err
	}
	pos = next

	onDemand := c.kind(pos) == token.Star
	if onDemand {
		pos++
	}

	imp := ast.Import{Path: name}
	switch {
	case onDemand && isStatic:
		imp.Kind = ast.ImportStaticPrefix
	case onDemand:
		imp.Kind = ast.ImportPrefix
	case isStatic:
		// "a.b.Class.member": split the trailing segment off as the
		// static member name, leaving the class path.
		idx := strings.LastIndex(name, ".")
		if idx > 0 {
			imp.Kind = ast.ImportStaticClassMethod
			imp.Path = name[:idx]
			imp.Member = name[idx+1:]
		} else {
			imp.Kind = ast.ImportStaticClass
		}
	default:
		imp.Kind = ast.ImportClass
	}

	pos, _ = c.expect(pos, token.Semicolon, ";")
	imp.Range = ast.Range{Start: c.point(start), End: c.point(pos)}
	return imp, pos, nil
}

// parseModuleDecl parses `module a.b.c { directive* }`. pos points at
// `module`.
func (c *cursor) parseModuleDecl(pos int) (ast.ModuleDecl, int, error) {
	start := pos
	pos++
	name, next, err := c.parseDottedName(pos)
	if err != nil {
		return ast.ModuleDecl{}, start, err
	}
	pos = next
	pos, err = c.expect(pos, token.LBrace, "{")
	if err != nil {
		return ast.ModuleDecl{}, start, err
	}
	mod := ast.ModuleDecl{Name: name}
	for {
		pos = c.skip(pos)
		if c.kind(pos) == token.RBrace || c.kind(pos) == token.EOF {
			break
		}
		dir, next, derr := c.parseModuleDirective(pos)
		if derr != nil {
			pos++
			continue
		}
		mod.Directives = append(mod.Directives, dir)
		pos = next
	}
	end, err := c.expect(pos, token.RBrace, "}")
	if err != nil {
		return mod, pos, err
	}
	mod.Range = ast.Range{Start: c.point(start), End: c.point(end)}
	return mod, end, nil
}

func (c *cursor) parseModuleDirective(pos int) (ast.ModuleDirective, int, error) {
	start := pos
	switch c.kind(pos) {
	case token.KwRequires:
		pos++
		dir := ast.ModuleDirective{Kind: ast.DirectiveRequires}
		for {
			if p, ok := c.peekIs(pos, token.KwStatic); ok {
				dir.Static = true
				pos = p + 1
				continue
			}
			if p := c.skip(pos); c.kind(p) == token.Identifier && c.at(p).Token.Text == "transitive" {
				dir.Transitive = true
				pos = p + 1
				continue
			}
			break
		}
		name, next, err := c.parseDottedName(pos)
		if err != nil {
			return ast.ModuleDirective{}, start, err
		}
		dir.Name = name
		pos, _ = c.expect(next, token.Semicolon, ";")
		dir.Range = ast.Range{Start: c.point(start), End: c.point(pos)}
		return dir, pos, nil

	case token.KwExports, token.KwOpens:
		kind := ast.DirectiveExports
		if c.kind(pos) == token.KwOpens {
			kind = ast.DirectiveOpens
		}
		pos++
		name, next, err := c.parseDottedName(pos)
		if err != nil {
			return ast.ModuleDirective{}, start, err
		}
		dir := ast.ModuleDirective{Kind: kind, Name: name}
		pos = next
		if p, ok := c.peekIs(pos, token.KwTo); ok {
			pos = p + 1
			for {
				target, next, terr := c.parseDottedName(pos)
				if terr != nil {
					break
				}
				dir.To = append(dir.To, target)
				pos = next
				if cp, ok := c.peekIs(pos, token.Comma); ok {
					pos = cp + 1
					continue
				}
				break
			}
		}
		pos, _ = c.expect(pos, token.Semicolon, ";")
		dir.Range = ast.Range{Start: c.point(start), End: c.point(pos)}
		return dir, pos, nil

	case token.KwUses:
		pos++
		name, next, err := c.parseDottedName(pos)
		if err != nil {
			return ast.ModuleDirective{}, start, err
		}
		pos, _ = c.expect(next, token.Semicolon, ";")
		return ast.ModuleDirective{Kind: ast.DirectiveUses, Name: name, Range: ast.Range{Start: c.point(start), End: c.point(pos)}}, pos, nil

	case token.KwProvides:
		pos++
		name, next, err := c.parseDottedName(pos)
		if err != nil {
			return ast.ModuleDirective{}, start, err
		}
		dir := ast.ModuleDirective{Kind: ast.DirectiveProvides, Name: name}
		pos = next
		if p, ok := c.peekIs(pos, token.KwWith); ok {
			pos = p + 1
			for {
				impl, next, ierr := c.parseDottedName(pos)
				if ierr != nil {
					break
				}
				dir.With = append(dir.With, impl)
				pos = next
				if cp, ok := c.peekIs(pos, token.Comma); ok {
					pos = cp + 1
					continue
				}
				break
			}
		}
		pos, _ = c.expect(pos, token.Semicolon, ";")
		dir.Range = ast.Range{Start: c.point(start), End: c.point(pos)}
		return dir, pos, nil
	}
	return ast.ModuleDirective{}, start, ParseError{Kind: ErrExpectedToken, Pos: pos, Expected: "module directive"}
}

package io

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pgraphlab/pgraph/pkg/errors"
)

// textFormat is a compact line-oriented encoding for writing problems
// by hand:
//
//	# seven-unit example plant
//	problem plant
//
//	raw e g j k l
//	product a cap=1
//
//	unit o1 cost=34: b f -> a
//	unit o6 cost=74: k -> h c
//	exclusive o6 o7
//
// One directive per line; # starts a comment. Unit lines name the
// inputs before the arrow and the outputs after it. Intermediates are
// implied and only declared (with a material line) to attach a cap.
// Names must be flat: no whitespace, commas, or arrows.
type textFormat struct{}

func (textFormat) Name() string         { return "text" }
func (textFormat) Extensions() []string { return []string{".txt", ".pns"} }

func (textFormat) Parse(data []byte) (*Document, error) {
	doc := &Document{}
	sawProblem := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		directive := strings.Fields(line)[0]
		rest := strings.TrimSpace(strings.TrimPrefix(line, directive))
		var err error
		switch directive {
		case "problem":
			if sawProblem {
				err = fmt.Errorf("duplicate problem line")
			} else {
				sawProblem = true
				doc.Name, err = parseName(rest)
			}
		case "raw":
			err = parseMaterials(doc, rest, KindRaw)
		case "product":
			err = parseMaterials(doc, rest, KindProduct)
		case "material":
			err = parseMaterials(doc, rest, "")
		case "unit":
			err = parseUnit(doc, rest)
		case "exclusive":
			err = parseExclusion(doc, rest)
		default:
			err = fmt.Errorf("unknown directive %q", directive)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", lineno)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse text")
	}
	return doc, nil
}

// parseMaterials handles raw, product, and material lines. Multiple
// names may share a line; key=value options apply to all of them.
func parseMaterials(doc *Document, rest, kind string) error {
	var defs []MaterialDef
	opts := MaterialDef{Kind: kind}

	for _, tok := range strings.Fields(rest) {
		if key, value, ok := strings.Cut(tok, "="); ok {
			var err error
			switch key {
			case "cap":
				opts.Cap, err = strconv.Atoi(value)
			case "demand":
				opts.Demand, err = strconv.ParseFloat(value, 64)
			default:
				return fmt.Errorf("unknown option %q", key)
			}
			if err != nil {
				return fmt.Errorf("option %s: %w", tok, err)
			}
			continue
		}
		name, err := parseName(tok)
		if err != nil {
			return err
		}
		defs = append(defs, MaterialDef{Name: name, Kind: kind})
	}
	if len(defs) == 0 {
		return fmt.Errorf("expected at least one material name")
	}
	for i := range defs {
		defs[i].Cap = opts.Cap
		defs[i].Demand = opts.Demand
	}
	doc.Materials = append(doc.Materials, defs...)
	return nil
}

// parseUnit handles "unit NAME [cost=X]: IN ... -> OUT ...".
func parseUnit(doc *Document, rest string) error {
	head, flows, ok := strings.Cut(rest, ":")
	if !ok {
		return fmt.Errorf("unit line needs a colon before the flows")
	}

	def := UnitDef{}
	for i, tok := range strings.Fields(head) {
		if i == 0 {
			name, err := parseName(tok)
			if err != nil {
				return err
			}
			def.Name = name
			continue
		}
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key != "cost" {
			return fmt.Errorf("unknown option %q", tok)
		}
		cost, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("option %s: %w", tok, err)
		}
		def.Cost = cost
	}
	if def.Name == "" {
		return fmt.Errorf("unit line needs a name")
	}

	in, out, ok := strings.Cut(flows, "->")
	if !ok {
		return fmt.Errorf("unit %s: flows need an arrow between inputs and outputs", def.Name)
	}
	var err error
	if def.Inputs, err = parseNames(in); err != nil {
		return fmt.Errorf("unit %s: %w", def.Name, err)
	}
	if def.Outputs, err = parseNames(out); err != nil {
		return fmt.Errorf("unit %s: %w", def.Name, err)
	}
	if len(def.Outputs) == 0 {
		return fmt.Errorf("unit %s has no outputs", def.Name)
	}

	doc.Units = append(doc.Units, def)
	return nil
}

func parseExclusion(doc *Document, rest string) error {
	group, err := parseNames(rest)
	if err != nil {
		return err
	}
	if len(group) < 2 {
		return fmt.Errorf("exclusive needs at least two unit names")
	}
	doc.Exclusions = append(doc.Exclusions, group)
	return nil
}

func parseNames(s string) ([]string, error) {
	var names []string
	for _, tok := range strings.Fields(s) {
		name, err := parseName(tok)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func parseName(tok string) (string, error) {
	if err := errors.ValidateFlatName(tok); err != nil {
		return "", err
	}
	return tok, nil
}

func (textFormat) Export(doc *Document) ([]byte, error) {
	for _, m := range doc.Materials {
		if err := errors.ValidateFlatName(m.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "material %q cannot be written as text", m.Name)
		}
	}
	for _, u := range doc.Units {
		for _, name := range append(append([]string{u.Name}, u.Inputs...), u.Outputs...) {
			if err := errors.ValidateFlatName(name); err != nil {
				return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "unit %q cannot be written as text", u.Name)
			}
		}
	}

	var buf bytes.Buffer
	if doc.Name != "" {
		fmt.Fprintf(&buf, "problem %s\n\n", doc.Name)
	}

	var raws []string
	for _, m := range doc.Materials {
		if m.Kind == KindRaw && m.Cap == 0 && m.Demand == 0 {
			raws = append(raws, m.Name)
		}
	}
	if len(raws) > 0 {
		fmt.Fprintf(&buf, "raw %s\n", strings.Join(raws, " "))
	}
	for _, m := range doc.Materials {
		switch {
		case m.Kind == KindRaw && m.Cap == 0 && m.Demand == 0:
			// Already on the shared raw line.
		case m.Kind == KindRaw:
			fmt.Fprintf(&buf, "raw %s%s\n", m.Name, materialOpts(m))
		case m.Kind == KindProduct:
			fmt.Fprintf(&buf, "product %s%s\n", m.Name, materialOpts(m))
		default:
			if m.Cap != 0 {
				fmt.Fprintf(&buf, "material %s%s\n", m.Name, materialOpts(m))
			}
		}
	}

	if len(doc.Units) > 0 {
		buf.WriteByte('\n')
	}
	for _, u := range doc.Units {
		buf.WriteString("unit " + u.Name)
		if u.Cost != 0 {
			fmt.Fprintf(&buf, " cost=%s", formatFloat(u.Cost))
		}
		buf.WriteString(": " + strings.Join(u.Inputs, " ") + " -> " + strings.Join(u.Outputs, " ") + "\n")
	}

	for i, group := range doc.Exclusions {
		if i == 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "exclusive %s\n", strings.Join(group, " "))
	}
	return buf.Bytes(), nil
}

func materialOpts(m MaterialDef) string {
	var sb strings.Builder
	if m.Cap != 0 {
		fmt.Fprintf(&sb, " cap=%d", m.Cap)
	}
	if m.Demand != 0 {
		fmt.Fprintf(&sb, " demand=%s", formatFloat(m.Demand))
	}
	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

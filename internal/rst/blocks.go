package rst

import (
	"regexp"
	"strings"

	"lectern/internal/doctree"
)

var (
	directiveRE = regexp.MustCompile(`^\.\. +([A-Za-z][A-Za-z0-9_-]*):: *(.*)$`)
	commentRE   = regexp.MustCompile(`^\.\.(?: +.*)?$`)
	bulletRE    = regexp.MustCompile(`^[-*+] +\S`)
	enumRE      = regexp.MustCompile(`^([0-9]+|[A-Za-z])\. +\S`)
	fieldRE     = regexp.MustCompile(`^:([^:]+): *(.*)$`)
	optionRE    = regexp.MustCompile(`^:([A-Za-z_][A-Za-z0-9_-]*): *(.*)$`)
	adornmentRE = regexp.MustCompile(`^[=\-~^"']+$`)
)

func (p *Parser) parseBlocks(lines []string, source string, startLine int) []doctree.Node {
	var nodes []doctree.Node
	i := 0
	for i < len(lines) {
		line := lines[i]
		if isBlank(line) {
			i++
			continue
		}
		switch {
		case directiveRE.MatchString(line):
			directiveNodes, next := p.parseDirective(lines, i, source, startLine)
			nodes = append(nodes, directiveNodes...)
			i = next
		case commentRE.MatchString(line):
			i = skipIndented(lines, i+1)
		case isTitle(lines, i):
			nodes = append(nodes, p.parseTitle(lines, i, source, startLine))
			i += 2
		case bulletRE.MatchString(line):
			list, next := p.parseBulletList(lines, i, source, startLine)
			nodes = append(nodes, list)
			i = next
		case enumRE.MatchString(line):
			list, next := p.parseEnumeratedList(lines, i, source, startLine)
			nodes = append(nodes, list)
			i = next
		case fieldRE.MatchString(line):
			list, next := p.parseFieldList(lines, i, source, startLine)
			nodes = append(nodes, list)
			i = next
		default:
			paragraph, next := p.parseParagraph(lines, i, source, startLine)
			nodes = append(nodes, paragraph)
			i = next
		}
	}
	return nodes
}

// parseDirective consumes a directive marker line plus its indented block,
// splits leading options from content, and invokes the registered handler.
func (p *Parser) parseDirective(lines []string, start int, source string, startLine int) ([]doctree.Node, int) {
	match := directiveRE.FindStringSubmatch(lines[start])
	name, arg := match[1], match[2]
	body, next := indentedBlock(lines, start+1)
	options, content, contentOffset := splitOptions(body)

	handler, ok := p.directives[name]
	if !ok {
		p.warnf(source, startLine+start, "unknown directive %q", name)
		return nil, next
	}
	directive := Directive{
		Name:        name,
		Arg:         arg,
		Options:     options,
		Content:     content,
		Source:      source,
		Line:        startLine + start,
		ContentLine: startLine + start + 1 + contentOffset,
	}
	result, err := handler(directive, p)
	if err != nil {
		p.warnf(source, directive.Line, "directive %q failed: %v", name, err)
		return nil, next
	}
	return result, next
}

func (p *Parser) parseTitle(lines []string, start int, source string, startLine int) doctree.Node {
	title := strings.TrimSpace(lines[start])
	section := &doctree.Section{Title: title, Level: adornmentLevel(lines[start+1][0])}
	section.Attrs().Source = source
	section.Attrs().Line = startLine + start
	return section
}

func (p *Parser) parseBulletList(lines []string, start int, source string, startLine int) (doctree.Node, int) {
	list := &doctree.BulletList{}
	list.Attrs().Source = source
	list.Attrs().Line = startLine + start
	i := start
	for i < len(lines) {
		if isBlank(lines[i]) {
			i++
			continue
		}
		if indentOf(lines[i]) > 0 || !bulletRE.MatchString(lines[i]) {
			break
		}
		itemLines, next := itemBlock(lines, i, 2)
		item := &doctree.ListItem{}
		item.Attrs().Source = source
		item.Attrs().Line = startLine + i
		item.SetChildren(p.parseBlocks(itemLines, source, startLine+i))
		list.Append(item)
		i = next
	}
	return list, i
}

// parseEnumeratedList collects consecutive items whose markers classify to
// the same enumeration type. The authored label text is recorded only as a
// style; item positions, not labels, carry meaning downstream.
func (p *Parser) parseEnumeratedList(lines []string, start int, source string, startLine int) (doctree.Node, int) {
	first := enumRE.FindStringSubmatch(lines[start])
	enum := classifyEnum(first[1])
	list := &doctree.EnumeratedList{Enum: enum}
	list.Attrs().Source = source
	list.Attrs().Line = startLine + start
	i := start
	for i < len(lines) {
		if isBlank(lines[i]) {
			i++
			continue
		}
		if indentOf(lines[i]) > 0 {
			break
		}
		match := enumRE.FindStringSubmatch(lines[i])
		if match == nil || classifyEnum(match[1]) != enum {
			break
		}
		markerWidth := len(match[1]) + 2
		itemLines, next := itemBlock(lines, i, markerWidth)
		item := &doctree.ListItem{}
		item.Attrs().Source = source
		item.Attrs().Line = startLine + i
		item.SetChildren(p.parseBlocks(itemLines, source, startLine+i))
		list.Append(item)
		i = next
	}
	return list, i
}

func (p *Parser) parseFieldList(lines []string, start int, source string, startLine int) (doctree.Node, int) {
	list := &doctree.FieldList{}
	list.Attrs().Source = source
	list.Attrs().Line = startLine + start
	i := start
	for i < len(lines) {
		if isBlank(lines[i]) {
			i++
			continue
		}
		match := fieldRE.FindStringSubmatch(lines[i])
		if indentOf(lines[i]) > 0 || match == nil {
			break
		}
		field := &doctree.Field{Label: match[1]}
		field.Attrs().Source = source
		field.Attrs().Line = startLine + i
		body := []string{match[2]}
		bodyLine := i
		j := i + 1
		for j < len(lines) && (isBlank(lines[j]) || indentOf(lines[j]) > 0) {
			body = append(body, lines[j])
			j++
		}
		field.SetChildren(p.parseBlocks(dedent(body), source, startLine+bodyLine))
		list.Append(field)
		i = j
	}
	return list, i
}

func (p *Parser) parseParagraph(lines []string, start int, source string, startLine int) (doctree.Node, int) {
	var collected []string
	i := start
	for i < len(lines) && !isBlank(lines[i]) {
		collected = append(collected, strings.TrimSpace(lines[i]))
		i++
	}
	paragraph := doctree.NewParagraph(p.ParseInline(strings.Join(collected, "\n"))...)
	paragraph.Attrs().Source = source
	paragraph.Attrs().Line = startLine + start
	return paragraph, i
}

// itemBlock gathers a list item: the marker line's text plus continuation
// lines indented at least markerWidth, dedented to the item's own level.
func itemBlock(lines []string, start, markerWidth int) ([]string, int) {
	item := []string{lines[start][markerWidth:]}
	i := start + 1
	for i < len(lines) {
		if isBlank(lines[i]) {
			item = append(item, "")
			i++
			continue
		}
		if indentOf(lines[i]) < markerWidth {
			break
		}
		item = append(item, lines[i][markerWidth:])
		i++
	}
	return item, i
}

// indentedBlock gathers the indented body following a directive or comment
// marker, dedented by the minimal indentation of its non-blank lines.
func indentedBlock(lines []string, start int) ([]string, int) {
	var block []string
	i := start
	for i < len(lines) {
		if isBlank(lines[i]) {
			block = append(block, "")
			i++
			continue
		}
		if indentOf(lines[i]) == 0 {
			break
		}
		block = append(block, lines[i])
		i++
	}
	return dedent(block), i
}

// splitOptions separates leading ":key: value" option lines from directive
// content. Options end at the first blank or non-option line. The returned
// offset is the index of the first content line within body.
func splitOptions(body []string) (map[string]string, []string, int) {
	options := map[string]string{}
	i := 0
	for i < len(body) {
		if isBlank(body[i]) {
			break
		}
		match := optionRE.FindStringSubmatch(body[i])
		if match == nil {
			break
		}
		key, value := match[1], match[2]
		i++
		for i < len(body) && !isBlank(body[i]) && indentOf(body[i]) > 0 && optionRE.FindStringSubmatch(strings.TrimSpace(body[i])) == nil {
			value = strings.TrimSpace(value + " " + strings.TrimSpace(body[i]))
			i++
		}
		options[key] = value
	}
	return options, body[i:], i
}

func skipIndented(lines []string, start int) int {
	i := start
	for i < len(lines) && (isBlank(lines[i]) || indentOf(lines[i]) > 0) {
		i++
	}
	return i
}

func isTitle(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return false
	}
	underline := strings.TrimRight(lines[i+1], " ")
	if len(underline) < 2 || !adornmentRE.MatchString(underline) {
		return false
	}
	// An underline must repeat a single adornment character.
	for j := 1; j < len(underline); j++ {
		if underline[j] != underline[0] {
			return false
		}
	}
	return len(underline) >= len(strings.TrimRight(lines[i], " "))
}

func adornmentLevel(char byte) int {
	switch char {
	case '=':
		return 1
	case '-':
		return 2
	case '~':
		return 3
	default:
		return 4
	}
}

func classifyEnum(marker string) doctree.EnumType {
	c := marker[0]
	switch {
	case c >= '0' && c <= '9':
		return doctree.EnumArabic
	case c >= 'A' && c <= 'Z':
		return doctree.EnumUpperAlpha
	default:
		return doctree.EnumLowerAlpha
	}
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

func dedent(lines []string) []string {
	minIndent := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		if indent := indentOf(line); minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if isBlank(line) {
			out[i] = ""
			continue
		}
		out[i] = line[minIndent:]
	}
	return out
}

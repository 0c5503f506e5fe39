package ingest

import (
	"strings"

	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/lexical"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/registry"
	"github.com/Cvelth/vkma-vulkan-hpp-fork/internal/specerror"
)

// parseCommands handles <commands>, per spec §4.1's proto/param grammar,
// generalized from the teacher's xmlParseCommands (which only needed
// ReturnType/Name/TypeName/IsPointer/VarName for its own narrower build
// pipeline) to the full ParamData shape spec §3 requires (array sizes,
// len, optional, line numbers) plus success/error codes.
func parseCommands(r *reader, reg *registry.Registry) (specerror.List, error) {
	var diags specerror.List
	for {
		start, line, err := r.nextElement()
		if err != nil {
			if errEOFOf(err) {
				return diags, nil
			}
			return diags, err
		}
		if start.Name.Local != "command" {
			if err := r.skip(); err != nil {
				return diags, err
			}
			continue
		}

		if alias := findAttr("alias", start.Attr); alias != "" {
			name := findAttr("name", start.Attr)
			if name == "" {
				diags = append(diags, specerror.New(specerror.KindSchema, "<command alias> without name").AtLine(line))
				if err := r.elementEnd(); err != nil {
					return diags, err
				}
				continue
			}
			reg.Commands[name] = &registry.CommandData{Name: name, Alias: alias, XMLLine: line}
			if err := r.elementEnd(); err != nil {
				return diags, err
			}
			continue
		}

		cmd := &registry.CommandData{XMLLine: line}
		if sc := findAttr("successcodes", start.Attr); sc != "" {
			cmd.SuccessCodes = strings.Split(sc, ",")
		}
		if ec := findAttr("errorcodes", start.Attr); ec != "" {
			cmd.ErrorCodes = strings.Split(ec, ",")
		}

		for {
			el, pline, err := r.nextElement()
			if err != nil {
				if errEOFOf(err) {
					break
				}
				return diags, err
			}
			switch el.Name.Local {
			case "proto":
				name, retType, d := parseProto(r)
				diags = append(diags, d...)
				cmd.Name = name
				cmd.ReturnType = retType
			case "param":
				p, d := parseCommandParam(r, el, pline)
				diags = append(diags, d...)
				cmd.Params = append(cmd.Params, p)
			default:
				if err := r.skip(); err != nil {
					return diags, err
				}
			}
		}

		if cmd.Name == "" {
			diags = append(diags, specerror.New(specerror.KindSchema, "<command> missing <proto><name>").AtLine(line))
			continue
		}
		if cmd.ReturnType == "Result" || cmd.ReturnType == "VkResult" {
			if len(cmd.SuccessCodes) == 0 {
				diags = append(diags, specerror.Newf(specerror.KindInvariant,
					"command %s returns Result with no successCodes", cmd.Name).AtLine(line))
			}
		}
		reg.Commands[cmd.Name] = cmd
	}
}

func parseProto(r *reader) (name, retType string, diags specerror.List) {
	var prefix strings.Builder
	for {
		t, err := r.nextToken2()
		if err != nil {
			break
		}
		switch v := t.(type) {
		case charDataToken:
			if name == "" {
				prefix.WriteString(string(v))
			}
		case typeToken:
			retType = string(v)
		case nameToken:
			name = string(v)
		}
	}
	return name, retType, diags
}

func parseCommandParam(r *reader, start startElem, line int) (registry.ParamData, specerror.List) {
	var diags specerror.List
	p := registry.ParamData{XMLLine: line}
	p.Len = findAttr("len", start.Attr)
	p.Optional = findAttr("optional", start.Attr) == "true"

	var prefix, postfix strings.Builder
	seenType := false
	for {
		t, err := r.nextToken2()
		if err != nil {
			break
		}
		switch v := t.(type) {
		case charDataToken:
			text := string(v)
			if !seenType {
				prefix.WriteString(text)
			} else if p.Name == "" {
				postfix.WriteString(text)
			} else {
				applyParamNameTrailer(&p, text)
			}
		case typeToken:
			p.Type.Type = string(v)
			seenType = true
		case nameToken:
			p.Name = string(v)
		}
	}
	p.Type.Prefix = strings.TrimSpace(prefix.String())
	p.Type.Postfix = lexical.NormalizePointerPostfix(strings.TrimSpace(postfix.String()))
	return p, diags
}

func applyParamNameTrailer(p *registry.ParamData, text string) {
	text = strings.TrimSpace(text)
	for len(text) > 0 && text[0] == '[' {
		end := strings.IndexByte(text, ']')
		if end < 0 {
			return
		}
		p.ArraySizes = append(p.ArraySizes, text[1:end])
		text = text[end+1:]
	}
}

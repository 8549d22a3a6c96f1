package gate

import "html/template"

// FuncMap returns the template functions of the gate. Each takes the subject
// as first argument, so templates pass the request's session explicitly:
//
//	{{if can .Session "excluir_contrato"}} ... {{end}}
//	{{if canAny .Session "visualizar_ferias" "visualizar_todas_ferias"}} ... {{end}}
//	{{gate .Session (anyOf "a" "b") "<b>ok</b>" ""}}
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"can": func(s Subject, code string) bool {
			return One(code).Allows(s)
		},
		"canAny": func(s Subject, codes ...string) bool {
			return Any(codes...).Allows(s)
		},
		"canAll": func(s Subject, codes ...string) bool {
			return All(codes...).Allows(s)
		},
		"settled": func(s Subject) bool {
			return Gate{}.Allows(s)
		},
		"oneOf": One,
		"anyOf": Any,
		"allOf": All,
		"gate": func(s Subject, g Gate, children, fallback string) template.HTML {
			return Render(s, g, template.HTML(children), template.HTML(fallback)) //nolint:gosec
		},
	}
}

package rpm

import (
	"regexp"
	"strconv"
	"strings"
)

// Ternary is the verdict of a conditional predicate evaluation
type Ternary int

// Predicate verdicts
const (
	// Unknown leaves the conditional block untouched, markers included
	Unknown Ternary = iota
	True
	False
)

// PredicateEvaluator maps a conditional directive (keyword as written,
// e.g. "if" or "ifarch", plus its expression) to a ternary verdict.
// Evaluation rules are supplied by the caller; see BuildEnv for the
// built-in one.
type PredicateEvaluator func(directive, expr string) Ternary

// FilterConditional strips conditional blocks whose predicate evaluates
// False, unwraps blocks evaluating True (markers removed, content kept)
// and leaves Unknown blocks untouched with their markers intact.
// Blocks using %elif are never evaluated and stay untouched.
func (d *Document) FilterConditional(eval PredicateEvaluator) {
	d.lines = filterConditional(d.lines, eval)
}

func filterConditional(lines []*Line, eval PredicateEvaluator) []*Line {
	out := make([]*Line, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line.Kind != KindConditional || line.Cond != CondIf {
			out = append(out, line)
			continue
		}

		// Locate the matching %else/%endif at the same nesting depth.
		// Parse guarantees the block is terminated.
		depth := 0
		elsePos, endPos := -1, -1
		hasElif := false
		for j := i + 1; j < len(lines) && endPos < 0; j++ {
			l := lines[j]
			if l.Kind != KindConditional {
				continue
			}
			switch l.Cond {
			case CondIf:
				depth++
			case CondEndif:
				if depth == 0 {
					endPos = j
				} else {
					depth--
				}
			case CondElse:
				if depth == 0 && elsePos < 0 {
					elsePos = j
				}
			case CondElif:
				if depth == 0 {
					hasElif = true
				}
			}
		}

		verdict := Unknown
		if eval != nil && !hasElif {
			verdict = eval(line.CondWord, line.CondExpr)
		}

		switch verdict {
		case True:
			body := lines[i+1 : endPos]
			if elsePos >= 0 {
				body = lines[i+1 : elsePos]
			}
			out = append(out, filterConditional(body, eval)...)
		case False:
			if elsePos >= 0 {
				out = append(out, filterConditional(lines[elsePos+1:endPos], eval)...)
			}
		default:
			out = append(out, lines[i:endPos+1]...)
		}
		i = endPos
	}

	return out
}

// BuildEnv describes a target build environment and provides the built-in
// predicate evaluator over it. Zero fields evaluate to Unknown, never to
// a guess.
type BuildEnv struct {
	Arch string
	OS   string
	Vars map[string]string
}

var macroRefRe = regexp.MustCompile(`%\{(\??)([A-Za-z_][A-Za-z0-9_]*)\}|%([A-Za-z_][A-Za-z0-9_]*)`)

// Eval implements PredicateEvaluator for the common conditional forms:
// architecture/OS membership tests and simple integer/string comparisons
// over expanded build variables. Anything it can't decide is Unknown.
func (e BuildEnv) Eval(directive, expr string) Ternary {
	switch directive {
	case "ifarch", "ifnarch":
		return memberTest(e.Arch, expr, directive == "ifnarch")
	case "ifos", "ifnos":
		return memberTest(e.OS, expr, directive == "ifnos")
	case "if":
		return e.evalExpr(expr)
	}
	return Unknown
}

func memberTest(value, list string, negate bool) Ternary {
	if value == "" {
		return Unknown
	}
	found := False
	for _, candidate := range strings.Fields(list) {
		if candidate == value {
			found = True
			break
		}
	}
	if negate {
		return not(found)
	}
	return found
}

func not(t Ternary) Ternary {
	switch t {
	case True:
		return False
	case False:
		return True
	}
	return Unknown
}

func (e BuildEnv) evalExpr(expr string) Ternary {
	resolved := true
	expanded := macroRefRe.ReplaceAllStringFunc(expr, func(ref string) string {
		m := macroRefRe.FindStringSubmatch(ref)
		optional, name := m[1] == "?", m[2]
		if name == "" {
			name = m[3]
		}
		if value, ok := e.Vars[name]; ok {
			return value
		}
		if optional {
			// %{?name} expands to nothing when undefined
			return ""
		}
		resolved = false
		return ref
	})
	if !resolved {
		return Unknown
	}

	tokens := strings.Fields(expanded)
	switch len(tokens) {
	case 1:
		if n, err := strconv.Atoi(tokens[0]); err == nil {
			if n != 0 {
				return True
			}
			return False
		}
	case 3:
		return compare(tokens[0], tokens[1], tokens[2])
	}
	return Unknown
}

func compare(left, op, right string) Ternary {
	ln, lerr := strconv.Atoi(left)
	rn, rerr := strconv.Atoi(right)

	var verdict bool
	if lerr == nil && rerr == nil {
		switch op {
		case "==":
			verdict = ln == rn
		case "!=":
			verdict = ln != rn
		case ">":
			verdict = ln > rn
		case ">=":
			verdict = ln >= rn
		case "<":
			verdict = ln < rn
		case "<=":
			verdict = ln <= rn
		default:
			return Unknown
		}
	} else {
		left, right = strings.Trim(left, `"`), strings.Trim(right, `"`)
		switch op {
		case "==":
			verdict = left == right
		case "!=":
			verdict = left != right
		default:
			return Unknown
		}
	}

	if verdict {
		return True
	}
	return False
}

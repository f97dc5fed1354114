package grammar

type Report struct {
	Rules    []*RuleReport
	Matchers []string
}

type RuleReport struct {
	Name       string
	Definition string
	Nullable   bool

	// Reachable is false when the rule cannot be reached from the root rule.
	Reachable    bool
	References   []string
	ReferencedBy []string
	Matchers     []string
}

// Describe summarises the rules of a grammar and the relations between them.
func Describe(g *Grammar) *Report {
	rs := make([]*RuleReport, len(g.rules))
	refs := make([][]int, len(g.rules))
	for i, r := range g.rules {
		rs[i] = &RuleReport{
			Name:       r.name,
			Definition: r.expr.String(),
			Nullable:   g.nullable[i],
		}

		seenRules := map[int]bool{}
		seenMatchers := map[int]bool{}
		r.expr.walk(func(e *Expr) error {
			switch e.kind {
			case KindRuleRef:
				if !seenRules[e.index] {
					seenRules[e.index] = true
					refs[i] = append(refs[i], e.index)
				}
			case KindCustom:
				if !seenMatchers[e.index] {
					seenMatchers[e.index] = true
					rs[i].Matchers = append(rs[i].Matchers, e.text)
				}
			}
			return nil
		})
	}

	for i, targets := range refs {
		for _, t := range targets {
			rs[i].References = append(rs[i].References, g.rules[t].name)
			rs[t].ReferencedBy = append(rs[t].ReferencedBy, g.rules[i].name)
		}
	}

	queue := []int{0}
	rs[0].Reachable = true
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for _, t := range refs[i] {
			if rs[t].Reachable {
				continue
			}
			rs[t].Reachable = true
			queue = append(queue, t)
		}
	}

	var ms []string
	for _, m := range g.matchers {
		ms = append(ms, m.Name())
	}

	return &Report{
		Rules:    rs,
		Matchers: ms,
	}
}

package processors

import (
	"fmt"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
	"strings"

	"github.com/xlab/treeprint"
)

// Step is one test of the decision list: if Pattern matches, bind Bindings,
// then evaluate Guard (if any); on success run the body of ArmIndex.
// Alternative counts the or-alternatives of an arm from zero.
type Step struct {
	ArmIndex    int
	Alternative int
	Pattern     typed.Pattern
	Bindings    []typed.BindingPath
	Guard       typed.Expression
}

// Plan is the arm-ordered decision list for a match. Steps are tried in order
// and the first successful one wins.
type Plan struct {
	Steps []Step
}

func buildPlan(match *typed.Match, limit int) (*Plan, error) {
	plan := &Plan{}
	for i, arm := range match.Arms {
		alts, err := typed.Alternatives(arm.Pattern, limit)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStepLimit, err)
		}
		for j, alt := range alts {
			paths, err := typed.BindingPaths(alt, match.Scrutinee)
			if err != nil {
				return nil, err
			}
			plan.Steps = append(plan.Steps, Step{
				ArmIndex:    i,
				Alternative: j,
				Pattern:     alt,
				Bindings:    paths,
				Guard:       arm.Guard,
			})
		}
	}
	return plan, nil
}

// StepsOf returns the steps generated for one arm.
func (p *Plan) StepsOf(arm int) []Step {
	return common.Filter(func(s Step) bool { return s.ArmIndex == arm }, p.Steps)
}

func (p *Plan) Tree() treeprint.Tree {
	tree := treeprint.New()
	for _, s := range p.Steps {
		label := fmt.Sprintf("arm %d", s.ArmIndex)
		if s.Alternative > 0 {
			label += fmt.Sprintf(" (alternative %d)", s.Alternative)
		}
		branch := tree.AddBranch(fmt.Sprintf("%s: %v", label, s.Pattern))
		for _, b := range s.Bindings {
			branch.AddNode(b.String())
		}
		if s.Guard != nil {
			branch.AddNode("if " + s.Guard.String())
		}
	}
	return tree
}

func (p *Plan) String() string {
	return strings.TrimRight(p.Tree().String(), "\n")
}

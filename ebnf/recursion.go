package ebnf

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/exp/ebnf"
)

// ErrLeftRecursion is returned by Compile for grammars in which a production
// can reach itself without consuming input.
var ErrLeftRecursion = errors.New("left recursion")

func checkLeftRecursion(g ebnf.Grammar) error {
	nullable := nullableSet(g)

	edges := make(map[string][]string, len(g))
	for name, prod := range g {
		edges[name] = slices.Sorted(maps.Keys(leading(prod.Expr, nullable)))
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(g))
	var path []string
	var visit func(string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			i := slices.Index(path, name)
			cycle := append(slices.Clone(path[i:]), name)
			return fmt.Errorf("%w: %s", ErrLeftRecursion, strings.Join(cycle, " -> "))
		case done:
			return nil
		}
		state[name] = visiting
		path = append(path, name)
		for _, next := range edges[name] {
			if err := visit(next); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(g)) {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// nullableSet returns the productions that can match the empty string.
func nullableSet(g ebnf.Grammar) map[string]bool {
	nullable := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for name, prod := range g {
			if !nullable[name] && isNullable(prod.Expr, nullable) {
				nullable[name] = true
				changed = true
			}
		}
	}
	return nullable
}

func isNullable(x ebnf.Expression, nullable map[string]bool) bool {
	switch x := x.(type) {
	case nil:
		return true
	case ebnf.Alternative:
		return slices.ContainsFunc(x, func(e ebnf.Expression) bool { return isNullable(e, nullable) })
	case ebnf.Sequence:
		for _, e := range x {
			if !isNullable(e, nullable) {
				return false
			}
		}
		return true
	case *ebnf.Group:
		return isNullable(x.Body, nullable)
	case *ebnf.Option, *ebnf.Repetition:
		return true
	case *ebnf.Token:
		return x.String == ""
	case *ebnf.Name:
		return nullable[x.String]
	}
	return false
}

// leading returns the productions x may invoke before consuming input.
func leading(x ebnf.Expression, nullable map[string]bool) map[string]bool {
	names := make(map[string]bool)
	var walk func(ebnf.Expression)
	walk = func(x ebnf.Expression) {
		switch x := x.(type) {
		case ebnf.Alternative:
			for _, e := range x {
				walk(e)
			}
		case ebnf.Sequence:
			for _, e := range x {
				walk(e)
				if !isNullable(e, nullable) {
					return
				}
			}
		case *ebnf.Group:
			walk(x.Body)
		case *ebnf.Option:
			walk(x.Body)
		case *ebnf.Repetition:
			walk(x.Body)
		case *ebnf.Name:
			names[x.String] = true
		}
	}
	walk(x)
	return names
}

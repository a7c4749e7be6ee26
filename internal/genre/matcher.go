// Reelmatch - Description-based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package genre

import "strings"

// matcher is a case-insensitive Aho-Corasick automaton. It reports every
// pattern occurring anywhere in a text in a single pass, which makes it
// equivalent to a substring test per pattern.
//
// A matcher is built once and never mutated afterwards, so concurrent
// searches need no locking.
type matcher struct {
	root     *acNode
	patterns []pattern
}

type pattern struct {
	text  string
	label int
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices into matcher.patterns
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// newMatcher builds the automaton. Empty patterns are ignored.
func newMatcher(patterns []pattern) *matcher {
	m := &matcher{root: newACNode()}
	for _, p := range patterns {
		if p.text == "" {
			continue
		}
		p.text = strings.ToLower(p.text)
		m.patterns = append(m.patterns, p)
		m.insert(len(m.patterns)-1, p.text)
	}
	m.buildFailureLinks()
	return m
}

func (m *matcher) insert(index int, text string) {
	node := m.root
	for _, ch := range text {
		next := node.children[ch]
		if next == nil {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	node.output = append(node.output, index)
}

// buildFailureLinks links every node to its longest proper suffix present
// in the trie, breadth first.
func (m *matcher) buildFailureLinks() {
	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// labels returns the set of labels whose patterns occur in text.
func (m *matcher) labels(text string) map[int]struct{} {
	found := make(map[int]struct{})
	if len(m.patterns) == 0 {
		return found
	}

	node := m.root
	for _, ch := range strings.ToLower(text) {
		for node != m.root && node.children[ch] == nil {
			node = node.failure
		}
		if next := node.children[ch]; next != nil {
			node = next
		}
		for _, idx := range node.output {
			found[m.patterns[idx].label] = struct{}{}
		}
	}
	return found
}

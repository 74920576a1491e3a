// Copyright 2025 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cpp

func (s *Scrubber) currentConditional() *conditionalInfo {
	return &s.directive.ifdef[s.directive.nestLevel]
}

func (s *Scrubber) isIgnore() bool {
	return s.directive.ifdef[s.directive.nestLevel].ignoring
}

func (s *Scrubber) setIgnore(ignore bool) bool {
	s.directive.ifdef[s.directive.nestLevel].ignoring = ignore
	return ignore
}

// isIgnoreBranch decides whether the branch starting at an #elif or #else
// contributes characters to the stream.
func (s *Scrubber) isIgnoreBranch() bool {
	ifdef := s.currentConditional()

	// Force a single branch if an incomplete statement is discovered en
	// route. Earlier branches containing complete statements may have been
	// followed, but no further branches can be.
	if s.resolveRequired && !s.braceFormat {
		ifdef.singleBranch = true
	}

	// The branch is ignored when all branches of the conditional are
	// ignored (it sits inside an ignored branch of the parent), or a
	// branch has already been chosen and only one may be followed.
	return ifdef.ignoreAllBranches || (ifdef.branchChosen && ifdef.singleBranch)
}

// chooseBranch commits to the branch at an #else that is not ignored.
func (s *Scrubber) chooseBranch() {
	if !s.braceFormat {
		ifdef := s.currentConditional()
		ifdef.branchChosen = ifdef.singleBranch || s.resolveRequired
	}
}

// pushConditional enters one nesting level for an #if directive and
// reports whether its first branch is ignored. firstBranchChosen is false
// only when the controlling expression starts with '0'. Nesting beyond the
// fixed maximum is silently clamped; stack integrity is preserved.
func (s *Scrubber) pushConditional(firstBranchChosen bool) bool {
	ignoreAllBranches := s.isIgnore() // current ignore state
	ignoreBranch := false

	if s.directive.nestLevel < maxNestingLevel-1 {
		s.directive.nestLevel++
		ifdef := s.currentConditional()

		// Snapshot whether an incomplete statement is in progress upon
		// encountering the conditional. If so, only a single branch of the
		// conditional may be followed.
		ifdef.ignoreAllBranches = ignoreAllBranches
		ifdef.singleBranch = s.resolveRequired
		ifdef.branchChosen = firstBranchChosen
		ifdef.ignoring = ignoreAllBranches ||
			(!firstBranchChosen && !s.braceFormat &&
				(ifdef.singleBranch || !s.opts.If0))
		ignoreBranch = ifdef.ignoring
	}
	return ignoreBranch
}

// popConditional leaves one nesting level for an #endif directive and
// reports the ignore state of the enclosing level. Underflow is guarded.
func (s *Scrubber) popConditional() bool {
	if s.directive.nestLevel > 0 {
		s.directive.nestLevel--
	}
	return s.isIgnore()
}

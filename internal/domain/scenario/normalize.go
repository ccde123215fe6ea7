package scenario

import (
	"strings"

	"github.com/qagen/qagen/pkg/names"
)

// normalizeTestCases returns copies of tcs with defaults filled in: a
// placeholder name, a prerequisite list whose length matches PreReqCount,
// default apps and a trimmed TestRail link. The input is not modified.
func normalizeTestCases(tcs []TestCase) []TestCase {
	out := make([]TestCase, len(tcs))
	for i, tc := range tcs {
		name := strings.TrimSpace(tc.Name)
		if name == "" {
			name = DefaultTestCaseName(i)
		}

		count := tc.PreReqCount
		if count <= 0 {
			count = len(tc.PreReqs)
		}
		if count < 1 {
			count = 1
		}

		reqs := make([]PreReq, count)
		for j := range reqs {
			reqs[j] = PreReq{App: DefaultApp}
			if j < len(tc.PreReqs) {
				if app := tc.PreReqs[j].App; app != "" {
					reqs[j].App = app
				}
				reqs[j].Custom = strings.TrimSpace(tc.PreReqs[j].Custom)
			}
		}

		out[i] = TestCase{
			ID:           tc.ID,
			Name:         name,
			PreReqCount:  count,
			PreReqs:      reqs,
			TestRailLink: strings.TrimSpace(tc.TestRailLink),
		}
	}
	return out
}

// CleanNames rewrites each test case name with names.Normalize. A name that
// normalizes to nothing falls back to the placeholder for its position.
func CleanNames(data ScenarioData) ScenarioData {
	tcs := make([]TestCase, len(data.TestCases))
	copy(tcs, data.TestCases)
	for i := range tcs {
		if strings.TrimSpace(tcs[i].Name) == "" {
			continue
		}
		n := names.Normalize(tcs[i].Name)
		if n == "" {
			n = DefaultTestCaseName(i)
		}
		tcs[i].Name = n
	}
	data.TestCases = tcs
	return data
}

// Warnings returns the raw names (scenario first, then test cases) that
// would be flagged by names.HasWarning.
func Warnings(data ScenarioData) []names.Result {
	var out []names.Result
	if names.HasWarning(data.ScenarioName) {
		out = append(out, names.Check(data.ScenarioName))
	}
	for _, tc := range data.TestCases {
		if names.HasWarning(tc.Name) {
			out = append(out, names.Check(tc.Name))
		}
	}
	return out
}

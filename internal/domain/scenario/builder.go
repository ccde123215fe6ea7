package scenario

import (
	"fmt"
	"strings"

	"github.com/qagen/qagen/internal/apperr"
	"github.com/qagen/qagen/internal/platform/artifact"
)

// Script is one generated file. Name carries no extension.
type Script struct {
	Folder  string
	Name    string
	Content string
}

// FileName returns the archive file name of the script.
func (s Script) FileName() string { return ScriptFile(s.Name) }

// Bundle is the full set of scripts for a scenario.
type Bundle struct {
	Scenario string
	Scripts  []Script
}

// ByFolder returns the scripts stored under folder, in generation order.
func (b *Bundle) ByFolder(folder string) []Script {
	var out []Script
	for _, s := range b.Scripts {
		if s.Folder == folder {
			out = append(out, s)
		}
	}
	return out
}

// Zip lays the bundle out as <scenario>.zip.
func (b *Bundle) Zip() (*artifact.ZipBuilder, error) {
	z := artifact.NewZip(b.Scenario+".zip", Folders...)
	for _, s := range b.Scripts {
		if err := z.Add(s.Folder, s.FileName(), []byte(s.Content)); err != nil {
			return nil, apperr.Validation("%s", err.Error())
		}
	}
	return z, nil
}

// Validate checks the inputs that must be present before anything is built.
func Validate(data ScenarioData) error {
	if strings.TrimSpace(data.ScenarioName) == "" || strings.TrimSpace(data.Author) == "" {
		return apperr.Validation("Scenario name and author are required.")
	}
	if len(data.TestCases) == 0 {
		return apperr.Validation("At least one test case is required.")
	}
	if unsafeName(data.ScenarioName) {
		return apperr.Validation("Scenario name %q must not contain path separators or \"..\".", strings.TrimSpace(data.ScenarioName))
	}
	for _, tc := range data.TestCases {
		if unsafeName(tc.Name) {
			return apperr.Validation("Test case name %q must not contain path separators or \"..\".", strings.TrimSpace(tc.Name))
		}
	}
	return nil
}

// unsafeName reports names that would leave or reshape the archive layout
// once used as a file stem.
func unsafeName(name string) bool {
	return strings.ContainsAny(name, `/\`) || strings.Contains(name, "..")
}

// Build renders every script for data. It fails before rendering anything
// when Validate fails or when two test cases share a name.
func Build(data ScenarioData) (*Bundle, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	scenario := strings.TrimSpace(data.ScenarioName)
	author := strings.TrimSpace(data.Author)
	cases := normalizeTestCases(data.TestCases)

	seen := make(map[string]bool, len(cases))
	maxPre := 0
	for _, tc := range cases {
		if seen[tc.Name] {
			return nil, apperr.Validation("Duplicate test case name %q.", tc.Name)
		}
		seen[tc.Name] = true
		maxPre = max(maxPre, len(tc.PreReqs))
	}

	testsApp := data.TestsApp
	if testsApp == "" {
		testsApp = DefaultApp
	}
	testsApp = ApplicationName(testsApp, data.TestsAppCustom)

	b := &Bundle{Scenario: scenario}

	for _, tc := range cases {
		for i, req := range tc.PreReqs {
			level := i + 1
			name := PreReqScriptName(tc.Name, level, len(tc.PreReqs))
			content, err := render(preReqScriptT, scriptVars{
				Author:   author,
				App:      req.Application(),
				Workflow: PreReqWorkflowName(scenario, level, maxPre),
				Name:     name,
			})
			if err != nil {
				return nil, fmt.Errorf("render prerequisite %s: %w", name, err)
			}
			b.Scripts = append(b.Scripts, Script{Folder: FolderPreReqs, Name: name, Content: content})
		}
	}

	for level := 1; level <= maxPre; level++ {
		wf := workflowVars{Scenario: scenario}
		for _, tc := range cases {
			if len(tc.PreReqs) < level {
				continue
			}
			wf.Branches = append(wf.Branches, branch{
				Key:    TestScriptName(tc.Name),
				Target: ScriptRef(FolderPreReqs, PreReqScriptName(tc.Name, level, len(tc.PreReqs))),
			})
		}
		name := PreReqWorkflowName(scenario, level, maxPre)
		content, err := render(preReqWorkflowT, wf)
		if err != nil {
			return nil, fmt.Errorf("render prerequisite workflow %s: %w", name, err)
		}
		b.Scripts = append(b.Scripts, Script{Folder: FolderPreReqWorkflows, Name: name, Content: content})
	}

	wf := workflowVars{Scenario: scenario}
	for _, tc := range cases {
		name := TestScriptName(tc.Name)
		wf.Branches = append(wf.Branches, branch{Key: name, Target: ScriptRef(FolderTests, name)})
	}
	content, err := render(mainWorkflowT, wf)
	if err != nil {
		return nil, fmt.Errorf("render workflow %s: %w", scenario, err)
	}
	b.Scripts = append(b.Scripts, Script{Folder: FolderWorkflow, Name: scenario, Content: content})

	for _, tc := range cases {
		name := TestScriptName(tc.Name)
		content, err := render(testScriptT, scriptVars{
			Author:       author,
			App:          testsApp,
			Workflow:     scenario,
			Name:         name,
			TestRailLink: tc.TestRailLink,
		})
		if err != nil {
			return nil, fmt.Errorf("render test %s: %w", name, err)
		}
		b.Scripts = append(b.Scripts, Script{Folder: FolderTests, Name: name, Content: content})
	}

	return b, nil
}

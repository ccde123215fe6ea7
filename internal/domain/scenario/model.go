package scenario

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultApp       = "PowerChart"
	CustomApp        = "Custom"
	DefaultCustomApp = "CustomApp"
)

// KnownApps lists the applications offered for prerequisites and tests.
var KnownApps = []string{DefaultApp, "Revenue Cycle", "Database Update", CustomApp}

// PreReq names the application a prerequisite runs against. Custom is used
// only when App is "Custom".
type PreReq struct {
	App    string `json:"app" yaml:"app"`
	Custom string `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// Application resolves the display name of the prerequisite's application.
func (p PreReq) Application() string {
	return ApplicationName(p.App, p.Custom)
}

// TestCase is one test within a scenario.
type TestCase struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	PreReqCount  int      `json:"pre_req_count" yaml:"pre_req_count"`
	PreReqs      []PreReq `json:"pre_reqs" yaml:"pre_reqs"`
	TestRailLink string   `json:"test_rail_link,omitempty" yaml:"test_rail_link,omitempty"`
}

// NewTestCase returns the placeholder test case shown for position index
// (0-based).
func NewTestCase(index int) TestCase {
	return TestCase{
		ID:          uuid.NewString(),
		Name:        DefaultTestCaseName(index),
		PreReqCount: 1,
		PreReqs:     []PreReq{{App: DefaultApp}},
	}
}

// DefaultTestCaseName is the placeholder name for position index (0-based).
func DefaultTestCaseName(index int) string {
	return fmt.Sprintf("Test_Case_%d", index+1)
}

// Resize sets the prerequisite count to n (minimum 1), appending default
// prerequisites or truncating the tail. Other fields are left untouched.
func (tc *TestCase) Resize(n int) {
	if n < 1 {
		n = 1
	}
	switch {
	case n > len(tc.PreReqs):
		for i := len(tc.PreReqs); i < n; i++ {
			tc.PreReqs = append(tc.PreReqs, PreReq{App: DefaultApp})
		}
	case n < len(tc.PreReqs):
		tc.PreReqs = tc.PreReqs[:n]
	}
	tc.PreReqCount = n
}

// ScenarioData is everything needed to generate a scenario's scripts.
type ScenarioData struct {
	ScenarioName   string     `json:"scenario_name" yaml:"scenario_name"`
	Author         string     `json:"author" yaml:"author"`
	TestCases      []TestCase `json:"test_cases" yaml:"test_cases"`
	TestsApp       string     `json:"tests_app" yaml:"tests_app"`
	TestsAppCustom string     `json:"tests_app_custom,omitempty" yaml:"tests_app_custom,omitempty"`
}

// ApplicationName returns custom (or DefaultCustomApp) for the Custom app
// and app otherwise.
func ApplicationName(app, custom string) string {
	if app != CustomApp {
		return app
	}
	if c := strings.TrimSpace(custom); c != "" {
		return c
	}
	return DefaultCustomApp
}

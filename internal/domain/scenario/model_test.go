package scenario

import "testing"

func TestNewTestCase(t *testing.T) {
	tc := NewTestCase(2)
	if tc.Name != "Test_Case_3" {
		t.Errorf("expected Test_Case_3, got %s", tc.Name)
	}
	if tc.ID == "" {
		t.Error("expected id to be generated")
	}
	if tc.PreReqCount != 1 || len(tc.PreReqs) != 1 || tc.PreReqs[0].App != DefaultApp {
		t.Errorf("unexpected prerequisites: %+v", tc)
	}
}

func TestResize_Grow(t *testing.T) {
	tc := TestCase{ID: "tc-1", Name: "Login", PreReqCount: 1, PreReqs: []PreReq{{App: "Revenue Cycle"}}, TestRailLink: "https://tr/1"}
	tc.Resize(3)

	if tc.PreReqCount != 3 || len(tc.PreReqs) != 3 {
		t.Fatalf("expected 3 prerequisites, got count=%d len=%d", tc.PreReqCount, len(tc.PreReqs))
	}
	if tc.PreReqs[0].App != "Revenue Cycle" {
		t.Errorf("existing prerequisite changed: %+v", tc.PreReqs[0])
	}
	if tc.PreReqs[2].App != DefaultApp {
		t.Errorf("expected appended default, got %+v", tc.PreReqs[2])
	}
	if tc.Name != "Login" || tc.ID != "tc-1" || tc.TestRailLink != "https://tr/1" {
		t.Errorf("unrelated fields changed: %+v", tc)
	}
}

func TestResize_Shrink(t *testing.T) {
	tc := TestCase{Name: "Login", PreReqs: []PreReq{{App: "A"}, {App: "B"}, {App: "C"}}}
	tc.Resize(1)
	if tc.PreReqCount != 1 || len(tc.PreReqs) != 1 || tc.PreReqs[0].App != "A" {
		t.Errorf("unexpected prerequisites after shrink: %+v", tc)
	}

	tc.Resize(0)
	if tc.PreReqCount != 1 || len(tc.PreReqs) != 1 {
		t.Errorf("expected minimum of 1, got %+v", tc)
	}
}

func TestApplicationName(t *testing.T) {
	tests := []struct {
		app, custom, want string
	}{
		{"PowerChart", "", "PowerChart"},
		{"PowerChart", "Ignored", "PowerChart"},
		{"Custom", "  Cerner Millennium ", "Cerner Millennium"},
		{"Custom", "", DefaultCustomApp},
		{"Custom", "   ", DefaultCustomApp},
	}
	for _, tt := range tests {
		if got := ApplicationName(tt.app, tt.custom); got != tt.want {
			t.Errorf("ApplicationName(%q, %q) = %q, want %q", tt.app, tt.custom, got, tt.want)
		}
	}
}

func TestNormalizeTestCases(t *testing.T) {
	in := []TestCase{
		{Name: "  ", PreReqCount: 0, PreReqs: nil},
		{Name: "Two", PreReqCount: 0, PreReqs: []PreReq{{App: "A"}, {App: ""}}},
		{Name: "Three", PreReqCount: 3, PreReqs: []PreReq{{App: "Custom", Custom: " X "}}, TestRailLink: " link "},
	}
	out := normalizeTestCases(in)

	if out[0].Name != "Test_Case_1" || len(out[0].PreReqs) != 1 {
		t.Errorf("unexpected first case: %+v", out[0])
	}
	if len(out[1].PreReqs) != 2 || out[1].PreReqs[1].App != DefaultApp {
		t.Errorf("unexpected second case: %+v", out[1])
	}
	if out[2].PreReqCount != 3 || out[2].PreReqs[0].Custom != "X" || out[2].PreReqs[2].App != DefaultApp {
		t.Errorf("unexpected third case: %+v", out[2])
	}
	if out[2].TestRailLink != "link" {
		t.Errorf("expected trimmed link, got %q", out[2].TestRailLink)
	}
	if in[1].PreReqs[1].App != "" {
		t.Error("input must not be modified")
	}
}

func TestCleanNames(t *testing.T) {
	data := ScenarioData{TestCases: []TestCase{{Name: "Foo  Bar"}, {Name: "!!!"}, {Name: ""}}}
	out := CleanNames(data)

	if out.TestCases[0].Name != "Foo_Bar" {
		t.Errorf("expected Foo_Bar, got %s", out.TestCases[0].Name)
	}
	if out.TestCases[1].Name != "Test_Case_2" {
		t.Errorf("expected placeholder, got %s", out.TestCases[1].Name)
	}
	if out.TestCases[2].Name != "" {
		t.Errorf("blank names are left for defaulting, got %s", out.TestCases[2].Name)
	}
	if data.TestCases[0].Name != "Foo  Bar" {
		t.Error("input must not be modified")
	}
}

func TestWarnings(t *testing.T) {
	data := ScenarioData{ScenarioName: "Bad Scenario", TestCases: []TestCase{{Name: "ok_name"}, {Name: "bad__name"}}}
	w := Warnings(data)
	if len(w) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(w))
	}
	if w[0].Value != "Bad Scenario" || w[1].Normalized != "bad_name" {
		t.Errorf("unexpected warnings: %+v", w)
	}
}

package scenario

import "strconv"

// Every script name and archive path is derived here. The main workflow
// matches test-data rows on TestScriptName, so emitters must not rebuild
// these strings themselves.

const (
	TestPrefix   = "TCP1_"
	PreReqPrefix = "PreReq_"
	ScriptExt    = ".script"

	FolderPreReqs         = "PreRequisites"
	FolderPreReqWorkflows = "PreReq_Workflow"
	FolderTests           = "Tests"
	FolderWorkflow        = "Workflow"
)

// Folders is the fixed top-level archive layout.
var Folders = []string{FolderPreReqs, FolderPreReqWorkflows, FolderTests, FolderWorkflow}

// TestScriptName is the script name of a test case and the key its
// test-data rows carry in the TestCase column.
func TestScriptName(tcName string) string {
	return TestPrefix + tcName
}

// PreReqScriptName names the level-th (1-based) prerequisite of a test case
// with count prerequisites. The index suffix appears only when the test case
// itself has more than one prerequisite.
func PreReqScriptName(tcName string, level, count int) string {
	name := PreReqPrefix + tcName
	if count > 1 {
		name += "_" + strconv.Itoa(level)
	}
	return name
}

// PreReqWorkflowName names the prerequisite workflow for level. The level
// suffix appears only when some test case in the scenario has more than one
// prerequisite (maxPre > 1).
func PreReqWorkflowName(scenario string, level, maxPre int) string {
	name := PreReqPrefix + scenario
	if maxPre > 1 {
		name += "_" + strconv.Itoa(level)
	}
	return name
}

// ScriptFile appends the script extension.
func ScriptFile(name string) string {
	return name + ScriptExt
}

// ScriptRef is how one script invokes another: folder/name without extension.
func ScriptRef(folder, name string) string {
	return folder + "/" + name
}

package scenario

import (
	"strings"
	"text/template"
)

const testScriptTmpl = `#Author: {{.Author}}
#Application: {{.App}}
#Workflow: {{.Workflow}}
#Test Case Name: {{.Name}}
#TestRail Link: {{.TestRailLink}}

(*Prerequisites

*)

Params 
BeginTestCase "{{.Name}}"
Try
	//Add Code Here
Catch
	LogError "{{.Name}} has failed" && The Exception
	CaptureScreen "{{.Name}}_Failure"
	Put The Result
End Try
EndTestCase "{{.Name}}"`

const preReqScriptTmpl = `#Author: {{.Author}}
#Application: {{.App}}
#Workflow: {{.Workflow}}
#Test Case Name: {{.Name}}

(*Prerequisites
*)

Params 

BeginTestCase "{{.Name}}"
Try
	//Add Code Here
Catch
	LogError "Test Case: {{.Name}} has failed" && The Exception
	CaptureScreen "{{.Name}}_Failure"
	Put The Result
End Try
EndTestCase "{{.Name}}"`

const preReqWorkflowTmpl = `Global TestDataConnection
Set ScenarioRows = the records of TestDataConnection where Scenario is "{{.Scenario}}"

Repeat With Each Scenario in ScenarioRows By Reference
{{range .Branches}}If Trim(Scenario.TestCase) is "{{.Key}}" Then
	Set ReturnData = "{{.Target}}"(Scenario.PatientMRN)
End If

{{end}}End Repeat`

const mainWorkflowTmpl = `Global TestDataConnection
Set TestDataRows = the records of TestDataConnection where Scenario is "{{.Scenario}}"

Repeat With Each TestData in TestDataRows By Reference
{{range .Branches}}If Trim(TestData.TestCase) is "{{.Key}}" Then 
	RunWithNewResults "{{.Target}}", TestData.PatientMRN
End If
{{end}}End Repeat`

var (
	testScriptT     = template.Must(template.New("test").Parse(testScriptTmpl))
	preReqScriptT   = template.Must(template.New("prereq").Parse(preReqScriptTmpl))
	preReqWorkflowT = template.Must(template.New("prereq_workflow").Parse(preReqWorkflowTmpl))
	mainWorkflowT   = template.Must(template.New("workflow").Parse(mainWorkflowTmpl))
)

type scriptVars struct {
	Author       string
	App          string
	Workflow     string
	Name         string
	TestRailLink string
}

// branch is one conditional in a workflow: rows whose TestCase equals Key
// run Target.
type branch struct {
	Key    string
	Target string
}

type workflowVars struct {
	Scenario string
	Branches []branch
}

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

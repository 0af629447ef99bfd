package parser

import (
	"testing"

	"tabtidy/internal/diag"
	"tabtidy/internal/source"
	"tabtidy/internal/table"
)

func parse(t *testing.T, content string) (*table.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.robot", []byte(content))
	bag := diag.NewBag(32)
	f := ParseFile(fs.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})
	return f, bag
}

func TestParseFile_Sections(t *testing.T) {
	f, bag := parse(t, `*** Settings ***
Library    Collections

*** Variables ***
${NAME}    value

*** Test Cases ***
First
    Log    hello
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(f.Sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(f.Sections))
	}
	if f.Sections[0].Kind != table.SectionSettings {
		t.Errorf("section 0 kind = %v", f.Sections[0].Kind)
	}
	if f.Sections[1].Kind != table.SectionVariables {
		t.Errorf("section 1 kind = %v", f.Sections[1].Kind)
	}

	setting := f.Sections[0].Body.Statements()
	if len(setting) != 1 {
		t.Fatalf("settings rows = %d, want 1", len(setting))
	}
	if setting[0].Cells[0].Role != table.RoleSettingName || setting[0].Cells[1].Role != table.RoleSettingValue {
		t.Errorf("setting roles = %v/%v", setting[0].Cells[0].Role, setting[0].Cells[1].Role)
	}

	tc := f.Sections[2]
	if len(tc.Cases) != 1 {
		t.Fatalf("cases = %d, want 1", len(tc.Cases))
	}
	if tc.Cases[0].Name.Cells[0].Text != "First" {
		t.Errorf("case name = %q", tc.Cases[0].Name.Cells[0].Text)
	}
	steps := tc.Cases[0].Body.Statements()
	if len(steps) != 1 || steps[0].Cells[0].Text != "Log" {
		t.Fatalf("steps = %+v", steps)
	}
	if steps[0].Cells[0].Role != table.RoleName || steps[0].Cells[1].Role != table.RoleArgument {
		t.Errorf("step roles = %v/%v", steps[0].Cells[0].Role, steps[0].Cells[1].Role)
	}
}

func TestParseFile_StepRoles(t *testing.T) {
	f, _ := parse(t, `*** Keywords ***
Do Work
    [Arguments]    ${x}    ${y}
    ${result} =    Evaluate    ${x} + ${y}    # sum
    ...    modules=math
`)
	steps := f.Sections[0].Cases[0].Body.Statements()
	if len(steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(steps))
	}

	args := steps[0]
	if args.Cells[0].Role != table.RoleSettingName {
		t.Errorf("[Arguments] role = %v", args.Cells[0].Role)
	}
	if args.Cells[1].Role != table.RoleSettingValue {
		t.Errorf("argument value role = %v", args.Cells[1].Role)
	}
	if !args.HasSettingCells() {
		t.Errorf("HasSettingCells() = false for [Arguments] row")
	}

	assign := steps[1]
	wantRoles := []table.Role{table.RoleAssign, table.RoleName, table.RoleArgument, table.RoleComment}
	for i, want := range wantRoles {
		if assign.Cells[i].Role != want {
			t.Errorf("assign row cell %d role = %v, want %v", i, assign.Cells[i].Role, want)
		}
	}

	cont := steps[2]
	if !cont.Continuation {
		t.Fatalf("continuation flag not set")
	}
	if cont.Cells[0].Role != table.RoleContinuation {
		t.Errorf("marker role = %v", cont.Cells[0].Role)
	}
	if cont.Cells[1].Role != table.RoleArgument {
		t.Errorf("continued value role = %v", cont.Cells[1].Role)
	}
}

func TestParseFile_NestedBlocks(t *testing.T) {
	f, bag := parse(t, `*** Test Cases ***
Looping
    Log    before
    FOR    ${i}    IN RANGE    10
        IF    ${i} > 5
            Log    big
        ELSE
            Log    small
        END
    END
    Log    after
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}

	body := &f.Sections[0].Cases[0].Body
	// direct: Log before, FOR header, END, Log after
	direct := body.Statements()
	if len(direct) != 4 {
		t.Fatalf("direct statements = %d, want 4: %+v", len(direct), direct)
	}
	if direct[1].Cells[0].Text != "FOR" || direct[2].Cells[0].Text != "END" {
		t.Errorf("header/end = %q/%q", direct[1].Cells[0].Text, direct[2].Cells[0].Text)
	}

	var forBlock *table.Block
	for i := range body.Items {
		if body.Items[i].Kind == table.ItemBlock {
			forBlock = body.Items[i].Child
		}
	}
	if forBlock == nil || forBlock.Kind != table.BlockFor || forBlock.Level != 2 {
		t.Fatalf("for block = %+v", forBlock)
	}

	// inside FOR: IF header, ELSE, END are direct; two branch blocks nested
	forDirect := forBlock.Statements()
	if len(forDirect) != 3 {
		t.Fatalf("for-block statements = %d, want 3", len(forDirect))
	}
	branches := 0
	for i := range forBlock.Items {
		if forBlock.Items[i].Kind == table.ItemBlock {
			b := forBlock.Items[i].Child
			if b.Kind != table.BlockIfBranch || b.Level != 3 {
				t.Errorf("branch block = %+v", b)
			}
			branches++
		}
	}
	if branches != 2 {
		t.Errorf("branches = %d, want 2", branches)
	}
}

func TestParseFile_StructureDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    diag.Code
	}{
		{
			name:    "missing end",
			content: "*** Test Cases ***\nT\n    FOR    ${i}    IN    @{xs}\n        Log    ${i}\n",
			code:    diag.SynMissingEnd,
		},
		{
			name:    "unexpected end",
			content: "*** Test Cases ***\nT\n    END\n",
			code:    diag.SynUnexpectedEnd,
		},
		{
			name:    "orphan else",
			content: "*** Test Cases ***\nT\n    ELSE\n",
			code:    diag.SynOrphanBranch,
		},
		{
			name:    "unknown section",
			content: "*** Bogus ***\n",
			code:    diag.SynUnknownSection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parse(t, tt.content)
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					found = true
				}
			}
			if !found {
				t.Fatalf("diagnostic %v not reported, got %+v", tt.code, bag.Items())
			}
		})
	}
}

func TestParseFile_BlankLinePreserved(t *testing.T) {
	f, _ := parse(t, `*** Test Cases ***
T
    Log    one

    Log    two
`)
	steps := f.Sections[0].Cases[0].Body.Statements()
	if len(steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(steps))
	}
	if steps[0].BlankBefore {
		t.Errorf("first step unexpectedly marked BlankBefore")
	}
	if !steps[1].BlankBefore {
		t.Errorf("second step should be marked BlankBefore")
	}
}

package approval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushr/hris-engine-go/internal/domain/employee"
)

type fakeEmployeeRepo struct {
	byID map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeDepartmentRepo struct {
	byID map[string]employee.Department
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, id string) (employee.Department, error) {
	dept, ok := f.byID[id]
	if !ok {
		return employee.Department{}, employee.ErrDepartmentNotFound
	}
	return dept, nil
}

func strPtr(s string) *string { return &s }

// orgFixture builds a three-level tree:
//
//	root (head: ceo)
//	└── engineering (head: eng-head)
//	    └── backend (head: be-head)
func orgFixture() (*fakeEmployeeRepo, *fakeDepartmentRepo) {
	emps := &fakeEmployeeRepo{byID: map[string]employee.Employee{
		"ceo":      {ID: "ceo", DepartmentID: strPtr("root"), PositionLevel: 9},
		"eng-head": {ID: "eng-head", DepartmentID: strPtr("engineering"), PositionLevel: 4},
		"be-head":  {ID: "be-head", DepartmentID: strPtr("backend"), PositionLevel: 3},
		"be-dev":   {ID: "be-dev", DepartmentID: strPtr("backend"), PositionLevel: 1},
		"floater":  {ID: "floater", PositionLevel: 1},
	}}
	depts := &fakeDepartmentRepo{byID: map[string]employee.Department{
		"root":        {ID: "root", HeadID: strPtr("ceo")},
		"engineering": {ID: "engineering", ParentID: strPtr("root"), HeadID: strPtr("eng-head")},
		"backend":     {ID: "backend", ParentID: strPtr("engineering"), HeadID: strPtr("be-head")},
	}}
	return emps, depts
}

func TestResolveSupervisorRegularMember(t *testing.T) {
	emps, depts := orgFixture()
	resolver := NewSupervisorResolver(emps, depts)

	supervisor, err := resolver.ResolveSupervisor(context.Background(), "be-dev")
	require.NoError(t, err)
	require.NotNil(t, supervisor)
	assert.Equal(t, "be-head", *supervisor)
}

func TestResolveSupervisorDepartmentHeadWalksUp(t *testing.T) {
	emps, depts := orgFixture()
	resolver := NewSupervisorResolver(emps, depts)

	supervisor, err := resolver.ResolveSupervisor(context.Background(), "be-head")
	require.NoError(t, err)
	require.NotNil(t, supervisor)
	assert.Equal(t, "eng-head", *supervisor)
}

func TestResolveSupervisorExecutiveSkipsChain(t *testing.T) {
	emps, depts := orgFixture()
	resolver := NewSupervisorResolver(emps, depts)

	supervisor, err := resolver.ResolveSupervisor(context.Background(), "ceo")
	require.NoError(t, err)
	assert.Nil(t, supervisor)
}

func TestResolveSupervisorRootHeadBelowExecutiveLevel(t *testing.T) {
	emps, depts := orgFixture()
	emps.byID["ceo"] = employee.Employee{ID: "ceo", DepartmentID: strPtr("root"), PositionLevel: 4}
	resolver := NewSupervisorResolver(emps, depts)

	// Head of the root department has nobody above them.
	supervisor, err := resolver.ResolveSupervisor(context.Background(), "ceo")
	require.NoError(t, err)
	assert.Nil(t, supervisor)
}

func TestResolveSupervisorNoDepartment(t *testing.T) {
	emps, depts := orgFixture()
	resolver := NewSupervisorResolver(emps, depts)

	supervisor, err := resolver.ResolveSupervisor(context.Background(), "floater")
	require.NoError(t, err)
	assert.Nil(t, supervisor)
}

func TestResolveSupervisorSkipsSelfInAncestorChain(t *testing.T) {
	emps, depts := orgFixture()
	// be-head also heads engineering; the walk must not return them for
	// their own request.
	depts.byID["engineering"] = employee.Department{
		ID: "engineering", ParentID: strPtr("root"), HeadID: strPtr("be-head"),
	}
	resolver := NewSupervisorResolver(emps, depts)

	supervisor, err := resolver.ResolveSupervisor(context.Background(), "be-head")
	require.NoError(t, err)
	require.NotNil(t, supervisor)
	assert.Equal(t, "ceo", *supervisor)
}

func TestResolveSupervisorUnknownEmployee(t *testing.T) {
	emps, depts := orgFixture()
	resolver := NewSupervisorResolver(emps, depts)

	_, err := resolver.ResolveSupervisor(context.Background(), "ghost")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

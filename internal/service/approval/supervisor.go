package approval

import (
	"context"
	"fmt"

	"github.com/campushr/hris-engine-go/internal/domain/approval"
	"github.com/campushr/hris-engine-go/internal/domain/employee"
)

// executiveLevel is the position level at or above which requests skip the
// supervisor stage entirely.
const executiveLevel = 6

type supervisorResolver struct {
	employeeRepo   employee.Repository
	departmentRepo employee.DepartmentRepository
}

func NewSupervisorResolver(employeeRepo employee.Repository, departmentRepo employee.DepartmentRepository) approval.SupervisorResolver {
	return &supervisorResolver{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
	}
}

// ResolveSupervisor walks the department tree to find who must act first on
// the employee's request. A nil result means the chain starts at HR:
// executives, employees with no department, heads of root departments and
// anyone with no distinct head above them all skip the supervisor stage.
func (r *supervisorResolver) ResolveSupervisor(ctx context.Context, employeeID string) (*string, error) {
	emp, err := r.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	if emp.PositionLevel >= executiveLevel {
		return nil, nil
	}
	if emp.DepartmentID == nil {
		return nil, nil
	}

	dept, err := r.departmentRepo.GetByID(ctx, *emp.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("get department: %w", err)
	}

	// A department head cannot report to themselves: start the walk from
	// the parent department instead.
	if dept.HeadID != nil && *dept.HeadID == emp.ID {
		if dept.IsRoot() {
			return nil, nil
		}
		dept, err = r.departmentRepo.GetByID(ctx, *dept.ParentID)
		if err != nil {
			return nil, fmt.Errorf("get parent department: %w", err)
		}
	}

	for {
		if dept.HeadID != nil && *dept.HeadID != emp.ID {
			head := *dept.HeadID
			return &head, nil
		}
		if dept.ParentID == nil {
			return nil, nil
		}
		dept, err = r.departmentRepo.GetByID(ctx, *dept.ParentID)
		if err != nil {
			return nil, fmt.Errorf("get parent department: %w", err)
		}
	}
}

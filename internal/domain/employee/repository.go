package employee

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (Department, error)
}

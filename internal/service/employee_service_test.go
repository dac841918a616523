package service

import (
	"context"
	"testing"

	"github.com/skill-matrix-api/internal/domain"
	"github.com/skill-matrix-api/internal/dto"
)

func TestEmployeeDeleteBlockedWhileManager(t *testing.T) {
	ctx := context.Background()
	empRepo := newMockEmployeeRepo()
	svc := NewEmployeeService(empRepo, newMockJobLevelRepo())

	manager := seedEmployee(t, empRepo, "Руководитель", "Senior")
	report := &domain.Employee{Name: "Подчинённый", ManagerID: &manager.ID}
	if err := empRepo.Create(ctx, report); err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}

	err := svc.Delete(ctx, manager.ID)
	if err != domain.ErrEmployeeIsManager {
		t.Fatalf("expected ErrEmployeeIsManager, got %v", err)
	}

	// Отказ не должен ничего менять
	if _, getErr := empRepo.GetByID(ctx, manager.ID); getErr != nil {
		t.Errorf("manager must still exist after rejected delete: %v", getErr)
	}
}

func TestEmployeeDeleteAfterReportsReassigned(t *testing.T) {
	ctx := context.Background()
	empRepo := newMockEmployeeRepo()
	svc := NewEmployeeService(empRepo, newMockJobLevelRepo())

	manager := seedEmployee(t, empRepo, "Руководитель", "Senior")
	other := seedEmployee(t, empRepo, "Другой", "Senior")
	report := &domain.Employee{Name: "Подчинённый", ManagerID: &manager.ID}
	if err := empRepo.Create(ctx, report); err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}

	if _, err := svc.Update(ctx, report.ID, &dto.UpdateEmployeeRequest{ManagerID: &other.ID}); err != nil {
		t.Fatalf("reassign failed: %v", err)
	}

	if err := svc.Delete(ctx, manager.ID); err != nil {
		t.Fatalf("delete after reassign must succeed: %v", err)
	}
}

func TestEmployeeUpdateRejectsSelfManager(t *testing.T) {
	ctx := context.Background()
	empRepo := newMockEmployeeRepo()
	svc := NewEmployeeService(empRepo, newMockJobLevelRepo())

	emp := seedEmployee(t, empRepo, "Анна", "Middle")

	_, err := svc.Update(ctx, emp.ID, &dto.UpdateEmployeeRequest{ManagerID: &emp.ID})
	if err != domain.ErrSelfManager {
		t.Fatalf("expected ErrSelfManager, got %v", err)
	}
}

func TestEmployeeUpdateRejectsManagerCycle(t *testing.T) {
	ctx := context.Background()
	empRepo := newMockEmployeeRepo()
	svc := NewEmployeeService(empRepo, newMockJobLevelRepo())

	top := seedEmployee(t, empRepo, "Верх", "Senior")
	middle := &domain.Employee{Name: "Середина", ManagerID: &top.ID}
	if err := empRepo.Create(ctx, middle); err != nil {
		t.Fatalf("failed to seed middle: %v", err)
	}
	bottom := &domain.Employee{Name: "Низ", ManagerID: &middle.ID}
	if err := empRepo.Create(ctx, bottom); err != nil {
		t.Fatalf("failed to seed bottom: %v", err)
	}

	// Верхнему нельзя назначить руководителем собственного подчинённого
	_, err := svc.Update(ctx, top.ID, &dto.UpdateEmployeeRequest{ManagerID: &bottom.ID})
	if err != domain.ErrManagerCycle {
		t.Fatalf("expected ErrManagerCycle, got %v", err)
	}
}

func TestEmployeeCreateRequiresExistingManager(t *testing.T) {
	svc := NewEmployeeService(newMockEmployeeRepo(), newMockJobLevelRepo())

	missing := int64(99)
	_, err := svc.Create(context.Background(), nil, &dto.CreateEmployeeRequest{
		Name:      "Новичок",
		ManagerID: &missing,
	})
	if err != domain.ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeCreateParsesHireDate(t *testing.T) {
	empRepo := newMockEmployeeRepo()
	svc := NewEmployeeService(empRepo, newMockJobLevelRepo())

	hireDate := "2023-05-15"
	emp, err := svc.Create(context.Background(), nil, &dto.CreateEmployeeRequest{
		Name:     "  Анна  ",
		HireDate: &hireDate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.Name != "Анна" {
		t.Errorf("expected trimmed name, got %q", emp.Name)
	}
	if emp.HireDate == nil || emp.HireDate.Format("2006-01-02") != hireDate {
		t.Errorf("unexpected hire date: %v", emp.HireDate)
	}
}

func TestEmployeeCreateRejectsUnknownJobLevel(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(newMockEmployeeRepo(), newMockJobLevelRepo())

	_, err := svc.Create(ctx, nil, &dto.CreateEmployeeRequest{
		Name:     "Анна",
		JobLevel: "Principal",
	})
	if err != domain.ErrUnknownJobLevel {
		t.Fatalf("expected ErrUnknownJobLevel, got %v", err)
	}
}

func TestEmployeeCreateWithDefinedJobLevel(t *testing.T) {
	ctx := context.Background()
	levelRepo := newMockJobLevelRepo()
	if err := levelRepo.Create(ctx, &domain.JobLevel{Name: "Middle"}); err != nil {
		t.Fatalf("failed to seed level: %v", err)
	}
	svc := NewEmployeeService(newMockEmployeeRepo(), levelRepo)

	emp, err := svc.Create(ctx, nil, &dto.CreateEmployeeRequest{
		Name:     "Анна",
		JobLevel: "Middle",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.JobLevel != "Middle" {
		t.Errorf("expected job level 'Middle', got %q", emp.JobLevel)
	}
}

func TestEmployeeUpdateRejectsUnknownJobLevel(t *testing.T) {
	ctx := context.Background()
	empRepo := newMockEmployeeRepo()
	svc := NewEmployeeService(empRepo, newMockJobLevelRepo())

	emp := seedEmployee(t, empRepo, "Анна", "")

	unknown := "Principal"
	_, err := svc.Update(ctx, emp.ID, &dto.UpdateEmployeeRequest{JobLevel: &unknown})
	if err != domain.ErrUnknownJobLevel {
		t.Fatalf("expected ErrUnknownJobLevel, got %v", err)
	}
}

func TestEmployeeUpdateClearsManager(t *testing.T) {
	ctx := context.Background()
	empRepo := newMockEmployeeRepo()
	svc := NewEmployeeService(empRepo, newMockJobLevelRepo())

	manager := seedEmployee(t, empRepo, "Руководитель", "")
	report := &domain.Employee{Name: "Подчинённый", ManagerID: &manager.ID}
	if err := empRepo.Create(ctx, report); err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}

	updated, err := svc.Update(ctx, report.ID, &dto.UpdateEmployeeRequest{ClearManager: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ManagerID != nil {
		t.Fatalf("expected manager to be detached, got %v", *updated.ManagerID)
	}

	// После отвязки бывший руководитель удаляется без конфликта
	if err := svc.Delete(ctx, manager.ID); err != nil {
		t.Fatalf("delete after detach must succeed: %v", err)
	}
}

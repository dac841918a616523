package service

import (
	"context"
	"sort"

	"github.com/skill-matrix-api/internal/domain"
)

// mockEmployeeRepo - in-memory реализация репозитория сотрудников
type mockEmployeeRepo struct {
	employees map[int64]*domain.Employee
	nextID    int64
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[int64]*domain.Employee), nextID: 1}
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *domain.Employee) error {
	emp.ID = m.nextID
	m.nextID++
	stored := *emp
	m.employees[emp.ID] = &stored
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	copied := *emp
	return &copied, nil
}

func (m *mockEmployeeRepo) List(_ context.Context, orgID *int64, department string, managerID *int64) ([]domain.Employee, error) {
	result := make([]domain.Employee, 0)
	for _, emp := range m.employees {
		if orgID != nil && (emp.OrganizationID == nil || *emp.OrganizationID != *orgID) {
			continue
		}
		if department != "" && emp.Department != department {
			continue
		}
		if managerID != nil && (emp.ManagerID == nil || *emp.ManagerID != *managerID) {
			continue
		}
		result = append(result, *emp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *domain.Employee) error {
	if _, ok := m.employees[emp.ID]; !ok {
		return domain.ErrEmployeeNotFound
	}
	stored := *emp
	m.employees[emp.ID] = &stored
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeRepo) GetDirectReports(_ context.Context, managerID int64) ([]domain.Employee, error) {
	return m.List(context.Background(), nil, "", &managerID)
}

func (m *mockEmployeeRepo) CountByManager(_ context.Context, managerID int64) (int64, error) {
	var count int64
	for _, emp := range m.employees {
		if emp.ManagerID != nil && *emp.ManagerID == managerID {
			count++
		}
	}
	return count, nil
}

func (m *mockEmployeeRepo) CountByJobLevel(_ context.Context, orgID *int64, levelName string) (int64, error) {
	var count int64
	for _, emp := range m.employees {
		if orgID != nil && (emp.OrganizationID == nil || *emp.OrganizationID != *orgID) {
			continue
		}
		if emp.JobLevel == levelName {
			count++
		}
	}
	return count, nil
}

// mockAssessmentRepo - in-memory журнал оценок
type mockAssessmentRepo struct {
	skillRows []domain.SkillAssessment
	compRows  []domain.CompetencyAssessment
	nextID    int64
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{nextID: 1}
}

func (m *mockAssessmentRepo) CreateSkill(_ context.Context, a *domain.SkillAssessment) error {
	a.ID = m.nextID
	m.nextID++
	m.skillRows = append(m.skillRows, *a)
	return nil
}

func (m *mockAssessmentRepo) CreateCompetency(_ context.Context, a *domain.CompetencyAssessment) error {
	a.ID = m.nextID
	m.nextID++
	m.compRows = append(m.compRows, *a)
	return nil
}

func orgVisible(rowOrg, orgID *int64) bool {
	if orgID == nil || rowOrg == nil {
		return true
	}
	return *rowOrg == *orgID
}

func (m *mockAssessmentRepo) LatestSkill(_ context.Context, employeeID int64, competency, skill, assessmentType string, orgID *int64) (*domain.SkillAssessment, error) {
	var found *domain.SkillAssessment
	for i := range m.skillRows {
		row := m.skillRows[i]
		if row.EmployeeID != employeeID || row.Competency != competency || row.Skill != skill {
			continue
		}
		if assessmentType != "" && row.AssessmentType != assessmentType {
			continue
		}
		if !orgVisible(row.OrganizationID, orgID) {
			continue
		}
		if found == nil || row.AssessmentDate.After(found.AssessmentDate) ||
			(row.AssessmentDate.Equal(found.AssessmentDate) && row.ID > found.ID) {
			copied := row
			found = &copied
		}
	}
	if found == nil {
		return nil, domain.ErrAssessmentNotFound
	}
	return found, nil
}

func (m *mockAssessmentRepo) LatestCompetency(_ context.Context, employeeID int64, competency, assessmentType string, orgID *int64) (*domain.CompetencyAssessment, error) {
	var found *domain.CompetencyAssessment
	for i := range m.compRows {
		row := m.compRows[i]
		if row.EmployeeID != employeeID || row.Competency != competency {
			continue
		}
		if assessmentType != "" && row.AssessmentType != assessmentType {
			continue
		}
		if !orgVisible(row.OrganizationID, orgID) {
			continue
		}
		if found == nil || row.AssessmentDate.After(found.AssessmentDate) ||
			(row.AssessmentDate.Equal(found.AssessmentDate) && row.ID > found.ID) {
			copied := row
			found = &copied
		}
	}
	if found == nil {
		return nil, domain.ErrAssessmentNotFound
	}
	return found, nil
}

func (m *mockAssessmentRepo) ListSkillByEmployees(_ context.Context, employeeIDs []int64, assessmentType string, orgID *int64) ([]domain.SkillAssessment, error) {
	ids := make(map[int64]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		ids[id] = true
	}

	result := make([]domain.SkillAssessment, 0)
	for _, row := range m.skillRows {
		if !ids[row.EmployeeID] {
			continue
		}
		if assessmentType != "" && row.AssessmentType != assessmentType {
			continue
		}
		if !orgVisible(row.OrganizationID, orgID) {
			continue
		}
		result = append(result, row)
	}
	return result, nil
}

func (m *mockAssessmentRepo) ListCompetencyByEmployees(_ context.Context, employeeIDs []int64, assessmentType string, orgID *int64) ([]domain.CompetencyAssessment, error) {
	ids := make(map[int64]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		ids[id] = true
	}

	result := make([]domain.CompetencyAssessment, 0)
	for _, row := range m.compRows {
		if !ids[row.EmployeeID] {
			continue
		}
		if assessmentType != "" && row.AssessmentType != assessmentType {
			continue
		}
		if !orgVisible(row.OrganizationID, orgID) {
			continue
		}
		result = append(result, row)
	}
	return result, nil
}

func (m *mockAssessmentRepo) HistorySkill(_ context.Context, employeeID int64, competency, skill string, orgID *int64) ([]domain.SkillAssessment, error) {
	result := make([]domain.SkillAssessment, 0)
	for _, row := range m.skillRows {
		if row.EmployeeID != employeeID || row.Competency != competency || row.Skill != skill {
			continue
		}
		if !orgVisible(row.OrganizationID, orgID) {
			continue
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].AssessmentDate.Equal(result[j].AssessmentDate) {
			return result[i].AssessmentDate.Before(result[j].AssessmentDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockAssessmentRepo) HistoryCompetency(_ context.Context, employeeID int64, competency string, orgID *int64) ([]domain.CompetencyAssessment, error) {
	result := make([]domain.CompetencyAssessment, 0)
	for _, row := range m.compRows {
		if row.EmployeeID != employeeID || row.Competency != competency {
			continue
		}
		if !orgVisible(row.OrganizationID, orgID) {
			continue
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].AssessmentDate.Equal(result[j].AssessmentDate) {
			return result[i].AssessmentDate.Before(result[j].AssessmentDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// mockExpectationRepo - in-memory реализация репозитория ожиданий
type mockExpectationRepo struct {
	skillExps []domain.SkillExpectation
	compExps  []domain.CompetencyExpectation
	nextID    int64
}

func newMockExpectationRepo() *mockExpectationRepo {
	return &mockExpectationRepo{nextID: 1}
}

func sameOrg(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *mockExpectationRepo) UpsertSkill(_ context.Context, exp *domain.SkillExpectation) error {
	for i := range m.skillExps {
		e := &m.skillExps[i]
		if e.JobLevel == exp.JobLevel && e.Competency == exp.Competency && e.Skill == exp.Skill && sameOrg(e.OrganizationID, exp.OrganizationID) {
			e.ExpectedScore = exp.ExpectedScore
			*exp = *e
			return nil
		}
	}
	exp.ID = m.nextID
	m.nextID++
	m.skillExps = append(m.skillExps, *exp)
	return nil
}

func (m *mockExpectationRepo) UpsertCompetency(_ context.Context, exp *domain.CompetencyExpectation) error {
	for i := range m.compExps {
		e := &m.compExps[i]
		if e.JobLevel == exp.JobLevel && e.Competency == exp.Competency && sameOrg(e.OrganizationID, exp.OrganizationID) {
			e.ExpectedScore = exp.ExpectedScore
			*exp = *e
			return nil
		}
	}
	exp.ID = m.nextID
	m.nextID++
	m.compExps = append(m.compExps, *exp)
	return nil
}

func (m *mockExpectationRepo) GetSkill(_ context.Context, jobLevel, competency, skill string, orgID *int64) (*domain.SkillExpectation, error) {
	var shared *domain.SkillExpectation
	for i := range m.skillExps {
		e := m.skillExps[i]
		if e.JobLevel != jobLevel || e.Competency != competency || e.Skill != skill {
			continue
		}
		// Без организации видна только общая строка
		if orgID == nil && e.OrganizationID != nil {
			continue
		}
		if !orgVisible(e.OrganizationID, orgID) {
			continue
		}
		if e.OrganizationID != nil {
			copied := e
			return &copied, nil
		}
		copied := e
		shared = &copied
	}
	return shared, nil
}

func (m *mockExpectationRepo) GetCompetency(_ context.Context, jobLevel, competency string, orgID *int64) (*domain.CompetencyExpectation, error) {
	var shared *domain.CompetencyExpectation
	for i := range m.compExps {
		e := m.compExps[i]
		if e.JobLevel != jobLevel || e.Competency != competency {
			continue
		}
		if orgID == nil && e.OrganizationID != nil {
			continue
		}
		if !orgVisible(e.OrganizationID, orgID) {
			continue
		}
		if e.OrganizationID != nil {
			copied := e
			return &copied, nil
		}
		copied := e
		shared = &copied
	}
	return shared, nil
}

func (m *mockExpectationRepo) ListSkillByLevel(_ context.Context, jobLevel string, orgID *int64) ([]domain.SkillExpectation, error) {
	result := make([]domain.SkillExpectation, 0)
	for _, e := range m.skillExps {
		if e.JobLevel != jobLevel {
			continue
		}
		if !orgVisible(e.OrganizationID, orgID) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *mockExpectationRepo) ListCompetencyByLevel(_ context.Context, jobLevel string, orgID *int64) ([]domain.CompetencyExpectation, error) {
	result := make([]domain.CompetencyExpectation, 0)
	for _, e := range m.compExps {
		if e.JobLevel != jobLevel {
			continue
		}
		if !orgVisible(e.OrganizationID, orgID) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

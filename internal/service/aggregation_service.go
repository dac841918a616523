package service

import (
	"context"
	"sort"

	"github.com/skill-matrix-api/internal/domain"
	"github.com/skill-matrix-api/internal/repository"
)

// MatrixRow - строка матрицы средних: среднее арифметическое по всем
// историческим строкам журнала в группе, без сведения к последним значениям
type MatrixRow struct {
	Competency     string
	Skill          string
	AssessmentType string
	Mean           float64
	Count          int
}

// RadarRow - строка командного радара: среднее последних значений
// по участникам, у которых есть хотя бы одна оценка ключа
type RadarRow struct {
	Competency string
	Skill      string
	Mean       float64
	Members    int
}

// AggregationService определяет интерфейс механизма агрегации.
// Матрицы считают среднее по всей истории; радар сначала сводит
// каждого участника к последнему значению. Оба поведения различны
// и не взаимозаменяемы.
type AggregationService interface {
	EmployeeSkillMatrix(ctx context.Context, employeeID int64, orgID *int64) ([]MatrixRow, error)
	EmployeeCompetencyMatrix(ctx context.Context, employeeID int64, orgID *int64) ([]MatrixRow, error)
	TeamSkillMatrix(ctx context.Context, managerID *int64, department string, orgID *int64) ([]MatrixRow, error)
	TeamCompetencyMatrix(ctx context.Context, managerID *int64, department string, orgID *int64) ([]MatrixRow, error)
	TeamSkillRadar(ctx context.Context, managerID int64, assessmentType string, orgID *int64) ([]RadarRow, error)
	TeamCompetencyRadar(ctx context.Context, managerID int64, assessmentType string, orgID *int64) ([]RadarRow, error)
}

type aggregationService struct {
	assessRepo repository.AssessmentRepository
	empRepo    repository.EmployeeRepository
}

// NewAggregationService создаёт новый экземпляр сервиса
func NewAggregationService(assessRepo repository.AssessmentRepository, empRepo repository.EmployeeRepository) AggregationService {
	return &aggregationService{
		assessRepo: assessRepo,
		empRepo:    empRepo,
	}
}

func (s *aggregationService) EmployeeSkillMatrix(ctx context.Context, employeeID int64, orgID *int64) ([]MatrixRow, error) {
	if _, err := s.empRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	rows, err := s.assessRepo.ListSkillByEmployees(ctx, []int64{employeeID}, "", orgID)
	if err != nil {
		return nil, err
	}
	return skillGroupMeans(rows), nil
}

// EmployeeCompetencyMatrix считает средние только по строкам журнала
// оценок компетенций: значения не выводятся из оценок навыков
func (s *aggregationService) EmployeeCompetencyMatrix(ctx context.Context, employeeID int64, orgID *int64) ([]MatrixRow, error) {
	if _, err := s.empRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	rows, err := s.assessRepo.ListCompetencyByEmployees(ctx, []int64{employeeID}, "", orgID)
	if err != nil {
		return nil, err
	}
	return competencyGroupMeans(rows), nil
}

// resolveTeam возвращает состав команды: прямые подчинённые руководителя
// (один уровень) либо сотрудники подразделения
func (s *aggregationService) resolveTeam(ctx context.Context, managerID *int64, department string, orgID *int64) ([]int64, error) {
	var members []domain.Employee
	var err error

	if managerID != nil {
		if _, err := s.empRepo.GetByID(ctx, *managerID); err != nil {
			return nil, err
		}
		members, err = s.empRepo.GetDirectReports(ctx, *managerID)
	} else {
		members, err = s.empRepo.List(ctx, orgID, department, nil)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (s *aggregationService) TeamSkillMatrix(ctx context.Context, managerID *int64, department string, orgID *int64) ([]MatrixRow, error) {
	ids, err := s.resolveTeam(ctx, managerID, department, orgID)
	if err != nil {
		return nil, err
	}

	rows, err := s.assessRepo.ListSkillByEmployees(ctx, ids, "", orgID)
	if err != nil {
		return nil, err
	}
	return skillGroupMeans(rows), nil
}

func (s *aggregationService) TeamCompetencyMatrix(ctx context.Context, managerID *int64, department string, orgID *int64) ([]MatrixRow, error) {
	ids, err := s.resolveTeam(ctx, managerID, department, orgID)
	if err != nil {
		return nil, err
	}

	rows, err := s.assessRepo.ListCompetencyByEmployees(ctx, ids, "", orgID)
	if err != nil {
		return nil, err
	}
	return competencyGroupMeans(rows), nil
}

func (s *aggregationService) TeamSkillRadar(ctx context.Context, managerID int64, assessmentType string, orgID *int64) ([]RadarRow, error) {
	ids, err := s.resolveTeam(ctx, &managerID, "", orgID)
	if err != nil {
		return nil, err
	}

	rows, err := s.assessRepo.ListSkillByEmployees(ctx, ids, assessmentType, orgID)
	if err != nil {
		return nil, err
	}
	return skillRadarMeans(rows), nil
}

func (s *aggregationService) TeamCompetencyRadar(ctx context.Context, managerID int64, assessmentType string, orgID *int64) ([]RadarRow, error) {
	ids, err := s.resolveTeam(ctx, &managerID, "", orgID)
	if err != nil {
		return nil, err
	}

	rows, err := s.assessRepo.ListCompetencyByEmployees(ctx, ids, assessmentType, orgID)
	if err != nil {
		return nil, err
	}
	return competencyRadarMeans(rows), nil
}

type skillGroupKey struct {
	competency string
	skill      string
	typ        string
}

type competencyGroupKey struct {
	competency string
	typ        string
}

// skillGroupMeans группирует строки журнала по (компетенция, навык, тип)
// и считает среднее по всем строкам группы. Пустой вход даёт пустой
// результат, не ошибку.
func skillGroupMeans(rows []domain.SkillAssessment) []MatrixRow {
	sums := make(map[skillGroupKey]float64)
	counts := make(map[skillGroupKey]int)

	for _, row := range rows {
		key := skillGroupKey{competency: row.Competency, skill: row.Skill, typ: row.AssessmentType}
		sums[key] += row.Score
		counts[key]++
	}

	result := make([]MatrixRow, 0, len(sums))
	for key, sum := range sums {
		result = append(result, MatrixRow{
			Competency:     key.competency,
			Skill:          key.skill,
			AssessmentType: key.typ,
			Mean:           sum / float64(counts[key]),
			Count:          counts[key],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Competency != result[j].Competency {
			return result[i].Competency < result[j].Competency
		}
		if result[i].Skill != result[j].Skill {
			return result[i].Skill < result[j].Skill
		}
		return result[i].AssessmentType < result[j].AssessmentType
	})
	return result
}

// competencyGroupMeans группирует по (компетенция, тип) с той же семантикой
func competencyGroupMeans(rows []domain.CompetencyAssessment) []MatrixRow {
	sums := make(map[competencyGroupKey]float64)
	counts := make(map[competencyGroupKey]int)

	for _, row := range rows {
		key := competencyGroupKey{competency: row.Competency, typ: row.AssessmentType}
		sums[key] += row.Score
		counts[key]++
	}

	result := make([]MatrixRow, 0, len(sums))
	for key, sum := range sums {
		result = append(result, MatrixRow{
			Competency:     key.competency,
			AssessmentType: key.typ,
			Mean:           sum / float64(counts[key]),
			Count:          counts[key],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Competency != result[j].Competency {
			return result[i].Competency < result[j].Competency
		}
		return result[i].AssessmentType < result[j].AssessmentType
	})
	return result
}

// latestSkillPerKey сводит строки к последнему значению на ключ
// (сотрудник, компетенция, навык): максимальная дата, при равенстве
// побеждает больший id
func latestSkillPerKey(rows []domain.SkillAssessment) map[skillMemberKey]domain.SkillAssessment {
	latest := make(map[skillMemberKey]domain.SkillAssessment)
	for _, row := range rows {
		key := skillMemberKey{employeeID: row.EmployeeID, competency: row.Competency, skill: row.Skill}
		prev, ok := latest[key]
		if !ok || row.AssessmentDate.After(prev.AssessmentDate) ||
			(row.AssessmentDate.Equal(prev.AssessmentDate) && row.ID > prev.ID) {
			latest[key] = row
		}
	}
	return latest
}

// latestCompetencyPerKey - то же для оценок компетенций
func latestCompetencyPerKey(rows []domain.CompetencyAssessment) map[competencyMemberKey]domain.CompetencyAssessment {
	latest := make(map[competencyMemberKey]domain.CompetencyAssessment)
	for _, row := range rows {
		key := competencyMemberKey{employeeID: row.EmployeeID, competency: row.Competency}
		prev, ok := latest[key]
		if !ok || row.AssessmentDate.After(prev.AssessmentDate) ||
			(row.AssessmentDate.Equal(prev.AssessmentDate) && row.ID > prev.ID) {
			latest[key] = row
		}
	}
	return latest
}

type skillMemberKey struct {
	employeeID int64
	competency string
	skill      string
}

type competencyMemberKey struct {
	employeeID int64
	competency string
}

type radarKey struct {
	competency string
	skill      string
}

// skillRadarMeans сначала сводит каждого участника к последнему значению
// по ключу, затем усредняет по участникам. Участник без оценки ключа
// не попадает в знаменатель этого ключа.
func skillRadarMeans(rows []domain.SkillAssessment) []RadarRow {
	latest := latestSkillPerKey(rows)

	sums := make(map[radarKey]float64)
	counts := make(map[radarKey]int)
	for key, row := range latest {
		rk := radarKey{competency: key.competency, skill: key.skill}
		sums[rk] += row.Score
		counts[rk]++
	}

	result := make([]RadarRow, 0, len(sums))
	for key, sum := range sums {
		result = append(result, RadarRow{
			Competency: key.competency,
			Skill:      key.skill,
			Mean:       sum / float64(counts[key]),
			Members:    counts[key],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Competency != result[j].Competency {
			return result[i].Competency < result[j].Competency
		}
		return result[i].Skill < result[j].Skill
	})
	return result
}

// competencyRadarMeans - радар на уровне компетенций
func competencyRadarMeans(rows []domain.CompetencyAssessment) []RadarRow {
	latest := latestCompetencyPerKey(rows)

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for key, row := range latest {
		sums[key.competency] += row.Score
		counts[key.competency]++
	}

	result := make([]RadarRow, 0, len(sums))
	for competency, sum := range sums {
		result = append(result, RadarRow{
			Competency: competency,
			Mean:       sum / float64(counts[competency]),
			Members:    counts[competency],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Competency < result[j].Competency
	})
	return result
}

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/skill-matrix-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	empHandler   *EmployeeHandler
	compHandler  *CompetencyHandler
	levelHandler *JobLevelHandler
	assHandler   *AssessmentHandler
	expHandler   *ExpectationHandler
	repHandler   *ReportHandler
	orgHandler   *OrganizationHandler
}

// NewRouter создаёт новый роутер
func NewRouter(
	empHandler *EmployeeHandler,
	compHandler *CompetencyHandler,
	levelHandler *JobLevelHandler,
	assHandler *AssessmentHandler,
	expHandler *ExpectationHandler,
	repHandler *ReportHandler,
	orgHandler *OrganizationHandler,
	logger *slog.Logger,
) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		logger:       logger,
		empHandler:   empHandler,
		compHandler:  compHandler,
		levelHandler: levelHandler,
		assHandler:   assHandler,
		expHandler:   expHandler,
		repHandler:   repHandler,
		orgHandler:   orgHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.mux.HandleFunc("/employees", r.employeesRouter)
	r.mux.HandleFunc("/employees/", r.employeesRouter)
	r.mux.HandleFunc("/competencies", r.competenciesRouter)
	r.mux.HandleFunc("/competencies/", r.competenciesRouter)
	r.mux.HandleFunc("/skills", r.skillsRouter)
	r.mux.HandleFunc("/skills/", r.skillsRouter)
	r.mux.HandleFunc("/job-levels", r.jobLevelsRouter)
	r.mux.HandleFunc("/job-levels/", r.jobLevelsRouter)
	r.mux.HandleFunc("/assessments/", r.assessmentsRouter)
	r.mux.HandleFunc("/expectations", r.expectationsRouter)
	r.mux.HandleFunc("/expectations/", r.expectationsRouter)
	r.mux.HandleFunc("/teams/", r.teamsRouter)
	r.mux.HandleFunc("/organizations", r.organizationsRouter)
	r.mux.HandleFunc("/organizations/", r.organizationsRouter)
	r.mux.HandleFunc("/invitations/accept", r.acceptInvitation)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware; Organization снаружи Logger, чтобы
	// идентификатор организации уже лежал в контексте при логировании
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Organization(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
}

func notFound(w http.ResponseWriter) {
	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

func invalidID(w http.ResponseWriter) {
	http.Error(w, `{"error":"invalid id"}`, http.StatusBadRequest)
}

// employeesRouter обрабатывает все запросы к /employees
func (r *Router) employeesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/employees")
	path = strings.Trim(path, "/")

	if path == "" {
		switch req.Method {
		case http.MethodPost:
			r.empHandler.Create(w, req)
		case http.MethodGet:
			r.empHandler.List(w, req)
		default:
			methodNotAllowed(w)
		}
		return
	}

	parts := strings.Split(path, "/")
	id, err := parseID(parts[0])
	if err != nil {
		invalidID(w)
		return
	}

	switch {
	case len(parts) == 1:
		// /employees/{id}
		switch req.Method {
		case http.MethodGet:
			r.empHandler.GetByID(w, req, id)
		case http.MethodPatch:
			r.empHandler.Update(w, req, id)
		case http.MethodDelete:
			r.empHandler.Delete(w, req, id)
		default:
			methodNotAllowed(w)
		}

	case len(parts) == 2 && parts[1] == "reports":
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		r.empHandler.Reports(w, req, id)

	case len(parts) == 2 && parts[1] == "matrix":
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		r.repHandler.EmployeeMatrix(w, req, id)

	case len(parts) == 2 && parts[1] == "gaps":
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		r.repHandler.EmployeeGaps(w, req, id)

	case len(parts) == 3 && parts[1] == "assessments" && parts[2] == "latest":
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		r.assHandler.Latest(w, req, id)

	case len(parts) == 3 && parts[1] == "assessments" && parts[2] == "history":
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		r.assHandler.History(w, req, id)

	default:
		notFound(w)
	}
}

// competenciesRouter обрабатывает все запросы к /competencies
func (r *Router) competenciesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/competencies")
	path = strings.Trim(path, "/")

	if path == "" {
		switch req.Method {
		case http.MethodPost:
			r.compHandler.Create(w, req)
		case http.MethodGet:
			r.compHandler.List(w, req)
		default:
			methodNotAllowed(w)
		}
		return
	}

	parts := strings.Split(path, "/")
	id, err := parseID(parts[0])
	if err != nil {
		invalidID(w)
		return
	}

	switch {
	case len(parts) == 1:
		// /competencies/{id}
		switch req.Method {
		case http.MethodGet:
			r.compHandler.GetByID(w, req, id)
		case http.MethodPatch:
			r.compHandler.Update(w, req, id)
		case http.MethodDelete:
			r.compHandler.Delete(w, req, id)
		default:
			methodNotAllowed(w)
		}

	case len(parts) == 2 && parts[1] == "skills":
		switch req.Method {
		case http.MethodPost:
			r.compHandler.CreateSkill(w, req, id)
		case http.MethodGet:
			r.compHandler.ListSkills(w, req, id)
		default:
			methodNotAllowed(w)
		}

	default:
		notFound(w)
	}
}

// skillsRouter обрабатывает запросы к /skills/{id}
func (r *Router) skillsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/skills")
	path = strings.Trim(path, "/")

	if path == "" {
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		r.compHandler.ListAllSkills(w, req)
		return
	}

	id, err := parseID(path)
	if err != nil {
		invalidID(w)
		return
	}

	switch req.Method {
	case http.MethodPatch:
		r.compHandler.UpdateSkill(w, req, id)
	case http.MethodDelete:
		r.compHandler.DeleteSkill(w, req, id)
	default:
		methodNotAllowed(w)
	}
}

// jobLevelsRouter обрабатывает все запросы к /job-levels
func (r *Router) jobLevelsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/job-levels")
	path = strings.Trim(path, "/")

	if path == "" {
		switch req.Method {
		case http.MethodPost:
			r.levelHandler.Create(w, req)
		case http.MethodGet:
			r.levelHandler.List(w, req)
		default:
			methodNotAllowed(w)
		}
		return
	}

	id, err := parseID(path)
	if err != nil {
		invalidID(w)
		return
	}

	switch req.Method {
	case http.MethodGet:
		r.levelHandler.GetByID(w, req, id)
	case http.MethodPatch:
		r.levelHandler.Update(w, req, id)
	case http.MethodDelete:
		r.levelHandler.Delete(w, req, id)
	default:
		methodNotAllowed(w)
	}
}

// assessmentsRouter обрабатывает запись оценок
func (r *Router) assessmentsRouter(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimPrefix(req.URL.Path, "/assessments")
	path = strings.Trim(path, "/")

	switch path {
	case "skill":
		r.assHandler.RecordSkill(w, req)
	case "competency":
		r.assHandler.RecordCompetency(w, req)
	default:
		notFound(w)
	}
}

// expectationsRouter обрабатывает запросы к /expectations
func (r *Router) expectationsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/expectations")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		r.expHandler.List(w, req)
	case "skill":
		if req.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		r.expHandler.UpsertSkill(w, req)
	case "competency":
		if req.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		r.expHandler.UpsertCompetency(w, req)
	default:
		notFound(w)
	}
}

// teamsRouter обрабатывает командные отчёты: /teams/{manager_id}/matrix,
// /teams/{manager_id}/radar и /teams/matrix?department=
func (r *Router) teamsRouter(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := strings.TrimPrefix(req.URL.Path, "/teams")
	path = strings.Trim(path, "/")
	parts := strings.Split(path, "/")

	// Вариант без руководителя: команда задаётся подразделением
	if len(parts) == 1 && parts[0] == "matrix" {
		r.repHandler.TeamMatrix(w, req, nil)
		return
	}

	if len(parts) != 2 {
		notFound(w)
		return
	}

	id, err := parseID(parts[0])
	if err != nil {
		invalidID(w)
		return
	}

	switch parts[1] {
	case "matrix":
		r.repHandler.TeamMatrix(w, req, &id)
	case "radar":
		r.repHandler.TeamRadar(w, req, id)
	default:
		notFound(w)
	}
}

// organizationsRouter обрабатывает все запросы к /organizations
func (r *Router) organizationsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/organizations")
	path = strings.Trim(path, "/")

	if path == "" {
		if req.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		r.orgHandler.Create(w, req)
		return
	}

	parts := strings.Split(path, "/")
	id, err := parseID(parts[0])
	if err != nil {
		invalidID(w)
		return
	}

	switch {
	case len(parts) == 1:
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		r.orgHandler.GetByID(w, req, id)

	case len(parts) == 2 && parts[1] == "invitations":
		if req.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		r.orgHandler.CreateInvitation(w, req, id)

	default:
		notFound(w)
	}
}

func (r *Router) acceptInvitation(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	r.orgHandler.AcceptInvitation(w, req)
}

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"formae/internal/domain/announcement"
	"formae/internal/domain/event"
	"formae/internal/domain/finance"
	"formae/internal/domain/poll"
	"formae/internal/domain/user"
	"formae/internal/domain/vote"
	"formae/internal/platform/apperr"
	jwtpkg "formae/internal/platform/jwt"
	"formae/internal/worker"
)

var validate = validator.New()

type Handler struct {
	userSvc  *user.Service
	pollSvc  *poll.Service
	voteSvc  *vote.Service
	annSvc   *announcement.Service
	eventSvc *event.Service
	finSvc   *finance.Service
	jwtMgr   *jwtpkg.Manager
	tokenTTL time.Duration
	eventCh  chan<- worker.ChangeEvent
	db       *sql.DB
}

func NewRouter(
	userSvc *user.Service,
	pollSvc *poll.Service,
	voteSvc *vote.Service,
	annSvc *announcement.Service,
	eventSvc *event.Service,
	finSvc *finance.Service,
	jwtMgr *jwtpkg.Manager,
	tokenTTL time.Duration,
	eventCh chan<- worker.ChangeEvent,
	db *sql.DB,
) http.Handler {
	h := &Handler{
		userSvc:  userSvc,
		pollSvc:  pollSvc,
		voteSvc:  voteSvc,
		annSvc:   annSvc,
		eventSvc: eventSvc,
		finSvc:   finSvc,
		jwtMgr:   jwtMgr,
		tokenTTL: tokenTTL,
		eventCh:  eventCh,
		db:       db,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.handleRegister)
		r.Post("/auth/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtMgr))

			r.Get("/polls", h.handleListPolls)
			r.Get("/polls/{id}", h.handleGetPoll)
			r.With(RateLimitVotes(rate.Every(time.Minute/10), 3)).Post("/polls/{id}/vote", h.handleVote)
			r.Get("/polls/{id}/results", h.handlePollResults)
			r.Get("/polls/{id}/my-vote", h.handleMyVote)

			r.Get("/announcements", h.handleListAnnouncements)
			r.Get("/events", h.handleListEvents)
			r.Get("/events/{id}", h.handleGetEvent)

			r.Get("/me", h.handleGetProfile)
			r.Patch("/me", h.handleUpdateProfile)
			r.Get("/me/installments", h.handleMyInstallments)

			r.Get("/transactions", h.handleListTransactions)
			r.Get("/transactions/summary", h.handleFinanceSummary)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(user.RoleAdmin))

				r.Post("/polls", h.handleCreatePoll)
				r.Post("/polls/{id}/close", h.handleClosePoll)
				r.Delete("/polls/{id}", h.handleDeletePoll)

				r.Post("/announcements", h.handleCreateAnnouncement)
				r.Delete("/announcements/{id}", h.handleDeleteAnnouncement)

				r.Post("/events", h.handleCreateEvent)
				r.Patch("/events/{id}", h.handleUpdateEvent)
				r.Delete("/events/{id}", h.handleDeleteEvent)

				r.Get("/users", h.handleListUsers)
				r.Patch("/users/{id}/role", h.handleUpdateUserRole)

				r.Post("/transactions", h.handleCreateTransaction)
				r.Post("/students/{id}/installments", h.handleCreateInstallmentPlan)
				r.Get("/students/{id}/installments", h.handleStudentInstallments)
				r.Patch("/installments/{id}/pay", h.handleMarkInstallmentPaid)
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.BadRequest("invalid_input", "invalid body", err)
	}
	if err := validate.Struct(dst); err != nil {
		return apperr.BadRequest("invalid_input", err.Error(), err)
	}
	return nil
}

// notify hands a change event to the realtime notifier without blocking the
// request when the channel is full.
func (h *Handler) notify(entity, action string, id uuid.UUID) {
	if h.eventCh == nil {
		return
	}
	select {
	case h.eventCh <- worker.ChangeEvent{Entity: entity, Action: action, ID: id}:
	default:
	}
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/dto"
	"github.com/taskhive/taskhive/internal/handlers/httperr"
	"github.com/taskhive/taskhive/internal/middleware"
	taskrepo "github.com/taskhive/taskhive/internal/repo/task-repo"
	"github.com/taskhive/taskhive/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, buyer *domain.User, task *domain.Task) error
	List(ctx context.Context, filter taskrepo.Filter) ([]domain.Task, int, error)
	Get(ctx context.Context, id int) (*domain.Task, error)
	ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Task, error)
	ListAll(ctx context.Context) ([]domain.Task, error)
	Edit(ctx context.Context, buyer *domain.User, id int, title, detail, submissionInfo string) error
	Delete(ctx context.Context, actor *domain.User, id int) error
	BuyerStats(ctx context.Context, buyerEmail string) (int, int, decimal.Decimal, error)
}

type TaskHandler struct {
	taskService Service
}

func New(taskService Service) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// List godoc
//
//	@Summary		List open tasks
//	@Description	Paginated public listing of tasks with open slots, filterable by text, deadline floor and reward range
//	@Tags			Tasks
//	@Produce		json
//	@Param			search		query		string	false	"free-text match on title or detail"
//	@Param			deadline	query		string	false	"RFC3339 deadline floor"
//	@Param			rewardMin	query		int		false	"minimum payable amount"
//	@Param			rewardMax	query		int		false	"maximum payable amount"
//	@Param			page		query		int		false	"page number"
//	@Param			limit		query		int		false	"page size"
//	@Success		200			{object}	dto.TaskListResponseDTO
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/tasks [get]
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := taskrepo.Filter{
		Search: q.Get("search"),
	}
	if deadline := q.Get("deadline"); deadline != "" {
		t, err := time.Parse(time.RFC3339, deadline)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid deadline")
			return
		}
		filter.DeadlineFrom = t
	}
	filter.RewardMin, _ = strconv.ParseInt(q.Get("rewardMin"), 10, 64)
	filter.RewardMax, _ = strconv.ParseInt(q.Get("rewardMax"), 10, 64)
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 12
	}

	tasks, total, err := h.taskService.List(r.Context(), filter)
	if err != nil {
		httperr.Respond(w, err)
		return
	}

	response := dto.TaskListResponseDTO{
		Tasks: make([]dto.TaskResponseDTO, 0, len(tasks)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for _, task := range tasks {
		response.Tasks = append(response.Tasks, toDTO(task))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Get godoc
//
//	@Summary	Get a task by id
//	@Tags		Tasks
//	@Produce	json
//	@Param		id	path		int	true	"task id"
//	@Success	200	{object}	dto.TaskResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid ID"
//	@Failure	404	{object}	utils.Response	"Task not found"
//	@Router		/api/tasks/{id} [get]
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTO(*task))
}

// Create godoc
//
//	@Summary		Create a task
//	@Description	Reserve required_workers * payable_amount coins from the buyer and open the task
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateTaskRequestDTO	true	"Task payload"
//	@Success		201		{object}	dto.TaskResponseDTO
//	@Failure		400		{object}	utils.Response	"Validation failed"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		403		{object}	utils.Response	"Buyer role required"
//	@Router			/api/tasks [post]
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFrom(r.Context())

	var req dto.CreateTaskRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task := &domain.Task{
		Title:           req.Title,
		Detail:          req.Detail,
		RequiredWorkers: req.RequiredWorkers,
		PayableAmount:   req.PayableAmount,
		CompletionDate:  req.CompletionDate,
		SubmissionInfo:  req.SubmissionInfo,
		ImageURL:        req.ImageURL,
	}
	if err := h.taskService.Create(r.Context(), buyer, task); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDTO(*task))
}

// Mine godoc
//
//	@Summary	List the buyer's own tasks
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	dto.TaskResponseDTO
//	@Router		/api/tasks/buyer/mine [get]
func (h *TaskHandler) Mine(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFrom(r.Context())

	tasks, err := h.taskService.ListByBuyer(r.Context(), buyer.Email)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTOs(tasks))
}

// Stats godoc
//
//	@Summary	Buyer dashboard stats
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.BuyerStatsResponseDTO
//	@Router		/api/tasks/buyer/stats [get]
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFrom(r.Context())

	totalTasks, pendingWorkers, totalPayment, err := h.taskService.BuyerStats(r.Context(), buyer.Email)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BuyerStatsResponseDTO{
		TotalTasks:     totalTasks,
		PendingWorkers: pendingWorkers,
		TotalPayment:   totalPayment.StringFixed(2),
	})
}

// All godoc
//
//	@Summary	List every task (admin)
//	@Tags		Tasks
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	dto.TaskResponseDTO
//	@Router		/api/tasks/admin/all [get]
func (h *TaskHandler) All(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListAll(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDTOs(tasks))
}

// Update godoc
//
//	@Summary		Edit a task's descriptive fields
//	@Description	Title, detail and submission instructions only; capacity and payout never change
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"task id"
//	@Param			request	body		dto.UpdateTaskRequestDTO	true	"Editable fields"
//	@Success		200		{object}	utils.Response
//	@Failure		404		{object}	utils.Response	"Task not found"
//	@Router			/api/tasks/{id} [patch]
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	buyer, _ := middleware.UserFrom(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	var req dto.UpdateTaskRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.taskService.Edit(r.Context(), buyer, id, req.Title, req.Detail, req.SubmissionInfo); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Task updated"})
}

// Delete godoc
//
//	@Summary		Delete a task
//	@Description	Owning buyer or admin; the unconsumed reservation is refunded to the buyer
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"task id"
//	@Success		200	{object}	utils.Response
//	@Failure		403	{object}	utils.Response	"Forbidden"
//	@Failure		404	{object}	utils.Response	"Task not found"
//	@Router			/api/tasks/{id} [delete]
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFrom(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.taskService.Delete(r.Context(), actor, id); err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Task deleted"})
}

func toDTO(task domain.Task) dto.TaskResponseDTO {
	return dto.TaskResponseDTO{
		ID:              task.ID,
		Title:           task.Title,
		Detail:          task.Detail,
		BuyerEmail:      task.BuyerEmail,
		BuyerName:       task.BuyerName,
		RequiredWorkers: task.RequiredWorkers,
		PayableAmount:   task.PayableAmount,
		CompletionDate:  task.CompletionDate,
		SubmissionInfo:  task.SubmissionInfo,
		ImageURL:        task.ImageURL,
		CreatedAt:       task.CreatedAt,
	}
}

func toDTOs(tasks []domain.Task) []dto.TaskResponseDTO {
	response := make([]dto.TaskResponseDTO, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, toDTO(task))
	}
	return response
}

package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// jsonError writes a JSON error body with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// jsonViolations writes the field-level violations of a rejected submission
func jsonViolations(w http.ResponseWriter, violations []Violation) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string][]Violation{"errors": violations})
}

// writeJSON writes a success response body
func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// pathID parses the {id} path segment
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// handleListExpenses returns the filtered, sorted, paginated view of the
// collection along with pagination metadata
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	params, err := parseQueryParams(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	view := Apply(s.store.Snapshot(), params.Params)
	view = Sort(view, params.SortKey, params.Direction)
	page := Paginate(view, params.PageIndex, params.PageSize)

	writeJSON(w, http.StatusOK, page)
}

// handleCreateExpense validates a submission and creates the record
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fields, violations := s.validator.Validate(sub)
	if violations != nil {
		jsonViolations(w, violations)
		return
	}

	record := s.store.Create(fields)
	writeJSON(w, http.StatusCreated, record)
}

// handleGetExpense returns a single record
func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, "Expense ID required", http.StatusBadRequest)
		return
	}
	record, err := s.store.Get(id)
	if err != nil {
		jsonError(w, "Expense not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleUpdateStatus approves or rejects a single record
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, "Expense ID required", http.StatusBadRequest)
		return
	}

	var req struct {
		Status Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := s.store.UpdateStatus(id, req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		jsonError(w, "Status must be Approved or Rejected", http.StatusUnprocessableEntity)
		return
	case errors.Is(err, ErrNotFound):
		jsonError(w, "Expense not found", http.StatusNotFound)
		return
	case err != nil:
		slog.Error("Error updating status", "id", id, "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleBulkUpdateStatus approves or rejects every listed id that exists,
// reporting which ids were actually updated
func (s *Server) handleBulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs    []int  `json:"ids"`
		Status Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := s.store.BulkUpdateStatus(req.IDs, req.Status)
	if err != nil {
		jsonError(w, "Status must be Approved or Rejected", http.StatusUnprocessableEntity)
		return
	}

	ids := make([]int, len(updated))
	for i, record := range updated {
		ids[i] = record.ID
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": ids, "records": updated})
}

// handleAddNote appends a reviewer note to a record
func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, "Expense ID required", http.StatusBadRequest)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	record, err := s.store.AddNote(id, req.Text)
	switch {
	case errors.Is(err, ErrEmptyNote):
		jsonError(w, "Note text cannot be empty", http.StatusUnprocessableEntity)
		return
	case errors.Is(err, ErrNotFound):
		jsonError(w, "Expense not found", http.StatusNotFound)
		return
	case err != nil:
		slog.Error("Error adding note", "id", id, "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleDeleteNote removes a note by position
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, "Expense ID required", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		jsonError(w, "Note index required", http.StatusBadRequest)
		return
	}

	_, err = s.store.DeleteNote(id, index)
	switch {
	case errors.Is(err, ErrNotFound):
		jsonError(w, "Expense not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrNoteIndex):
		jsonError(w, "Note not found", http.StatusNotFound)
		return
	case err != nil:
		slog.Error("Error deleting note", "id", id, "index", index, "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteExpense removes a record entirely
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		jsonError(w, "Expense ID required", http.StatusBadRequest)
		return
	}
	if err := s.store.Delete(id); err != nil {
		jsonError(w, "Expense not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listParams bundles the view parameters parsed from the request URL
type listParams struct {
	Params
	SortKey   SortKey
	Direction Direction
	PageIndex int
	PageSize  int
}

// parseQueryParams maps URL query values onto view parameters. Filter
// values may repeat (`status=Pending&status=Approved`) or arrive
// comma-separated.
func parseQueryParams(r *http.Request) (listParams, error) {
	q := r.URL.Query()
	params := listParams{
		SortKey:   SortBySubmittedAt,
		Direction: Descending,
		PageSize:  DefaultPageSize,
	}
	params.Query = q.Get("q")

	for _, v := range splitValues(q["status"]) {
		status := Status(v)
		if !ValidStatus(status) {
			return params, errors.New("unknown status filter: " + v)
		}
		params.Statuses = append(params.Statuses, status)
	}
	for _, v := range splitValues(q["category"]) {
		category := Category(v)
		if !ValidCategory(category) {
			return params, errors.New("unknown category filter: " + v)
		}
		params.Categories = append(params.Categories, category)
	}

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return params, errors.New("invalid from date: " + v)
		}
		params.DateFrom = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return params, errors.New("invalid to date: " + v)
		}
		params.DateTo = &t
	}

	switch key := SortKey(q.Get("sort")); key {
	case "":
	case SortByAmount, SortByPurchaseDate, SortBySubmittedAt, SortByEmployee:
		params.SortKey = key
	default:
		return params, errors.New("unknown sort key: " + q.Get("sort"))
	}
	if dir := q.Get("dir"); dir != "" {
		switch Direction(dir) {
		case Ascending, Descending:
			params.Direction = Direction(dir)
		default:
			return params, errors.New("unknown sort direction: " + dir)
		}
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			return params, errors.New("invalid page: " + v)
		}
		params.PageIndex = page
	}
	if v := q.Get("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return params, errors.New("invalid page size: " + v)
		}
		params.PageSize = size
	}

	return params, nil
}

// splitValues flattens repeated and comma-separated query values
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

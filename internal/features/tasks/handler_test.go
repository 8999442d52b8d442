package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateFormat, value)
	require.NoError(t, err)
	return parsed
}

type tasksEnv struct {
	router   *gin.Engine
	store    *fakeStore
	resolver *fakeResolver
}

func newTasksEnv(t *testing.T) *tasksEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &tasksEnv{
		store:    &fakeStore{},
		resolver: &fakeResolver{refs: map[string]CategoryRef{}},
	}

	handler := NewHandler(newTestService(env.store, env.resolver))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", c.GetHeader("X-Test-User"))
	})
	group := router.Group("/api/tasks")
	{
		group.POST("/", handler.Create)
		group.GET("/", handler.List)
		group.GET("/my-tasks/", handler.MyTasks)
		group.GET("/:id/", handler.Get)
		group.PATCH("/:id/", handler.Update)
		group.PUT("/:id/", handler.Update)
		group.DELETE("/:id/", handler.Delete)
		group.POST("/:id/toggle-complete/", handler.ToggleComplete)
	}
	env.router = router
	return env
}

func (e *tasksEnv) do(t *testing.T, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", user)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateTask(t *testing.T) {
	env := newTasksEnv(t)

	w := env.do(t, http.MethodPost, "/api/tasks/", "alice", gin.H{
		"title":    "Buy groceries",
		"priority": "high",
		"due_date": "2026-09-15",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	require.Equal(t, "Buy groceries", body["title"])
	require.Equal(t, "high", body["priority"])
	require.Equal(t, "2026-09-15", body["due_date"])
	require.Equal(t, "alice", body["user"])
	require.Equal(t, false, body["completed"])
	require.Nil(t, body["category"])
	require.NotEmpty(t, body["id"])
}

func TestCreateTaskDefaultsPriority(t *testing.T) {
	env := newTasksEnv(t)

	w := env.do(t, http.MethodPost, "/api/tasks/", "alice", gin.H{"title": "Read"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "medium", decode(t, w)["priority"])
}

func TestCreateTaskValidation(t *testing.T) {
	env := newTasksEnv(t)

	cases := []struct {
		name    string
		payload gin.H
		field   string
		message string
	}{
		{"missing title", gin.H{"priority": "low"}, "title", "This field is required."},
		{"blank title", gin.H{"title": "   "}, "title", "This field is required."},
		{"bad priority", gin.H{"title": "x", "priority": "urgent"}, "priority", "Priority must be one of: low, medium, high."},
		{"bad due date", gin.H{"title": "x", "due_date": "15/09/2026"}, "due_date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
		{"blank description", gin.H{"title": "x", "description": ""}, "description", "Description cannot be empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/tasks/", "alice", tc.payload)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var errs map[string][]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errs))
			require.Contains(t, errs[tc.field], tc.message)
		})
	}
}

func TestCreateTaskUnknownCategory(t *testing.T) {
	env := newTasksEnv(t)

	missing := primitive.NewObjectID().Hex()
	w := env.do(t, http.MethodPost, "/api/tasks/", "alice", gin.H{
		"title":    "Laundry",
		"category": missing,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var errs map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errs))
	require.Contains(t, errs["category"][0], missing)
}

func TestCreateTaskWithCategory(t *testing.T) {
	env := newTasksEnv(t)
	catID := primitive.NewObjectID()
	env.resolver.refs[catID.Hex()] = CategoryRef{ID: catID, Name: "Errands"}

	w := env.do(t, http.MethodPost, "/api/tasks/", "alice", gin.H{
		"title":    "Laundry",
		"category": catID.Hex(),
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "Errands", decode(t, w)["category"])
}

func TestListTasksPagination(t *testing.T) {
	env := newTasksEnv(t)
	for i := 0; i < 12; i++ {
		seedTask(t, env.store, "alice", fmt.Sprintf("Task %d", i))
	}
	seedTask(t, env.store, "bob", "Not alices")

	w := env.do(t, http.MethodGet, "/api/tasks/?page=2&page_size=5", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.EqualValues(t, 12, body["count"])
	require.Len(t, body["results"], 5)

	next, ok := body["next"].(string)
	require.True(t, ok)
	require.Contains(t, next, "page=3")

	previous, ok := body["previous"].(string)
	require.True(t, ok)
	require.NotContains(t, previous, "page=")
}

func TestListTasksEmptyFirstPage(t *testing.T) {
	env := newTasksEnv(t)

	w := env.do(t, http.MethodGet, "/api/tasks/", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.EqualValues(t, 0, body["count"])
	require.Nil(t, body["next"])
	require.Nil(t, body["previous"])
	require.Len(t, body["results"], 0)
}

func TestListTasksInvalidPage(t *testing.T) {
	env := newTasksEnv(t)
	seedTask(t, env.store, "alice", "Only one")

	w := env.do(t, http.MethodGet, "/api/tasks/?page=9", "alice", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Invalid page.", decode(t, w)["detail"])
}

func TestListTasksCompletedFilter(t *testing.T) {
	env := newTasksEnv(t)
	seedTask(t, env.store, "alice", "Open")
	done := seedTask(t, env.store, "alice", "Done")
	env.store.tasks[1].Completed = true
	_ = done

	w := env.do(t, http.MethodGet, "/api/tasks/?completed=true", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.EqualValues(t, 1, body["count"])
	results := body["results"].([]interface{})
	first := results[0].(map[string]interface{})
	require.Equal(t, "Done", first["title"])
}

func TestMyTasksBareArray(t *testing.T) {
	env := newTasksEnv(t)
	seedTask(t, env.store, "alice", "One")
	seedTask(t, env.store, "alice", "Two")
	seedTask(t, env.store, "bob", "Theirs")

	w := env.do(t, http.MethodGet, "/api/tasks/my-tasks/", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
}

func TestGetTaskOwnership(t *testing.T) {
	env := newTasksEnv(t)
	task := seedTask(t, env.store, "alice", "Private")

	w := env.do(t, http.MethodGet, "/api/tasks/"+task.ID.Hex()+"/", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/tasks/"+task.ID.Hex()+"/", "bob", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Task not found", decode(t, w)["error"])
}

func TestUpdateTask(t *testing.T) {
	env := newTasksEnv(t)
	task := seedTask(t, env.store, "alice", "Old title")

	w := env.do(t, http.MethodPatch, "/api/tasks/"+task.ID.Hex()+"/", "alice", gin.H{
		"title":    "New title",
		"priority": "high",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Equal(t, "New title", body["title"])
	require.Equal(t, "high", body["priority"])
}

func TestUpdateTaskClearsDueDate(t *testing.T) {
	env := newTasksEnv(t)
	task := seedTask(t, env.store, "alice", "Dated")
	due := mustParseDate(t, "2026-10-01")
	env.store.tasks[0].DueDate = &due

	w := env.do(t, http.MethodPatch, "/api/tasks/"+task.ID.Hex()+"/", "alice", gin.H{
		"due_date": "",
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, decode(t, w)["due_date"])
}

func TestUpdateTaskClearsCategory(t *testing.T) {
	env := newTasksEnv(t)
	task := seedTask(t, env.store, "alice", "Categorized")
	catID := primitive.NewObjectID()
	env.store.tasks[0].CategoryID = &catID
	env.store.tasks[0].CategoryName = "Home"

	w := env.do(t, http.MethodPatch, "/api/tasks/"+task.ID.Hex()+"/", "alice", gin.H{
		"category": "",
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, decode(t, w)["category"])
}

func TestUpdateTaskCannotTouchOthers(t *testing.T) {
	env := newTasksEnv(t)
	task := seedTask(t, env.store, "alice", "Mine")

	w := env.do(t, http.MethodPatch, "/api/tasks/"+task.ID.Hex()+"/", "bob", gin.H{
		"title": "Hijacked",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Mine", env.store.tasks[0].Title)
}

func TestDeleteTask(t *testing.T) {
	env := newTasksEnv(t)
	task := seedTask(t, env.store, "alice", "Disposable")

	w := env.do(t, http.MethodDelete, "/api/tasks/"+task.ID.Hex()+"/", "alice", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.Bytes())

	w = env.do(t, http.MethodDelete, "/api/tasks/"+task.ID.Hex()+"/", "alice", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleComplete(t *testing.T) {
	env := newTasksEnv(t)
	task := seedTask(t, env.store, "alice", "Flip me")

	w := env.do(t, http.MethodPost, "/api/tasks/"+task.ID.Hex()+"/toggle-complete/", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, "success", body["status"])
	require.Equal(t, true, body["completed"])
	require.Equal(t, "Task marked as completed", body["message"])
	require.NotNil(t, env.store.tasks[0].CompletedAt)

	w = env.do(t, http.MethodPost, "/api/tasks/"+task.ID.Hex()+"/toggle-complete/", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body = decode(t, w)
	require.Equal(t, false, body["completed"])
	require.Equal(t, "Task marked as pending", body["message"])
	require.Nil(t, env.store.tasks[0].CompletedAt)
}

func TestToggleCompleteNotOwner(t *testing.T) {
	env := newTasksEnv(t)
	task := seedTask(t, env.store, "alice", "Flip me")

	w := env.do(t, http.MethodPost, "/api/tasks/"+task.ID.Hex()+"/toggle-complete/", "bob", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.False(t, env.store.tasks[0].Completed)
}

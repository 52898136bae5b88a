package taskctl_test

import (
	"context"
	"testing"

	"taskflow/internal/service"
	"taskflow/internal/taskctl"
	"taskflow/internal/testutil"
)

func TestLoad_ReplacesCollection(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", "", false)
	svc.AddTask("Ship release", "", true)

	ctl := taskctl.New(svc, testutil.DefaultUserID)
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	tasks := ctl.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if ctl.Err() != "" {
		t.Errorf("expected no error message, got %q", ctl.Err())
	}
}

func TestLoad_FailureKeepsPrior(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", "", false)

	ctl := taskctl.New(svc, testutil.DefaultUserID)
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	svc.ListTasksErr = testutil.ErrBackend
	if err := ctl.Load(context.Background()); err == nil {
		t.Fatal("expected error from failed Load")
	}

	if len(ctl.Tasks()) != 1 {
		t.Errorf("failed reload must keep the prior collection, got %d tasks", len(ctl.Tasks()))
	}
	if ctl.Err() != "Failed to fetch tasks" {
		t.Errorf("expected fetch error message, got %q", ctl.Err())
	}
}

func TestCreate_OptimisticPlaceholderAtHead(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Existing", "", false)

	ctl := taskctl.New(svc, testutil.DefaultUserID)
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Observe the collection while the create request is in flight.
	var inFlight []service.Task
	svc.OnCreateTask = func() {
		inFlight = ctl.Tasks()
	}

	created, err := ctl.Create(context.Background(), "Buy milk", "2 liters")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(inFlight) != 2 {
		t.Fatalf("expected placeholder plus existing task in flight, got %d", len(inFlight))
	}
	if inFlight[0].Title != "Buy milk" {
		t.Errorf("placeholder must be at the head, got %q", inFlight[0].Title)
	}
	if inFlight[0].ID == created.ID {
		t.Error("placeholder id must be transient, not the server id")
	}

	// After confirmation the placeholder is the server entity.
	tasks := ctl.Tasks()
	if tasks[0].ID != created.ID {
		t.Errorf("expected server entity at head, got id %d", tasks[0].ID)
	}
	if tasks[0].Description != "2 liters" {
		t.Errorf("expected description preserved, got %q", tasks[0].Description)
	}
}

func TestCreate_FailureRemovesPlaceholder(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Existing", "", false)
	svc.CreateTaskErr = testutil.ErrBackend

	ctl := taskctl.New(svc, testutil.DefaultUserID)
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := ctl.Create(context.Background(), "Buy milk", ""); err == nil {
		t.Fatal("expected error from failed Create")
	}

	tasks := ctl.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Existing" {
		t.Errorf("failed create must remove the placeholder, got %+v", tasks)
	}
	if ctl.Err() != "Failed to create task" {
		t.Errorf("expected create error message, got %q", ctl.Err())
	}
}

func TestCreate_EmptyTitleRejected(t *testing.T) {
	svc := testutil.NewFakeService()
	ctl := taskctl.New(svc, testutil.DefaultUserID)

	if _, err := ctl.Create(context.Background(), "   ", ""); err == nil {
		t.Fatal("expected error for whitespace title")
	}
	if ctl.Err() != "Title is required" {
		t.Errorf("expected title error message, got %q", ctl.Err())
	}
	if len(ctl.Tasks()) != 0 {
		t.Error("rejected create must not touch the collection")
	}
}

func TestToggle_OptimisticThenReconciled(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("Buy milk", "", false)

	ctl := taskctl.New(svc, testutil.DefaultUserID)
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var inFlightCompleted bool
	svc.OnToggleTask = func() {
		inFlightCompleted = ctl.Tasks()[0].Completed
	}

	if err := ctl.Toggle(context.Background(), task.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if !inFlightCompleted {
		t.Error("completion must flip before the request completes")
	}
	got := ctl.Tasks()[0]
	if !got.Completed {
		t.Error("expected completed after reconcile")
	}
	server, _ := svc.TaskByID(task.ID)
	if got.UpdatedAt != server.UpdatedAt {
		t.Errorf("updated_at must come from the server, got %q want %q", got.UpdatedAt, server.UpdatedAt)
	}
}

func TestToggle_FailureRestoresExactValue(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("Buy milk", "", false)
	svc.ToggleTaskErr = testutil.ErrBackend

	ctl := taskctl.New(svc, testutil.DefaultUserID)
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := ctl.Toggle(context.Background(), task.ID); err == nil {
		t.Fatal("expected error from failed Toggle")
	}

	if ctl.Tasks()[0].Completed {
		t.Error("failed toggle must restore the prior completion value")
	}
	if ctl.Err() != "Failed to update task" {
		t.Errorf("expected update error message, got %q", ctl.Err())
	}
}

func TestToggle_UnknownTask(t *testing.T) {
	svc := testutil.NewFakeService()
	ctl := taskctl.New(svc, testutil.DefaultUserID)

	if err := ctl.Toggle(context.Background(), 999); err == nil {
		t.Fatal("expected error for unknown task")
	}
}

func TestDelete_OptimisticRemoval(t *testing.T) {
	svc := testutil.NewFakeService()
	a := svc.AddTask("Buy milk", "", false)
	svc.AddTask("Ship release", "", false)

	ctl := taskctl.New(svc, testutil.DefaultUserID)
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var inFlight int
	svc.OnDeleteTask = func() {
		inFlight = len(ctl.Tasks())
	}

	if err := ctl.Delete(context.Background(), a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if inFlight != 1 {
		t.Errorf("task must disappear before the request completes, saw %d tasks", inFlight)
	}
	if len(ctl.Tasks()) != 1 {
		t.Errorf("expected 1 task after delete, got %d", len(ctl.Tasks()))
	}
}

func TestDelete_FailureRestoresTask(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("Buy milk", "2 liters", true)
	svc.DeleteTaskErr = testutil.ErrBackend

	ctl := taskctl.New(svc, testutil.DefaultUserID)
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := ctl.Delete(context.Background(), task.ID); err == nil {
		t.Fatal("expected error from failed Delete")
	}

	tasks := ctl.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("failed delete must restore the task, got %d tasks", len(tasks))
	}
	// Restoration is field-exact, not a re-fetch.
	if tasks[0] != task {
		t.Errorf("restored task differs from original:\n got %+v\nwant %+v", tasks[0], task)
	}
	if ctl.Err() != "Failed to delete task" {
		t.Errorf("expected delete error message, got %q", ctl.Err())
	}
}

func TestUpdate_ReplacesWithServerEntity(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("Buy milk", "old", false)

	ctl := taskctl.New(svc, testutil.DefaultUserID)
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	title := "Buy oat milk"
	if err := ctl.Update(context.Background(), task.ID, &title, nil); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got := ctl.Tasks()[0]
	if got.Title != "Buy oat milk" {
		t.Errorf("expected updated title, got %q", got.Title)
	}
	if got.Description != "old" {
		t.Errorf("nil description must leave the field untouched, got %q", got.Description)
	}
	server, _ := svc.TaskByID(task.ID)
	if got.UpdatedAt != server.UpdatedAt {
		t.Error("entry must be replaced with the server entity")
	}
}

func TestUpdate_FailureRestoresPrior(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("Buy milk", "old", false)
	svc.UpdateTaskErr = testutil.ErrBackend

	ctl := taskctl.New(svc, testutil.DefaultUserID)
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	title := "Buy oat milk"
	desc := "new"
	if err := ctl.Update(context.Background(), task.ID, &title, &desc); err == nil {
		t.Fatal("expected error from failed Update")
	}

	got := ctl.Tasks()[0]
	if got != task {
		t.Errorf("failed update must restore the prior entity:\n got %+v\nwant %+v", got, task)
	}
	if ctl.Err() != "Failed to update task" {
		t.Errorf("expected update error message, got %q", ctl.Err())
	}
}

func TestUpdate_EmptyTitleRejected(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("Buy milk", "", false)

	ctl := taskctl.New(svc, testutil.DefaultUserID)
	if err := ctl.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	empty := "  "
	if err := ctl.Update(context.Background(), task.ID, &empty, nil); err == nil {
		t.Fatal("expected error for whitespace title")
	}
	if ctl.Tasks()[0].Title != "Buy milk" {
		t.Error("rejected update must not touch the entry")
	}
}

func TestFilter(t *testing.T) {
	tasks := []service.Task{
		{ID: 1, Title: "Buy milk", Description: "2 liters", Completed: false},
		{ID: 2, Title: "Ship release", Description: "", Completed: true},
		{ID: 3, Title: "Groceries", Description: "milk and eggs", Completed: true},
	}

	cases := []struct {
		name   string
		search string
		status string
		want   []int64
	}{
		{"all", "", taskctl.StatusAll, []int64{1, 2, 3}},
		{"search title", "milk", taskctl.StatusAll, []int64{1, 3}},
		{"search description", "eggs", taskctl.StatusAll, []int64{3}},
		{"search case insensitive", "MILK", taskctl.StatusAll, []int64{1, 3}},
		{"completed", "", taskctl.StatusCompleted, []int64{2, 3}},
		{"pending", "", taskctl.StatusPending, []int64{1}},
		{"search and status", "milk", taskctl.StatusCompleted, []int64{3}},
		{"no match", "coffee", taskctl.StatusAll, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := taskctl.Filter(tasks, tc.search, tc.status)
			var ids []int64
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			if len(ids) != len(tc.want) {
				t.Fatalf("expected ids %v, got %v", tc.want, ids)
			}
			for i := range ids {
				if ids[i] != tc.want[i] {
					t.Fatalf("expected ids %v, got %v", tc.want, ids)
				}
			}
		})
	}
}

func TestCounts(t *testing.T) {
	tasks := []service.Task{
		{ID: 1, Completed: false},
		{ID: 2, Completed: true},
		{ID: 3, Completed: false},
	}
	total, completed, pending := taskctl.Counts(tasks)
	if total != 3 || completed != 1 || pending != 2 {
		t.Errorf("expected (3,1,2), got (%d,%d,%d)", total, completed, pending)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"all", "completed", "pending"} {
		if !taskctl.ValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if taskctl.ValidStatus("bogus") {
		t.Error("expected 'bogus' to be invalid")
	}
}

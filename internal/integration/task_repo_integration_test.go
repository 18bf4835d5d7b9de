package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func testDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func createUser(t *testing.T, db *pgxpool.Pool, tag string) *domain.User {
	t.Helper()
	u := &domain.User{
		Email: fmt.Sprintf("%s-%d@example.com", tag, time.Now().UnixNano()),
		Name:  tag,
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestTaskRepository_ListByUserOrdering(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := repository.NewTaskRepository(db)
	owner := createUser(t, db, "ordering")

	later := time.Now().Add(72 * time.Hour).Truncate(time.Second)
	sooner := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	mk := func(title string, due *time.Time) *domain.Task {
		task, err := repo.Create(ctx, &domain.TaskDraft{
			Title:        title,
			Priority:     domain.PriorityMedium,
			CreatorEmail: owner.Email,
			DueDate:      due,
		})
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		return task
	}

	mk("undated-old", nil)
	mk("due-later", &later)
	mk("undated-new", nil)
	mk("due-sooner", &sooner)

	tasks, err := repo.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(tasks))
	}

	want := []string{"due-sooner", "due-later", "undated-new", "undated-old"}
	for i, w := range want {
		if tasks[i].Title != w {
			t.Errorf("position %d: got %q, want %q", i, tasks[i].Title, w)
		}
	}
}

func TestTaskRepository_BulkDeleteSkipsUnowned(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := repository.NewTaskRepository(db)
	owner := createUser(t, db, "bulk-owner")
	other := createUser(t, db, "bulk-other")

	mk := func(creator *domain.User) int64 {
		task, err := repo.Create(ctx, &domain.TaskDraft{
			Title:        "bulk",
			Priority:     domain.PriorityLow,
			CreatorEmail: creator.Email,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		return task.ID
	}

	mine1 := mk(owner)
	mine2 := mk(owner)
	theirs := mk(other)

	deleted, err := repo.BulkDelete(ctx, []int64{mine1, mine2, theirs}, owner.ID)
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if len(deleted) != 2 {
		t.Fatalf("expected 2 deleted, got %d", len(deleted))
	}

	// the unowned task must survive
	if _, err := repo.GetByID(ctx, theirs); err != nil {
		t.Fatalf("unowned task should still exist: %v", err)
	}
}

func TestTaskRepository_CompletedAtLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := repository.NewTaskRepository(db)
	owner := createUser(t, db, "lifecycle")

	task, err := repo.Create(ctx, &domain.TaskDraft{
		Title:        "lifecycle",
		Priority:     domain.PriorityHigh,
		CreatorEmail: owner.Email,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.CompletedAt != nil {
		t.Fatal("new task must not carry a completion timestamp")
	}

	task, err = repo.UpdateStatus(ctx, task.ID, domain.StatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("completed task must carry a completion timestamp")
	}

	task, err = repo.UpdateStatus(ctx, task.ID, domain.StatusInProgress)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if task.CompletedAt != nil {
		t.Fatal("reopened task must drop its completion timestamp")
	}
}

func TestTaskRepository_AssignedAtOnlyOnRealChange(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := repository.NewTaskRepository(db)
	owner := createUser(t, db, "assign-owner")
	assignee := createUser(t, db, "assignee")

	task, err := repo.Create(ctx, &domain.TaskDraft{
		Title:        "assign",
		Priority:     domain.PriorityMedium,
		CreatorEmail: owner.Email,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	task, err = repo.UpdateAssignment(ctx, task.ID, &assignee.ID, nil)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if task.AssignedAt == nil {
		t.Fatal("first assignment must stamp assigned_at")
	}
	first := *task.AssignedAt

	time.Sleep(10 * time.Millisecond)

	task, err = repo.UpdateAssignment(ctx, task.ID, &assignee.ID, nil)
	if err != nil {
		t.Fatalf("re-assign: %v", err)
	}
	if task.AssignedAt == nil || !task.AssignedAt.Equal(first) {
		t.Fatalf("re-assigning the same user must not move assigned_at: %v vs %v", task.AssignedAt, first)
	}
}

func TestProjectRepository_CollaboratorRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := repository.NewProjectRepository(db)
	owner := createUser(t, db, "proj-owner")
	member := createUser(t, db, "proj-member")

	p := &domain.Project{Title: "shared", CreatedBy: owner.ID}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create project: %v", err)
	}

	if _, err := repo.AddCollaborator(ctx, p.ID, member.ID, "member"); err != nil {
		t.Fatalf("add collaborator: %v", err)
	}

	ok, err := repo.IsCollaborator(ctx, p.ID, member.ID)
	if err != nil || !ok {
		t.Fatalf("expected membership, got ok=%v err=%v", ok, err)
	}

	// duplicate insert hits the unique constraint
	if _, err := repo.AddCollaborator(ctx, p.ID, member.ID, "member"); err == nil {
		t.Fatal("duplicate membership must fail")
	}

	if err := repo.RemoveCollaborator(ctx, p.ID, member.ID); err != nil {
		t.Fatalf("remove collaborator: %v", err)
	}

	// removal frees the slot for a re-share
	if _, err := repo.AddCollaborator(ctx, p.ID, member.ID, "member"); err != nil {
		t.Fatalf("re-share after removal: %v", err)
	}
}

func TestCommentRepository_ReplyCount(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tasks := repository.NewTaskRepository(db)
	comments := repository.NewCommentRepository(db)
	owner := createUser(t, db, "comments")

	task, err := tasks.Create(ctx, &domain.TaskDraft{
		Title:        "discussed",
		Priority:     domain.PriorityLow,
		CreatorEmail: owner.Email,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	root, err := comments.Create(ctx, task.ID, owner.ID, "root")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := comments.CreateReply(ctx, root.ID, task.ID, owner.ID, fmt.Sprintf("reply %d", i)); err != nil {
			t.Fatalf("create reply: %v", err)
		}
	}

	feed, err := comments.ListByUserTasks(ctx, owner.ID)
	if err != nil {
		t.Fatalf("list feed: %v", err)
	}
	var found bool
	for _, c := range feed {
		if c.ID == root.ID {
			found = true
			if c.ReplyCount != 2 {
				t.Fatalf("expected reply count 2, got %d", c.ReplyCount)
			}
		}
	}
	if !found {
		t.Fatal("root comment missing from the user feed")
	}

	replies, err := comments.ListReplies(ctx, root.ID)
	if err != nil {
		t.Fatalf("list replies: %v", err)
	}
	if len(replies) != 2 {
		t.Fatalf("expected 2 replies, got %d", len(replies))
	}
}

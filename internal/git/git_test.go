package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func commitFile(t *testing.T, repo *gogit.Repository, dir, name, content string) string {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := worktree.Add(name); err != nil {
		t.Fatal(err)
	}
	hash, err := worktree.Commit("add "+name, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatal(err)
	}
	return hash.String()
}

func TestClient_HeadCommit(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	hash := commitFile(t, repo, dir, "procyon.pro", "TEMPLATE = app")

	rev, err := NewClient(dir).HeadCommit(context.Background())
	if err != nil {
		t.Fatalf("HeadCommit() error = %v", err)
	}
	if rev.Hash != hash {
		t.Errorf("Hash = %s, want %s", rev.Hash, hash)
	}
	if rev.Branch != "master" {
		t.Errorf("Branch = %q, want master", rev.Branch)
	}
	if rev.Dirty {
		t.Error("fresh commit reported dirty")
	}
	if got := rev.String(); got != "master@"+hash[:8] {
		t.Errorf("String() = %q", got)
	}
}

func TestClient_HeadCommit_Subdirectory(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	hash := commitFile(t, repo, dir, "a.txt", "a")

	sub := filepath.Join(dir, "release")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	rev, err := NewClient(sub).HeadCommit(context.Background())
	if err != nil {
		t.Fatalf("HeadCommit() error = %v", err)
	}
	if rev.Hash != hash {
		t.Errorf("Hash = %s, want %s", rev.Hash, hash)
	}
}

func TestClient_HeadCommit_Dirty(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	commitFile(t, repo, dir, "a.txt", "a")
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed"), 0644); err != nil {
		t.Fatal(err)
	}

	rev, err := NewClient(dir).HeadCommit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !rev.Dirty {
		t.Error("modified worktree not reported dirty")
	}
}

func TestClient_HeadCommit_Errors(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		_, err := NewClient(t.TempDir()).HeadCommit(context.Background())
		if !errors.Is(err, ErrNotAGitRepo) {
			t.Errorf("error = %v, want ErrNotAGitRepo", err)
		}
	})

	t.Run("no commits", func(t *testing.T) {
		dir := t.TempDir()
		if _, err := gogit.PlainInit(dir, false); err != nil {
			t.Fatal(err)
		}
		_, err := NewClient(dir).HeadCommit(context.Background())
		if !errors.Is(err, ErrNoCommits) {
			t.Errorf("error = %v, want ErrNoCommits", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewClient(t.TempDir()).HeadCommit(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestRevision_String(t *testing.T) {
	tests := []struct {
		rev  Revision
		want string
	}{
		{Revision{Hash: "0123456789abcdef"}, "01234567"},
		{Revision{Hash: "abc"}, "abc"},
		{Revision{Hash: "0123456789abcdef", Branch: "main", Dirty: true}, "main@01234567 (dirty)"},
	}
	for _, tt := range tests {
		if got := tt.rev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

package commands

import (
	"context"
	"flag"
	"io"
	"strings"
	"testing"

	"taskflow/internal/config"
)

// stubCmd is a minimal Command for registry tests.
type stubCmd struct {
	name    string
	aliases []string
}

func (s *stubCmd) Name() string                { return s.name }
func (s *stubCmd) Aliases() []string           { return s.aliases }
func (s *stubCmd) Synopsis() string            { return "" }
func (s *stubCmd) Usage() string               { return s.name }
func (s *stubCmd) NeedsAuth() bool             { return false }
func (s *stubCmd) RegisterFlags(*flag.FlagSet) {}
func (s *stubCmd) Run(context.Context, *config.Config, *App, []string, io.Writer, io.Writer) int {
	return 0
}

func TestRegistry_FindByNameAndAlias(t *testing.T) {
	r := NewRegistry()
	cmd := &stubCmd{name: "list", aliases: []string{"ls"}}
	if err := r.Register(cmd); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, name := range []string{"list", "ls"} {
		got, ok := r.Find(name)
		if !ok || got != Command(cmd) {
			t.Errorf("Find(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := r.Find("missing"); ok {
		t.Error("Find must miss on unregistered names")
	}
}

func TestRegistry_DuplicateNamesOwner(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&stubCmd{name: "list", aliases: []string{"ls"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := r.Register(&stubCmd{name: "locate", aliases: []string{"ls"}})
	if err == nil {
		t.Fatal("expected error for taken alias")
	}
	if !strings.Contains(err.Error(), `"ls"`) || !strings.Contains(err.Error(), `"list"`) {
		t.Errorf("error must name the alias and its owner, got %q", err)
	}
	if _, ok := r.Find("locate"); ok {
		t.Error("rejected command must not be partially registered")
	}
}

func TestRegistry_AllUniqueSorted(t *testing.T) {
	r := NewRegistry()
	for _, c := range []*stubCmd{
		{name: "rm", aliases: []string{"delete"}},
		{name: "add"},
		{name: "list", aliases: []string{"ls"}},
	} {
		if err := r.Register(c); err != nil {
			t.Fatalf("register %s: %v", c.name, err)
		}
	}

	all := r.All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d commands, want 3", len(all))
	}
	for i, want := range []string{"add", "list", "rm"} {
		if all[i].Name() != want {
			t.Errorf("All()[%d] = %q, want %q", i, all[i].Name(), want)
		}
	}
}

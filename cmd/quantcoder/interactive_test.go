// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import "testing"

func TestFindSubcommand(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"search", "search"},
		{"list", "list"},
		{"download", "download"},
		{"generate", "generate"},
		{"generate-code", "generate"}, // alias
		{"usage", "usage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := findSubcommand(tt.name)
			if sub == nil {
				t.Fatalf("findSubcommand(%q) = nil", tt.name)
			}
			if sub.Name() != tt.want {
				t.Errorf("findSubcommand(%q).Name() = %q, want %q", tt.name, sub.Name(), tt.want)
			}
		})
	}
}

func TestFindSubcommandExclusions(t *testing.T) {
	// The menu never dispatches to itself or to commands without RunE.
	for _, name := range []string{"interactive", "version", "no-such-command"} {
		if sub := findSubcommand(name); sub != nil {
			t.Errorf("findSubcommand(%q) = %q, want nil", name, sub.Name())
		}
	}
}

func TestMenuArgsJoinsSearchQuery(t *testing.T) {
	got := menuArgs(searchCmd, []string{"momentum", "trading"})
	if len(got) != 1 || got[0] != "momentum trading" {
		t.Fatalf("menuArgs(search, ...) = %v, want the words joined into one query", got)
	}
	if err := searchCmd.Args(searchCmd, got); err != nil {
		t.Errorf("joined query rejected by search arg contract: %v", err)
	}
}

func TestMenuArgsLeavesOtherCommandsAlone(t *testing.T) {
	got := menuArgs(downloadCmd, []string{"2"})
	if len(got) != 1 || got[0] != "2" {
		t.Errorf("menuArgs(download, [2]) = %v, want unchanged", got)
	}
	if got := menuArgs(searchCmd, []string{"momentum"}); len(got) != 1 || got[0] != "momentum" {
		t.Errorf("menuArgs(search, single word) = %v, want unchanged", got)
	}
}

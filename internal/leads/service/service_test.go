package service

import (
	"testing"

	"clearing_ops_backend/internal/leads/repository"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{repository.StatusNew, repository.StatusContacted, true},
		{repository.StatusNew, repository.StatusLost, true},
		{repository.StatusNew, repository.StatusWon, false},
		{repository.StatusContacted, repository.StatusQuoted, true},
		{repository.StatusContacted, repository.StatusWon, false},
		{repository.StatusQuoted, repository.StatusWon, true},
		{repository.StatusQuoted, repository.StatusLost, true},
		{repository.StatusQuoted, repository.StatusNew, false},
		{repository.StatusLost, repository.StatusNew, true},
		{repository.StatusLost, repository.StatusWon, false},
		{repository.StatusWon, repository.StatusLost, false},
		{repository.StatusWon, repository.StatusNew, false},
	}

	for _, tc := range cases {
		if got := transitionAllowed(tc.from, tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestOptional(t *testing.T) {
	if optional("") != nil {
		t.Error("empty string should map to nil")
	}
	if got := optional("x"); got == nil || *got != "x" {
		t.Errorf("expected pointer to \"x\", got %v", got)
	}
}

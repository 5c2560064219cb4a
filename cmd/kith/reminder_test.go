package main

import (
	"strings"
	"testing"

	"github.com/anhofmann/kith/pkg/types"
)

func TestRecurringFlagHelp_TokensParse(t *testing.T) {
	flag := reminderAddCmd.Flags().Lookup("recurring")
	if flag == nil {
		t.Fatal("recurring flag not registered")
	}

	// Every token the help text advertises must be accepted.
	_, usage, found := strings.Cut(flag.Usage, ": ")
	if !found {
		t.Fatalf("unexpected usage format: %q", flag.Usage)
	}
	for _, token := range strings.Split(usage, ",") {
		token = strings.TrimSpace(token)
		if _, err := types.ParseRecurringType(token); err != nil {
			t.Errorf("help text names %q but it does not parse: %v", token, err)
		}
	}

	if _, err := types.ParseRecurringType(flag.DefValue); err != nil {
		t.Errorf("default %q does not parse: %v", flag.DefValue, err)
	}
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"arenadb/pkg/store"
)

// Dumps the persisted arena state from a pebble directory for offline
// inspection. Safe against a live server only if pointed at a copy.
func main() {
	var path string
	var summary bool
	flag.StringVar(&path, "path", "", "pebble db path")
	flag.BoolVar(&summary, "summary", false, "print per-thread summary instead of raw state")
	flag.Parse()
	if path == "" {
		fmt.Fprintln(os.Stderr, "--path required")
		os.Exit(2)
	}

	port, err := store.OpenPebble(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = port.Close() }()

	raw, ok, err := port.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "no arena state found")
		os.Exit(1)
	}

	if !summary {
		var buf map[string]any
		if err := json.Unmarshal(raw, &buf); err != nil {
			fmt.Fprintf(os.Stderr, "decode: %v\n", err)
			os.Exit(1)
		}
		out, _ := json.MarshalIndent(buf, "", "  ")
		fmt.Println(string(out))
		return
	}

	var st store.State
	if err := json.Unmarshal(raw, &st); err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("schema=%d threads=%d current=%s tester=%s\n",
		st.SchemaVersion, len(st.Threads), st.CurrentThreadID, st.Config.TesterID)
	for _, t := range st.Threads {
		vote := "-"
		if t.Vote != nil {
			vote = string(*t.Vote)
		}
		fmt.Printf("%s  created=%d turns=%d vote=%s blind=%v title=%q\n",
			t.ID, t.CreatedAt, len(t.Turns), vote, t.WasBlind, t.Title)
	}
}

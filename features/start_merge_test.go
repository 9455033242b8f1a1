package features

import (
	"context"
	"testing"

	"github.com/wippyai/swl/errors"
)

func TestStartMerge(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name: "merge",
			input: `
				;; Input
				(module
					(func $t1)
					(start $t1)
					(func $t2)
					(start $t2))`,
			want: `
				(module
					(func $t1)
					(func $t2)
					(func $_swl_start_merger
						(call $t1)
						(call $t2))
					(start $_swl_start_merger))`,
		},
		{
			name:  "numeric ids",
			input: `(module (start 0) (start $b) (start 2))`,
			want:  `(module (func $_swl_start_merger (call 0) (call $b) (call 2)) (start $_swl_start_merger))`,
		},
		{
			name:  "single start moves last",
			input: `(module (start $main) (func $main))`,
			want:  `(module (func $main) (start $main))`,
		},
		{
			name:  "no start",
			input: `(module (func $main))`,
			want:  `(module (func $main))`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustRun(t, []string{tt.input}, feature(t, "start_merge"))
			if want := canonical(t, tt.want); got != want {
				t.Errorf("got  %s\nwant %s", got, want)
			}
		})
	}
}

func TestStartMerge_Depth(t *testing.T) {
	l := newLinker(t, files(`(module (start $a) (start $b))`), optsWith(t, "start_merge"))
	m, err := l.LinkFile(context.Background(), "0")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"module": 0, "func": 1, "start": 1, "call": 2}
	for n := range m.Nodes() {
		if n.Depth != want[n.Name] {
			t.Errorf("%s depth = %d, want %d", n.Name, n.Depth, want[n.Name])
		}
	}
}

func TestStartMerge_InvalidDirective(t *testing.T) {
	_, err := run(t, []string{`(module (start $a) (start main))`}, feature(t, "start_merge"))
	if !errors.Is(err, errors.ErrInvalidStartDirective) {
		t.Errorf("error = %v, want invalid start directive", err)
	}
}

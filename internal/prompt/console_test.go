package prompt

import (
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes word", "Yes\n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"garbage", "maybe\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			console := NewConsole(strings.NewReader(tt.input), &out)
			got, err := console.Confirm("Proceed?")
			if err != nil {
				t.Fatalf("Confirm failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Proceed? (y/n): ") {
				t.Fatalf("prompt not written: %q", out.String())
			}
		})
	}
}

func TestConfirmEOFErrors(t *testing.T) {
	console := NewConsole(strings.NewReader(""), &strings.Builder{})
	if _, err := console.Confirm("Proceed?"); err == nil {
		t.Fatal("expected error on closed input")
	}
}

func TestReadLineTrimsAndAcceptsFinalLineWithoutNewline(t *testing.T) {
	console := NewConsole(strings.NewReader("  daily-prebuilt  "), &strings.Builder{})
	got, err := console.ReadLine("Value: ")
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if got != "daily-prebuilt" {
		t.Fatalf("ReadLine = %q", got)
	}
}

func TestConfirmExact(t *testing.T) {
	console := NewConsole(strings.NewReader("DELETE ALL\n"), &strings.Builder{})
	ok, err := console.ConfirmExact("Type 'DELETE ALL' to confirm: ", "DELETE ALL")
	if err != nil || !ok {
		t.Fatalf("exact match should pass: ok=%v err=%v", ok, err)
	}

	console = NewConsole(strings.NewReader("delete all\n"), &strings.Builder{})
	ok, err = console.ConfirmExact("Type 'DELETE ALL' to confirm: ", "DELETE ALL")
	if err != nil || ok {
		t.Fatalf("case mismatch should fail: ok=%v err=%v", ok, err)
	}
}

func TestParseIndexList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"single", "0", []int{0}, false},
		{"spaced list", " 0, 2 ,5", []int{0, 2, 5}, false},
		{"empty", "   ", nil, true},
		{"non numeric", "0,two", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIndexList(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIndexList(%q) failed: %v", tt.input, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseIndexList(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("ParseIndexList(%q) = %v, want %v", tt.input, got, tt.want)
				}
			}
		})
	}
}
